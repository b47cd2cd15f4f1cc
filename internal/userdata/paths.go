package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tellnet/tellnet/internal/branding"
)

// File names inside the tellnet home directory.
const (
	ConfigFile   = "config.json"
	NetworksFile = "networks.json"
)

// Permission constants. networks.json holds member secrets.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
)

// GetRoot returns the tellnet home directory.
// It checks the TELLNET_HOME environment variable first,
// then falls back to ~/.tellnet.
func GetRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// GetConfigPath returns the path to config.json.
func GetConfigPath() (string, error) {
	root, err := GetRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ConfigFile), nil
}

// GetNetworksPath returns the path to networks.json.
func GetNetworksPath() (string, error) {
	root, err := GetRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, NetworksFile), nil
}
