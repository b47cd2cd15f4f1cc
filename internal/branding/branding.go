// Package branding provides compile-time identity values for the CLI.
//
// The values come from branding.yaml, baked into the binary with //go:embed.
// Hard defaults apply when a key is missing from the embedded file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	HomeDir         string `yaml:"home_dir"`
	EnvPrefix       string `yaml:"env_prefix"`
	DefaultEndpoint string `yaml:"default_endpoint"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:         "tellnet",
			DisplayName:     "Tellnet",
			Description:     "Command-line client for Tellnet networks",
			HomeDir:         ".tellnet",
			EnvPrefix:       "TELLNET",
			DefaultEndpoint: "http://localhost:1234/v0/",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "tellnet").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".tellnet").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "TELLNET").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// DefaultEndpoint returns the service URL written into a freshly generated
// config file.
func DefaultEndpoint() string { load(); return defaults.DefaultEndpoint }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "TELLNET_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
