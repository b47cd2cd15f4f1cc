package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tellnet/tellnet/internal/logger"
)

func TestLoad_BootstrapsMissingFile(t *testing.T) {
	t.Setenv("TELLNET_ENDPOINT", "")
	path := filepath.Join(t.TempDir(), "nested", ".tellnet", "config.json")

	cfg, err := Load(path, logger.Discard())
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Endpoint)
	require.Equal(t, "http://localhost:1234/v0/", cfg.Endpoint)
	require.NotNil(t, cfg.NewNetworkAuth)
	require.Equal(t, "guest", cfg.NewNetworkAuth.Username)
	require.Equal(t, "abc123", cfg.NewNetworkAuth.Password)

	_, err = os.Stat(path)
	require.NoError(t, err, "default config should be written")

	again, err := Load(path, logger.Discard())
	require.NoError(t, err)
	require.Equal(t, cfg.Endpoint, again.Endpoint)
}

func TestLoad_WrittenFileIsPrettyJSON(t *testing.T) {
	t.Setenv("TELLNET_ENDPOINT", "")
	path := filepath.Join(t.TempDir(), "config.json")

	_, err := Load(path, logger.Discard())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "\n  \"endpoint\"")

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "new_network_auth")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

func TestLoad_KeepsExistingFile(t *testing.T) {
	t.Setenv("TELLNET_ENDPOINT", "")
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"endpoint": "https://tellnet.example.com/v0/"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path, logger.Discard())
	require.NoError(t, err)
	require.Equal(t, "https://tellnet.example.com/v0/", cfg.Endpoint)
	require.Nil(t, cfg.NewNetworkAuth, "absent new_network_auth means anonymous creation")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, content, string(data), "a valid config must not be rewritten")
}

func TestLoad_KeepsEndpointWithoutScheme(t *testing.T) {
	t.Setenv("TELLNET_ENDPOINT", "")
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"endpoint":"localhost:8080/v0/"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	var logs bytes.Buffer
	cfg, err := Load(path, logger.New(logger.Config{Output: &logs}))
	require.NoError(t, err)
	require.Equal(t, "localhost:8080/v0/", cfg.Endpoint)
	require.NotContains(t, logs.String(), "level=WARN")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, content, string(data))
}

func TestLoad_RegeneratesEmptyEndpoint(t *testing.T) {
	t.Setenv("TELLNET_ENDPOINT", "")
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"endpoint":""}`), 0600))

	cfg, err := Load(path, logger.Discard())
	require.NoError(t, err)
	require.Equal(t, "http://localhost:1234/v0/", cfg.Endpoint)
}

func TestLoad_RegeneratesCorruptFileWithWarning(t *testing.T) {
	t.Setenv("TELLNET_ENDPOINT", "")
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	var logs bytes.Buffer
	cfg, err := Load(path, logger.New(logger.Config{Output: &logs}))
	require.NoError(t, err)
	require.Equal(t, "http://localhost:1234/v0/", cfg.Endpoint)
	require.Contains(t, logs.String(), "level=WARN")
	require.Contains(t, logs.String(), path)
}

func TestLoad_RegeneratesConfigMissingEndpoint(t *testing.T) {
	t.Setenv("TELLNET_ENDPOINT", "")
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"new_network_auth":{"username":"a","password":"b"}}`), 0600))

	cfg, err := Load(path, logger.Discard())
	require.NoError(t, err)
	require.Equal(t, "http://localhost:1234/v0/", cfg.Endpoint)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TELLNET_ENDPOINT", "https://override.example.com/v0/")
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Load(path, logger.Discard())
	require.NoError(t, err)
	require.Equal(t, "https://override.example.com/v0/", cfg.Endpoint)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "override.example.com", "env override must not be persisted")
}

func TestLoad_UnwritableLocation(t *testing.T) {
	t.Setenv("TELLNET_ENDPOINT", "")
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := Load(filepath.Join(blocker, "config.json"), logger.Discard())
	require.Error(t, err)
}

func TestSave_AnonymousConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, Save(&Config{Endpoint: "http://x/v0/"}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "new_network_auth")
}
