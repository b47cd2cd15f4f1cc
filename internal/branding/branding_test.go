package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "tellnet" {
		t.Errorf("CLIName() = %q, want %q", got, "tellnet")
	}
	if got := HomeDir(); got != ".tellnet" {
		t.Errorf("HomeDir() = %q, want %q", got, ".tellnet")
	}
	if got := DefaultEndpoint(); got != "http://localhost:1234/v0/" {
		t.Errorf("DefaultEndpoint() = %q", got)
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("home"); got != "TELLNET_HOME" {
		t.Errorf("EnvVar(home) = %q, want TELLNET_HOME", got)
	}
}
