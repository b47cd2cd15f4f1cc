package buildinfo

import "testing"

func TestSemver(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1.2.3", "1.2.3"},
		{"v1.2.3", "1.2.3"},
		{"v0.4", "0.4.0"},
		{"dev", "0.0.0-dev"},
		{"", "0.0.0-dev"},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			got := New(tt.version, "abc", "2026-10-16").Semver()
			if got != tt.want {
				t.Errorf("Semver() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserAgent(t *testing.T) {
	got := New("v1.0.0", "", "").UserAgent()
	if got != "tellnet-cli/1.0.0" {
		t.Errorf("UserAgent() = %q, want %q", got, "tellnet-cli/1.0.0")
	}
}
