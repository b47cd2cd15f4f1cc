package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf})

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Debug: true, Output: &buf})

	log.Debug("request", "method", "GET")
	require.Contains(t, buf.String(), "method=GET")
}

func TestNew_OmitsTime(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf})

	log.Warn("x")
	require.False(t, strings.HasPrefix(buf.String(), "time="), "time attribute should be dropped: %q", buf.String())
}

func TestRedaction(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Debug: true, Output: &buf})

	log.Debug("request",
		"member_secret", "s3cr3t",
		"password", "abc123",
		"header", "Basic Z3Vlc3Q6YWJjMTIz",
		"network_id", "net-1",
	)

	out := buf.String()
	require.NotContains(t, out, "s3cr3t")
	require.NotContains(t, out, "abc123")
	require.NotContains(t, out, "Z3Vlc3Q6YWJjMTIz")
	require.Contains(t, out, "network_id=net-1")
}

func TestRedaction_Group(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Debug: true, Output: &buf})

	log.Debug("headers", slog.Group("req", slog.String("Authorization", "Basic abc")))
	require.NotContains(t, buf.String(), "Basic abc")
}
