package logger

import (
	"log/slog"
	"strings"
)

var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"authorization",
	"credential",
}

const redactedValue = "***REDACTED***"

// redactSensitive replaces string values whose key names a credential.
// Basic auth header values are masked under any key. slog hands grouped
// attributes to ReplaceAttr one by one, so groups need no special case.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindString {
		return a
	}
	strVal := a.Value.String()
	if strVal == "" {
		return a
	}
	if strings.HasPrefix(strVal, "Basic ") {
		return slog.String(a.Key, "Basic "+redactedValue)
	}
	keyLower := strings.ToLower(a.Key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return slog.String(a.Key, redactedValue)
		}
	}
	return a
}
