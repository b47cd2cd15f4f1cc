package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"go.yaml.in/yaml/v3"
)

// Format selects how results are rendered.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// Formats lists the accepted --output values.
var Formats = []Format{Text, JSON, YAML}

// ParseFormat validates s. An empty string selects Text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return Text, nil
	}
	f := Format(strings.ToLower(s))
	if !lo.Contains(Formats, f) {
		names := lo.Map(Formats, func(f Format, _ int) string { return string(f) })
		return "", fmt.Errorf("unknown output format %q (expected one of: %s)", s, strings.Join(names, ", "))
	}
	return f, nil
}

// Formatter writes results to a single writer in one format.
type Formatter struct {
	w      io.Writer
	format Format
}

// New returns a Formatter writing to w.
func New(w io.Writer, format Format) *Formatter {
	if format == "" {
		format = Text
	}
	return &Formatter{w: w, format: format}
}

// Format returns the formatter's format.
func (f *Formatter) Format() Format {
	return f.format
}

// emit writes value as a structured document, or calls text in text mode.
func (f *Formatter) emit(value any, text func(w io.Writer) error) error {
	switch f.format {
	case JSON:
		enc := json.NewEncoder(f.w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case YAML:
		if _, err := io.WriteString(f.w, "---\n"); err != nil {
			return err
		}
		enc := yaml.NewEncoder(f.w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(f.w)
	}
}
