package schema

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Document names one of the embedded schemas.
type Document string

const (
	Config   Document = "config.schema.json"
	Networks Document = "networks.schema.json"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	compileMu sync.Mutex
	compiled  = map[Document]*jsonschema.Schema{}
	printer   = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/0/network_id")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Summary renders the issues on one line, suitable for a log attribute.
func (r *ValidationResult) Summary() string {
	if r.Valid {
		return "valid"
	}
	parts := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		parts = append(parts, issue.String())
	}
	return printer.Sprintf("%d issues: %s", len(r.Issues), strings.Join(parts, "; "))
}

func getSchema(doc Document) (*jsonschema.Schema, error) {
	compileMu.Lock()
	defer compileMu.Unlock()

	if s, ok := compiled[doc]; ok {
		return s, nil
	}

	raw, err := schemaFS.ReadFile("schemas/" + string(doc))
	if err != nil {
		return nil, fmt.Errorf("reading embedded schema %s: %w", doc, err)
	}
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema %s: %w", doc, err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(string(doc), parsed); err != nil {
		return nil, fmt.Errorf("adding schema resource %s: %w", doc, err)
	}
	s, err := c.Compile(string(doc))
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", doc, err)
	}
	compiled[doc] = s
	return s, nil
}

// Validate checks raw JSON bytes against the named schema.
// The error return is for malformed JSON or schema compilation failures;
// schema violations are returned in the ValidationResult.
func Validate(doc Document, data []byte) (*ValidationResult, error) {
	s, err := getSchema(doc)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	err = s.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{
		Valid:  false,
		Issues: leafIssues(validationErr),
	}, nil
}

// leafIssues flattens the error tree into its leaves. Both documents are
// plain objects and arrays with no combinators, so every leaf is a distinct
// failure.
func leafIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	if len(ve.Causes) > 0 {
		return lo.FlatMap(ve.Causes, func(c *jsonschema.ValidationError, _ int) []ValidationIssue {
			return leafIssues(c)
		})
	}

	issue := ValidationIssue{Message: ve.Error()}
	if len(ve.InstanceLocation) > 0 {
		issue.Path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			issue.Keyword = kw[len(kw)-1]
		}
		issue.Message = ve.ErrorKind.LocalizedString(printer)
	}
	return []ValidationIssue{issue}
}
