// Package schemas provides JSON Schema validation of request payloads.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed application.schema.json
var applicationSchema []byte

const applicationSchemaName = "application.schema.json"

var (
	applicationOnce     sync.Once
	applicationCompiled *gojsonschema.Schema
	applicationErr      error
)

// ApplicationSchema returns the schema of the public application form, for
// clients that validate before submitting.
func ApplicationSchema() []byte {
	out := make([]byte, len(applicationSchema))
	copy(out, applicationSchema)
	return out
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema or the
// document itself, as opposed to a document that does not conform
type SchemaLoadError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Schema, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateApplication validates a raw public application body.
func ValidateApplication(body []byte) error {
	applicationOnce.Do(func() {
		applicationCompiled, applicationErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(applicationSchema))
	})
	if applicationErr != nil {
		return &SchemaLoadError{Schema: applicationSchemaName, Message: "failed to compile schema", Cause: applicationErr}
	}

	result, err := applicationCompiled.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &SchemaLoadError{Schema: applicationSchemaName, Message: "failed to load document", Cause: err}
	}
	return resultError(result)
}

func resultError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
