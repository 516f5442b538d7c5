package documents

import "fmt"

// TemplateError represents an error parsing or executing a document template
type TemplateError struct {
	Template string
	Cause    error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template %s: %v", e.Template, e.Cause)
	}
	return fmt.Sprintf("template %s failed", e.Template)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
