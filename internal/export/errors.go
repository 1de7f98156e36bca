// Package export produces downloadable files for the generated documents:
// plain text and PDF printed by headless Chrome.
package export

import "fmt"

// ExportError represents a failed export of one document
type ExportError struct {
	Document string
	Message  string
	Cause    error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export %s: %s: %v", e.Document, e.Message, e.Cause)
	}
	return fmt.Sprintf("export %s: %s", e.Document, e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
