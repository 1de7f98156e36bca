// Package types provides type definitions for structured data used throughout the intern-ease system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// EmailContent is the outreach email body
type EmailContent string

// GenerationResult aggregates the three generated documents
type GenerationResult struct {
	OptimizedResume OptimizedResume `json:"optimizedResume"`
	CoverLetter     CoverLetter     `json:"coverLetter"`
	Email           EmailContent    `json:"email"`
}

// Result is the uniform response shape: exactly one of Data and Error is set.
type Result struct {
	Data  *GenerationResult `json:"data"`
	Error *string           `json:"error"`
}

// Success wraps a generation result.
func Success(data *GenerationResult) Result {
	return Result{Data: data}
}

// Failure wraps a user-facing error message.
func Failure(message string) Result {
	return Result{Error: &message}
}

// OK reports whether the result carries data.
func (r Result) OK() bool {
	return r.Error == nil && r.Data != nil
}

// ErrorMessage returns the error text or empty string.
func (r Result) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return *r.Error
}
