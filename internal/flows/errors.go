// Package flows holds the three single-shot generation steps: resume
// optimization, cover letter and outreach email.
package flows

import "fmt"

// Stage names one generation step
type Stage string

// Stage constants in pipeline order
const (
	StageResume      Stage = "resume"
	StageCoverLetter Stage = "cover-letter"
	StageEmail       Stage = "email"
)

// GenerationError is returned by every flow on failure. The cause is an
// *llm.APICallError, a *ParseError or a *schemas.ValidationError.
type GenerationError struct {
	Stage Stage
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Stage, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// ParseError represents a model response that is not the expected JSON
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
