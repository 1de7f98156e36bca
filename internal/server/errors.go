package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/intern-ease/internal/handoff"
	"github.com/jonathan/intern-ease/internal/pipeline"
	"github.com/jonathan/intern-ease/internal/validation"
)

// RequestError indicates a request body that could not be read as a form
type RequestError struct {
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Unreadable stored results and export failures fall through to 500.
func HTTPStatus(err error) int {
	var (
		requestErr *RequestError
		invalid    *validation.ValidationError
		invalidRaw *validation.Error
		stageErr   *pipeline.StageError
		sessionErr *SessionError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &requestErr):
		return http.StatusBadRequest
	case errors.As(err, &invalid), errors.As(err, &invalidRaw):
		return http.StatusUnprocessableEntity
	case errors.As(err, &stageErr):
		return http.StatusBadGateway
	case errors.As(err, &sessionErr), errors.Is(err, handoff.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
