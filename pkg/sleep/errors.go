package sleep

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrSessionNotFound  = errors.New("session data not found")
	ErrInvalidSession   = errors.New("invalid session data")
	ErrStagesNotFound   = errors.New("no sleep records found for session")
	ErrAnalysisNotFound = errors.New("analysis data not found")
	ErrStorage          = errors.New("storage failure")
	ErrCompletion       = errors.New("completion failure")
	ErrExtraction       = errors.New("no usable result in completion reply")
	ErrDispatch         = errors.New("analysis dispatch failure")
)

// ValidationError carries a client-facing message and matches ErrInvalidInput.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func HttpStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidSession):
		return http.StatusBadRequest
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrStagesNotFound), errors.Is(err, ErrAnalysisNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage is the message safe to return to a caller. Storage and
// unknown errors collapse to fallback.
func ErrorMessage(err error, fallback string) string {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.Is(err, ErrSessionNotFound):
		return "Session data not found"
	case errors.Is(err, ErrInvalidSession):
		return "Invalid session data"
	case errors.Is(err, ErrStagesNotFound):
		return "No sleep records found for the given session_uuid"
	case errors.Is(err, ErrAnalysisNotFound):
		return "Analysis data not found"
	case errors.Is(err, ErrCompletion), errors.Is(err, ErrExtraction):
		return "Error processing GPT request"
	default:
		return fallback
	}
}
