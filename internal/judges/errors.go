package judges

import (
	"errors"
	"net/http"
)

// Domain errors for judge operations.
var (
	ErrNotFound       = errors.New("judge not found")
	ErrDuplicate      = errors.New("judge name already exists")
	ErrNameRequired   = errors.New("name is required")
	ErrPromptRequired = errors.New("system_prompt is required")
	ErrModelRequired  = errors.New("model_name is required")
)

// MapHTTPStatus maps judge domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrPromptRequired) ||
		errors.Is(err, ErrModelRequired) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
