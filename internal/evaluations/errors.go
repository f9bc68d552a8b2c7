package evaluations

import (
	"errors"
	"net/http"
)

// Domain errors for evaluation operations.
var (
	ErrNotFound       = errors.New("evaluation not found")
	ErrDuplicate      = errors.New("evaluation already exists")
	ErrQueueRequired  = errors.New("queue_id is required")
	ErrInvalidQueueID = errors.New("queue_id is not a valid uuid")
)

// MapHTTPStatus maps evaluation domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrQueueRequired) || errors.Is(err, ErrInvalidQueueID) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
