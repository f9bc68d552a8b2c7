package queues

import (
	"errors"
	"net/http"
)

// Domain errors for queue operations.
var (
	ErrNotFound        = errors.New("queue not found")
	ErrDuplicate       = errors.New("queue name already exists")
	ErrNameRequired    = errors.New("name is required")
	ErrNoQuestions     = errors.New("import requires at least one question")
	ErrInvalidQuestion = errors.New("questions require a key and text")
	ErrDuplicateKey    = errors.New("duplicate question key in import")
	ErrUnknownKey      = errors.New("answer references an unknown question key")
)

// MapHTTPStatus maps queue domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrNoQuestions) ||
		errors.Is(err, ErrInvalidQuestion) ||
		errors.Is(err, ErrDuplicateKey) ||
		errors.Is(err, ErrUnknownKey) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
