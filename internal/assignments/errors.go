package assignments

import (
	"errors"
	"net/http"
)

// Domain errors for assignment operations.
var (
	ErrNotFound         = errors.New("assignment not found")
	ErrDuplicate        = errors.New("judge is already assigned to this question")
	ErrQuestionRequired = errors.New("question_id is required")
	ErrJudgeRequired    = errors.New("judge_id is required")
)

// MapHTTPStatus maps assignment domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrQuestionRequired) || errors.Is(err, ErrJudgeRequired) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
