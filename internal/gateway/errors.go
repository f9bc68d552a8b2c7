package gateway

import (
	"context"
	"errors"
)

// Tagged gateway errors. Provider adapters wrap raw API failures with one of
// these sentinels so classification is an errors.Is match rather than message
// sniffing.
var (
	ErrRateLimited  = errors.New("provider quota or rate limit exceeded")
	ErrUnauthorized = errors.New("provider rejected credentials")
	ErrTimedOut     = errors.New("provider request timed out")
)

// Category identifies the failure class of a gateway error.
type Category string

const (
	CategoryRateLimited  Category = "rate_limited"
	CategoryUnauthorized Category = "unauthorized"
	CategoryTimedOut     Category = "timed_out"
	CategoryOther        Category = "other"
)

// Classify maps an error to its failure category. Untagged errors classify
// as CategoryOther.
func Classify(err error) Category {
	switch {
	case errors.Is(err, ErrRateLimited):
		return CategoryRateLimited
	case errors.Is(err, ErrUnauthorized):
		return CategoryUnauthorized
	case errors.Is(err, ErrTimedOut), errors.Is(err, context.DeadlineExceeded):
		return CategoryTimedOut
	default:
		return CategoryOther
	}
}

// Hint returns a human-readable remediation hint for a failure category.
func Hint(c Category) string {
	switch c {
	case CategoryRateLimited:
		return "the model provider reported a quota or rate limit; wait before re-running the queue"
	case CategoryUnauthorized:
		return "the model provider rejected the configured credentials; check the gateway api key"
	case CategoryTimedOut:
		return "the model provider did not respond in time; re-run the queue"
	default:
		return "the request could not be completed; check gateway configuration and provider status"
	}
}

func tagStatus(err error, status int) error {
	switch status {
	case 429, 529:
		return wrap(ErrRateLimited, err)
	case 401, 403:
		return wrap(ErrUnauthorized, err)
	case 408, 504:
		return wrap(ErrTimedOut, err)
	default:
		return err
	}
}

func wrap(tag, err error) error {
	return &taggedError{tag: tag, err: err}
}

type taggedError struct {
	tag error
	err error
}

func (e *taggedError) Error() string {
	return e.tag.Error() + ": " + e.err.Error()
}

func (e *taggedError) Unwrap() []error {
	return []error{e.tag, e.err}
}
