package gateway_test

import (
	"context"
	"errors"
	"testing"

	"github.com/arbiterhq/arbiter/internal/gateway"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want gateway.Category
	}{
		{"rate limited", gateway.ErrRateLimited, gateway.CategoryRateLimited},
		{"unauthorized", gateway.ErrUnauthorized, gateway.CategoryUnauthorized},
		{"timed out", gateway.ErrTimedOut, gateway.CategoryTimedOut},
		{"deadline exceeded", context.DeadlineExceeded, gateway.CategoryTimedOut},
		{"untagged", errors.New("connection reset"), gateway.CategoryOther},
		{"nil-safe other", errors.New(""), gateway.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gateway.Classify(tt.err); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyWrapped(t *testing.T) {
	wrapped := errors.Join(gateway.ErrRateLimited, errors.New("429 too many requests"))
	if got := gateway.Classify(wrapped); got != gateway.CategoryRateLimited {
		t.Errorf("got %q, want rate_limited", got)
	}
}

func TestHint(t *testing.T) {
	categories := []gateway.Category{
		gateway.CategoryRateLimited,
		gateway.CategoryUnauthorized,
		gateway.CategoryTimedOut,
		gateway.CategoryOther,
	}

	seen := make(map[string]struct{})
	for _, c := range categories {
		hint := gateway.Hint(c)
		if hint == "" {
			t.Errorf("empty hint for %q", c)
		}
		if _, dup := seen[hint]; dup {
			t.Errorf("duplicate hint for %q", c)
		}
		seen[hint] = struct{}{}
	}
}
