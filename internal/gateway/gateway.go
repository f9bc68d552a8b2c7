// Package gateway adapts external LLM providers behind a single text-completion
// interface. Provider failures are translated into tagged errors so callers can
// classify them without inspecting provider-specific messages.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
)

// System is the text-completion contract consumed by the evaluation run.
// Complete sends prompt to model as a single user message and returns the
// trimmed response text.
type System interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// New creates a gateway system for the configured provider.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "gateway", "provider", cfg.Provider)

	switch cfg.Provider {
	case ProviderAnthropic:
		return newAnthropic(cfg, logger), nil
	case ProviderOpenAI:
		return newOpenAI(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unsupported gateway provider: %q", cfg.Provider)
	}
}
