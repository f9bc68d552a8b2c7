package gateway

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type anthropicGateway struct {
	client    anthropic.Client
	logger    *slog.Logger
	maxTokens int64
	timeout   time.Duration
}

func newAnthropic(cfg *Config, logger *slog.Logger) *anthropicGateway {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &anthropicGateway{
		client:    anthropic.NewClient(opts...),
		logger:    logger,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.TimeoutDuration(),
	}
}

func (g *anthropicGateway) Complete(ctx context.Context, model, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	message, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", tagAnthropicError(err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	g.logger.Debug(
		"completion",
		"model", model,
		"input_tokens", message.Usage.InputTokens,
		"output_tokens", message.Usage.OutputTokens,
	)

	return strings.TrimSpace(text.String()), nil
}

func tagAnthropicError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return wrap(ErrTimedOut, err)
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return tagStatus(err, apiErr.StatusCode)
	}

	return err
}
