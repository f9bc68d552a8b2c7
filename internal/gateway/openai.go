package gateway

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openaiGateway struct {
	client    openai.Client
	logger    *slog.Logger
	maxTokens int64
	timeout   time.Duration
}

func newOpenAI(cfg *Config, logger *slog.Logger) *openaiGateway {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &openaiGateway{
		client:    openai.NewClient(opts...),
		logger:    logger,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.TimeoutDuration(),
	}
}

func (g *openaiGateway) Complete(ctx context.Context, model, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: openai.Int(g.maxTokens),
	})
	if err != nil {
		return "", tagOpenAIError(err)
	}

	if len(completion.Choices) == 0 {
		return "", nil
	}

	g.logger.Debug(
		"completion",
		"model", model,
		"prompt_tokens", completion.Usage.PromptTokens,
		"completion_tokens", completion.Usage.CompletionTokens,
	)

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

func tagOpenAIError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return wrap(ErrTimedOut, err)
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return tagStatus(err, apiErr.StatusCode)
	}

	return err
}
