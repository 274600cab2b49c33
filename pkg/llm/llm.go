// Package llm provides LLM text generation with a Gemini implementation.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sethvargo/go-retry"
	"google.golang.org/api/option"
)

// ErrEmptyResponse indicates the model returned no usable text content.
var ErrEmptyResponse = errors.New("model returned empty response")

// Client generates text from a system instruction and user prompt.
type Client interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
	Close() error
}

type gemini struct {
	client *genai.Client
	cfg    Config
	policy RetryPolicy
	logger *slog.Logger
}

// New creates a Gemini client from the given configuration. Transient call
// failures are retried per policy; permanent failures surface immediately.
func New(ctx context.Context, cfg *Config, policy RetryPolicy, logger *slog.Logger) (Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey()))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &gemini{
		client: client,
		cfg:    *cfg,
		policy: policy,
		logger: logger.With("system", "llm"),
	}, nil
}

func (g *gemini) Generate(ctx context.Context, system, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.cfg.Model)
	model.SetTemperature(float32(g.cfg.Temperature))
	model.SetMaxOutputTokens(g.cfg.MaxOutputTokens)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	var out string
	backoff := retry.NewExponential(g.policy.Backoff)

	err := retry.Do(ctx, retry.WithMaxRetries(g.policy.MaxRetries, backoff), func(ctx context.Context) error {
		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			if Transient(err) {
				g.logger.Warn("transient model failure, retrying", "model", g.cfg.Model, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}

		text, err := responseText(resp)
		if err != nil {
			return err
		}

		out = text
		return nil
	})

	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return out, nil
}

func (g *gemini) Close() error {
	return g.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}

	return sb.String(), nil
}
