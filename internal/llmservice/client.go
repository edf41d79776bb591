package llmservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"quizify/internal/config"
	"quizify/internal/models"
)

// Generator sends one prompt and returns the model's completion.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client is a Generator backed by a langchaingo model.
type Client struct {
	llm         llms.Model
	model       string
	temperature float64
	timeout     time.Duration
}

// NewClient builds the model for llmConfig. The credential is checked here so
// a missing key fails before any request is made.
func NewClient(llmConfig *config.LLMConfig) (*Client, error) {
	if llmConfig == nil {
		return nil, fmt.Errorf("%w: llm config is required", models.ErrConfiguration)
	}
	if err := llmConfig.Validate(); err != nil {
		return nil, err
	}

	var (
		llm llms.Model
		err error
	)
	switch llmConfig.Provider {
	case config.ProviderOllama:
		llm, err = ollama.New(
			ollama.WithServerURL(llmConfig.BaseURL),
			ollama.WithModel(llmConfig.Model),
		)
	default:
		opts := []openai.Option{
			openai.WithToken(strings.TrimPrefix(llmConfig.Key, "Bearer ")),
			openai.WithModel(llmConfig.Model),
		}
		if llmConfig.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(llmConfig.BaseURL))
		}
		llm, err = openai.New(opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: init %s client: %v", models.ErrConfiguration, llmConfig.Provider, err)
	}

	log.Debug().
		Str("provider", llmConfig.Provider).
		Str("base_url", llmConfig.BaseURL).
		Str("model", llmConfig.Model).
		Msg("LLM client ready")

	return NewClientWithModel(llm, llmConfig), nil
}

// NewClientWithModel wraps an already constructed model.
func NewClientWithModel(llm llms.Model, llmConfig *config.LLMConfig) *Client {
	return &Client{
		llm:         llm,
		model:       llmConfig.Model,
		temperature: llmConfig.Temperature,
		timeout:     llmConfig.Timeout,
	}
}

// Generate issues a single request. It does not stream or retry.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, llms.WithTemperature(c.temperature))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", models.ErrExternalService, c.model, err)
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%w: %s returned an empty completion", models.ErrExternalService, c.model)
	}

	log.Debug().
		Str("model", c.model).
		Int("prompt_len", len(prompt)).
		Int("response_len", len(out)).
		Dur("latency", time.Since(start)).
		Msg("Generated content")
	return out, nil
}
