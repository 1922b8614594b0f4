package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIOptions configure the OpenAI-compatible provider. The default base
// URL targets OpenRouter, which exposes the same chat completions API.
type OpenAIOptions struct {
	Model       string
	BaseURL     string
	MaxTokens   int64
	Temperature float64
}

// OpenAIProvider wraps the OpenAI chat completions API (or any compatible
// endpoint such as OpenRouter) behind the Provider interface.
type OpenAIProvider struct {
	client openai.Client
	opts   OpenAIOptions
}

// NewOpenAIProvider creates a provider authenticated with apiKey.
func NewOpenAIProvider(apiKey string, optFns ...func(o *OpenAIOptions)) *OpenAIProvider {
	opts := OpenAIOptions{
		Model:       "openai/gpt-4o",
		BaseURL:     "https://openrouter.ai/api/v1",
		MaxTokens:   500,
		Temperature: 0.7,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(opts.BaseURL),
	)
	return &OpenAIProvider{client: client, opts: opts}
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string { return "openrouter" }

// Generate sends a single-turn user message and returns the completion text.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.opts.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(p.opts.MaxTokens),
		Temperature: openai.Float(p.opts.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
