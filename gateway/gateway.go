// Package gateway sends prompts to remote text-generation providers with
// ordered fallback. Invoke is total: it always returns non-empty text
// within the given timeout, degrading to a locally computed response when
// every provider fails or none is configured.
package gateway

import (
	"context"
	"strings"
	"time"

	"github.com/Ishan11032005GitHub/career-navigator-backend/logging"
)

// MaxPromptLen is the maximum prompt length transmitted to a provider.
// Longer prompts are cut and marked so the model knows content is missing.
const MaxPromptLen = 4000

const truncationMarker = "... [truncated]"

// Provider generates text for a prompt. Implementations wrap one remote
// API each; the gateway iterates them in order and treats any error or
// empty output as "try the next one".
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Options configure a Gateway.
type Options struct {
	Logger logging.Logger
}

// Gateway iterates an ordered provider chain and falls back to a
// deterministic local responder. Safe for concurrent use.
type Gateway struct {
	providers []Provider
	logger    logging.Logger
}

// New constructs a Gateway over the given providers. A nil or empty
// provider list is valid; Invoke then answers from the local responder
// only, which keeps the system usable without credentials or network.
func New(providers []Provider, optFns ...func(o *Options)) *Gateway {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Gateway{providers: providers, logger: opts.Logger}
}

// Truncate enforces MaxPromptLen, appending a marker when the prompt was cut.
func Truncate(prompt string) string {
	if len(prompt) <= MaxPromptLen {
		return prompt
	}
	return prompt[:MaxPromptLen] + truncationMarker
}

// Invoke sends the prompt to each provider in order under the given
// per-call timeout. Transport errors, non-success statuses and empty
// responses all downgrade to the next provider; no provider is tried more
// than once per call. When the chain is exhausted the local responder
// supplies the reply, so Invoke never returns an empty string.
func (g *Gateway) Invoke(ctx context.Context, prompt string, timeout time.Duration) string {
	prompt = Truncate(prompt)

	for _, p := range g.providers {
		start := time.Now()
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		text, err := p.Generate(callCtx, prompt)
		cancel()
		if err != nil {
			g.logger.Warn("llm provider failed", "provider", p.Name(), "error", err)
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			g.logger.Warn("llm provider returned empty response", "provider", p.Name())
			continue
		}
		g.logger.Info("llm provider responded", "provider", p.Name(), "duration", time.Since(start))
		return text
	}

	g.logger.Error("all llm providers failed, using local fallback")
	return FallbackResponse(prompt)
}
