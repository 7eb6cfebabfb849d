// Package llm provides the summarizer collaborator: chat-completion clients
// for the supported providers, the prompts submitted per call, and the
// parsing that turns free-form model output back into structured results.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/codescout/codescout/internal/config"
)

// Common errors.
var (
	ErrProviderFailed = errors.New("summarizer provider failed")
	ErrEmptyResponse  = errors.New("summarizer returned an empty response")
)

// Summarizer is the external text-in/text-out oracle. Implementations may
// fail with transport or rate-limit errors and may return malformed output;
// neither is interpreted here.
type Summarizer interface {
	// Complete sends one instruction/payload pair and returns the raw
	// response text.
	Complete(ctx context.Context, system, user string) (string, error)

	// Provider returns the provider name.
	Provider() string

	// Model returns the model name in use.
	Model() string
}

// New creates the Summarizer selected by the configuration. The config is
// assumed to be validated; an unknown provider here is a programming error.
func New(cfg config.Config) (Summarizer, error) {
	switch cfg.Provider {
	case config.ProviderGitHub:
		return newOpenAIClient(cfg.Provider, cfg.GitHubToken, cfg.GitHubModel, githubModelsBaseURL, cfg.MaxOutputTokens), nil
	case config.ProviderOpenAI:
		return newOpenAIClient(cfg.Provider, cfg.OpenAIAPIKey, cfg.OpenAIModel, "", cfg.MaxOutputTokens), nil
	case config.ProviderAnthropic:
		return newAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.MaxOutputTokens), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", config.ErrInvalidProvider, cfg.Provider)
	}
}
