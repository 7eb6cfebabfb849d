// Package config loads and validates the process configuration from the
// environment. The resulting Config is an immutable value passed by parameter
// into the pipeline; nothing below this package reads ambient process state.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported summarizer providers.
const (
	ProviderGitHub    = "github"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Defaults mirror the common case of analyzing a medium-sized repository
// with an OpenAI-compatible model.
const (
	DefaultGitHubModel    = "gpt-4o-mini"
	DefaultOpenAIModel    = "gpt-4-turbo-preview"
	DefaultAnthropicModel = "claude-3-sonnet-20240229"

	DefaultMaxTokensPerChunk = 6000
	DefaultMaxOutputTokens   = 2000
	DefaultRequestTimeout    = 120 * time.Second
	DefaultWorkers           = 1
)

var (
	// ErrInvalidProvider is returned for an unknown LLM_PROVIDER value.
	ErrInvalidProvider = errors.New("unsupported LLM provider")
	// ErrMissingCredential is returned when the selected provider has no
	// API key or token configured.
	ErrMissingCredential = errors.New("missing provider credential")
	// ErrInvalidBudget is returned for a non-positive token budget.
	ErrInvalidBudget = errors.New("token budget must be positive")
)

// Config holds all settings for a run. Validated once at startup; invalid
// configuration aborts the process before any document is read.
type Config struct {
	// Provider selection and credentials.
	Provider        string
	GitHubToken     string
	GitHubModel     string
	OpenAIAPIKey    string
	OpenAIModel     string
	AnthropicAPIKey string
	AnthropicModel  string

	// Repository source.
	RepoURL       string
	RepoLocalPath string

	// Token limits.
	MaxTokensPerChunk int
	MaxOutputTokens   int

	// File selection.
	IncludeExtensions []string
	ExcludeDirs       []string

	// Output.
	OutputDir string

	// Execution.
	Workers        int
	RequestTimeout time.Duration
}

// FromEnv builds a Config from environment variables, applying defaults for
// anything unset. The result is not yet validated; call Validate before use.
func FromEnv() Config {
	return Config{
		Provider:        getenv("LLM_PROVIDER", ProviderGitHub),
		GitHubToken:     os.Getenv("GITHUB_TOKEN"),
		GitHubModel:     getenv("GITHUB_MODEL", DefaultGitHubModel),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getenv("OPENAI_MODEL", DefaultOpenAIModel),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  getenv("ANTHROPIC_MODEL", DefaultAnthropicModel),

		RepoURL:       os.Getenv("REPO_URL"),
		RepoLocalPath: getenv("REPO_LOCAL_PATH", "./data/repo"),

		MaxTokensPerChunk: getenvInt("MAX_TOKENS_PER_CHUNK", DefaultMaxTokensPerChunk),
		MaxOutputTokens:   getenvInt("MAX_OUTPUT_TOKENS", DefaultMaxOutputTokens),

		IncludeExtensions: getenvList("INCLUDE_FILE_EXTENSIONS",
			[]string{".go", ".py", ".java", ".xml", ".properties", ".md"}),
		ExcludeDirs: getenvList("EXCLUDE_DIRECTORIES",
			[]string{".git", "target", "bin", ".idea", ".vscode", "node_modules", "vendor"}),

		OutputDir: getenv("OUTPUT_DIR", "./output"),

		Workers:        getenvInt("CHUNK_WORKERS", DefaultWorkers),
		RequestTimeout: time.Duration(getenvInt("LLM_TIMEOUT_SECONDS", int(DefaultRequestTimeout/time.Second))) * time.Second,
	}
}

// Validate checks the configuration. Any error here is a fatal startup error.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGitHub:
		if c.GitHubToken == "" {
			return fmt.Errorf("%w: GITHUB_TOKEN is required for the github provider", ErrMissingCredential)
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY is required for the openai provider", ErrMissingCredential)
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("%w: ANTHROPIC_API_KEY is required for the anthropic provider", ErrMissingCredential)
		}
	default:
		return fmt.Errorf("%w: %q (want github, openai, or anthropic)", ErrInvalidProvider, c.Provider)
	}

	if c.MaxTokensPerChunk <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBudget, c.MaxTokensPerChunk)
	}
	if c.MaxOutputTokens <= 0 {
		return fmt.Errorf("MAX_OUTPUT_TOKENS must be positive, got %d", c.MaxOutputTokens)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("CHUNK_WORKERS must be positive, got %d", c.Workers)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT_SECONDS must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// Model returns the model name for the configured provider.
func (c Config) Model() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIModel
	case ProviderAnthropic:
		return c.AnthropicModel
	default:
		return c.GitHubModel
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
