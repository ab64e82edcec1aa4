// Package ai provides the outbound text-completion client used by the
// orchestration pipeline. The provider, model, and API key come from the
// process environment; a missing key is a normal condition that callers
// handle by falling back to deterministic keyword handling.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Environment variables consulted by ConfigFromEnv.
const (
	EnvAPIKey   = "LLM_API_KEY"
	EnvModel    = "LLM_MODEL"
	EnvProvider = "LLM_PROVIDER"
)

// Defaults applied when the model/provider variables are unset.
const (
	DefaultModel    = "gemini-2.0-flash"
	DefaultProvider = "gemini"

	defaultMaxTokens = 1024
)

// ErrNotConfigured indicates the completion provider is missing its API
// key, model, or provider name. It is never fatal; callers short-circuit
// to keyword-based handling.
var ErrNotConfigured = errors.New("llm provider not configured")

// Client is the contract between the orchestration pipeline and a
// text-completion provider: one prompt in, generated text or an error out.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config describes a completion provider.
type Config struct {
	Provider  string
	Model     string
	APIKey    string
	MaxTokens int
}

// ConfigFromEnv reads provider configuration from the environment,
// applying defaults for model and provider. The API key has no default.
func ConfigFromEnv() Config {
	cfg := Config{
		APIKey:    os.Getenv(EnvAPIKey),
		Model:     os.Getenv(EnvModel),
		Provider:  os.Getenv(EnvProvider),
		MaxTokens: defaultMaxTokens,
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}
	return cfg
}

// Configured reports whether all three provider settings are present.
func (c Config) Configured() bool {
	return c.APIKey != "" && c.Model != "" && c.Provider != ""
}

// NewClient builds a completion client for the configured provider.
// Returns ErrNotConfigured when the configuration is incomplete and an
// error for unsupported provider names.
func NewClient(cfg Config) (Client, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}

	httpClient := &http.Client{}

	switch cfg.Provider {
	case "gemini":
		return &geminiClient{cfg: cfg, client: httpClient}, nil
	case "anthropic":
		return &anthropicClient{cfg: cfg, client: httpClient}, nil
	case "openai":
		return &openaiClient{cfg: cfg, client: httpClient}, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

// IsQuotaError reports whether the error looks like a provider quota or
// rate-limit rejection, which warrants distinct user-facing guidance.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") ||
		strings.Contains(msg, "exceeded") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "429")
}
