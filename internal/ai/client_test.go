package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvModel, "")
	t.Setenv(EnvProvider, "")

	cfg := ConfigFromEnv()
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultProvider, cfg.Provider)
	assert.False(t, cfg.Configured())

	t.Setenv(EnvAPIKey, "sk-test")
	t.Setenv(EnvProvider, "openai")
	t.Setenv(EnvModel, "gpt-4o-mini")

	cfg = ConfigFromEnv()
	assert.True(t, cfg.Configured())
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewClient(Config{Provider: "cohere", Model: "m", APIKey: "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported llm provider")

	for _, provider := range []string{"gemini", "anthropic", "openai"} {
		c, err := NewClient(Config{Provider: provider, Model: "m", APIKey: "k"})
		require.NoError(t, err, provider)
		assert.NotNil(t, c, provider)
	}
}

func TestIsQuotaError(t *testing.T) {
	assert.False(t, IsQuotaError(nil))
	assert.False(t, IsQuotaError(errors.New("connection refused")))
	assert.True(t, IsQuotaError(errors.New("429 Too Many Requests")))
	assert.True(t, IsQuotaError(errors.New("Quota exceeded for quota metric")))
	assert.True(t, IsQuotaError(errors.New("rate limit reached")))
}
