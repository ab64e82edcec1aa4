package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ServerConfig holds HTTP listener and database settings.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `mapstructure:"addr" yaml:"addr"`

	// DBPath is the SQLite database file path.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// AIConfig holds settings for the text-completion provider. The API key
// is never stored here; it is read from the LLM_API_KEY environment
// variable at startup.
type AIConfig struct {
	Provider  string `mapstructure:"provider" yaml:"provider"`
	Model     string `mapstructure:"model" yaml:"model"`
	MaxTokens int    `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// OrchestrationConfig holds the orchestration pipeline tunables.
type OrchestrationConfig struct {
	// ConfidenceThreshold is the minimum intent-classification
	// confidence required before the LLM interpretation is trusted over
	// keyword matching.
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold" yaml:"confidence_threshold"`

	// ListLimit caps how many items list operations render before
	// truncating with an "and N more" suffix.
	ListLimit int `mapstructure:"list_limit" yaml:"list_limit"`

	// HistoryLimit caps the number of conversation turns retained per
	// workspace+user conversation.
	HistoryLimit int `mapstructure:"history_limit" yaml:"history_limit"`

	// ContextHistory is how many recent turns are embedded into LLM
	// prompts as conversational context.
	ContextHistory int `mapstructure:"context_history" yaml:"context_history"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Server        ServerConfig        `mapstructure:"server" yaml:"server"`
	AI            AIConfig            `mapstructure:"ai" yaml:"ai"`
	Orchestration OrchestrationConfig `mapstructure:"orchestration" yaml:"orchestration"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/workspace-management/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "workspace-management", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Addr:   ":8080",
			DBPath: "workspace.db",
		},
		AI: AIConfig{
			Provider:  "gemini",
			Model:     "gemini-2.0-flash",
			MaxTokens: 1024,
		},
		Orchestration: OrchestrationConfig{
			ConfidenceThreshold: 0.5,
			ListLimit:           10,
			HistoryLimit:        10,
			ContextHistory:      5,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.db_path", "workspace.db")
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.max_tokens", 1024)
	v.SetDefault("orchestration.confidence_threshold", 0.5)
	v.SetDefault("orchestration.list_limit", 10)
	v.SetDefault("orchestration.history_limit", 10)
	v.SetDefault("orchestration.context_history", 5)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("server", cfg.Server)
	v.Set("ai", cfg.AI)
	v.Set("orchestration", cfg.Orchestration)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
