package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "no-such.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "workspace.db", cfg.Server.DBPath)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, 0.5, cfg.Orchestration.ConfidenceThreshold)
	assert.Equal(t, 10, cfg.Orchestration.ListLimit)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  addr: \":9090\"\norchestration:\n  list_limit: 25\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 25, cfg.Orchestration.ListLimit)
	assert.Equal(t, "workspace.db", cfg.Server.DBPath)
	assert.Equal(t, 0.5, cfg.Orchestration.ConfidenceThreshold)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not: valid"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	in := defaultAppConfig()
	in.Server.Addr = ":7070"
	in.AI.Model = "gemini-2.0-pro"
	require.NoError(t, SaveConfig(path, in))

	out, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", out.Server.Addr)
	assert.Equal(t, "gemini-2.0-pro", out.AI.Model)
	assert.Equal(t, 10, out.Orchestration.HistoryLimit)
}
