package iologger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/orenza/orenzadb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "debug", Destination: "file"}

	logger, err := Init(dir, cfg, false)
	require.NoError(t, err)
	logger.Info("parsed", "source", "kegg")

	content, err := os.ReadFile(filepath.Join(dir, "orenzadb.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"source":"kegg"`)

	_, err = Init(dir, cfg, true)
	require.NoError(t, err)
	slog.Info("appended")
	content, err = os.ReadFile(filepath.Join(dir, "orenzadb.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "parsed")
	assert.Contains(t, string(content), "appended")
}

func TestInitBadDir(t *testing.T) {
	cfg := config.LogConfig{Format: "text", Level: "info", Destination: "file"}
	_, err := Init(filepath.Join(t.TempDir(), "missing"), cfg, false)
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("trace"))
}
