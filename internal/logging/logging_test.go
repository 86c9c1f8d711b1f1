package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "snake", log.InfoLevel)

	logger.Debug("hidden")
	logger.Info("shown", "score", 3)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "score=3")
	assert.Contains(t, buf.String(), "snake")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.log")

	logger, closeFn, err := NewFile(path, "game", log.DebugLevel)
	require.NoError(t, err)
	logger.Debug("snake reset", "cause", "wall")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cause=wall")
}

func TestNewFile_Empty(t *testing.T) {
	logger, closeFn, err := NewFile("", "game", log.InfoLevel)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.NoError(t, closeFn())
}

func TestNewFile_BadPath(t *testing.T) {
	_, _, err := NewFile(filepath.Join(t.TempDir(), "missing", "x.log"), "game", log.InfoLevel)
	assert.Error(t, err)
}
