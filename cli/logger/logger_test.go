package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&Options{LogLevel: "warn", LogFormat: "text"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestNewFallbacks(t *testing.T) {
	var buf bytes.Buffer
	options := &Options{LogLevel: "loud", LogFormat: "yaml"}
	logger := newLogger(options, &buf)
	require.NotNil(t, logger)
	assert.Empty(t, options.LogLevel)
	assert.Equal(t, "text", options.LogFormat)
	assert.Contains(t, buf.String(), "could not parse logger level")
	assert.Contains(t, buf.String(), "could not parse logger format")
}

func TestNewJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")
	logger := newLogger(&Options{LogLevel: "debug", LogFile: path, LogFormat: "json"}, nil)
	logger.Debug("written", "n", 1)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(b, &entry))
	assert.Equal(t, "written", entry["msg"])
	assert.Equal(t, "DEBUG", entry["level"])
}

func TestNewDevNull(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&Options{LogLevel: "debug", LogFile: os.DevNull}, &buf)
	logger.Error("dropped")
	assert.Empty(t, buf.String())
}
