package logger

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Console(t *testing.T) {
	l, w, err := New(Settings{Level: LevelInfo})
	require.NoError(t, err)
	assert.NotNil(t, l)
	assert.NotNil(t, w)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, _, err := New(Settings{Level: LevelDebug, FilePath: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	require.NoError(t, err)
	l.Info("hello")
	assert.FileExists(t, path)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(Settings{Level: "loud"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}
