package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/quiz-trainer/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "quiz.log")
	cfg := &config.Config{Env: "production", Log: config.Log{File: path}}

	log, err := New(cfg)
	require.NoError(t, err)

	log.Info("session saved")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session saved")
}

func TestNewDevelopment(t *testing.T) {
	log, err := New(&config.Config{Env: "local"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(-1)) // debug level
}
