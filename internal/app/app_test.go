package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/config"
	"github.com/aliskhannn/quiz-trainer/internal/repository"
)

func testConfig(t *testing.T, bank string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(bank), 0o644))

	return &config.Config{
		Questions: config.Questions{Source: config.SourceFile, Path: path},
		Sessions:  config.Sessions{Path: filepath.Join(dir, "sessions.json"), MaxSessions: 5},
	}
}

func TestNew(t *testing.T) {
	cfg := testConfig(t, `[{"question": "q", "answers": ["a", "b"], "correct": "a"}]`)

	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, 1, a.Engine.BankSize())
	assert.Empty(t, a.Sessions.List())
}

func TestNewFailsOnBadBank(t *testing.T) {
	cfg := testConfig(t, `not json`)

	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, repository.ErrQuestionsLoad)
}
