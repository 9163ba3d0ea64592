package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

func TestSessionFileRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "sessions.json")
	repo := NewSessionFileRepository(path)

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, ErrSessionsMissing)

	s := entities.NewSession("s1", []int{2, 0, 1}, true, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	s.MarkAnswered(0)
	s.Score = 1
	s.CurrentQuestionIndex = 1

	require.NoError(t, repo.Save(ctx, &entities.SessionList{
		Sessions:         []*entities.Session{s},
		CurrentSessionID: "s1",
	}))

	list, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, list.Sessions, 1)
	assert.Equal(t, "s1", list.CurrentSessionID)
	assert.Equal(t, s, list.Sessions[0])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestSessionFileRepositoryCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewSessionFileRepository(path).Load(context.Background())
	assert.ErrorIs(t, err, ErrStorage)
}

func TestSessionFileRepositoryFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	repo := NewSessionFileRepository(path)

	s := entities.NewSession("s1", []int{0}, false, time.Now())
	require.NoError(t, repo.Save(context.Background(), &entities.SessionList{Sessions: []*entities.Session{s}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, field := range []string{
		`"totalQuestions"`, `"questionIds"`, `"currentQuestionIndex"`,
		`"answeredQuestions"`, `"isTest"`, `"completed"`,
	} {
		assert.Contains(t, string(data), field)
	}
}
