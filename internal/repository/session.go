package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

var (
	ErrStorage         = errors.New("session storage failure")
	ErrSessionsMissing = errors.New("no saved sessions")
)

// SessionFileRepository persists the session list as a single JSON blob.
type SessionFileRepository struct {
	path string
}

// NewSessionFileRepository creates a new SessionFileRepository.
func NewSessionFileRepository(path string) *SessionFileRepository {
	return &SessionFileRepository{path: path}
}

// Load reads the stored session list.
// A missing file yields ErrSessionsMissing, anything unreadable ErrStorage.
func (r *SessionFileRepository) Load(_ context.Context) (*entities.SessionList, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrSessionsMissing
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrStorage, r.path, err)
	}

	var list entities.SessionList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrStorage, r.path, err)
	}

	return &list, nil
}

// Save overwrites the stored session list.
// The blob is written to a temporary file and renamed into place.
func (r *SessionFileRepository) Save(_ context.Context, list *entities.SessionList) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrStorage, err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrStorage, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrStorage, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write: %w", ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrStorage, err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("%w: rename: %w", ErrStorage, err)
	}

	return nil
}
