package service

import (
	"context"
	"errors"
	"slices"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/repository"
)

var ErrSessionNotFound = errors.New("quiz session not found")

const defaultMaxSessions = 50

// SessionStore keeps the bounded list of quiz sessions and the current pointer.
// It is meant for a single user and is not safe for concurrent use.
type SessionStore struct {
	repo        SessionRepository
	logger      *zap.Logger
	maxSessions int

	sessions  []*entities.Session // oldest first
	currentID string
}

// NewSessionStore creates a new SessionStore keeping at most maxSessions sessions.
func NewSessionStore(repo SessionRepository, logger *zap.Logger, maxSessions int) *SessionStore {
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	return &SessionStore{
		repo:        repo,
		logger:      logger,
		maxSessions: maxSessions,
	}
}

// LoadAll reads the stored sessions. Missing or corrupt storage is treated
// as "no prior sessions"; malformed records are dropped.
func (s *SessionStore) LoadAll(ctx context.Context) ([]*entities.Session, string) {
	s.sessions = nil
	s.currentID = ""

	list, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrSessionsMissing):
		s.logger.Debug("no saved sessions")
		return nil, ""
	case err != nil:
		s.logger.Warn("failed to load sessions, starting empty", zap.Error(err))
		return nil, ""
	}

	for _, session := range list.Sessions {
		if !isWellFormed(session) {
			s.logger.Warn("dropping malformed session", zap.Any("session", session))
			continue
		}
		s.sessions = append(s.sessions, session)
	}

	if s.indexOf(list.CurrentSessionID) >= 0 {
		s.currentID = list.CurrentSessionID
	}

	s.logger.Debug("sessions loaded",
		zap.Int("count", len(s.sessions)),
		zap.String("current_session_id", s.currentID),
	)

	return s.List(), s.currentID
}

// SaveAll writes the full list and the current pointer.
// Failures are logged and returned; in-memory state is kept either way.
func (s *SessionStore) SaveAll(ctx context.Context) error {
	err := s.repo.Save(ctx, &entities.SessionList{
		Sessions:         s.sessions,
		CurrentSessionID: s.currentID,
	})
	if err != nil {
		s.logger.Error("failed to save sessions", zap.Error(err))
		return err
	}
	return nil
}

// Add appends a new session, makes it current and saves.
func (s *SessionStore) Add(ctx context.Context, session *entities.Session) error {
	s.sessions = append(s.sessions, session)
	s.currentID = session.ID
	s.trim()
	return s.SaveAll(ctx)
}

// Delete removes a session and clears the current pointer if it was selected.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrSessionNotFound
	}

	s.sessions = slices.Delete(s.sessions, i, i+1)
	if s.currentID == id {
		s.currentID = ""
	}

	return s.SaveAll(ctx)
}

// Get returns a session by id.
func (s *SessionStore) Get(id string) (*entities.Session, error) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrSessionNotFound
	}
	return s.sessions[i], nil
}

// Current returns the current session, if any.
func (s *SessionStore) Current() (*entities.Session, bool) {
	i := s.indexOf(s.currentID)
	if i < 0 {
		return nil, false
	}
	return s.sessions[i], true
}

// SetCurrent selects an existing session and saves.
func (s *SessionStore) SetCurrent(ctx context.Context, id string) error {
	if s.indexOf(id) < 0 {
		return ErrSessionNotFound
	}
	s.currentID = id
	return s.SaveAll(ctx)
}

// ClearCurrent unselects the current session and saves.
func (s *SessionStore) ClearCurrent(ctx context.Context) error {
	s.currentID = ""
	return s.SaveAll(ctx)
}

// List returns the sessions, newest first.
func (s *SessionStore) List() []*entities.Session {
	out := slices.Clone(s.sessions)
	slices.Reverse(out)
	return out
}

// trim drops sessions over the limit: completed ones first, oldest first.
// The current session is never dropped.
func (s *SessionStore) trim() {
	for len(s.sessions) > s.maxSessions {
		victim := -1
		for i, session := range s.sessions {
			if session.Completed && session.ID != s.currentID {
				victim = i
				break
			}
		}
		if victim < 0 {
			for i, session := range s.sessions {
				if session.ID != s.currentID {
					victim = i
					break
				}
			}
		}
		if victim < 0 {
			return
		}

		s.logger.Debug("dropping old session", zap.String("session_id", s.sessions[victim].ID))
		s.sessions = slices.Delete(s.sessions, victim, victim+1)
	}
}

func (s *SessionStore) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.sessions, func(session *entities.Session) bool {
		return session.ID == id
	})
}

// isWellFormed checks the structural session invariants.
func isWellFormed(s *entities.Session) bool {
	if s == nil || s.ID == "" || s.TotalQuestions <= 0 || len(s.QuestionIDs) != s.TotalQuestions {
		return false
	}
	if !s.Completed && (s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= s.TotalQuestions) {
		return false
	}

	seen := make(map[int]struct{}, len(s.QuestionIDs))
	for _, id := range s.QuestionIDs {
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
	}

	for _, p := range s.AnsweredQuestions {
		if p < 0 || p >= s.TotalQuestions {
			return false
		}
	}
	if s.AnsweredQuestions == nil {
		s.AnsweredQuestions = []int{}
	}
	slices.Sort(s.AnsweredQuestions)
	s.AnsweredQuestions = slices.Compact(s.AnsweredQuestions)

	return s.Score >= 0 && s.Score <= len(s.AnsweredQuestions)
}
