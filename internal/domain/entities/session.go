package entities

import (
	"slices"
	"time"
)

// Session represents one quiz attempt.
// It holds a fixed, randomly ordered subset of the bank plus progress.
type Session struct {
	ID                   string    `json:"id"`                   // unique session ID, time-ordered
	Timestamp            time.Time `json:"timestamp"`            // creation time
	TotalQuestions       int       `json:"totalQuestions"`       // number of questions selected
	QuestionIDs          []int     `json:"questionIds"`          // bank indices in quiz order
	CurrentQuestionIndex int       `json:"currentQuestionIndex"` // pointer into QuestionIDs
	Score                int       `json:"score"`                // correctly answered positions
	IsTest               bool      `json:"isTest"`               // test or practice mode
	AnsweredQuestions    []int     `json:"answeredQuestions"`    // positions already scored
	Completed            bool      `json:"completed"`            // set when advanced past the last question
}

// NewSession creates a session over the given bank indices.
func NewSession(id string, questionIDs []int, isTest bool, now time.Time) *Session {
	return &Session{
		ID:                id,
		Timestamp:         now,
		TotalQuestions:    len(questionIDs),
		QuestionIDs:       questionIDs,
		IsTest:            isTest,
		AnsweredQuestions: []int{},
	}
}

// IsAnswered reports whether the position has already been scored.
func (s *Session) IsAnswered(position int) bool {
	return slices.Contains(s.AnsweredQuestions, position)
}

// MarkAnswered records a scored position, keeping the set sorted.
func (s *Session) MarkAnswered(position int) {
	i, found := slices.BinarySearch(s.AnsweredQuestions, position)
	if found {
		return
	}
	s.AnsweredQuestions = slices.Insert(s.AnsweredQuestions, i, position)
}

// AnsweredCount returns the number of scored positions.
func (s *Session) AnsweredCount() int {
	return len(s.AnsweredQuestions)
}

// IsLast reports whether the pointer is at the last position.
func (s *Session) IsLast() bool {
	return s.CurrentQuestionIndex+1 >= s.TotalQuestions
}

// Mode returns a human readable mode name.
func (s *Session) Mode() string {
	if s.IsTest {
		return "test"
	}
	return "practice"
}

// SessionList is the persisted form of the session store.
type SessionList struct {
	Sessions         []*Session `json:"sessions"`
	CurrentSessionID string     `json:"currentSessionId,omitempty"`
}
