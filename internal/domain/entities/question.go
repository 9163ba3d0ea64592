// Package entities contains domain entities used across the application.
package entities

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrEmptyQuestionText  = errors.New("question text is empty")
	ErrEmptyCorrectAnswer = errors.New("correct answer is empty")
	ErrCorrectNotInChoice = errors.New("correct answer is not one of the choices")
)

// Question is a single entry of the question bank.
// A question with no answers is a free-text question.
type Question struct {
	Question string   `json:"question"` // question text
	Answers  []string `json:"answers"`  // choices, empty for free-text questions
	Correct  string   `json:"correct"`  // the correct answer
}

// IsFreeText reports whether the question has no fixed choices.
func (q Question) IsFreeText() bool {
	return len(q.Answers) == 0
}

// Validate checks the question invariants.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return ErrEmptyQuestionText
	}
	if strings.TrimSpace(q.Correct) == "" {
		return ErrEmptyCorrectAnswer
	}
	if !q.IsFreeText() && !slices.Contains(q.Answers, q.Correct) {
		return fmt.Errorf("%w: %q", ErrCorrectNotInChoice, q.Correct)
	}
	return nil
}

// IsCorrect evaluates an answer. Free-text answers are compared
// case-insensitively, choices must match exactly.
func (q Question) IsCorrect(answer string) bool {
	if q.IsFreeText() {
		return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.Correct))
	}
	return answer == q.Correct
}
