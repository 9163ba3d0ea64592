package service

import (
	"strings"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

// AnswerValidator checks submitted answers against a question.
type AnswerValidator struct {
	nearMissThreshold float64 // similarity (0.0 - 1.0) from which a wrong free-text answer counts as a near miss
}

// NewAnswerValidator creates a new AnswerValidator.
func NewAnswerValidator() *AnswerValidator {
	return &AnswerValidator{
		nearMissThreshold: 0.75,
	}
}

// Validate reports whether the answer is correct.
// Free-text answers are compared case-insensitively, choices exactly.
func (v *AnswerValidator) Validate(q entities.Question, answer string) bool {
	return q.IsCorrect(answer)
}

// IsNearMiss reports whether a wrong free-text answer is close to the
// correct one. It only drives feedback and never changes scoring.
func (v *AnswerValidator) IsNearMiss(q entities.Question, answer string) bool {
	if !q.IsFreeText() || v.Validate(q, answer) {
		return false
	}

	user := v.normalize(answer)
	correct := v.normalize(q.Correct)
	if user == "" {
		return false
	}

	return v.similarity(user, correct) >= v.nearMissThreshold
}

// normalize lowercases and collapses whitespace.
func (v *AnswerValidator) normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// similarity calculates the similarity between two strings using Levenshtein distance.
func (v *AnswerValidator) similarity(s1, s2 string) float64 {
	distance := levenshteinDistance(s1, s2)
	maxLen := max(len([]rune(s1)), len([]rune(s2)))

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/float64(maxLen)
}

// levenshteinDistance calculates the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	cols := len(r2) + 1

	// Two rows instead of the full matrix.
	prev := make([]int, cols)
	curr := make([]int, cols)

	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i

		for j := 1; j < cols; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			curr[j] = min(
				curr[j-1]+1,    // insertion
				prev[j]+1,      // deletion
				prev[j-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[cols-1]
}
