package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("", ""))
	assert.Equal(t, 3, levenshteinDistance("", "abc"))
	assert.Equal(t, 1, levenshteinDistance("deadlock", "dead lock"))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
	assert.Equal(t, 1, levenshteinDistance("привет", "привет!"))
}

func TestIsNearMiss(t *testing.T) {
	v := NewAnswerValidator()
	free := entities.Question{Question: "q", Answers: []string{}, Correct: "goroutine"}
	choice := entities.Question{Question: "q", Answers: []string{"True", "False"}, Correct: "True"}

	assert.True(t, v.IsNearMiss(free, "gorutine"))
	assert.False(t, v.IsNearMiss(free, "GOROUTINE"), "correct answers are not near misses")
	assert.False(t, v.IsNearMiss(free, "thread"))
	assert.False(t, v.IsNearMiss(free, "   "))
	assert.False(t, v.IsNearMiss(choice, "true"), "choices never get near-miss hints")
}
