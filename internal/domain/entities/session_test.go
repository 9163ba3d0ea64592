package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionMarkAnswered(t *testing.T) {
	s := NewSession("id", []int{4, 0, 2}, false, time.Now())

	s.MarkAnswered(2)
	s.MarkAnswered(0)
	s.MarkAnswered(2)

	assert.Equal(t, []int{0, 2}, s.AnsweredQuestions)
	assert.True(t, s.IsAnswered(0))
	assert.False(t, s.IsAnswered(1))
	assert.Equal(t, 2, s.AnsweredCount())
}

func TestSessionIsLast(t *testing.T) {
	s := NewSession("id", []int{1, 0}, true, time.Now())
	assert.False(t, s.IsLast())
	assert.Equal(t, "test", s.Mode())

	s.CurrentQuestionIndex = 1
	assert.True(t, s.IsLast())
}
