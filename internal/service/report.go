package service

import (
	"fmt"
	"math"
	"slices"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

// BuildSummary builds the end-of-session report.
func BuildSummary(st *entities.QuizState) entities.Summary {
	s := st.Session

	missed := slices.Clone(st.WrongAnswers)
	slices.SortStableFunc(missed, func(a, b entities.WrongAnswer) int {
		return a.Position - b.Position
	})

	return entities.Summary{
		Total:      s.TotalQuestions,
		Correct:    s.Score,
		Wrong:      s.TotalQuestions - s.Score,
		Percentage: percentage(s.Score, s.TotalQuestions),
		Missed:     missed,
	}
}

// FormatPercentage renders a percentage with one decimal place.
func FormatPercentage(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// HistorySummary aggregates all stored sessions.
type HistorySummary struct {
	Sessions   int
	Completed  int
	InProgress int
	Answered   int
	Correct    int
	Accuracy   float64 // correct / answered * 100
}

// BuildHistory aggregates progress over the given sessions.
func BuildHistory(sessions []*entities.Session) HistorySummary {
	var h HistorySummary
	for _, s := range sessions {
		h.Sessions++
		if s.Completed {
			h.Completed++
		} else {
			h.InProgress++
		}
		h.Answered += s.AnsweredCount()
		h.Correct += s.Score
	}
	h.Accuracy = percentage(h.Correct, h.Answered)
	return h
}

// percentage returns part/total*100 rounded to one decimal place.
func percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
