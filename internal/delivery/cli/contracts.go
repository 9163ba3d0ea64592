package cli

import (
	"context"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

type QuizEngine interface {
	BankSize() int
	CreateSession(count int, isTest bool) (*entities.Session, error)
	Resume(session *entities.Session) (*entities.QuizState, error)
	CurrentQuestion(session *entities.Session) (entities.Question, error)
	SubmitAnswer(st *entities.QuizState, answer string) (entities.ScoredResult, error)
	Advance(st *entities.QuizState)
	Retreat(st *entities.QuizState)
	JumpTo(st *entities.QuizState, position int) (entities.Question, error)
	ReturnToProgress(st *entities.QuizState) int
}

type SessionStore interface {
	Current() (*entities.Session, bool)
	Add(ctx context.Context, session *entities.Session) error
	SaveAll(ctx context.Context) error
}
