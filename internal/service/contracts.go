package service

import (
	"context"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

// QuestionLoader provides the question bank.
type QuestionLoader interface {
	Load(ctx context.Context) ([]entities.Question, error)
}

// SessionRepository persists the whole session list at once.
type SessionRepository interface {
	Load(ctx context.Context) (*entities.SessionList, error)
	Save(ctx context.Context, list *entities.SessionList) error
}
