package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type QuizEngine interface {
	BankSize() int
	CreateSession(count int, isTest bool) (*entities.Session, error)
	Resume(session *entities.Session) (*entities.QuizState, error)
	CurrentQuestion(session *entities.Session) (entities.Question, error)
	SubmitAnswer(st *entities.QuizState, answer string) (entities.ScoredResult, error)
	Advance(st *entities.QuizState)
	Retreat(st *entities.QuizState)
}

type SessionStore interface {
	Add(ctx context.Context, session *entities.Session) error
	Delete(ctx context.Context, id string) error
	Get(id string) (*entities.Session, error)
	Current() (*entities.Session, bool)
	SetCurrent(ctx context.Context, id string) error
	SaveAll(ctx context.Context) error
	List() []*entities.Session
}
