package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/config"
	"github.com/aliskhannn/quiz-trainer/internal/infra/postgres"
	"github.com/aliskhannn/quiz-trainer/internal/repository"
	"github.com/aliskhannn/quiz-trainer/internal/service"
)

// App wires the quiz engine and the session store for a front-end.
type App struct {
	Engine   *service.QuizEngine
	Sessions *service.SessionStore

	closers []func()
}

// New loads the question bank and the saved sessions.
// A bank that cannot be loaded is fatal; session storage problems are not.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{}

	source, err := a.questionSource(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Engine, err = service.LoadQuizEngine(ctx, repository.NewQuestionRepository(source), logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	logger.Info("question bank loaded",
		zap.String("source", cfg.Questions.Source),
		zap.Int("questions", a.Engine.BankSize()),
	)

	a.Sessions = service.NewSessionStore(
		repository.NewSessionFileRepository(cfg.Sessions.Path),
		logger,
		cfg.Sessions.MaxSessions,
	)
	a.Sessions.LoadAll(ctx)

	return a, nil
}

// Close releases resources opened by New.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) questionSource(ctx context.Context, cfg *config.Config) (repository.QuestionSource, error) {
	switch cfg.Questions.Source {
	case config.SourceHTTP:
		return repository.NewHTTPSource(cfg.Questions.URL, cfg.Questions.Timeout), nil

	case config.SourcePostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfigFrom(cfg.DB))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", repository.ErrQuestionsLoad, err)
		}
		a.closers = append(a.closers, pool.Close)
		return postgres.NewQuestionStore(pool), nil

	default:
		return repository.NewFileSource(cfg.Questions.Path), nil
	}
}
