package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/config"
	"github.com/aliskhannn/quiz-trainer/internal/infra/postgres"
	"github.com/aliskhannn/quiz-trainer/internal/logger"
	"github.com/aliskhannn/quiz-trainer/internal/repository"
)

// seed copies the question bank from questions.path into the questions table.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	path := cfg.Questions.Path
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	questions, err := repository.NewQuestionRepository(repository.NewFileSource(path)).Load(ctx)
	if err != nil {
		lg.Fatal("failed to read question bank", zap.String("path", path), zap.Error(err))
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		lg.Fatal("DATABASE_URL is not set", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfigFrom(cfg.DB))
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	store := postgres.NewQuestionStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		lg.Fatal("failed to create schema", zap.Error(err))
	}
	if err := store.ReplaceAll(ctx, questions); err != nil {
		lg.Fatal("failed to import questions", zap.Error(err))
	}

	lg.Info("question bank imported",
		zap.String("path", path),
		zap.Int("questions", len(questions)),
	)
}
