package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/app"
	"github.com/aliskhannn/quiz-trainer/internal/config"
	"github.com/aliskhannn/quiz-trainer/internal/delivery/cli"
	"github.com/aliskhannn/quiz-trainer/internal/logger"
)

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

	// Stdin reads are not interruptible, so the default SIGINT handling stays.
	// Progress is saved after every answer.
	ctx := context.Background()

	a, err := app.New(ctx, cfg, lg)
	if err != nil {
		lg.Error("failed to start quiz", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Cannot start the quiz:", err)
		os.Exit(1)
	}
	defer a.Close()

	runner := cli.NewRunner(os.Stdin, os.Stdout, a.Engine, a.Sessions, lg, cfg.Quiz.TestLength)
	if err := runner.Run(ctx); err != nil {
		lg.Error("quiz stopped", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Quiz stopped:", err)
		a.Close()
		os.Exit(1)
	}
}
