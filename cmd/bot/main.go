package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/app"
	"github.com/aliskhannn/quiz-trainer/internal/config"
	"github.com/aliskhannn/quiz-trainer/internal/delivery/telegram"
	"github.com/aliskhannn/quiz-trainer/internal/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := cfg.Telegram.Validate(); err != nil {
		log.Fatal("TELEGRAM_API_TOKEN and TELEGRAM_OWNER_ID must be set: ", err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.APIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Start the bot",
		},
		{
			Command:     "practice",
			Description: "Practice the whole question bank",
		},
		{
			Command:     "test",
			Description: "Take a short test",
		},
		{
			Command:     "resume",
			Description: "Continue the current quiz",
		},
		{
			Command:     "sessions",
			Description: "List saved quizzes",
		},
		{
			Command:     "delete",
			Description: "Delete a quiz (usage: /delete ID)",
		},
		{
			Command:     "report",
			Description: "Show results",
		},
	}

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Env != "production"
	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to start quiz", zap.Error(err))
	}
	defer a.Close()

	handler := telegram.NewHandler(
		bot,
		lg,
		a.Engine,
		a.Sessions,
		cfg.Telegram.OwnerID,
		cfg.Quiz.TestLength,
	)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler stopped", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
