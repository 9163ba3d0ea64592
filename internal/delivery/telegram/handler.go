package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

// Handler serves a single owner. Updates are processed one at a time.
type Handler struct {
	bot        Bot
	logger     *zap.Logger
	engine     QuizEngine
	store      SessionStore
	ownerID    int64
	testLength int

	state *entities.QuizState // active quiz; nil until one is started or resumed
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	engine QuizEngine,
	store SessionStore,
	ownerID int64,
	testLength int,
) *Handler {
	return &Handler{
		bot:        bot,
		logger:     logger,
		engine:     engine,
		store:      store,
		ownerID:    ownerID,
		testLength: testLength,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		cb := update.CallbackQuery
		h.logger.Debug("callback received",
			zap.Int64("user_id", cb.From.ID),
			zap.String("data", cb.Data),
		)

		if cb.From.ID != h.ownerID {
			h.logger.Warn("callback from a stranger ignored", zap.Int64("user_id", cb.From.ID))
			h.answerCallback(cb.ID, msgForbidden)
			return
		}

		h.handleCallback(ctx, cb)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	from := update.Message.From
	if from == nil || from.ID != h.ownerID {
		h.logger.Warn("message from a stranger ignored", zap.Int64("chat_id", chatID))
		_ = h.send(newPlainMessage(chatID, msgForbidden))
		return
	}

	if update.Message.IsCommand() {
		args := update.Message.CommandArguments()

		switch update.Message.Command() {
		case "start", "help":
			_ = h.withErrorHandling(h.handleStart())(ctx, chatID)

		case "practice":
			_ = h.withErrorHandling(h.handleNewQuiz(false))(ctx, chatID)

		case "test":
			_ = h.withErrorHandling(h.handleNewQuiz(true))(ctx, chatID)

		case "resume":
			_ = h.withErrorHandling(h.handleResume(args))(ctx, chatID)

		case "sessions":
			_ = h.withErrorHandling(h.handleSessions())(ctx, chatID)

		case "delete":
			_ = h.withErrorHandling(h.handleDelete(args))(ctx, chatID)

		case "report":
			_ = h.withErrorHandling(h.handleReport())(ctx, chatID)

		default:
			_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		}

		return
	}

	_ = h.withErrorHandling(h.handleText(update.Message.Text))(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, err string) {
	_ = h.send(newPlainMessage(chatID, err))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// answerCallback removes the user's "clock" and optionally shows a toast.
func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}
