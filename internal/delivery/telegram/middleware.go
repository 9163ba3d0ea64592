package telegram

import (
	"context"

	"go.uber.org/zap"
)

// HandlerFunc handles one command or callback for a chat.
type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs a failed handler together with the active quiz
// and tells the user something went wrong. The error is not propagated:
// one bad update must not stop the update loop.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		fields := []zap.Field{zap.Int64("chat_id", chatID), zap.Error(err)}
		if st := h.state; st != nil {
			fields = append(fields,
				zap.String("session_id", st.Session.ID),
				zap.String("mode", st.Session.Mode()),
				zap.Int("position", st.Session.CurrentQuestionIndex),
			)
		}

		h.logger.Error("handle error", fields...)
		h.sendError(chatID, msgInternalError)
		return nil
	}
}
