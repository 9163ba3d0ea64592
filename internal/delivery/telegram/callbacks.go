package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	var notice string
	switch data.Action {
	case actionAnswer:
		notice = h.handleAnswerCallback(ctx, cb, data)

	case actionNav:
		notice = h.handleNavCallback(ctx, chatID, data)

	case actionMode:
		if len(data.Params) != 1 {
			h.logger.Warn("invalid mode callback", zap.String("data", cb.Data))
			break
		}
		_ = h.withErrorHandling(h.handleNewQuiz(data.Params[0] == modeTest))(ctx, chatID)

	case actionReview:
		notice = h.handleReviewCallback(chatID)

	case actionPage:
		notice = h.handlePageCallback(cb, data)

	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
	}

	h.answerCallback(cb.ID, notice)
}

// handleAnswerCallback scores a choice button. Buttons of questions that
// are no longer current are rejected.
func (h *Handler) handleAnswerCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) string {
	chatID := cb.Message.Chat.ID

	p, ok := parseAnswerParams(data.Params)
	if !ok {
		h.logger.Warn("invalid answer callback", zap.String("data", data.Raw))
		return noticeStale
	}

	st, ok := h.active()
	if !ok || st.Session.ID != p.SessionID || st.Session.CurrentQuestionIndex != p.Position {
		return noticeStale
	}

	q, err := h.engine.CurrentQuestion(st.Session)
	if err != nil || p.Choice >= len(q.Answers) {
		return noticeStale
	}

	result, err := h.engine.SubmitAnswer(st, q.Answers[p.Choice])
	if err != nil {
		_ = h.withErrorHandling(func(context.Context, int64) error { return err })(ctx, chatID)
		return ""
	}
	if !result.Accepted {
		return msgAlreadyAnswered
	}

	h.logAnswer(st.Session, p.Position, result)

	// Replace the buttons with the feedback.
	text := formatQuestion(q, p.Position, st.Session) + "\n\n" + formatAnswerFeedback(result)
	_ = h.send(newEdit(chatID, cb.Message.MessageID, text))

	_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
		return h.advance(ctx, chatID, st)
	})(ctx, chatID)

	if result.Correct {
		return noticeCorrect
	}
	return noticeIncorrect
}

func (h *Handler) handleNavCallback(ctx context.Context, chatID int64, data callbackData) string {
	if len(data.Params) != 1 {
		h.logger.Warn("invalid nav callback", zap.String("data", data.Raw))
		return ""
	}

	st, ok := h.active()
	if !ok {
		return noticeNoActiveQuiz
	}

	switch data.Params[0] {
	case navNext:
		h.engine.Advance(st)
	case navPrev:
		if st.Session.CurrentQuestionIndex == 0 {
			return noticeFirstQuestion
		}
		h.engine.Retreat(st)
	default:
		return ""
	}

	h.save(ctx)
	_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
		return h.sendNext(chatID, st)
	})(ctx, chatID)

	return ""
}

func (h *Handler) handleReviewCallback(chatID int64) string {
	if h.state == nil || !h.state.Session.Completed {
		return noticeNoReport
	}

	_ = h.sendListPage(chatID, listMissed)
	return ""
}

// handlePageCallback turns the page of a list message in place.
func (h *Handler) handlePageCallback(cb *tgbotapi.CallbackQuery, data callbackData) string {
	list, page, ok := parsePageParams(data.Params)
	if !ok {
		h.logger.Warn("invalid page callback", zap.String("data", data.Raw))
		return noticeStale
	}

	text, totalPages, ok := h.listPage(list, page)
	if !ok {
		h.logger.Debug("page out of range",
			zap.String("list", list),
			zap.Int("page", page),
		)
		return noticeStale
	}

	edit := newEdit(cb.Message.Chat.ID, cb.Message.MessageID, text)
	edit.ReplyMarkup = buildPageKeyboard(list, page, totalPages)
	_ = h.send(edit)
	return ""
}
