package telegram

import (
	"context"
	"errors"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/service"
)

// handleStart shows the welcome message with the mode buttons.
func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newMessage(chatID, formatWelcome(h.engine.BankSize(), h.testLength))
		msg.ReplyMarkup = buildModeKeyboard(h.engine.BankSize(), h.testLength)
		return h.send(msg)
	}
}

// handleNewQuiz starts a practice run over the whole bank or a test of testLength questions.
func (h *Handler) handleNewQuiz(isTest bool) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		count := 0
		if isTest {
			count = h.testLength
		}

		session, err := h.engine.CreateSession(count, isTest)
		if err != nil {
			if errors.Is(err, service.ErrEmptyBank) {
				return h.send(newPlainMessage(chatID, msgEmptyBank))
			}
			return err
		}

		// Storage failures are logged by the store; the quiz goes on in memory.
		_ = h.store.Add(ctx, session)
		h.state = entities.NewQuizState(session)

		h.logger.Info("quiz started",
			zap.String("session_id", session.ID),
			zap.String("mode", session.Mode()),
			zap.Int("total_questions", session.TotalQuestions),
		)

		if err := h.send(newMessage(chatID, formatQuizStart(session, false))); err != nil {
			return err
		}
		return h.sendQuestion(chatID, h.state)
	}
}

// handleResume continues the current quiz or the one with the given id.
func (h *Handler) handleResume(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		var session *entities.Session

		if id := strings.TrimSpace(args); id != "" {
			s, err := h.store.Get(id)
			if err != nil {
				if errors.Is(err, service.ErrSessionNotFound) {
					return h.send(newPlainMessage(chatID, msgSessionNotFound))
				}
				return err
			}
			session = s
		} else {
			s, ok := h.store.Current()
			if !ok || s.Completed {
				return h.send(newPlainMessage(chatID, msgNothingToResume))
			}
			session = s
		}

		st, err := h.engine.Resume(session)
		if err != nil {
			if errors.Is(err, service.ErrSessionCompleted) {
				return h.send(newPlainMessage(chatID, msgSessionCompleted))
			}
			return err
		}

		_ = h.store.SetCurrent(ctx, session.ID)
		h.state = st

		if err := h.send(newMessage(chatID, formatQuizStart(session, true))); err != nil {
			return err
		}
		return h.sendQuestion(chatID, st)
	}
}

// handleSessions lists saved sessions with an overall summary.
func (h *Handler) handleSessions() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if len(h.store.List()) == 0 {
			return h.send(newPlainMessage(chatID, msgNoSessions))
		}
		return h.sendListPage(chatID, listSessions)
	}
}

// handleDelete removes a saved session.
func (h *Handler) handleDelete(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		id := strings.TrimSpace(args)
		if id == "" {
			return h.send(newPlainMessage(chatID, msgUseDelete))
		}

		if err := h.store.Delete(ctx, id); err != nil {
			if errors.Is(err, service.ErrSessionNotFound) {
				return h.send(newPlainMessage(chatID, msgSessionNotFound))
			}
			// The session is gone from memory; the store already logged the save failure.
		}

		if h.state != nil && h.state.Session.ID == id {
			h.state = nil
		}

		h.logger.Info("quiz deleted", zap.String("session_id", id))

		return h.send(newPlainMessage(chatID, msgSessionDeleted))
	}
}

// handleReport shows the report of the finished quiz, or the overall history.
func (h *Handler) handleReport() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.state != nil && h.state.Session.Completed {
			summary := service.BuildSummary(h.state)
			if err := h.send(newMessage(chatID, formatSummary(summary))); err != nil {
				return err
			}
			return h.sendListPage(chatID, listMissed)
		}

		if len(h.store.List()) == 0 {
			return h.send(newPlainMessage(chatID, msgNoSessions))
		}
		return h.sendListPage(chatID, listSessions)
	}
}

// handleText takes a typed answer for the current question.
func (h *Handler) handleText(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		st, ok := h.active()
		if !ok {
			return h.send(newPlainMessage(chatID, msgNoActiveQuiz))
		}

		q, err := h.engine.CurrentQuestion(st.Session)
		if err != nil {
			return err
		}

		if st.Session.IsAnswered(st.Session.CurrentQuestionIndex) {
			return h.send(newPlainMessage(chatID, msgAlreadyAnswered))
		}

		answer := strings.TrimSpace(text)
		if !q.IsFreeText() && !slices.Contains(q.Answers, answer) {
			return h.send(newPlainMessage(chatID, msgUseButtons))
		}

		position := st.Session.CurrentQuestionIndex
		result, err := h.engine.SubmitAnswer(st, answer)
		if err != nil {
			return err
		}
		if !result.Accepted {
			return nil
		}

		if err := h.send(newMessage(chatID, formatAnswerFeedback(result))); err != nil {
			return err
		}

		h.logAnswer(st.Session, position, result)
		return h.advance(ctx, chatID, st)
	}
}

// active returns the quiz in progress, resuming the stored current one
// after a restart.
func (h *Handler) active() (*entities.QuizState, bool) {
	if h.state != nil && !h.state.Session.Completed {
		return h.state, true
	}

	current, ok := h.store.Current()
	if !ok || current.Completed {
		return nil, false
	}

	st, err := h.engine.Resume(current)
	if err != nil {
		h.logger.Warn("failed to resume current session",
			zap.String("session_id", current.ID),
			zap.Error(err),
		)
		return nil, false
	}

	h.state = st
	return st, true
}

// advance moves past the answered question, saves and shows what comes next.
func (h *Handler) advance(ctx context.Context, chatID int64, st *entities.QuizState) error {
	h.engine.Advance(st)
	h.save(ctx)
	return h.sendNext(chatID, st)
}

func (h *Handler) sendNext(chatID int64, st *entities.QuizState) error {
	if st.Session.Completed {
		return h.sendSummary(chatID, st)
	}
	return h.sendQuestion(chatID, st)
}

func (h *Handler) sendQuestion(chatID int64, st *entities.QuizState) error {
	q, err := h.engine.CurrentQuestion(st.Session)
	if err != nil {
		return err
	}

	msg := newMessage(chatID, formatQuestion(q, st.Session.CurrentQuestionIndex, st.Session))
	msg.ReplyMarkup = buildQuestionKeyboard(st.Session, q)
	return h.send(msg)
}

// sendSummary shows the report. Tests list the missed questions right away,
// practice runs offer a review button.
func (h *Handler) sendSummary(chatID int64, st *entities.QuizState) error {
	summary := service.BuildSummary(st)

	h.logger.Info("quiz completed",
		zap.String("session_id", st.Session.ID),
		zap.Int("score", summary.Correct),
		zap.Int("total_questions", summary.Total),
	)

	withReview := !st.Session.IsTest && len(summary.Missed) > 0

	msg := newMessage(chatID, formatSummary(summary))
	msg.ReplyMarkup = buildResultKeyboard(withReview, h.engine.BankSize(), h.testLength)
	if err := h.send(msg); err != nil {
		return err
	}

	if st.Session.IsTest {
		return h.sendListPage(chatID, listMissed)
	}
	return nil
}

// listPage renders a page of a paged list from the current state.
// ok is false when the list is gone or the page is past its end.
func (h *Handler) listPage(list string, page int) (text string, totalPages int, ok bool) {
	switch list {
	case listSessions:
		sessions := h.store.List()
		if len(sessions) == 0 {
			return "", 0, false
		}

		var currentID string
		if current, ok := h.store.Current(); ok {
			currentID = current.ID
		}
		text, totalPages = formatSessions(sessions, currentID, service.BuildHistory(sessions), page)

	case listMissed:
		if h.state == nil || !h.state.Session.Completed {
			return "", 0, false
		}
		text, totalPages = formatMissed(service.BuildSummary(h.state).Missed, page)

	default:
		return "", 0, false
	}

	if page >= totalPages {
		return "", 0, false
	}
	return text, totalPages, true
}

// sendListPage sends the first page of a list with prev/next buttons.
func (h *Handler) sendListPage(chatID int64, list string) error {
	text, totalPages, ok := h.listPage(list, 0)
	if !ok {
		h.logger.Warn("nothing to list", zap.String("list", list))
		return nil
	}

	msg := newMessage(chatID, text)
	if kb := buildPageKeyboard(list, 0, totalPages); kb != nil {
		msg.ReplyMarkup = *kb
	}
	return h.send(msg)
}

func (h *Handler) save(ctx context.Context) {
	if err := h.store.SaveAll(ctx); err != nil {
		h.logger.Warn("progress not saved", zap.Error(err))
	}
}

func (h *Handler) logAnswer(s *entities.Session, position int, result entities.ScoredResult) {
	h.logger.Debug("answer submitted",
		zap.String("session_id", s.ID),
		zap.Int("position", position),
		zap.Bool("correct", result.Correct),
		zap.Int("score", s.Score),
	)
}
