package telegram

import (
	"context"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/repository"
	"github.com/aliskhannn/quiz-trainer/internal/service"
)

const ownerID int64 = 42

type fakeBot struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	updates  chan tgbotapi.Update
	fail     func(tgbotapi.Chattable) error
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.sent = append(b.sent, c)
	if b.fail != nil {
		if err := b.fail(c); err != nil {
			return tgbotapi.Message{}, err
		}
	}
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, b.sent)
	return chattableText(b.sent[len(b.sent)-1])
}

func (b *fakeBot) allText() string {
	var parts []string
	for _, c := range b.sent {
		parts = append(parts, chattableText(c))
	}
	return strings.Join(parts, "\n---\n")
}

func (b *fakeBot) lastKeyboard(t *testing.T) tgbotapi.InlineKeyboardMarkup {
	t.Helper()
	require.NotEmpty(t, b.sent)
	msg, ok := b.sent[len(b.sent)-1].(tgbotapi.MessageConfig)
	require.True(t, ok, "last sent item is not a message")
	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok, "last message has no inline keyboard")
	return kb
}

func (b *fakeBot) lastNotice(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, b.requests)
	cb, ok := b.requests[len(b.requests)-1].(tgbotapi.CallbackConfig)
	require.True(t, ok)
	return cb.Text
}

func chattableText(c tgbotapi.Chattable) string {
	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		return m.Text
	case tgbotapi.EditMessageTextConfig:
		return m.Text
	default:
		return ""
	}
}

func choiceBank(n int) []entities.Question {
	bank := make([]entities.Question, n)
	for i := range bank {
		bank[i] = entities.Question{
			Question: "Is this question number " + string(rune('1'+i)) + "?",
			Answers:  []string{"yes", "no"},
			Correct:  "yes",
		}
	}
	return bank
}

type fixture struct {
	bot    *fakeBot
	engine *service.QuizEngine
	store  *service.SessionStore
	h      *Handler
}

func newFixture(t *testing.T, bank []entities.Question, testLength int) *fixture {
	t.Helper()

	store := service.NewSessionStore(
		repository.NewSessionFileRepository(filepath.Join(t.TempDir(), "sessions.json")),
		zap.NewNop(),
		50,
	)
	store.LoadAll(context.Background())

	f := &fixture{
		bot:    &fakeBot{},
		engine: service.NewQuizEngine(bank, zap.NewNop(), service.WithRand(rand.New(rand.NewSource(3)))),
		store:  store,
	}
	f.h = NewHandler(f.bot, zap.NewNop(), f.engine, f.store, ownerID, testLength)
	return f
}

func (f *fixture) restart() {
	f.h = NewHandler(f.bot, zap.NewNop(), f.engine, f.store, ownerID, f.h.testLength)
}

func (f *fixture) do(update tgbotapi.Update) {
	f.h.handleUpdate(context.Background(), update)
}

func commandUpdate(text string) tgbotapi.Update {
	cmd := strings.Fields(text)[0]
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		Text:      text,
		Chat:      &tgbotapi.Chat{ID: ownerID},
		From:      &tgbotapi.User{ID: ownerID},
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		Text:      text,
		Chat:      &tgbotapi.Chat{ID: ownerID},
		From:      &tgbotapi.User{ID: ownerID},
	}}
}

func callbackUpdate(data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "cb",
		From: &tgbotapi.User{ID: ownerID},
		Message: &tgbotapi.Message{
			MessageID: 7,
			Chat:      &tgbotapi.Chat{ID: ownerID},
		},
		Data: data,
	}}
}

func (f *fixture) current(t *testing.T) *entities.Session {
	t.Helper()
	s, ok := f.store.Current()
	require.True(t, ok)
	return s
}

func TestHandler_IgnoresStrangers(t *testing.T) {
	f := newFixture(t, choiceBank(2), 2)

	update := commandUpdate("/practice")
	update.Message.From.ID = 7
	f.do(update)

	assert.Equal(t, msgForbidden, f.bot.lastText(t))
	assert.Empty(t, f.store.List())

	cb := callbackUpdate(buildNavCallback(navNext))
	cb.CallbackQuery.From.ID = 7
	f.do(cb)
	assert.Equal(t, msgForbidden, f.bot.lastNotice(t))
}

func TestHandler_PracticeFlowWithButtons(t *testing.T) {
	f := newFixture(t, choiceBank(2), 2)

	f.do(commandUpdate("/practice"))
	s := f.current(t)
	assert.False(t, s.IsTest)
	assert.Equal(t, 2, s.TotalQuestions)
	assert.Contains(t, f.bot.lastText(t), "Question 1 of 2")

	kb := f.bot.lastKeyboard(t)
	require.Len(t, kb.InlineKeyboard, 3) // two choices and navigation
	require.NotNil(t, kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, buildAnswerCallback(s.ID, 0, 0), *kb.InlineKeyboard[0][0].CallbackData)

	f.do(callbackUpdate(buildAnswerCallback(s.ID, 0, 0)))
	assert.Equal(t, noticeCorrect, f.bot.lastNotice(t))
	assert.Equal(t, 1, s.Score)
	assert.Contains(t, f.bot.lastText(t), "Question 2 of 2")

	edited := false
	for _, c := range f.bot.sent {
		if _, ok := c.(tgbotapi.EditMessageTextConfig); ok {
			edited = true
		}
	}
	assert.True(t, edited, "answered question is edited with feedback")

	f.do(callbackUpdate(buildAnswerCallback(s.ID, 1, 1)))
	assert.Equal(t, noticeIncorrect, f.bot.lastNotice(t))
	assert.True(t, s.Completed)
	assert.Contains(t, f.bot.lastText(t), "Quiz complete")
	assert.NotContains(t, f.bot.lastText(t), "Missed questions")

	kb = f.bot.lastKeyboard(t)
	require.NotNil(t, kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, buildReviewCallback(), *kb.InlineKeyboard[0][0].CallbackData)

	f.do(callbackUpdate(buildReviewCallback()))
	assert.Contains(t, f.bot.lastText(t), "Missed questions")
	assert.Contains(t, f.bot.lastText(t), "Your answer: no")
}

func TestHandler_StaleAnswerIsRejected(t *testing.T) {
	f := newFixture(t, choiceBank(3), 3)

	f.do(commandUpdate("/practice"))
	s := f.current(t)

	for _, data := range []string{
		buildAnswerCallback(s.ID, 1, 0),       // not the current position
		buildAnswerCallback("other-id", 0, 0), // another session
		buildAnswerCallback(s.ID, 0, 5),       // no such choice
		"ans:" + s.ID + ":zero:0",             // malformed
	} {
		f.do(callbackUpdate(data))
		assert.Equal(t, noticeStale, f.bot.lastNotice(t), data)
	}

	assert.Zero(t, s.Score)
	assert.Empty(t, s.AnsweredQuestions)
}

func TestHandler_DoubleAnswerIsIgnored(t *testing.T) {
	f := newFixture(t, choiceBank(3), 3)

	f.do(commandUpdate("/practice"))
	s := f.current(t)

	f.do(callbackUpdate(buildAnswerCallback(s.ID, 0, 0)))
	f.do(callbackUpdate(buildNavCallback(navPrev)))
	require.Equal(t, 0, s.CurrentQuestionIndex)

	f.do(textUpdate("no"))
	assert.Equal(t, msgAlreadyAnswered, f.bot.lastText(t))
	assert.Equal(t, 1, s.Score)
}

func TestHandler_FreeTextAnswer(t *testing.T) {
	f := newFixture(t, []entities.Question{
		{Question: "Zero value of a pointer?", Correct: "nil"},
	}, 1)

	f.do(commandUpdate("/practice"))
	assert.Contains(t, f.bot.lastText(t), "Type your answer")

	f.do(textUpdate("  NIL "))
	s := f.current(t)
	assert.Equal(t, 1, s.Score)
	assert.True(t, s.Completed)
	assert.Contains(t, f.bot.allText(), "Correct")
	assert.Contains(t, f.bot.lastText(t), "Quiz complete")
}

func TestHandler_ChoiceByText(t *testing.T) {
	f := newFixture(t, choiceBank(1), 1)

	f.do(commandUpdate("/practice"))
	f.do(textUpdate("maybe"))
	assert.Equal(t, msgUseButtons, f.bot.lastText(t))

	f.do(textUpdate("yes"))
	assert.Equal(t, 1, f.current(t).Score)
}

func TestHandler_TestModeListsMissed(t *testing.T) {
	f := newFixture(t, choiceBank(5), 2)

	f.do(callbackUpdate(buildModeCallback(modeTest)))
	s := f.current(t)
	assert.True(t, s.IsTest)
	assert.Equal(t, 2, s.TotalQuestions)

	f.do(textUpdate("no"))
	f.do(textUpdate("yes"))

	assert.True(t, s.Completed)
	assert.Contains(t, f.bot.allText(), "Quiz complete")
	assert.Contains(t, f.bot.allText(), "50")
	assert.Contains(t, f.bot.lastText(t), "Missed questions")

	f.do(commandUpdate("/report"))
	assert.Contains(t, f.bot.lastText(t), "Missed questions")
}

func TestHandler_ResumeAfterRestart(t *testing.T) {
	f := newFixture(t, choiceBank(2), 2)

	f.do(commandUpdate("/practice"))
	f.do(textUpdate("yes"))

	f.restart()
	f.do(commandUpdate("/resume"))
	assert.Contains(t, f.bot.allText(), "Continuing the quiz")
	assert.Contains(t, f.bot.lastText(t), "Question 2 of 2")

	f.restart()
	f.do(textUpdate("yes")) // an unfinished current quiz is picked up without /resume
	s := f.current(t)
	assert.True(t, s.Completed)
	assert.Equal(t, 2, s.Score)

	f.do(commandUpdate("/resume"))
	assert.Equal(t, msgNothingToResume, f.bot.lastText(t))

	f.do(commandUpdate("/resume " + s.ID))
	assert.Equal(t, msgSessionCompleted, f.bot.lastText(t))

	f.do(commandUpdate("/resume nope"))
	assert.Equal(t, msgSessionNotFound, f.bot.lastText(t))
}

func TestHandler_ResumeByID(t *testing.T) {
	f := newFixture(t, choiceBank(3), 3)

	f.do(commandUpdate("/practice"))
	first := f.current(t)
	f.do(commandUpdate("/test"))
	require.NotEqual(t, first.ID, f.current(t).ID)

	f.do(commandUpdate("/resume " + first.ID))
	assert.Equal(t, first.ID, f.current(t).ID)
	assert.Contains(t, f.bot.lastText(t), "Question 1 of 3")
}

func TestHandler_Delete(t *testing.T) {
	f := newFixture(t, choiceBank(2), 2)

	f.do(commandUpdate("/delete"))
	assert.Equal(t, msgUseDelete, f.bot.lastText(t))

	f.do(commandUpdate("/delete nope"))
	assert.Equal(t, msgSessionNotFound, f.bot.lastText(t))

	f.do(commandUpdate("/practice"))
	id := f.current(t).ID

	f.do(commandUpdate("/delete " + id))
	assert.Equal(t, msgSessionDeleted, f.bot.lastText(t))
	assert.Empty(t, f.store.List())
	assert.Nil(t, f.h.state)

	f.do(textUpdate("yes"))
	assert.Equal(t, msgNoActiveQuiz, f.bot.lastText(t))
}

func TestHandler_Navigation(t *testing.T) {
	f := newFixture(t, choiceBank(3), 3)

	f.do(callbackUpdate(buildNavCallback(navNext)))
	assert.Equal(t, noticeNoActiveQuiz, f.bot.lastNotice(t))

	f.do(commandUpdate("/practice"))

	f.do(callbackUpdate(buildNavCallback(navPrev)))
	assert.Equal(t, noticeFirstQuestion, f.bot.lastNotice(t))

	f.do(callbackUpdate(buildNavCallback(navNext)))
	assert.Contains(t, f.bot.lastText(t), "Question 2 of 3")
	assert.Equal(t, 1, f.current(t).CurrentQuestionIndex)

	f.do(callbackUpdate(buildNavCallback(navPrev)))
	assert.Contains(t, f.bot.lastText(t), "Question 1 of 3")
}

func TestHandler_SessionsAndReport(t *testing.T) {
	f := newFixture(t, choiceBank(2), 2)

	f.do(commandUpdate("/sessions"))
	assert.Equal(t, msgNoSessions, f.bot.lastText(t))

	f.do(commandUpdate("/report"))
	assert.Equal(t, msgNoSessions, f.bot.lastText(t))

	f.do(commandUpdate("/practice"))
	id := f.current(t).ID

	f.do(commandUpdate("/sessions"))
	last := f.bot.lastText(t)
	assert.Contains(t, last, "Saved quizzes")
	assert.Contains(t, last, code(id))
	assert.Contains(t, last, "question 1 of 2")

	f.do(commandUpdate("/report"))
	assert.Contains(t, f.bot.lastText(t), "1 total")
}

func TestHandler_UnknownCommandAndStart(t *testing.T) {
	f := newFixture(t, choiceBank(2), 5)

	f.do(commandUpdate("/nope"))
	assert.Equal(t, msgUnknownCommand, f.bot.lastText(t))

	f.do(commandUpdate("/start"))
	kb := f.bot.lastKeyboard(t)
	require.Len(t, kb.InlineKeyboard, 1)
	assert.Equal(t, "📝 Test (2)", kb.InlineKeyboard[0][1].Text)
}

func TestHandler_EmptyBank(t *testing.T) {
	f := newFixture(t, nil, 2)

	f.do(commandUpdate("/practice"))
	assert.Equal(t, msgEmptyBank, f.bot.lastText(t))
	assert.Empty(t, f.store.List())
}

func TestHandler_Run(t *testing.T) {
	f := newFixture(t, choiceBank(2), 2)

	f.bot.updates = make(chan tgbotapi.Update, 1)
	f.bot.updates <- commandUpdate("/start")
	close(f.bot.updates)

	require.NoError(t, f.h.Run(context.Background()))
	assert.Contains(t, f.bot.lastText(t), "Quiz Trainer")
}

func TestHandler_RunStopsOnCancel(t *testing.T) {
	f := newFixture(t, choiceBank(2), 2)
	f.bot.updates = make(chan tgbotapi.Update)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, f.h.Run(ctx), context.Canceled)
}
