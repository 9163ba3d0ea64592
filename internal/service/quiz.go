package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

var (
	ErrEmptyBank        = errors.New("question bank is empty")
	ErrSessionCompleted = errors.New("quiz session is already completed")
	ErrInvalidIndex     = errors.New("question index out of range")
	ErrSessionMismatch  = errors.New("quiz session does not match the question bank")
)

// QuizEngine drives quiz sessions over a read-only question bank.
// It is not safe for concurrent use.
type QuizEngine struct {
	questions []entities.Question
	shuffler  *Shuffler
	validator *AnswerValidator
	logger    *zap.Logger
	now       func() time.Time
}

// EngineOption customizes a QuizEngine.
type EngineOption func(*QuizEngine)

// WithRand makes session ordering reproducible.
func WithRand(rng *rand.Rand) EngineOption {
	return func(e *QuizEngine) {
		e.shuffler = NewShuffler(rng)
	}
}

// WithClock overrides the session timestamp source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *QuizEngine) {
		e.now = now
	}
}

// NewQuizEngine creates a new QuizEngine over the loaded questions.
func NewQuizEngine(questions []entities.Question, logger *zap.Logger, opts ...EngineOption) *QuizEngine {
	e := &QuizEngine{
		questions: questions,
		shuffler:  NewShuffler(nil),
		validator: NewAnswerValidator(),
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LoadQuizEngine reads the bank through loader and creates an engine over it.
func LoadQuizEngine(ctx context.Context, loader QuestionLoader, logger *zap.Logger, opts ...EngineOption) (*QuizEngine, error) {
	questions, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewQuizEngine(questions, logger, opts...), nil
}

// BankSize returns the number of questions available.
func (e *QuizEngine) BankSize() int {
	return len(e.questions)
}

// Question returns the bank entry at index.
func (e *QuizEngine) Question(index int) (entities.Question, error) {
	if index < 0 || index >= len(e.questions) {
		return entities.Question{}, fmt.Errorf("%w: bank index %d", ErrInvalidIndex, index)
	}
	return e.questions[index], nil
}

// CreateSession starts a new session over a random subset of the bank.
// count is clamped to the bank size; count <= 0 selects the whole bank.
func (e *QuizEngine) CreateSession(count int, isTest bool) (*entities.Session, error) {
	if len(e.questions) == 0 {
		return nil, ErrEmptyBank
	}

	ids := e.shuffler.Pick(len(e.questions), count)
	session := entities.NewSession(newSessionID(), ids, isTest, e.now())

	e.logger.Debug("quiz session created",
		zap.String("session_id", session.ID),
		zap.String("mode", session.Mode()),
		zap.Int("total_questions", session.TotalQuestions),
	)

	return session, nil
}

// Resume re-enters an unfinished session at its stored position.
func (e *QuizEngine) Resume(session *entities.Session) (*entities.QuizState, error) {
	if session.Completed {
		return nil, ErrSessionCompleted
	}
	if err := e.checkSession(session); err != nil {
		return nil, err
	}

	e.logger.Debug("quiz session resumed",
		zap.String("session_id", session.ID),
		zap.Int("position", session.CurrentQuestionIndex),
		zap.Int("score", session.Score),
	)

	return entities.NewQuizState(session), nil
}

// CurrentQuestion returns the question under the session pointer.
func (e *QuizEngine) CurrentQuestion(session *entities.Session) (entities.Question, error) {
	if session.Completed {
		return entities.Question{}, ErrSessionCompleted
	}
	return e.questionAt(session, session.CurrentQuestionIndex)
}

// SelectAnswer stores a not yet submitted selection.
func (e *QuizEngine) SelectAnswer(st *entities.QuizState, answer string) {
	if st.Session.Completed || st.Session.IsAnswered(st.Session.CurrentQuestionIndex) {
		return
	}
	st.SelectedAnswer = answer
}

// SubmitAnswer scores the answer for the current position.
// Blank answers, already answered positions and submissions while
// inspecting another question are ignored: the result is not Accepted.
func (e *QuizEngine) SubmitAnswer(st *entities.QuizState, answer string) (entities.ScoredResult, error) {
	s := st.Session
	if s.Completed {
		return entities.ScoredResult{}, ErrSessionCompleted
	}

	position := s.CurrentQuestionIndex
	if st.IsViewing() || s.IsAnswered(position) || strings.TrimSpace(answer) == "" {
		return entities.ScoredResult{}, nil
	}

	q, err := e.questionAt(s, position)
	if err != nil {
		return entities.ScoredResult{}, err
	}

	result := entities.ScoredResult{
		Accepted:      true,
		Correct:       e.validator.Validate(q, answer),
		Given:         answer,
		CorrectAnswer: q.Correct,
	}

	s.MarkAnswered(position)
	st.SelectedAnswer = answer

	if result.Correct {
		s.Score++
	} else {
		result.NearMiss = e.validator.IsNearMiss(q, answer)
		st.WrongAnswers = append(st.WrongAnswers, entities.WrongAnswer{
			Position: position,
			Question: q,
			Given:    answer,
		})
	}

	return result, nil
}

// Advance moves to the next position or completes the session at the last one.
func (e *QuizEngine) Advance(st *entities.QuizState) {
	s := st.Session
	if s.Completed {
		return
	}
	e.ReturnToProgress(st)

	if !s.IsLast() {
		s.CurrentQuestionIndex++
		st.SelectedAnswer = ""
		return
	}

	s.Completed = true
	st.SelectedAnswer = ""

	e.logger.Debug("quiz session completed",
		zap.String("session_id", s.ID),
		zap.Int("score", s.Score),
		zap.Int("total_questions", s.TotalQuestions),
	)
}

// Retreat moves to the previous position. Scores are kept.
func (e *QuizEngine) Retreat(st *entities.QuizState) {
	s := st.Session
	if s.Completed {
		return
	}
	e.ReturnToProgress(st)

	if s.CurrentQuestionIndex > 0 {
		s.CurrentQuestionIndex--
		st.SelectedAnswer = ""
	}
}

// JumpTo shows the question at position without moving tracked progress.
// The in-progress position is remembered so ReturnToProgress can restore it.
func (e *QuizEngine) JumpTo(st *entities.QuizState, position int) (entities.Question, error) {
	q, err := e.questionAt(st.Session, position)
	if err != nil {
		return entities.Question{}, err
	}

	if st.PreviousIndex == nil {
		prev := st.Session.CurrentQuestionIndex
		st.PreviousIndex = &prev
	}
	st.ViewIndex = &position

	return q, nil
}

// ReturnToProgress leaves the inspection view and returns the tracked position.
func (e *QuizEngine) ReturnToProgress(st *entities.QuizState) int {
	st.ViewIndex = nil
	st.PreviousIndex = nil
	return st.Session.CurrentQuestionIndex
}

// Status returns the engine state of the quiz.
func (e *QuizEngine) Status(st *entities.QuizState) entities.Status {
	switch {
	case st.Session.Completed && st.IsViewing():
		return entities.StatusReviewing
	case st.Session.Completed:
		return entities.StatusCompleted
	default:
		return entities.StatusInProgress
	}
}

func (e *QuizEngine) questionAt(s *entities.Session, position int) (entities.Question, error) {
	if position < 0 || position >= len(s.QuestionIDs) {
		return entities.Question{}, fmt.Errorf("%w: position %d of %d", ErrInvalidIndex, position, len(s.QuestionIDs))
	}
	return e.Question(s.QuestionIDs[position])
}

// checkSession verifies that a stored session still fits the loaded bank.
func (e *QuizEngine) checkSession(s *entities.Session) error {
	for _, id := range s.QuestionIDs {
		if id < 0 || id >= len(e.questions) {
			return fmt.Errorf("%w: question %d, bank has %d", ErrSessionMismatch, id, len(e.questions))
		}
	}
	return nil
}

func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
