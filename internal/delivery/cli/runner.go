package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/service"
)

// errQuit stops the prompt loop on :quit or end of input.
var errQuit = errors.New("quit")

// Runner is the interactive terminal front-end.
type Runner struct {
	in         *bufio.Scanner
	out        io.Writer
	engine     QuizEngine
	store      SessionStore
	logger     *zap.Logger
	testLength int
}

// NewRunner creates a new Runner reading answers from in and printing to out.
func NewRunner(
	in io.Reader,
	out io.Writer,
	engine QuizEngine,
	store SessionStore,
	logger *zap.Logger,
	testLength int,
) *Runner {
	return &Runner{
		in:         bufio.NewScanner(in),
		out:        out,
		engine:     engine,
		store:      store,
		logger:     logger,
		testLength: testLength,
	}
}

// Run plays one quiz session to completion or until the user quits.
func (r *Runner) Run(ctx context.Context) error {
	r.printf(msgBankLoaded, r.engine.BankSize())

	st, err := r.startSession(ctx)
	if err != nil {
		if errors.Is(err, errQuit) {
			r.println(msgQuit)
			return nil
		}
		return err
	}

	if err := r.loop(ctx, st); err != nil {
		if errors.Is(err, errQuit) {
			r.save(ctx)
			r.println(msgQuit)
			return nil
		}
		return err
	}

	return r.report(st)
}

// startSession resumes the current unfinished session or creates a new one.
func (r *Runner) startSession(ctx context.Context) (*entities.QuizState, error) {
	if current, ok := r.store.Current(); ok && !current.Completed {
		r.printf(msgResumePrompt,
			current.Mode(),
			current.CurrentQuestionIndex+1,
			current.TotalQuestions,
			current.Score,
		)

		line, err := r.readLine()
		if err != nil {
			return nil, err
		}

		if isYes(line, true) {
			st, err := r.engine.Resume(current)
			if err == nil {
				return st, nil
			}
			r.logger.Warn("failed to resume session",
				zap.String("session_id", current.ID),
				zap.Error(err),
			)
			r.printf(msgResumeFailed, err)
		}
	}

	for {
		r.printf(msgModePrompt, r.engine.BankSize(), min(r.testLength, r.engine.BankSize()))

		line, err := r.readLine()
		if err != nil {
			return nil, err
		}

		var isTest bool
		switch line {
		case "", "1":
		case "2":
			isTest = true
		default:
			r.println(msgInvalidMode)
			continue
		}

		count := 0
		if isTest {
			count = r.testLength
		}

		session, err := r.engine.CreateSession(count, isTest)
		if err != nil {
			return nil, err
		}

		// Storage failures are logged by the store; the quiz goes on in memory.
		_ = r.store.Add(ctx, session)

		return entities.NewQuizState(session), nil
	}
}

func (r *Runner) loop(ctx context.Context, st *entities.QuizState) error {
	for !st.Session.Completed {
		if err := ctx.Err(); err != nil {
			return err
		}

		q, position, err := r.displayed(st)
		if err != nil {
			return err
		}
		r.printQuestion(st, q, position)

		line, err := r.readLine()
		if err != nil {
			return err
		}

		if strings.HasPrefix(line, ":") {
			if err := r.command(ctx, st, line); err != nil {
				return err
			}
			continue
		}

		if err := r.answer(ctx, st, q, line); err != nil {
			return err
		}
	}

	return nil
}

// displayed returns the question on screen: the viewed one or the current one.
func (r *Runner) displayed(st *entities.QuizState) (entities.Question, int, error) {
	if st.IsViewing() {
		position := *st.ViewIndex
		q, err := r.engine.JumpTo(st, position)
		return q, position, err
	}

	q, err := r.engine.CurrentQuestion(st.Session)
	return q, st.Session.CurrentQuestionIndex, err
}

func (r *Runner) answer(ctx context.Context, st *entities.QuizState, q entities.Question, line string) error {
	switch {
	case st.IsViewing():
		r.println(msgViewOnly)
		return nil
	case st.Session.IsAnswered(st.Session.CurrentQuestionIndex):
		r.println(msgAlreadyAnswered)
		return nil
	case line == "":
		return nil
	}

	answer, ok := parseAnswer(q, line)
	if !ok {
		r.printf(msgInvalidChoice, len(q.Answers))
		return nil
	}

	result, err := r.engine.SubmitAnswer(st, answer)
	if err != nil {
		return err
	}
	if !result.Accepted {
		return nil
	}

	if result.Correct {
		r.println(msgCorrect)
	} else {
		r.printf(msgIncorrect, result.CorrectAnswer)
		if result.NearMiss {
			r.println(msgNearMiss)
		}
	}

	r.engine.Advance(st)
	r.save(ctx)

	return nil
}

func (r *Runner) command(ctx context.Context, st *entities.QuizState, line string) error {
	fields := strings.Fields(line)

	switch fields[0] {
	case ":help", ":h":
		r.println(msgHelp)

	case ":quit", ":q":
		return errQuit

	case ":next", ":n":
		r.engine.Advance(st)
		r.save(ctx)

	case ":prev", ":p":
		if !st.IsViewing() && st.Session.CurrentQuestionIndex == 0 {
			r.println(msgFirstQuestion)
			return nil
		}
		r.engine.Retreat(st)
		r.save(ctx)

	case ":jump", ":j":
		n := 0
		if len(fields) == 2 {
			n, _ = strconv.Atoi(fields[1])
		}
		if _, err := r.engine.JumpTo(st, n-1); err != nil {
			r.printf(msgInvalidJump, st.Session.TotalQuestions)
		}

	case ":back", ":b":
		r.engine.ReturnToProgress(st)

	default:
		r.println(msgUnknownCommand)
	}

	return nil
}

// report prints the end-of-session summary and the missed questions.
func (r *Runner) report(st *entities.QuizState) error {
	summary := service.BuildSummary(st)

	r.printf(msgSummary,
		summary.Total,
		summary.Correct,
		summary.Wrong,
		service.FormatPercentage(summary.Percentage),
	)

	if len(summary.Missed) == 0 {
		r.println(msgNoMissed)
		return nil
	}

	if !st.Session.IsTest {
		r.printf(msgReviewPrompt)
		line, err := r.readLine()
		if errors.Is(err, errQuit) || (err == nil && !isYes(line, false)) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	r.println(msgMissedHeader)
	for i, w := range summary.Missed {
		r.printf(msgMissedItem, i+1, w.Question.Question, w.Given, w.Question.Correct)
	}

	return nil
}

func (r *Runner) printQuestion(st *entities.QuizState, q entities.Question, position int) {
	s := st.Session

	if st.IsViewing() {
		r.printf(msgViewingHeader, position+1, s.TotalQuestions)
	} else {
		r.printf(msgQuestionHeader, position+1, s.TotalQuestions, s.Score)
	}

	r.println(q.Question)
	for i, a := range q.Answers {
		r.printf("  %d) %s\n", i+1, a)
	}

	if !st.IsViewing() && s.IsAnswered(position) {
		r.println(msgAnsweredMark)
	}

	if q.IsFreeText() {
		r.printf(msgFreeTextPrompt)
	} else {
		r.printf(msgChoicePrompt, len(q.Answers))
	}
}

func (r *Runner) save(ctx context.Context) {
	if err := r.store.SaveAll(ctx); err != nil {
		r.logger.Warn("progress not saved", zap.Error(err))
	}
}

func (r *Runner) readLine() (string, error) {
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errQuit
	}
	return strings.TrimSpace(r.in.Text()), nil
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

func (r *Runner) println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// parseAnswer maps an input line to an answer. Choice questions accept
// a choice number or the exact choice text; free-text questions take the line as is.
func parseAnswer(q entities.Question, line string) (string, bool) {
	if q.IsFreeText() {
		return line, true
	}

	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(q.Answers) {
			return "", false
		}
		return q.Answers[n-1], true
	}

	if slices.Contains(q.Answers, line) {
		return line, true
	}

	return "", false
}

func isYes(line string, def bool) bool {
	switch strings.ToLower(line) {
	case "":
		return def
	case "y", "yes":
		return true
	default:
		return false
	}
}
