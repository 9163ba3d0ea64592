// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/service"
)

// Plain text messages.
const (
	msgInternalError    = "Something went wrong. Please try again later."
	msgForbidden        = "Sorry, this quiz bot is private."
	msgUnknownCommand   = "Unknown command. Available commands:\n\n/practice - practice the whole bank\n/test - take a short test\n/resume - continue the current quiz\n/sessions - list saved quizzes\n/delete ID - delete a quiz\n/report - show results"
	msgEmptyBank        = "The question bank is empty, there is nothing to ask."
	msgNoActiveQuiz     = "There is no quiz in progress. Start one with /practice or /test."
	msgNothingToResume  = "There is no unfinished quiz to resume."
	msgSessionCompleted = "That quiz is already completed. Use /report to see the results."
	msgSessionNotFound  = "No quiz with that ID. See /sessions."
	msgUseDelete        = "Usage: /delete ID (see /sessions)."
	msgSessionDeleted   = "Quiz deleted."
	msgNoSessions       = "No saved quizzes yet. Start one with /practice or /test."
	msgUseButtons       = "Please pick one of the answers below the question."
	msgAlreadyAnswered  = "You have already answered this question."
)

// Callback notices, shown as a toast.
const (
	noticeStale         = "This question is no longer active."
	noticeCorrect       = "Correct!"
	noticeIncorrect     = "Incorrect"
	noticeFirstQuestion = "This is the first question."
	noticeNoActiveQuiz  = "No quiz in progress."
	noticeNoReport      = "Finish a quiz first."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// code renders s as inline code; only ` and \ need escaping there.
func code(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "`", "\\`")
	return "`" + r.Replace(s) + "`"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// formatWelcome builds the /start message (MarkdownV2 safe).
func formatWelcome(bankSize, testLength int) string {
	var sb strings.Builder

	sb.WriteString(bold("Quiz Trainer"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("The question bank has %d questions.", bankSize)))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("/practice - go through all %d questions in random order", bankSize)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("/test - answer %d random questions", min(testLength, bankSize))))
	sb.WriteString("\n")
	sb.WriteString(md("/resume - continue where you left off"))
	sb.WriteString("\n")
	sb.WriteString(md("/sessions - saved quizzes, /report - results"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Pick an answer with the buttons. For questions without choices just type the answer."))

	return sb.String()
}

// formatQuizStart builds the quiz start message (MarkdownV2 safe).
func formatQuizStart(s *entities.Session, resumed bool) string {
	title := "🎯 Quiz started!"
	if resumed {
		title = "📝 Continuing the quiz..."
	}

	return fmt.Sprintf(
		"%s\n\n%s %s\n%s %s",
		bold(title),
		md("Mode:"),
		bold(formatMode(s)),
		md("Questions:"),
		bold(fmt.Sprintf("%d", s.TotalQuestions)),
	)
}

func formatMode(s *entities.Session) string {
	if s.IsTest {
		return "📝 Test"
	}
	return "📚 Practice"
}

// formatQuestion formats a question (MarkdownV2 safe for question text).
func formatQuestion(q entities.Question, position int, s *entities.Session) string {
	var sb strings.Builder

	sb.WriteString(md(fmt.Sprintf("Question %d of %d · score %d", position+1, s.TotalQuestions, s.Score)))
	sb.WriteString("\n\n")
	sb.WriteString(bold(q.Question))

	switch {
	case s.IsAnswered(position):
		sb.WriteString("\n\n")
		sb.WriteString(italic("Already answered."))
	case q.IsFreeText():
		sb.WriteString("\n\n")
		sb.WriteString(italic("Type your answer."))
	}

	return sb.String()
}

// formatAnswerFeedback formats feedback for an answer (MarkdownV2 safe).
func formatAnswerFeedback(result entities.ScoredResult) string {
	if result.Correct {
		return md("✅ Correct!")
	}

	text := fmt.Sprintf(
		"%s\n\n%s %s",
		md("❌ Incorrect"),
		md("Correct answer:"),
		bold(result.CorrectAnswer),
	)
	if result.NearMiss {
		text += "\n" + italic("So close! Check the spelling.")
	}
	return text
}

// formatSummary formats the end-of-session report (MarkdownV2 safe).
func formatSummary(summary entities.Summary) string {
	emoji := "📚"
	switch {
	case summary.Percentage >= 90:
		emoji = "🌟"
	case summary.Percentage >= 70:
		emoji = "👍"
	case summary.Percentage >= 50:
		emoji = "💪"
	}

	return fmt.Sprintf(
		"%s %s\n\n%s %s\n%s %s\n%s %s\n%s %s\n%s",
		md(emoji),
		bold("Quiz complete!"),
		md("Total questions:"),
		bold(fmt.Sprintf("%d", summary.Total)),
		md("Correct:"),
		bold(fmt.Sprintf("%d", summary.Correct)),
		md("Wrong:"),
		bold(fmt.Sprintf("%d", summary.Wrong)),
		md("Score:"),
		bold(service.FormatPercentage(summary.Percentage)),
		md(buildProgressBar(summary.Correct, summary.Total, 10)),
	)
}

// Telegram rejects messages longer than 4096 characters, so long lists are paged.
const (
	sessionsPerPage = 10
	missedPerPage   = 4
	maxFieldRunes   = 150
)

// formatMissed renders one page of the missed questions (MarkdownV2 safe).
func formatMissed(missed []entities.WrongAnswer, page int) (text string, totalPages int) {
	if len(missed) == 0 {
		return md("No missed questions. Well done!"), 1
	}

	totalPages = pageCount(len(missed), missedPerPage)
	start, end := pageBounds(len(missed), page, missedPerPage)

	var sb strings.Builder
	sb.WriteString(bold("Missed questions"))
	sb.WriteString(formatPageNumber(page, totalPages))
	for i := start; i < end; i++ {
		w := missed[i]
		sb.WriteString("\n\n")
		sb.WriteString(md(fmt.Sprintf("%d. %s", i+1, clip(w.Question.Question))))
		sb.WriteString("\n")
		sb.WriteString(md("Your answer: " + clip(w.Given)))
		sb.WriteString("\n")
		sb.WriteString(md("Correct answer: "))
		sb.WriteString(bold(clip(w.Question.Correct)))
	}
	return sb.String(), totalPages
}

// formatSessions renders one page of saved sessions, newest first (MarkdownV2 safe).
func formatSessions(
	sessions []*entities.Session,
	currentID string,
	history service.HistorySummary,
	page int,
) (text string, totalPages int) {
	totalPages = pageCount(len(sessions), sessionsPerPage)
	start, end := pageBounds(len(sessions), page, sessionsPerPage)

	var sb strings.Builder

	sb.WriteString(bold("📋 Saved quizzes"))
	sb.WriteString(formatPageNumber(page, totalPages))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf(
		"%d total, %d completed, %d in progress, accuracy %s",
		history.Sessions,
		history.Completed,
		history.InProgress,
		service.FormatPercentage(history.Accuracy),
	)))

	for _, s := range sessions[start:end] {
		status := fmt.Sprintf("question %d of %d", s.CurrentQuestionIndex+1, s.TotalQuestions)
		if s.Completed {
			status = "completed"
		}

		sb.WriteString("\n\n")
		if s.ID == currentID {
			sb.WriteString(md("▶️ "))
		}
		sb.WriteString(md(fmt.Sprintf("%s · %s · %s · score %d/%d",
			s.Timestamp.Format("2006-01-02 15:04"),
			formatMode(s),
			status,
			s.Score,
			s.TotalQuestions,
		)))
		sb.WriteString("\n")
		sb.WriteString(code(s.ID))
	}

	return sb.String(), totalPages
}

func formatPageNumber(page, totalPages int) string {
	if totalPages <= 1 {
		return ""
	}
	return " " + md(fmt.Sprintf("(page %d of %d)", page+1, totalPages))
}

func pageCount(n, perPage int) int {
	return max(1, (n+perPage-1)/perPage)
}

// pageBounds returns the slice bounds of page; pages past the end are empty.
func pageBounds(n, page, perPage int) (start, end int) {
	start = min(page*perPage, n)
	end = min(start+perPage, n)
	return start, end
}

// clip shortens s to maxFieldRunes runes.
func clip(s string) string {
	r := []rune(s)
	if len(r) <= maxFieldRunes {
		return s
	}
	return string(r[:maxFieldRunes-1]) + "…"
}

// buildProgressBar creates an ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return strings.Repeat("░", length)
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled
	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}
