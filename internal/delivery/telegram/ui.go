package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

// buildModeKeyboard builds the keyboard for starting a new quiz.
func buildModeKeyboard(bankSize, testLength int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("📚 Practice (%d)", bankSize),
				buildModeCallback(modePractice),
			),
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("📝 Test (%d)", min(testLength, bankSize)),
				buildModeCallback(modeTest),
			),
		),
	)
}

// buildQuestionKeyboard builds the keyboard under a question: one button
// per choice unless already answered, then navigation.
func buildQuestionKeyboard(s *entities.Session, q entities.Question) tgbotapi.InlineKeyboardMarkup {
	position := s.CurrentQuestionIndex

	var rows [][]tgbotapi.InlineKeyboardButton
	if !s.IsAnswered(position) {
		for i, answer := range q.Answers {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(answer, buildAnswerCallback(s.ID, position, i)),
			))
		}
	}

	var nav []tgbotapi.InlineKeyboardButton
	if position > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Previous", buildNavCallback(navPrev)))
	}

	next := "Skip ▶️"
	switch {
	case s.IsAnswered(position) && s.IsLast():
		next = "Finish 🏁"
	case s.IsAnswered(position):
		next = "Next ▶️"
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(next, buildNavCallback(navNext)))

	rows = append(rows, nav)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildResultKeyboard builds the keyboard for the quiz results screen.
func buildResultKeyboard(withReview bool, bankSize, testLength int) tgbotapi.InlineKeyboardMarkup {
	kb := buildModeKeyboard(bankSize, testLength)
	if withReview {
		review := tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔍 Review missed questions", buildReviewCallback()),
		)
		kb.InlineKeyboard = append([][]tgbotapi.InlineKeyboardButton{review}, kb.InlineKeyboard...)
	}
	return kb
}

// buildPageKeyboard builds the prev/next row of a paged list.
// It returns nil when everything fits on one page.
func buildPageKeyboard(list string, page, totalPages int) *tgbotapi.InlineKeyboardMarkup {
	if totalPages <= 1 {
		return nil
	}

	var row []tgbotapi.InlineKeyboardButton
	if page > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("◀️ Back", buildPageCallback(list, page-1)))
	}
	if page < totalPages-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", buildPageCallback(list, page+1)))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(row)
	return &kb
}
