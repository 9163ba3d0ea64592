package telegram

import (
	"strconv"
	"strings"
)

// Callback actions.
const (
	actionAnswer = "ans"
	actionNav    = "nav"
	actionMode   = "mode"
	actionReview = "review"
	actionPage   = "page"
)

// Navigation sub-actions.
const (
	navNext = "next"
	navPrev = "prev"
)

// Mode sub-actions.
const (
	modePractice = "practice"
	modeTest     = "test"
)

// Paged lists.
const (
	listSessions = "sessions"
	listMissed   = "missed"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// answerParams is the payload of an answer button.
type answerParams struct {
	SessionID string
	Position  int
	Choice    int
}

// parseAnswerParams validates the params of an "ans" callback.
func parseAnswerParams(params []string) (answerParams, bool) {
	if len(params) != 3 || params[0] == "" {
		return answerParams{}, false
	}

	position, err1 := strconv.Atoi(params[1])
	choice, err2 := strconv.Atoi(params[2])
	if err1 != nil || err2 != nil || position < 0 || choice < 0 {
		return answerParams{}, false
	}

	return answerParams{SessionID: params[0], Position: position, Choice: choice}, true
}

// buildAnswerCallback builds callback data for answering a question with a choice.
func buildAnswerCallback(sessionID string, position, choice int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{
			sessionID,
			strconv.Itoa(position),
			strconv.Itoa(choice),
		},
	}.encode()
}

func buildNavCallback(direction string) string {
	return callbackData{Action: actionNav, Params: []string{direction}}.encode()
}

func buildModeCallback(mode string) string {
	return callbackData{Action: actionMode, Params: []string{mode}}.encode()
}

func buildReviewCallback() string {
	return actionReview
}

// buildPageCallback builds callback data for opening a page of a long list.
func buildPageCallback(list string, page int) string {
	return callbackData{Action: actionPage, Params: []string{list, strconv.Itoa(page)}}.encode()
}

// parsePageParams validates the params of a "page" callback.
func parsePageParams(params []string) (list string, page int, ok bool) {
	if len(params) != 2 {
		return "", 0, false
	}

	page, err := strconv.Atoi(params[1])
	if err != nil || page < 0 {
		return "", 0, false
	}

	switch params[0] {
	case listSessions, listMissed:
		return params[0], page, true
	default:
		return "", 0, false
	}
}
