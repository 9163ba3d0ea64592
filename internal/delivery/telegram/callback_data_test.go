package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallbackDataRoundTrip(t *testing.T) {
	data := buildAnswerCallback("0192b7c4-1f2e-7a3b-9c4d-5e6f7a8b9c0d", 3, 1)
	assert.Equal(t, "ans:0192b7c4-1f2e-7a3b-9c4d-5e6f7a8b9c0d:3:1", data)
	assert.LessOrEqual(t, len(data), 64, "telegram limits callback data to 64 bytes")

	cd := decodeCallback(data)
	assert.Equal(t, actionAnswer, cd.Action)
	assert.Equal(t, data, cd.Raw)

	p, ok := parseAnswerParams(cd.Params)
	assert.True(t, ok)
	assert.Equal(t, answerParams{SessionID: "0192b7c4-1f2e-7a3b-9c4d-5e6f7a8b9c0d", Position: 3, Choice: 1}, p)
}

func TestCallbackBuilders(t *testing.T) {
	assert.Equal(t, "nav:next", buildNavCallback(navNext))
	assert.Equal(t, "nav:prev", buildNavCallback(navPrev))
	assert.Equal(t, "mode:test", buildModeCallback(modeTest))
	assert.Equal(t, "review", buildReviewCallback())

	cd := decodeCallback("review")
	assert.Equal(t, actionReview, cd.Action)
	assert.Empty(t, cd.Params)
}

func TestParseAnswerParams(t *testing.T) {
	tests := []struct {
		name   string
		params []string
	}{
		{"too few", []string{"id", "1"}},
		{"too many", []string{"id", "1", "2", "3"}},
		{"empty id", []string{"", "1", "2"}},
		{"bad position", []string{"id", "x", "2"}},
		{"bad choice", []string{"id", "1", "y"}},
		{"negative", []string{"id", "-1", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := parseAnswerParams(tt.params)
			assert.False(t, ok)
		})
	}
}

func TestParsePageParams(t *testing.T) {
	data := buildPageCallback(listSessions, 3)
	assert.Equal(t, "page:sessions:3", data)

	list, page, ok := parsePageParams(decodeCallback(data).Params)
	assert.True(t, ok)
	assert.Equal(t, listSessions, list)
	assert.Equal(t, 3, page)

	for _, params := range [][]string{
		{"sessions"},
		{"sessions", "-1"},
		{"sessions", "one"},
		{"names", "0"},
		{"missed", "0", "1"},
	} {
		_, _, ok := parsePageParams(params)
		assert.False(t, ok, params)
	}
}
