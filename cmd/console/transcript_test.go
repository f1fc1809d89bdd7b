package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwebster45206/sentry-coach/pkg/analysis"
	"github.com/jwebster45206/sentry-coach/pkg/chat"
	"github.com/jwebster45206/sentry-coach/pkg/lang"
	"github.com/jwebster45206/sentry-coach/pkg/state"
)

func TestFormatTranscript(t *testing.T) {
	history := []chat.Utterance{
		{Role: chat.RoleKid, Text: "Can I click it?"},
		{Role: chat.RoleAdult, Text: "Let's look together."},
	}
	assert.Equal(t, "Child: Can I click it?\nYou: Let's look together.\n", formatTranscript(history, lang.English))
	assert.Equal(t, "孩子：Can I click it?\n你：Let's look together.\n", formatTranscript(history, lang.TraditionalChinese))
	assert.Empty(t, formatTranscript(nil, lang.English))
}

func TestFormatReport(t *testing.T) {
	r := &analysis.Report{
		Language: lang.English,
		Ended:    true,
		Outcome:  state.OutcomeSuccess,
		Summary:  "Well done.",
		Interventions: []analysis.Intervention{
			{Round: 1, AdultMessage: "Let's ask mom.", ChildReply: "Okay.", Evaluation: analysis.EvaluationPositive, Reason: "Supportive."},
		},
	}
	out := formatReport(r)
	assert.Contains(t, out, "Overall Outcome: Success")
	assert.Contains(t, out, "Round 1 [Effective]")
	assert.Contains(t, out, "Your Response: Let's ask mom.")
	assert.NotContains(t, out, "Child's Thought")

	r.Ended = false
	r.Interventions = nil
	out = formatReport(r)
	assert.Contains(t, out, "Overall Outcome: In progress")
	assert.NotContains(t, out, "Intervention Analysis\n")
}

func TestSuggestionPick(t *testing.T) {
	tests := []struct {
		input string
		idx   int
		ok    bool
	}{
		{"1", 0, true},
		{" 3 ", 2, true},
		{"4", 0, false},
		{"0", 0, false},
		{"one", 0, false},
	}
	for _, tt := range tests {
		idx, ok := suggestionPick(tt.input, 3)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.idx, idx, tt.input)
	}
}
