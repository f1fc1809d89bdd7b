package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwebster45206/sentry-coach/pkg/lang"
)

func TestEvaluate(t *testing.T) {
	e := New()

	tests := []struct {
		name       string
		message    string
		language   lang.Language
		scores     Scores
		positive   bool
		xDelta     int
		reasonCode ReasonCode
	}{
		{
			name:       "boundary with reason and guidance",
			message:    "Don't click that, it's dangerous, let's ask dad",
			language:   lang.English,
			scores:     Scores{1, 1, 1},
			positive:   true,
			reasonCode: ReasonAllThreePositive,
		},
		{
			name:       "abuse with unsafe command",
			message:    "Shut up and click it now",
			language:   lang.English,
			scores:     Scores{-1, -1, 0},
			xDelta:     1,
			reasonCode: ReasonAbusiveLanguage,
		},
		{
			name:       "unsafe encouragement",
			message:    "Go ahead, you can trust it.",
			language:   lang.English,
			scores:     Scores{-1, -1, 0},
			xDelta:     1,
			reasonCode: ReasonUnsafeEncouragement,
		},
		{
			name:       "negated click is not encouragement",
			message:    "Please don't click it, it might be a scam.",
			language:   lang.English,
			scores:     Scores{1, 0, 0},
			positive:   true,
			reasonCode: ReasonExplanationOnly,
		},
		{
			name:       "explanation and stabilization",
			message:    "It's okay, prize links can be a trick.",
			language:   lang.English,
			scores:     Scores{1, 1, 0},
			positive:   true,
			reasonCode: ReasonExplanationAndStabilization,
		},
		{
			name:       "support without a reason",
			message:    "I'm here with you. We'll figure it out together.",
			language:   lang.English,
			scores:     Scores{0, 1, 0},
			positive:   true,
			reasonCode: ReasonGuidanceOnly,
		},
		{
			name:       "don't worry is not a boundary",
			message:    "Don't worry",
			language:   lang.English,
			scores:     Scores{0, 1, 0},
			positive:   true,
			reasonCode: ReasonGuidanceOnly,
		},
		{
			name:       "nothing matched",
			message:    "Hmm, I see.",
			language:   lang.English,
			reasonCode: ReasonNeutralUnclear,
		},
		{
			name:       "empty input",
			message:    "   ",
			language:   lang.English,
			reasonCode: ReasonNeutralUnclear,
		},
		{
			name:       "chinese boundary with reason and guidance",
			message:    "先不要點它，可能是詐騙，你覺得呢？",
			language:   lang.TraditionalChinese,
			scores:     Scores{1, 1, 1},
			positive:   true,
			reasonCode: ReasonAllThreePositive,
		},
		{
			name:       "chinese abuse",
			message:    "閉嘴，點下去就對了",
			language:   lang.TraditionalChinese,
			scores:     Scores{-1, -1, 0},
			xDelta:     1,
			reasonCode: ReasonAbusiveLanguage,
		},
		{
			name:       "chinese unsafe encouragement",
			message:    "放心吧，直接點",
			language:   lang.TraditionalChinese,
			scores:     Scores{-1, -1, 0},
			xDelta:     1,
			reasonCode: ReasonUnsafeEncouragement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Evaluate(tt.message, tt.language)
			assert.Equal(t, tt.scores, got.Scores)
			assert.Equal(t, tt.positive, got.IsPositive)
			assert.Equal(t, tt.xDelta, got.XDelta)
			assert.Equal(t, tt.reasonCode, got.ReasonCode)
			if tt.positive {
				assert.Equal(t, 1, got.StarDelta)
			} else {
				assert.Equal(t, 0, got.StarDelta)
			}
		})
	}
}

func TestEvaluate_AbuseDominates(t *testing.T) {
	e := New()
	messages := []string{
		"You idiot, let's look together because it's dangerous, what do you think?",
		"Stupid! Don't click it, it's a scam, I'm here to help",
		"笨蛋，我們一起看，因為可能是詐騙，你覺得呢？",
		"What the hell, let's ask mom together",
	}
	for _, m := range messages {
		got := e.Evaluate(m, lang.English)
		assert.False(t, got.IsPositive, m)
		assert.Equal(t, 1, got.XDelta, m)
		assert.Equal(t, -1, got.Scores.ExplanationVsCommand, m)
		assert.Equal(t, -1, got.Scores.EmotionalStabilization, m)
		assert.Equal(t, ReasonAbusiveLanguage, got.ReasonCode, m)
		assert.True(t, got.Matched(FamilyAbusive), m)
	}
}

func TestEvaluate_Feedback(t *testing.T) {
	e := New()

	pos := e.Evaluate("Let's look together, it might be a trick", lang.English)
	assert.Equal(t, "Supportive guidance. The child hears a reason and helps decide.", pos.Feedback.Summary)
	assert.NotEmpty(t, pos.Feedback.Strengths)
	assert.Len(t, pos.Feedback.Suggestions, 4)

	neg := e.Evaluate("Just click it", lang.TraditionalChinese)
	assert.Equal(t, "這會把孩子推向危險的連結。", neg.Feedback.Summary)
	assert.Empty(t, neg.Feedback.Strengths)
	assert.Contains(t, neg.Feedback.Risks, "可能會增加情緒負擔")
}

func TestNewWithRules(t *testing.T) {
	e := NewWithRules([]Rule{
		{
			Family:  FamilyGuidance,
			Match:   anyPhrase("pineapple"),
			Effects: guideEffects,
		},
	})
	got := e.Evaluate("Pineapple?", lang.English)
	assert.Equal(t, Scores{0, 1, 1}, got.Scores)
	assert.True(t, got.IsPositive)
	assert.Equal(t, ReasonGuidanceOnly, got.ReasonCode)
}
