package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/sentry-coach/pkg/chat"
	"github.com/jwebster45206/sentry-coach/pkg/emotion"
	"github.com/jwebster45206/sentry-coach/pkg/lang"
	"github.com/jwebster45206/sentry-coach/pkg/textfilter"
)

// fixedRand always returns the same index, wrapped to n.
type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

func kidHistory(lines ...string) []chat.Utterance {
	var h []chat.Utterance
	for i, l := range lines {
		h = append(h,
			chat.Utterance{Role: chat.RoleAdult, Text: "adult line", Turn: i},
			chat.Utterance{Role: chat.RoleKid, Text: l, Turn: i},
		)
	}
	return h
}

func TestNormalize_RepetitionAvoidance(t *testing.T) {
	n := New(fixedRand(0))
	last := "Why not? It looks like a prize."

	got := n.Normalize(last, "confused", kidHistory(last), lang.English)

	assert.NotEqual(t, last, got.Text)
	assert.Contains(t, english.variants[emotion.Confused], got.Text)
	assert.True(t, got.Varied)
	assert.Equal(t, emotion.Confused, got.Emotion)
}

func TestNormalize_RepetitionIgnoresCaseAndSpacing(t *testing.T) {
	n := New(fixedRand(1))
	got := n.Normalize("why not?   it looks like a PRIZE.", "confused", kidHistory("Why not? It looks like a prize."), lang.English)
	assert.Equal(t, english.variants[emotion.Confused][1], got.Text)
}

func TestNormalize_VariantSkipsRecentLines(t *testing.T) {
	n := New(fixedRand(0))
	pool := english.variants[emotion.Sad]
	last := "I want it."

	got := n.Normalize(last, "sad", kidHistory(pool[0], last), lang.English)
	assert.Equal(t, pool[1], got.Text)
}

func TestNormalize_VariantsExhaustedAppendsSuffix(t *testing.T) {
	n := New(fixedRand(0))
	pool := english.variants[emotion.Sad]
	last := "I want it."

	got := n.Normalize(last, "sad", kidHistory(pool[0], pool[1], last), lang.English)
	assert.Equal(t, "I want it. I need to go slowly.", got.Text)
}

func TestNormalize_SuffixStaysWithinClamp(t *testing.T) {
	n := New(fixedRand(0))
	long := "one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen seventeen eighteen nineteen twenty."
	pool := english.variants[emotion.Neutral]

	got := n.Normalize(long, "neutral", kidHistory(pool[0], pool[1], long), lang.English)
	assert.True(t, strings.HasSuffix(got.Text, "I need to go slowly."))
	assert.True(t, textfilter.Fits(got.Text, MaxReplyWords, MaxTokenChars), got.Text)
	assert.NotEqual(t, long, got.Text)
}

func TestNormalize_ChineseSuffix(t *testing.T) {
	n := New(fixedRand(0))
	pool := chinese.variants[emotion.Confused]
	last := strings.Repeat("好", 58)

	got := n.Normalize(last, "confused", kidHistory(pool[0], pool[1], last), lang.TraditionalChinese)
	assert.True(t, strings.HasSuffix(got.Text, "我需要慢慢來。"))
	assert.True(t, textfilter.Fits(got.Text, MaxReplyWords, MaxTokenChars))
}

func TestNormalize_ComplianceNeverPairsWithNegativeEmotion(t *testing.T) {
	n := New(fixedRand(0))
	negatives := []emotion.Label{emotion.Confused, emotion.Sad, emotion.Defensive, emotion.Overwhelmed}

	for _, l := range []lang.Language{lang.English, lang.TraditionalChinese} {
		ps := phrasesFor(l)
		for _, em := range negatives {
			for _, phrase := range ps.compliance {
				raw := phrase + ", I will."
				if l.IsChinese() {
					raw = phrase + "。"
				}
				got := n.Normalize(raw, string(em), nil, l)
				assert.False(t, ExpressesCompliance(got.Text), "%s %s %q -> %q", l, em, raw, got.Text)
				assert.Equal(t, ps.nervous, got.Text)
				assert.True(t, got.Repaired)
			}
			// Variants drawn on repetition must also stay consistent.
			for i := range ps.variants[em] {
				got := New(fixedRand(i)).Normalize(ps.nervous, string(em), kidHistory(ps.nervous), l)
				assert.False(t, ExpressesCompliance(got.Text), "%s %s variant %q", l, em, got.Text)
			}
		}
	}
}

func TestNormalize_DistressWithCalmEmotion(t *testing.T) {
	n := New(fixedRand(0))

	got := n.Normalize("I'm scared and I want to cry", "happy", nil, lang.English)
	assert.Equal(t, "Okay, I'm listening.", got.Text)
	assert.Equal(t, emotion.Happy, got.Emotion)

	got = n.Normalize("我好怕", "neutral", nil, lang.TraditionalChinese)
	assert.Equal(t, "嗯，我在聽。", got.Text)

	for _, l := range []lang.Language{lang.English, lang.TraditionalChinese} {
		ps := phrasesFor(l)
		for _, em := range []emotion.Label{emotion.Neutral, emotion.Happy} {
			for _, v := range ps.variants[em] {
				assert.False(t, ExpressesDistress(v), "%s %s variant %q", l, em, v)
			}
		}
	}
}

func TestNormalize_Clamp(t *testing.T) {
	n := New(fixedRand(0))
	raw := strings.Repeat("prize ", 30)

	got := n.Normalize(raw, "happy", nil, lang.English)
	assert.LessOrEqual(t, textfilter.WordCount(got.Text), MaxReplyWords)

	got = n.Normalize(strings.Repeat("獎", 80), "happy", nil, lang.TraditionalChinese)
	assert.Equal(t, MaxTokenChars, len([]rune(got.Text)))
}

func TestNormalize_EmotionMapping(t *testing.T) {
	n := New(fixedRand(0))
	assert.Equal(t, emotion.Happy, n.Normalize("Cool!", "good", nil, lang.English).Emotion)
	assert.Equal(t, emotion.Neutral, n.Normalize("Cool!", "ecstatic-ish", nil, lang.English).Emotion)
}

func TestNormalize_NeverEmpty(t *testing.T) {
	n := New(nil)
	for _, em := range emotion.All {
		got := n.Normalize("   ", string(em), nil, lang.English)
		require.NotEmpty(t, got.Text)
		assert.True(t, got.Repaired)
	}
}

func TestNormalize_ScrubsProfanity(t *testing.T) {
	n := New(fixedRand(0))
	got := n.Normalize("What the hell is this prize?", "neutral", nil, lang.English)
	assert.Equal(t, "What the heck is this prize?", got.Text)
}

func TestNormalizeThought(t *testing.T) {
	n := New(fixedRand(0))
	reply := Reply{Text: "Why not?", Emotion: emotion.Confused}

	assert.Equal(t, "I really want it. I am not sure.", n.NormalizeThought("", reply, lang.English))
	assert.Equal(t, "I really want it. I am not sure.", n.NormalizeThought("why not?", reply, lang.English))
	assert.Equal(t, "It has sparkles.", n.NormalizeThought(" It has sparkles. ", reply, lang.English))
	assert.Equal(t, "我真的很想要。我不確定。", n.NormalizeThought("", reply, lang.TraditionalChinese))
}

func TestLoad(t *testing.T) {
	assert.Equal(t, 0, Load(-3))
	assert.Equal(t, 5, Load(4.6))
	assert.Equal(t, 10, Load(42))
}
