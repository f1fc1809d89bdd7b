package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/sentry-coach/pkg/lang"
	"github.com/jwebster45206/sentry-coach/pkg/textfilter"
)

// zeroRand returns 0, so the shuffle rotates positive to the back.
type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

// identityRand leaves the order untouched.
type identityRand struct{}

func (identityRand) IntN(n int) int { return n - 1 }

func TestGenerate_OnePerTone(t *testing.T) {
	g := New(nil)

	for _, l := range []lang.Language{lang.English, lang.TraditionalChinese} {
		for i := 0; i < 20; i++ {
			got := g.Generate(l, "It says I won a prize!", nil)
			require.Len(t, got, 3)

			tones := map[Tone]int{}
			for _, s := range got {
				tones[s.Tone]++
				assert.LessOrEqual(t, textfilter.WordCount(s.Text), MaxWords)
				assert.LessOrEqual(t, len([]rune(s.Text)), MaxChars)
				assert.NotContains(t, s.Text, topicPlaceholder)
			}
			assert.Equal(t, map[Tone]int{Positive: 1, Neutral: 1, Negative: 1}, tones)
		}
	}
}

func TestGenerate_TopicSubstitution(t *testing.T) {
	g := New(identityRand{})

	got := g.Generate(lang.English, "A pop-up says I won!", nil)
	assert.Equal(t, "Let's look at the pop-up together before we do anything.", got[0].Text)
	assert.Equal(t, "Can you show me the pop-up first?", got[1].Text)
	assert.Equal(t, "Because I said so. Forget the pop-up.", got[2].Text)

	got = g.Generate(lang.English, "It says I won a prize!", nil)
	assert.Equal(t, "Can you show me the prize link first?", got[1].Text)

	got = g.Generate(lang.TraditionalChinese, "我收到一個有連結的訊息。", nil)
	assert.Equal(t, "可以先給我看這個連結嗎？", got[1].Text)
}

func TestGenerate_SkipsSeen(t *testing.T) {
	g := New(identityRand{})

	first := g.Generate(lang.English, "", nil)
	second := g.Generate(lang.English, "", Keys(first))

	for i := range first {
		assert.NotEqual(t, first[i].Key, second[i].Key)
	}
	assert.Equal(t, "Good job telling me. Who sent this link?", second[0].Text)
}

func TestGenerate_ExhaustedPoolFallsBackToFirst(t *testing.T) {
	g := New(identityRand{})

	var seen []string
	for _, tone := range Tones {
		for _, tpl := range englishCatalog.pools[tone] {
			seen = append(seen, tpl)
		}
	}
	got := g.Generate(lang.English, "", seen)
	require.Len(t, got, 3)
	assert.Equal(t, textfilter.Key(englishCatalog.pools[Positive][0]), got[0].Key)
	assert.Equal(t, textfilter.Key(englishCatalog.pools[Neutral][0]), got[1].Key)
	assert.Equal(t, textfilter.Key(englishCatalog.pools[Negative][0]), got[2].Key)
}

func TestGenerate_Shuffle(t *testing.T) {
	got := New(zeroRand{}).Generate(lang.English, "", nil)
	assert.Equal(t, []Tone{Neutral, Negative, Positive}, []Tone{got[0].Tone, got[1].Tone, got[2].Tone})
}

func TestDetectTopic(t *testing.T) {
	tests := []struct {
		text     string
		language lang.Language
		expected Topic
	}{
		{"A pop-up appeared", lang.English, TopicPopup},
		{"The popup says I won a prize", lang.English, TopicPopup},
		{"I won free coins!", lang.English, TopicPrize},
		{"Should I click it?", lang.English, TopicLink},
		{"跳出一個視窗", lang.TraditionalChinese, TopicPopup},
		{"我中獎了！", lang.TraditionalChinese, TopicPrize},
		{"我中獎了！", lang.English, TopicPrize},
		{"", lang.TraditionalChinese, TopicLink},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectTopic(tt.language, tt.text))
		})
	}
}

func TestRewriteClicks(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Click the link now.", "Close the link now."},
		{"Just click on it.", "Just close it."},
		{"Don't click the link.", "Don't click the link."},
		{"Ask an adult before clicking.", "Ask an adult before clicking."},
		{"Let's open it together.", "Let's close it together."},
		{"快點擊它", "快關閉它"},
		{"不要點擊連結", "不要點擊連結"},
		{"Nothing to change.", "Nothing to change."},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, RewriteClicks(tt.input))
		})
	}
}

func TestPools(t *testing.T) {
	for _, cat := range []*catalog{&englishCatalog, &chineseCatalog} {
		for _, tone := range Tones {
			pool := cat.pools[tone]
			assert.Len(t, pool, 10)
			keys := map[string]bool{}
			for _, tpl := range pool {
				keys[textfilter.Key(tpl)] = true
				assert.Equal(t, tpl, RewriteClicks(tpl), "templates should not need the click rewrite")
			}
			assert.Len(t, keys, 10)
		}
	}
}

func TestDraft(t *testing.T) {
	draft := Draft(lang.English, []Action{ActionDontClick, ActionAskAdult, "bogus", ActionDontClick})
	assert.Equal(t, "don't click the link and ask an adult before clicking", draft)

	got := ExpandDraft(lang.English, draft)
	require.Len(t, got, 4)
	assert.Equal(t, "Don't click the link and ask an adult before clicking.", got[0])
	assert.Equal(t, "Let's try this: don't click the link and ask an adult before clicking.", got[1])
	assert.Equal(t, "I'm here with you. Don't click the link and ask an adult before clicking.", got[2])

	zh := Draft(lang.TraditionalChinese, []Action{ActionScreenshot, ActionShowLink})
	assert.Equal(t, "先截圖、先給我看連結", zh)
	assert.Equal(t, "先截圖、先給我看連結。", ExpandDraft(lang.TraditionalChinese, zh)[0])

	assert.Empty(t, Draft(lang.English, nil))
	assert.Nil(t, ExpandDraft(lang.English, "  "))
}
