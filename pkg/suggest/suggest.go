// Package suggest proposes three candidate adult replies per turn, one from
// each tone pool, from fixed per-language phrase pools.
package suggest

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jwebster45206/sentry-coach/pkg/lang"
	"github.com/jwebster45206/sentry-coach/pkg/textfilter"
)

type Tone string

const (
	Positive Tone = "positive"
	Neutral  Tone = "neutral"
	Negative Tone = "negative"
)

// Tones is the fixed selection order.
var Tones = []Tone{Positive, Neutral, Negative}

// Topic is the thing the child is looking at, used to fill {topic}.
type Topic string

const (
	TopicPopup Topic = "popup"
	TopicPrize Topic = "prize_link"
	TopicLink  Topic = "link"
)

const (
	MaxWords = 18
	MaxChars = 90
)

// Suggestion is one candidate reply. Key is the normalized template it came
// from, which callers add to their seen set.
type Suggestion struct {
	Text string `json:"text"`
	Tone Tone   `json:"tone"`
	Key  string `json:"key"`
}

// Rand drives the shuffle. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type Generator struct {
	rng Rand
}

// New returns a Generator. A nil rng uses the shared math/rand/v2 source.
func New(rng Rand) *Generator {
	if rng == nil {
		rng = globalRand{}
	}
	return &Generator{rng: rng}
}

// Generate returns exactly three suggestions, one per tone, in random order.
// Templates whose key appears in seen are skipped while any remain.
func (g *Generator) Generate(l lang.Language, lastChildReply string, seen []string) []Suggestion {
	cat := catalogFor(l)
	noun := cat.nouns[DetectTopic(l, lastChildReply)]

	exclude := make(map[string]bool, len(seen)+len(Tones))
	for _, s := range seen {
		exclude[textfilter.Key(s)] = true
	}

	out := make([]Suggestion, 0, len(Tones))
	for _, tone := range Tones {
		pool := cat.pools[tone]
		chosen := pool[0]
		for _, tpl := range pool {
			if !exclude[textfilter.Key(tpl)] {
				chosen = tpl
				break
			}
		}
		key := textfilter.Key(chosen)
		exclude[key] = true

		text := strings.ReplaceAll(chosen, topicPlaceholder, noun)
		out = append(out, Suggestion{
			Text: finish(text),
			Tone: tone,
			Key:  key,
		})
	}

	for i := len(out) - 1; i > 0; i-- {
		j := g.rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Texts returns just the suggestion strings.
func Texts(s []Suggestion) []string {
	out := make([]string, len(s))
	for i := range s {
		out[i] = s[i].Text
	}
	return out
}

// Keys returns the template keys of s.
func Keys(s []Suggestion) []string {
	out := make([]string, len(s))
	for i := range s {
		out[i] = s[i].Key
	}
	return out
}

// DetectTopic picks the topic noun from the child's last reply. Pop-up
// keywords win over prize keywords; anything else is a plain link.
func DetectTopic(l lang.Language, lastChildReply string) Topic {
	folded := textfilter.Fold(lastChildReply)
	for _, cat := range []*catalog{catalogFor(l), &englishCatalog, &chineseCatalog} {
		for _, rule := range cat.topics {
			if textfilter.ContainsAnyPhrase(folded, rule.keywords) {
				return rule.topic
			}
		}
	}
	return TopicLink
}

var (
	englishClickRe = regexp.MustCompile(`(?i)\b(clicking on|click on|clicking|clicked|click|tapping on|tap on|tapping|tap|open it|open the)\b`)
	chineseClickRe = regexp.MustCompile(`點擊|點開|點下去|點進去|按下去`)

	englishClickRewrites = map[string]string{
		"clicking on": "closing",
		"click on":    "close",
		"clicking":    "closing",
		"clicked":     "closed",
		"click":       "close",
		"tapping on":  "closing",
		"tap on":      "close",
		"tapping":     "closing",
		"tap":         "close",
		"open it":     "close it",
		"open the":    "close the",
	}
	chineseClickRewrites = map[string]string{
		"點擊":  "關閉",
		"點開":  "關掉",
		"點下去": "關掉",
		"點進去": "關掉",
		"按下去": "關掉",
	}
)

// RewriteClicks replaces phrases that endorse clicking with their "close"
// counterparts. Negated uses ("don't click", "before clicking") are kept.
func RewriteClicks(text string) string {
	text = rewrite(text, englishClickRe, englishClickRewrites)
	return rewrite(text, chineseClickRe, chineseClickRewrites)
}

func rewrite(text string, re *regexp.Regexp, table map[string]string) string {
	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		match := text[m[0]:m[1]]
		repl, ok := table[strings.ToLower(match)]
		if !ok || textfilter.Negated(textfilter.Fold(text[:m[0]])) {
			repl = match
		} else if r, _ := utf8.DecodeRuneInString(match); unicode.IsUpper(r) {
			repl = capitalize(repl)
		}
		b.WriteString(repl)
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func finish(text string) string {
	text = RewriteClicks(text)
	return textfilter.ClampChars(textfilter.Clamp(text, MaxWords, MaxChars), MaxChars)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
