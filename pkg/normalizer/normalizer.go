// Package normalizer turns an untrusted child reply into one that is short,
// carries a canonical emotion, does not contradict that emotion, and does not
// repeat the child's last line.
package normalizer

import (
	"math"
	"math/rand/v2"
	"strings"

	"github.com/jwebster45206/sentry-coach/pkg/chat"
	"github.com/jwebster45206/sentry-coach/pkg/emotion"
	"github.com/jwebster45206/sentry-coach/pkg/lang"
	"github.com/jwebster45206/sentry-coach/pkg/textfilter"
)

const (
	MaxReplyWords = 20
	MaxTokenChars = 60
	RecentWindow  = 4
	MaxLoad       = 10
)

// Rand picks variant indexes. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Reply is a cleaned child reply.
type Reply struct {
	Text     string        `json:"child_reply"`
	Emotion  emotion.Label `json:"emotion"`
	Repaired bool          `json:"repaired,omitempty"`
	Varied   bool          `json:"varied,omitempty"`
}

type Normalizer struct {
	rng       Rand
	profanity *textfilter.ProfanityFilter
}

// New returns a Normalizer drawing from rng. A nil rng uses the shared
// math/rand/v2 source, which is safe for concurrent sessions.
func New(rng Rand) *Normalizer {
	if rng == nil {
		rng = globalRand{}
	}
	return &Normalizer{
		rng:       rng,
		profanity: textfilter.NewProfanityFilter(),
	}
}

// Normalize cleans raw in four steps: length clamp, emotion mapping,
// emotion/text repair, and repetition avoidance against history.
func (n *Normalizer) Normalize(raw, label string, history []chat.Utterance, l lang.Language) Reply {
	ps := phrasesFor(l)

	text := n.profanity.FilterText(strings.TrimSpace(raw))
	text = textfilter.Clamp(text, MaxReplyWords, MaxTokenChars)

	out := Reply{Emotion: emotion.Normalize(label)}

	switch {
	case text == "" && out.Emotion.IsNegative():
		text, out.Repaired = ps.nervous, true
	case text == "":
		text, out.Repaired = ps.listening, true
	case out.Emotion.IsNegative() && ExpressesCompliance(text):
		text, out.Repaired = ps.nervous, true
	case !out.Emotion.IsNegative() && ExpressesDistress(text):
		text, out.Repaired = ps.listening, true
	}

	recent := chat.LastByRole(history, chat.RoleKid, RecentWindow)
	if len(recent) > 0 && textfilter.Key(recent[len(recent)-1].Text) == textfilter.Key(text) {
		text = n.vary(text, out.Emotion, recent, ps)
		out.Varied = true
	}

	out.Text = text
	return out
}

// NormalizeThought cleans the thought bubble. A missing thought, or one that
// just repeats the spoken reply, is replaced with a canned line for the emotion.
func (n *Normalizer) NormalizeThought(raw string, reply Reply, l lang.Language) string {
	ps := phrasesFor(l)
	thought := textfilter.Clamp(n.profanity.FilterText(strings.TrimSpace(raw)), MaxReplyWords, MaxTokenChars)
	if thought == "" || textfilter.Key(thought) == textfilter.Key(reply.Text) {
		return ps.thoughts[reply.Emotion]
	}
	return thought
}

// Load rounds an emotional load reported by the model into 0..MaxLoad.
func Load(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(MaxLoad, v))))
}

// ExpressesCompliance reports whether text agrees to stop, in either language.
func ExpressesCompliance(text string) bool {
	folded := textfilter.Fold(text)
	return textfilter.ContainsAnyPhrase(folded, english.compliance) ||
		textfilter.ContainsAnyPhrase(folded, chinese.compliance)
}

// ExpressesDistress reports whether text sounds upset, in either language.
func ExpressesDistress(text string) bool {
	folded := textfilter.Fold(text)
	return textfilter.ContainsAnyPhrase(folded, english.distress) ||
		textfilter.ContainsAnyPhrase(folded, chinese.distress)
}

func (n *Normalizer) vary(text string, em emotion.Label, recent []chat.Utterance, ps *phraseSet) string {
	seen := map[string]bool{textfilter.Key(text): true}
	for _, u := range recent {
		seen[textfilter.Key(u.Text)] = true
	}

	pool := ps.variants[em]
	if len(pool) > 0 {
		start := n.rng.IntN(len(pool))
		for i := range pool {
			v := pool[(start+i)%len(pool)]
			if !seen[textfilter.Key(v)] {
				return v
			}
		}
	}
	return withSuffix(text, ps)
}

// withSuffix appends the slow-down line, trimming the tail of text until the
// result fits the length clamp.
func withSuffix(text string, ps *phraseSet) string {
	base := text
	for {
		candidate := strings.TrimSpace(base + ps.separator + ps.slowSuffix)
		if base == "" || textfilter.Fits(candidate, MaxReplyWords, MaxTokenChars) {
			return candidate
		}
		base = dropTail(base)
	}
}

func dropTail(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexAny(s, " \t\n"); i >= 0 {
		return s[:i]
	}
	r := []rune(s)
	if len(r) == 0 {
		return ""
	}
	return string(r[:len(r)-1])
}
