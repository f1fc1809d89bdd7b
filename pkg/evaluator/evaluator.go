// Package evaluator scores a single adult utterance against fixed pattern
// families. No model call is involved; the result is a pure function of the
// utterance and language.
package evaluator

import (
	"strings"

	"github.com/jwebster45206/sentry-coach/pkg/lang"
	"github.com/jwebster45206/sentry-coach/pkg/textfilter"
)

// Dimension is one of the three scored axes.
type Dimension int

const (
	ExplanationVsCommand Dimension = iota
	EmotionalStabilization
	GuidedDecision
	numDimensions
)

// Family names a group of linguistic patterns.
type Family string

const (
	FamilyNegativeCommand Family = "negative_command"
	FamilyAbusive         Family = "abusive_language"
	FamilyBoundary        Family = "boundary_setting"
	FamilyReason          Family = "reason_giving"
	FamilyGuidance        Family = "collaborative_guidance"
	FamilySupport         Family = "emotional_support"
)

// ReasonCode explains the score; it only selects feedback text.
type ReasonCode string

const (
	ReasonAbusiveLanguage             ReasonCode = "abusive_language"
	ReasonUnsafeEncouragement         ReasonCode = "unsafe_encouragement"
	ReasonAllThreePositive            ReasonCode = "all_three_positive"
	ReasonExplanationAndStabilization ReasonCode = "explanation_and_stabilization"
	ReasonExplanationOnly             ReasonCode = "explanation_only"
	ReasonGuidanceOnly                ReasonCode = "guidance_only"
	ReasonNeutralUnclear              ReasonCode = "neutral_unclear"
)

// Predicate reports whether a folded utterance matches.
type Predicate func(folded string) bool

// Effect adds Weight to a Dimension when its rule matches.
type Effect struct {
	Dimension Dimension
	Weight    int
}

// Rule is one pattern-family record. When any Dominant rule matches, the
// effects of non-dominant rules are discarded for that utterance.
type Rule struct {
	Family   Family
	Match    Predicate
	Effects  []Effect
	Dominant bool
}

// Scores holds the three dimension scores, each in {-1, 0, 1}.
type Scores struct {
	ExplanationVsCommand   int `json:"explanation_vs_command"`
	EmotionalStabilization int `json:"emotional_stabilization"`
	GuidedDecision         int `json:"guided_decision"`
}

func (s Scores) Total() int {
	return s.ExplanationVsCommand + s.EmotionalStabilization + s.GuidedDecision
}

// Result is the outcome of evaluating one utterance.
type Result struct {
	Scores     Scores     `json:"scores"`
	IsPositive bool       `json:"is_positive"`
	StarDelta  int        `json:"star_delta"`
	XDelta     int        `json:"x_delta"`
	ReasonCode ReasonCode `json:"reason_code"`
	Families   []Family   `json:"matched_families,omitempty"`
	Feedback   Feedback   `json:"feedback"`
}

// Matched reports whether family f fired.
func (r Result) Matched(f Family) bool {
	for _, m := range r.Families {
		if m == f {
			return true
		}
	}
	return false
}

// Evaluator applies an ordered rule set. It holds no mutable state and is safe
// for concurrent use.
type Evaluator struct {
	rules []Rule
}

// New returns an Evaluator loaded with the English and Chinese rule sets.
// Both sets are always consulted so mixed-language input is still scored.
func New() *Evaluator {
	pf := textfilter.NewProfanityFilter()
	rules := append(EnglishRules(pf), ChineseRules(pf)...)
	return &Evaluator{rules: rules}
}

// NewWithRules builds an Evaluator over a custom rule set.
func NewWithRules(rules []Rule) *Evaluator {
	return &Evaluator{rules: rules}
}

// Evaluate scores message. Empty input falls through to neutral_unclear.
func (e *Evaluator) Evaluate(message string, l lang.Language) Result {
	folded := textfilter.Fold(strings.TrimSpace(message))

	var hits []Rule
	seen := make(map[Family]bool)
	var families []Family
	dominant := false
	if folded != "" {
		for _, r := range e.rules {
			if r.Match == nil || !r.Match(folded) {
				continue
			}
			hits = append(hits, r)
			dominant = dominant || r.Dominant
			if !seen[r.Family] {
				seen[r.Family] = true
				families = append(families, r.Family)
			}
		}
	}

	var sums [numDimensions]int
	for _, r := range hits {
		if dominant && !r.Dominant {
			continue
		}
		for _, eff := range r.Effects {
			sums[eff.Dimension] += eff.Weight
		}
	}

	scores := Scores{
		ExplanationVsCommand:   unit(sums[ExplanationVsCommand]),
		EmotionalStabilization: unit(sums[EmotionalStabilization]),
		GuidedDecision:         unit(sums[GuidedDecision]),
	}

	negative := seen[FamilyNegativeCommand]
	abusive := seen[FamilyAbusive]

	res := Result{
		Scores:     scores,
		IsPositive: scores.Total() > 0 && !negative && !abusive,
		Families:   families,
	}
	if res.IsPositive {
		res.StarDelta = 1
	}
	if negative || abusive {
		res.XDelta = 1
	}
	res.ReasonCode = reasonFor(scores, negative, abusive)
	res.Feedback = FeedbackFor(res.ReasonCode, res.IsPositive, l)
	return res
}

func reasonFor(s Scores, negative, abusive bool) ReasonCode {
	switch {
	case abusive:
		return ReasonAbusiveLanguage
	case negative:
		return ReasonUnsafeEncouragement
	case s.ExplanationVsCommand == 1 && s.EmotionalStabilization == 1 && s.GuidedDecision == 1:
		return ReasonAllThreePositive
	case s.ExplanationVsCommand == 1 && s.EmotionalStabilization == 1:
		return ReasonExplanationAndStabilization
	case s.ExplanationVsCommand == 1:
		return ReasonExplanationOnly
	case s.EmotionalStabilization == 1 || s.GuidedDecision == 1:
		return ReasonGuidanceOnly
	}
	return ReasonNeutralUnclear
}

func unit(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
