// Package emotion holds the closed set of child emotion labels.
package emotion

import "strings"

// Label is a canonical child emotion.
type Label string

const (
	Neutral     Label = "neutral"
	Confused    Label = "confused"
	Sad         Label = "sad"
	Happy       Label = "happy"
	Defensive   Label = "defensive"
	Overwhelmed Label = "overwhelmed"
)

// All lists the canonical labels in display order.
var All = []Label{Neutral, Confused, Sad, Happy, Defensive, Overwhelmed}

var synonyms = map[string]Label{
	"neutral":      Neutral,
	"calm":         Neutral,
	"curious":      Neutral,
	"confused":     Confused,
	"worried":      Confused,
	"nervous":      Confused,
	"unsure":       Confused,
	"uncertain":    Confused,
	"sad":          Sad,
	"upset":        Sad,
	"unhappy":      Sad,
	"disappointed": Sad,
	"happy":        Happy,
	"good":         Happy,
	"positive":     Happy,
	"glad":         Happy,
	"excited":      Happy,
	"relieved":     Happy,
	"defensive":    Defensive,
	"angry":        Defensive,
	"mad":          Defensive,
	"annoyed":      Defensive,
	"overwhelmed":  Overwhelmed,
	"stressed":     Overwhelmed,
	"scared":       Overwhelmed,
	"anxious":      Overwhelmed,
	"panicked":     Overwhelmed,
}

// Normalize maps a raw label to the canonical set. Unknown values become Neutral.
func Normalize(raw string) Label {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "-", "_")
	if l, ok := synonyms[key]; ok {
		return l
	}
	return Neutral
}

// Valid reports whether l is one of the canonical labels.
func (l Label) Valid() bool {
	for _, c := range All {
		if l == c {
			return true
		}
	}
	return false
}

// IsNegative reports whether l earns a strike.
func (l Label) IsNegative() bool {
	switch l {
	case Confused, Sad, Defensive, Overwhelmed:
		return true
	}
	return false
}

// IsPositive reports whether l earns a star.
func (l Label) IsPositive() bool {
	return l == Happy
}

// Scene is the presentation key used to pick the child's animation.
func (l Label) Scene() string {
	switch l {
	case Happy:
		return "good"
	case Defensive, Overwhelmed:
		return "sad"
	case Confused, Sad:
		return string(l)
	}
	return string(Neutral)
}
