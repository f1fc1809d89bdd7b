package state

import "github.com/jwebster45206/sentry-coach/pkg/evaluator"

// ChildState tracks the simulated child's inner state across turns. Each value
// stays within 0..100.
type ChildState struct {
	EmotionalLoad int `json:"emotional_load"`
	Trust         int `json:"trust"`
	Curiosity     int `json:"curiosity"`
}

// ChildDelta is a signed change to ChildState.
type ChildDelta struct {
	EmotionalLoad int `json:"emotional_load"`
	Trust         int `json:"trust"`
	Curiosity     int `json:"curiosity"`
}

func NewChildState() ChildState {
	return ChildState{EmotionalLoad: 30, Trust: 50, Curiosity: 70}
}

// ApplyDelta returns cs moved by d, clamped to 0..100.
func (cs ChildState) ApplyDelta(d ChildDelta) ChildState {
	return ChildState{
		EmotionalLoad: clampPercent(cs.EmotionalLoad + d.EmotionalLoad),
		Trust:         clampPercent(cs.Trust + d.Trust),
		Curiosity:     clampPercent(cs.Curiosity + d.Curiosity),
	}
}

// DeltaFor is the child's reaction to an evaluated adult message.
func DeltaFor(eval evaluator.Result) ChildDelta {
	switch {
	case eval.IsPositive:
		return ChildDelta{EmotionalLoad: -10, Trust: 10, Curiosity: -5}
	case eval.XDelta > 0:
		return ChildDelta{EmotionalLoad: 15, Trust: -10}
	}
	return ChildDelta{EmotionalLoad: 5}
}

// LoadLevel maps emotional load onto the 0..10 scale the model sees.
func (cs ChildState) LoadLevel() int {
	return (cs.EmotionalLoad + 5) / 10
}

func clampPercent(v int) int {
	return max(0, min(100, v))
}
