package state

import (
	"github.com/jwebster45206/sentry-coach/pkg/emotion"
	"github.com/jwebster45206/sentry-coach/pkg/evaluator"
)

// InterventionRecord logs one adult turn for the end-of-session report. It is
// never read back for scoring.
type InterventionRecord struct {
	Round        int                  `json:"round"`
	AdultMessage string               `json:"adult_message"`
	ChildReply   string               `json:"child_reply"`
	Emotion      emotion.Label        `json:"emotion"`
	WasPositive  bool                 `json:"was_positive"`
	WasNegative  bool                 `json:"was_negative"`
	Thought      string               `json:"thought,omitempty"`
	ReasonCode   evaluator.ReasonCode `json:"reason_code,omitempty"`
}
