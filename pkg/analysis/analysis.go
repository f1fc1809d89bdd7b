// Package analysis builds the end-of-session intervention report.
package analysis

import (
	"fmt"

	"github.com/jwebster45206/sentry-coach/pkg/chat"
	"github.com/jwebster45206/sentry-coach/pkg/emotion"
	"github.com/jwebster45206/sentry-coach/pkg/lang"
	"github.com/jwebster45206/sentry-coach/pkg/state"
	"github.com/jwebster45206/sentry-coach/pkg/textfilter"
)

// Evaluation is the report's verdict on one intervention.
type Evaluation string

const (
	EvaluationPositive Evaluation = "positive"
	EvaluationNegative Evaluation = "negative"
	EvaluationNeutral  Evaluation = "neutral"
)

// Intervention is one analysed adult turn.
type Intervention struct {
	Round        int           `json:"round"`
	AdultMessage string        `json:"adult_message"`
	ChildReply   string        `json:"child_reply"`
	Emotion      emotion.Label `json:"emotion,omitempty"`
	Thought      string        `json:"thought,omitempty"`
	Evaluation   Evaluation    `json:"evaluation"`
	Reason       string        `json:"reason"`
}

// Report summarises a session for the adult.
type Report struct {
	SessionID     string         `json:"session_id"`
	Language      lang.Language  `json:"language"`
	Ended         bool           `json:"ended"`
	Outcome       state.Outcome  `json:"outcome,omitempty"`
	Stars         int            `json:"stars"`
	Strikes       int            `json:"strikes"`
	Summary       string         `json:"summary"`
	Interventions []Intervention `json:"interventions"`
}

// Build produces the report for s. Recorded interventions are preferred;
// without them the adult and kid lines of the history are paired instead.
func Build(s *state.Session) Report {
	c := catalogFor(s.Language)
	r := Report{
		SessionID:     s.ID.String(),
		Language:      s.Language,
		Ended:         s.Game.Ended,
		Outcome:       s.Game.EndType,
		Stars:         s.Game.Stars,
		Strikes:       s.Game.Strikes,
		Interventions: make([]Intervention, 0, len(s.Interventions)),
	}

	switch {
	case !s.Game.Ended:
		r.Summary = fmt.Sprintf(c.progressSummary, r.Stars, r.Strikes)
	case s.Game.EndType == state.OutcomeSuccess:
		r.Summary = fmt.Sprintf(c.successSummary, r.Stars, r.Strikes)
	default:
		r.Summary = fmt.Sprintf(c.failureSummary, r.Stars, r.Strikes)
	}

	if len(s.Interventions) > 0 {
		for _, rec := range s.Interventions {
			ev, key := judge(rec.AdultMessage, rec.WasPositive, rec.WasNegative)
			r.Interventions = append(r.Interventions, Intervention{
				Round:        rec.Round,
				AdultMessage: rec.AdultMessage,
				ChildReply:   rec.ChildReply,
				Emotion:      rec.Emotion,
				Thought:      rec.Thought,
				Evaluation:   ev,
				Reason:       c.reasons[key],
			})
		}
		return r
	}

	for i, pair := range pairTurns(s.History) {
		ev, key := judge(pair[0].Text, false, false)
		r.Interventions = append(r.Interventions, Intervention{
			Round:        i + 1,
			AdultMessage: pair[0].Text,
			ChildReply:   pair[1].Text,
			Evaluation:   ev,
			Reason:       c.reasons[key],
		})
	}
	return r
}

// judge applies the recorded outcome first, then the message heuristics.
func judge(message string, wasPositive, wasNegative bool) (Evaluation, reasonKey) {
	if wasPositive {
		return EvaluationPositive, reasonEffective
	}
	if wasNegative {
		return EvaluationNegative, reasonIneffective
	}

	folded := textfilter.Fold(message)
	safety := textfilter.ContainsAnyPhrase(folded, safetyPhrases)
	command := textfilter.ContainsAnyPhrase(folded, commandPhrases)
	support := textfilter.ContainsAnyPhrase(folded, supportPhrases)

	switch {
	case safety && !command && support:
		return EvaluationPositive, reasonSupportive
	case command:
		return EvaluationNegative, reasonCommand
	case safety:
		return EvaluationPositive, reasonBasic
	}
	return EvaluationNeutral, reasonNeutral
}

// pairTurns matches each adult line with the kid line that answered it.
func pairTurns(history []chat.Utterance) [][2]chat.Utterance {
	var pairs [][2]chat.Utterance
	for i := 0; i < len(history)-1; i++ {
		if history[i].Role == chat.RoleAdult && history[i+1].Role == chat.RoleKid {
			pairs = append(pairs, [2]chat.Utterance{history[i], history[i+1]})
			i++
		}
	}
	return pairs
}
