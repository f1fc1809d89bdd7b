package state

import (
	"errors"

	"github.com/jwebster45206/sentry-coach/pkg/emotion"
	"github.com/jwebster45206/sentry-coach/pkg/evaluator"
)

const (
	MaxRounds  = 5
	MaxStars   = 3
	MaxStrikes = 3
)

// ErrGameEnded is returned when a turn is applied to a finished game.
var ErrGameEnded = errors.New("game has already ended")

// Outcome is how a finished game ended.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// GameState holds the round and score counters for one practice session.
// Once Ended is set it is never changed again.
type GameState struct {
	Round   int     `json:"round"`   // 1-based; exceeds MaxRounds only on the final check
	Stars   int     `json:"stars"`   // 0..MaxStars
	Strikes int     `json:"strikes"` // 0..MaxStrikes
	Ended   bool    `json:"ended"`
	EndType Outcome `json:"end_type,omitempty"`
}

func NewGameState() GameState {
	return GameState{Round: 1}
}

// Effect records which counter a turn moved.
type Effect struct {
	Star   bool `json:"star"`
	Strike bool `json:"strike"`
}

// ApplyTurn returns the state after one completed turn. A happy child earns a
// star and an upset one a strike; a neutral child falls back to the
// evaluation's IsPositive. The round always advances and the outcome check
// runs on the new state. Finished games are returned unchanged with
// ErrGameEnded.
func ApplyTurn(gs GameState, eval evaluator.Result, em emotion.Label) (GameState, Effect, error) {
	if gs.Ended {
		return gs, Effect{}, ErrGameEnded
	}

	var eff Effect
	switch {
	case em.IsPositive():
		eff.Star = true
	case em.IsNegative():
		eff.Strike = true
	case eval.IsPositive:
		eff.Star = true
	default:
		eff.Strike = true
	}

	next := gs
	if eff.Star {
		next.Stars = min(next.Stars+1, MaxStars)
	} else {
		next.Strikes = min(next.Strikes+1, MaxStrikes)
	}
	next.Round++

	if done, outcome := CheckOutcome(next); done {
		next.Ended = true
		next.EndType = outcome
	}
	return next, eff, nil
}

// CheckOutcome decides whether gs is terminal. Stars are checked before
// strikes; past the round cap the game is a success only if stars lead.
func CheckOutcome(gs GameState) (bool, Outcome) {
	switch {
	case gs.Stars >= MaxStars:
		return true, OutcomeSuccess
	case gs.Strikes >= MaxStrikes:
		return true, OutcomeFailure
	case gs.Round > MaxRounds:
		if gs.Stars > gs.Strikes {
			return true, OutcomeSuccess
		}
		return true, OutcomeFailure
	}
	return false, OutcomeNone
}
