package game

import (
	"errors"
	"fmt"
)

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "raise"}[a]
}

// ParseAction converts a wire action name to an Action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "raise":
		return Raise, nil
	default:
		return 0, fmt.Errorf("unknown action %q: %w", s, ErrIllegalAction)
	}
}

var (
	// ErrIllegalAction means the action violates the betting rules. Nothing
	// was mutated; the caller may retry with a legal action.
	ErrIllegalAction = errors.New("illegal action")

	// ErrNotYourTurn means the acting player is not the one whose turn it is.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrUnknownPlayer means the player is not seated in this hand.
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrHandComplete means the hand has already been settled.
	ErrHandComplete = errors.New("hand already complete")
)
