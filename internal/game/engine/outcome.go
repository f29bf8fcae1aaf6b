package engine

import (
	"fmt"

	"gmquest/internal/game"
)

// Status classifies a session as ongoing or terminal.
type Status int

const (
	StatusOngoing Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusWon:
		return "win"
	case StatusLost:
		return "lose"
	default:
		return "ongoing"
	}
}

// Evaluate classifies the game against the rule set's end conditions and
// returns a human-readable message for terminal outcomes.
//
// Precedence is fixed: time-out and loss flags are checked before the win
// flags, so a state that satisfies both a loss condition and every win flag
// resolves as a loss.
func Evaluate(s game.State, rules *game.Rules) (Status, string) {
	end := rules.EndConditions

	if s.Turns >= end.MaxTurns {
		return StatusLost, fmt.Sprintf("You ran out of time! (%d turns)", end.MaxTurns)
	}

	for _, flag := range end.LoseAnyFlags {
		if s.HasFlag(flag) {
			return StatusLost, fmt.Sprintf("You have met a losing condition: %s!", flag)
		}
	}

	if len(end.WinAllFlags) > 0 {
		won := true
		for _, flag := range end.WinAllFlags {
			if !s.HasFlag(flag) {
				won = false
				break
			}
		}
		if won {
			return StatusWon, "You have won the game! Congratulations!"
		}
	}

	return StatusOngoing, ""
}
