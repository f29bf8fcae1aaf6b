package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gmquest/internal/game"
	"gmquest/internal/llm"
	"gmquest/internal/logging"
	"gmquest/internal/observability"
)

type animationTickMsg struct{}

// turnResultMsg carries one completed backend exchange. resp is nil when the
// backend failed or returned an unparseable body; raw is always the exact
// response text for auditing.
type turnResultMsg struct {
	turn int
	resp *llm.TurnResponse
	raw  string
	err  error
}

func animationTimer() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return animationTickMsg{}
	})
}

// runTurn invokes the backend for one turn and logs the exchange to the
// transcript. The turn counter in state was already incremented by the caller.
func runTurn(gm *llm.GM, rules *game.Rules, state game.State, input string, loggers GameLoggers) tea.Cmd {
	return func() tea.Msg {
		ctx := observability.WithSessionID(context.Background(), loggers.Transcript.SessionID())

		startTime := time.Now()
		resp, raw, err := gm.Turn(ctx, rules, state, input)

		metadata := logging.TurnMetadata{
			Model:          gm.Model(),
			ResponseTimeMS: time.Since(startTime).Milliseconds(),
		}
		if err != nil {
			errText := err.Error()
			metadata.Error = &errText
		}

		// Best effort - the transcript never blocks the turn loop.
		if logErr := loggers.Transcript.LogTurn(state.Turns, input, raw, metadata); logErr != nil {
			loggers.Debug.Printf("failed to log turn %d to transcript: %v", state.Turns, logErr)
		}

		return turnResultMsg{
			turn: state.Turns,
			resp: resp,
			raw:  raw,
			err:  err,
		}
	}
}
