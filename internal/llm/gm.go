package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"gmquest/internal/game"
)

const turnMaxTokens = 800

// TurnResponse is the backend's reply for one turn: narrative text plus a
// list of proposed state mutations. StateChange is kept raw because the
// backend is untrusted; the engine decodes and validates it.
type TurnResponse struct {
	Narration   string          `json:"narration"`
	StateChange json.RawMessage `json:"state_change"`
}

// turnContext is the user payload sent every turn. No chat history is kept;
// the full rules and state are the backend's only context.
type turnContext struct {
	Rules       *game.Rules `json:"RULES"`
	State       game.State  `json:"STATE"`
	PlayerInput string      `json:"LATEST_ACTION"`
}

// GM drives the generative game master: one structured request/response
// exchange per turn.
type GM struct {
	svc          *Service
	systemPrompt string
}

func NewGM(svc *Service, systemPrompt string) *GM {
	return &GM{svc: svc, systemPrompt: systemPrompt}
}

// Model names the backend model, for transcript metadata.
func (gm *GM) Model() string {
	return gm.svc.Model()
}

// Turn sends the current rules, state, and player input to the backend and
// parses its reply. The raw response body is always returned, even on parse
// failure, so the transcript can record exactly what the backend said.
func (gm *GM) Turn(ctx context.Context, rules *game.Rules, state game.State, playerInput string) (*TurnResponse, string, error) {
	payload, err := json.Marshal(turnContext{
		Rules:       rules,
		State:       state,
		PlayerInput: playerInput,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal turn context: %w", err)
	}

	raw, err := gm.svc.CompleteJSON(ctx, JSONCompletionRequest{
		SystemPrompt: gm.systemPrompt,
		UserPrompt:   string(payload),
		MaxTokens:    turnMaxTokens,
	})
	if err != nil {
		return nil, "", err
	}

	resp, err := parseTurnResponse(raw)
	if err != nil {
		return nil, raw, err
	}
	return resp, raw, nil
}

func parseTurnResponse(raw string) (*TurnResponse, error) {
	var resp TurnResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("backend did not return valid JSON: %w", err)
	}
	return &resp, nil
}
