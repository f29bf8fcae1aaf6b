package game

import (
	"encoding/json"
	"fmt"
	"os"
)

// Rules is the immutable per-session configuration loaded at startup.
type Rules struct {
	InventoryLimit int               `json:"inventory_limit"`
	Locks          map[string]string `json:"locks"`
	EndConditions  EndConditions     `json:"end_conditions"`
	MaxParagraphs  int               `json:"max_paragraphs"`
	Quest          Quest             `json:"quest"`
	Start          State             `json:"start"`
}

// EndConditions describes when a session terminates.
type EndConditions struct {
	MaxTurns     int      `json:"max_turns"`
	LoseAnyFlags []string `json:"lose_any_flags"`
	WinAllFlags  []string `json:"win_all_flags"`
}

// Quest is presentational metadata shown in the header and at session start.
type Quest struct {
	Name     string `json:"name"`
	GoalFlag string `json:"goal_flag"`
	Intro    string `json:"intro"`
}

// LoadRules reads and validates a rules file. The engine must not run without
// a complete rule set, so any missing required field is an error here rather
// than a surprise inside the turn loop.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rules Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules file %s: %w", path, err)
	}

	if rules.Locks == nil {
		rules.Locks = map[string]string{}
	}
	rules.Start = rules.Start.Normalize()

	return &rules, nil
}

// Validate checks the fields the engine depends on.
func (r *Rules) Validate() error {
	if r.InventoryLimit <= 0 {
		return fmt.Errorf("inventory_limit must be a positive integer, got %d", r.InventoryLimit)
	}
	if r.EndConditions.MaxTurns <= 0 {
		return fmt.Errorf("end_conditions.max_turns must be a positive integer, got %d", r.EndConditions.MaxTurns)
	}
	if r.MaxParagraphs <= 0 {
		return fmt.Errorf("max_paragraphs must be a positive integer, got %d", r.MaxParagraphs)
	}
	if r.Start.Location == "" {
		return fmt.Errorf("start.location is required")
	}
	if r.Start.HP <= 0 {
		return fmt.Errorf("start.hp must be a positive integer, got %d", r.Start.HP)
	}
	for location, flag := range r.Locks {
		if flag == "" {
			return fmt.Errorf("lock on %q names an empty flag", location)
		}
	}
	return nil
}

// RequiredFlag returns the flag gating entry to a location, if any.
func (r *Rules) RequiredFlag(location string) (string, bool) {
	flag, ok := r.Locks[location]
	return flag, ok
}
