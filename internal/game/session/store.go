// Package session persists state snapshots between runs. A snapshot is a
// plain JSON file; an unreadable or corrupt file is treated as absence so a
// broken save never blocks starting a fresh session.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gmquest/internal/debug"
	"gmquest/internal/game"
)

type Store struct {
	path string
	log  *debug.Logger
}

func NewStore(path string, log *debug.Logger) *Store {
	return &Store{path: path, log: log}
}

// Save writes the state snapshot, creating parent directories as needed.
func (st *Store) Save(s game.State) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if dir := filepath.Dir(st.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create save directory: %w", err)
		}
	}

	if err := os.WriteFile(st.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	return nil
}

// Load reads the last snapshot. A missing or corrupt file returns ok=false
// with a diagnostic, never an error the caller has to handle.
func (st *Store) Load() (game.State, bool) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if !os.IsNotExist(err) {
			st.log.Printf("save file %s unreadable: %v", st.path, err)
		}
		return game.State{}, false
	}

	var s game.State
	if err := json.Unmarshal(data, &s); err != nil {
		st.log.Printf("save file %s corrupt, starting fresh: %v", st.path, err)
		return game.State{}, false
	}

	return s.Normalize(), true
}
