package game

// FlagHPZero is the reserved flag the engine sets when hp is clamped to zero.
// Rule sets typically list it under lose_any_flags.
const FlagHPZero = "hp_zero"

// State is the authoritative record of the player's situation. It is owned by
// the turn loop and passed to the engine by value; the engine returns a fresh
// State rather than mutating the caller's copy.
type State struct {
	Location  string          `json:"location"`
	HP        int             `json:"hp"`
	Inventory []string        `json:"inventory"`
	Flags     map[string]bool `json:"flags"`
	Turns     int             `json:"turns"`
}

// Clone returns a deep copy that shares no sub-collections with s.
func (s State) Clone() State {
	out := s
	out.Inventory = make([]string, len(s.Inventory))
	copy(out.Inventory, s.Inventory)
	out.Flags = make(map[string]bool, len(s.Flags))
	for k, v := range s.Flags {
		out.Flags[k] = v
	}
	return out
}

// HasItem reports whether item is in the player's inventory.
func (s State) HasItem(item string) bool {
	for _, id := range s.Inventory {
		if id == item {
			return true
		}
	}
	return false
}

// HasFlag reports whether the flag is set. Unset flags read as false.
func (s State) HasFlag(name string) bool {
	return s.Flags[name]
}

// Normalize replaces nil sub-collections with empty ones so that loaded or
// zero-valued states behave identically to freshly constructed ones.
func (s State) Normalize() State {
	if s.Inventory == nil {
		s.Inventory = []string{}
	}
	if s.Flags == nil {
		s.Flags = map[string]bool{}
	}
	if s.HP < 0 {
		s.HP = 0
	}
	return s
}
