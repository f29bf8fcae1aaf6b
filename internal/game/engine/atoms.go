// Package engine implements the deterministic state-transition core: decoding
// backend-proposed atoms, validating and applying them against the rule set,
// and evaluating end conditions.
package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Atom is a single proposed state mutation. The set of kinds is closed; the
// decoder maps anything it does not recognize to a diagnostic instead of an
// Atom, so Apply only ever sees well-formed variants.
type Atom interface {
	Kind() string
}

// MoveTo sets the player's location, subject to lock rules.
type MoveTo struct {
	Target string
}

// AddItem appends an item to the inventory if absent and below the limit.
type AddItem struct {
	Item string
}

// RemoveItem removes an item from the inventory if present.
type RemoveItem struct {
	Item string
}

// SetFlag sets a flag. Flags are never unset by any atom.
type SetFlag struct {
	Flag string
}

// HPDelta adjusts hp, clamping at zero and setting the hp_zero flag.
type HPDelta struct {
	Delta int
}

func (MoveTo) Kind() string     { return "move_to" }
func (AddItem) Kind() string    { return "add_item" }
func (RemoveItem) Kind() string { return "remove_item" }
func (SetFlag) Kind() string    { return "set_flag" }
func (HPDelta) Kind() string    { return "hp_delta" }

// wireAtom is the backend's JSON shape for one atom. Unknown extra fields are
// ignored by encoding/json, which matches the contract.
type wireAtom struct {
	Atom   string          `json:"atom"`
	Target string          `json:"target"`
	Item   string          `json:"item"`
	Flag   string          `json:"flag"`
	Delta  json.RawMessage `json:"delta"`
}

// DecodeAtoms parses the backend's raw state_change payload into typed atoms.
// It never fails: when the payload is not a JSON array at all, ok is false and
// the caller must treat the whole turn as a no-op; individual elements that
// are not structured records, lack required fields, or name an unknown kind
// are skipped with a diagnostic while the rest are still decoded.
func DecodeAtoms(raw json.RawMessage) (atoms []Atom, diagnostics []string, ok bool) {
	if len(raw) == 0 {
		return nil, nil, true
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, []string{fmt.Sprintf("invalid state_change (expected list): %v", err)}, false
	}

	for i, element := range elements {
		atom, err := decodeAtom(element)
		if err != nil {
			diagnostics = append(diagnostics, fmt.Sprintf("atom %d skipped: %v", i, err))
			continue
		}
		atoms = append(atoms, atom)
	}

	return atoms, diagnostics, true
}

func decodeAtom(element json.RawMessage) (Atom, error) {
	if !isJSONObject(element) {
		return nil, fmt.Errorf("expected object, got %s", strings.TrimSpace(string(element)))
	}

	var wire wireAtom
	if err := json.Unmarshal(element, &wire); err != nil {
		return nil, fmt.Errorf("malformed atom: %v", err)
	}

	switch wire.Atom {
	case "move_to":
		if wire.Target == "" {
			return nil, fmt.Errorf("move_to requires 'target'")
		}
		return MoveTo{Target: wire.Target}, nil
	case "add_item":
		if wire.Item == "" {
			return nil, fmt.Errorf("add_item requires 'item'")
		}
		return AddItem{Item: wire.Item}, nil
	case "remove_item":
		if wire.Item == "" {
			return nil, fmt.Errorf("remove_item requires 'item'")
		}
		return RemoveItem{Item: wire.Item}, nil
	case "set_flag":
		if wire.Flag == "" {
			return nil, fmt.Errorf("set_flag requires 'flag'")
		}
		return SetFlag{Flag: wire.Flag}, nil
	case "hp_delta":
		delta, err := coerceDelta(wire.Delta)
		if err != nil {
			return nil, fmt.Errorf("hp_delta: %v", err)
		}
		return HPDelta{Delta: delta}, nil
	case "":
		return nil, fmt.Errorf("missing 'atom' kind")
	default:
		return nil, fmt.Errorf("unknown atom kind %q", wire.Atom)
	}
}

// coerceDelta turns the wire delta into an integer. Absent means zero, JSON
// numbers truncate toward zero, and numeric strings are accepted because
// generative backends routinely quote numbers. Anything else is rejected.
func coerceDelta(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	// An absent delta means zero, but an explicit null is malformed. Unmarshal
	// would silently leave the int untouched, so reject it here.
	if strings.TrimSpace(string(raw)) == "null" {
		return 0, fmt.Errorf("non-numeric 'delta' null")
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return int(f), nil
		}
		return 0, fmt.Errorf("non-numeric 'delta' %q", s)
	}

	return 0, fmt.Errorf("non-numeric 'delta' %s", strings.TrimSpace(string(raw)))
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "{")
}
