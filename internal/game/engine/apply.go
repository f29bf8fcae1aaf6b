package engine

import (
	"encoding/json"
	"fmt"

	"gmquest/internal/game"
)

// Report collects what happened while applying one turn's atoms. Diagnostics
// are observability only; they never affect the returned state.
type Report struct {
	Applied []string
	Skipped []string
}

// Empty reports whether nothing was applied or skipped.
func (r Report) Empty() bool {
	return len(r.Applied) == 0 && len(r.Skipped) == 0
}

// ApplyRaw decodes the backend's raw state_change payload and applies it.
// When the payload is not a list of structured records the whole call is a
// no-op returning the original state unchanged.
func ApplyRaw(s game.State, raw json.RawMessage, rules *game.Rules) (game.State, Report) {
	atoms, diagnostics, ok := DecodeAtoms(raw)
	if !ok {
		return s, Report{Skipped: diagnostics}
	}

	next, report := Apply(s, atoms, rules)
	report.Skipped = append(diagnostics, report.Skipped...)
	return next, report
}

// Apply validates and applies atoms strictly in the order given, returning a
// fresh state. Order matters: a flag set earlier in the list gates moves later
// in the same list, and add/remove pairs net out differently when reversed.
// Atoms that violate a rule are skipped individually; the rest still apply.
func Apply(s game.State, atoms []Atom, rules *game.Rules) (game.State, Report) {
	next := s.Clone().Normalize()
	var report Report

	for _, atom := range atoms {
		switch a := atom.(type) {
		case MoveTo:
			if required, locked := rules.RequiredFlag(a.Target); locked && !next.HasFlag(required) {
				report.Skipped = append(report.Skipped,
					fmt.Sprintf("move to %q blocked: missing flag %q", a.Target, required))
				continue
			}
			next.Location = a.Target
			report.Applied = append(report.Applied, fmt.Sprintf("moved to %s", a.Target))

		case AddItem:
			if len(next.Inventory) >= rules.InventoryLimit {
				report.Skipped = append(report.Skipped,
					fmt.Sprintf("add %q blocked: inventory full (%d)", a.Item, rules.InventoryLimit))
				continue
			}
			if next.HasItem(a.Item) {
				// Already holding it counts as satisfied, not an error.
				continue
			}
			next.Inventory = append(next.Inventory, a.Item)
			report.Applied = append(report.Applied, fmt.Sprintf("added %s to inventory", a.Item))

		case RemoveItem:
			if !next.HasItem(a.Item) {
				continue
			}
			next.Inventory = removeItem(next.Inventory, a.Item)
			report.Applied = append(report.Applied, fmt.Sprintf("removed %s from inventory", a.Item))

		case SetFlag:
			next.Flags[a.Flag] = true
			report.Applied = append(report.Applied, fmt.Sprintf("set flag %s", a.Flag))

		case HPDelta:
			next.HP += a.Delta
			if next.HP <= 0 {
				next.HP = 0
				next.Flags[game.FlagHPZero] = true
			}
			report.Applied = append(report.Applied, fmt.Sprintf("hp %+d (now %d)", a.Delta, next.HP))

		default:
			report.Skipped = append(report.Skipped,
				fmt.Sprintf("unhandled atom kind %q", atom.Kind()))
		}
	}

	return next, report
}

func removeItem(inventory []string, item string) []string {
	out := inventory[:0]
	for _, id := range inventory {
		if id != item {
			out = append(out, id)
		}
	}
	return out
}
