package engine

import (
	"encoding/json"
	"reflect"
	"testing"

	"gmquest/internal/game"
)

func testRules() *game.Rules {
	return &game.Rules{
		InventoryLimit: 1,
		Locks:          map[string]string{"cave": "has_torch"},
		EndConditions: game.EndConditions{
			MaxTurns:     10,
			LoseAnyFlags: []string{game.FlagHPZero},
			WinAllFlags:  []string{"treasure_found"},
		},
		MaxParagraphs: 2,
		Start:         game.State{Location: "start", HP: 10},
	}
}

func testState() game.State {
	return game.State{
		Location:  "start",
		HP:        10,
		Inventory: []string{},
		Flags:     map[string]bool{},
		Turns:     0,
	}
}

func TestApply_EmptyAtomList_Identity(t *testing.T) {
	s := testState()
	next, report := Apply(s, nil, testRules())
	if !reflect.DeepEqual(s, next) {
		t.Errorf("expected identical state, got %+v", next)
	}
	if !report.Empty() {
		t.Errorf("expected empty report, got %+v", report)
	}
}

func TestApply_ReturnsFreshState(t *testing.T) {
	s := testState()
	s.Inventory = []string{"sword"}

	next, _ := Apply(s, []Atom{SetFlag{Flag: "met_guard"}, AddItem{Item: "coin"}}, &game.Rules{
		InventoryLimit: 5,
		Locks:          map[string]string{},
	})

	next.Inventory[0] = "mutated"
	next.Flags["aliased"] = true

	if s.Inventory[0] != "sword" {
		t.Error("applier aliased the caller's inventory")
	}
	if s.Flags["aliased"] {
		t.Error("applier aliased the caller's flags")
	}
}

func TestApply_AddThenRemove_NetNoop(t *testing.T) {
	rules := testRules()
	rules.InventoryLimit = 3
	s := testState()

	next, _ := Apply(s, []Atom{AddItem{Item: "rope"}, RemoveItem{Item: "rope"}}, rules)
	if len(next.Inventory) != 0 {
		t.Errorf("expected empty inventory, got %v", next.Inventory)
	}
}

func TestApply_RemoveThenAdd_NetPresence(t *testing.T) {
	rules := testRules()
	rules.InventoryLimit = 3
	s := testState()

	next, _ := Apply(s, []Atom{RemoveItem{Item: "rope"}, AddItem{Item: "rope"}}, rules)
	if !reflect.DeepEqual(next.Inventory, []string{"rope"}) {
		t.Errorf("expected [rope], got %v", next.Inventory)
	}
}

func TestApply_InventoryLimitNeverExceeded(t *testing.T) {
	rules := testRules()
	s := testState()

	atoms := []Atom{
		AddItem{Item: "sword"},
		AddItem{Item: "shield"},
		AddItem{Item: "rope"},
		AddItem{Item: "torch"},
	}
	next, report := Apply(s, atoms, rules)

	if len(next.Inventory) != rules.InventoryLimit {
		t.Errorf("expected inventory at limit %d, got %v", rules.InventoryLimit, next.Inventory)
	}
	if len(report.Skipped) != 3 {
		t.Errorf("expected 3 blocked adds, got %v", report.Skipped)
	}
}

func TestApply_DuplicateAdd_SilentlySatisfied(t *testing.T) {
	rules := testRules()
	rules.InventoryLimit = 3
	s := testState()
	s.Inventory = []string{"sword"}

	next, report := Apply(s, []Atom{AddItem{Item: "sword"}}, rules)
	if !reflect.DeepEqual(next.Inventory, []string{"sword"}) {
		t.Errorf("expected no duplicate, got %v", next.Inventory)
	}
	if len(report.Skipped) != 0 {
		t.Errorf("duplicate add is not an error, got %v", report.Skipped)
	}
}

func TestApply_RemoveAbsentItem_SilentlySatisfied(t *testing.T) {
	next, report := Apply(testState(), []Atom{RemoveItem{Item: "ghost"}}, testRules())
	if len(next.Inventory) != 0 || len(report.Skipped) != 0 {
		t.Errorf("expected silent no-op, got inventory %v, skipped %v", next.Inventory, report.Skipped)
	}
}

func TestApply_LockedMove_Blocked(t *testing.T) {
	next, report := Apply(testState(), []Atom{MoveTo{Target: "cave"}}, testRules())
	if next.Location != "start" {
		t.Errorf("expected location unchanged, got %q", next.Location)
	}
	if len(report.Skipped) != 1 {
		t.Errorf("expected one blocked move, got %v", report.Skipped)
	}
}

func TestApply_LockedMove_WithFlag(t *testing.T) {
	s := testState()
	s.Flags["has_torch"] = true

	next, _ := Apply(s, []Atom{MoveTo{Target: "cave"}}, testRules())
	if next.Location != "cave" {
		t.Errorf("expected move to cave, got %q", next.Location)
	}
}

func TestApply_SetFlagThenMove_SameTurn(t *testing.T) {
	atoms := []Atom{SetFlag{Flag: "has_torch"}, MoveTo{Target: "cave"}}
	next, _ := Apply(testState(), atoms, testRules())
	if next.Location != "cave" {
		t.Errorf("flag set earlier in the list must gate later moves, got %q", next.Location)
	}
}

func TestApply_HPClampAndHPZeroFlag(t *testing.T) {
	s := testState()
	s.HP = 3

	next, _ := Apply(s, []Atom{HPDelta{Delta: -5}}, testRules())
	if next.HP != 0 {
		t.Errorf("expected hp clamped to 0, got %d", next.HP)
	}
	if !next.HasFlag(game.FlagHPZero) {
		t.Error("expected hp_zero flag to be set")
	}
}

func TestApply_HPNeverObservablyNegative(t *testing.T) {
	s := testState()
	s.HP = 2

	atoms := []Atom{HPDelta{Delta: -1}, HPDelta{Delta: -10}, HPDelta{Delta: -3}}
	next, _ := Apply(s, atoms, testRules())
	if next.HP != 0 {
		t.Errorf("expected hp 0, got %d", next.HP)
	}
}

func TestApply_HPHealDoesNotClearHPZero(t *testing.T) {
	s := testState()
	s.HP = 1

	next, _ := Apply(s, []Atom{HPDelta{Delta: -4}, HPDelta{Delta: 8}}, testRules())
	if next.HP != 8 {
		t.Errorf("expected hp 8, got %d", next.HP)
	}
	if !next.HasFlag(game.FlagHPZero) {
		t.Error("flags are add-only: hp_zero must survive later healing")
	}
}

func TestApplyRaw_NonList_NoOp(t *testing.T) {
	s := testState()
	s.Inventory = []string{"sword"}

	for _, raw := range []string{`"not a list"`, `42`, `{"atom":"add_item","item":"x"}`} {
		next, report := ApplyRaw(s, json.RawMessage(raw), testRules())
		if !reflect.DeepEqual(s, next) {
			t.Errorf("payload %s: expected no-op, got %+v", raw, next)
		}
		if len(report.Skipped) == 0 {
			t.Errorf("payload %s: expected a diagnostic", raw)
		}
	}
}

func TestApplyRaw_MalformedElementsSkipped(t *testing.T) {
	rules := testRules()
	rules.InventoryLimit = 3
	raw := json.RawMessage(`[
		"just a string",
		{"atom": "add_item", "item": "rope"},
		{"atom": "teleport", "target": "moon"},
		{"atom": "set_flag", "flag": "met_guard"}
	]`)

	next, report := ApplyRaw(testState(), raw, rules)
	if !reflect.DeepEqual(next.Inventory, []string{"rope"}) {
		t.Errorf("valid atoms must still apply, got %v", next.Inventory)
	}
	if !next.HasFlag("met_guard") {
		t.Error("atoms after a malformed one must still apply")
	}
	if len(report.Skipped) != 2 {
		t.Errorf("expected 2 skipped diagnostics, got %v", report.Skipped)
	}
}

// Scenario fixtures from the rule set's steady-state behavior.

func TestApplyRaw_BlockedMoveScenario(t *testing.T) {
	raw := json.RawMessage(`[{"atom":"move_to","target":"cave"}]`)
	next, _ := ApplyRaw(testState(), raw, testRules())
	if next.Location != "start" {
		t.Errorf("expected start, got %q", next.Location)
	}
}

func TestApplyRaw_TorchThenCaveScenario(t *testing.T) {
	raw := json.RawMessage(`[{"atom":"set_flag","flag":"has_torch"},{"atom":"move_to","target":"cave"}]`)
	next, _ := ApplyRaw(testState(), raw, testRules())
	if next.Location != "cave" {
		t.Errorf("expected cave, got %q", next.Location)
	}
}

func TestApplyRaw_InventoryFullScenario(t *testing.T) {
	s := testState()
	s.Inventory = []string{"sword"}
	raw := json.RawMessage(`[{"atom":"add_item","item":"shield"}]`)
	next, _ := ApplyRaw(s, raw, testRules())
	if !reflect.DeepEqual(next.Inventory, []string{"sword"}) {
		t.Errorf("expected [sword], got %v", next.Inventory)
	}
}

func TestApplyRaw_HPDeltaScenario(t *testing.T) {
	s := testState()
	s.HP = 3
	raw := json.RawMessage(`[{"atom":"hp_delta","delta":-5}]`)
	next, _ := ApplyRaw(s, raw, testRules())
	if next.HP != 0 || !next.HasFlag(game.FlagHPZero) {
		t.Errorf("expected hp 0 with hp_zero set, got hp=%d flags=%v", next.HP, next.Flags)
	}
}
