package game

import (
	"reflect"
	"testing"
)

func TestState_CloneIsIndependent(t *testing.T) {
	s := State{
		Location:  "hall",
		HP:        5,
		Inventory: []string{"lamp"},
		Flags:     map[string]bool{"lit": true},
		Turns:     3,
	}

	c := s.Clone()
	if !reflect.DeepEqual(s, c) {
		t.Fatalf("clone differs: %+v vs %+v", s, c)
	}

	c.Inventory[0] = "mutated"
	c.Flags["extra"] = true

	if s.Inventory[0] != "lamp" {
		t.Error("clone shares inventory with original")
	}
	if s.Flags["extra"] {
		t.Error("clone shares flags with original")
	}
}

func TestState_HasItemAndHasFlag(t *testing.T) {
	s := State{
		Inventory: []string{"lamp", "rope"},
		Flags:     map[string]bool{"lit": true},
	}

	if !s.HasItem("rope") || s.HasItem("sword") {
		t.Errorf("HasItem misbehaved for %v", s.Inventory)
	}
	if !s.HasFlag("lit") || s.HasFlag("unlit") {
		t.Errorf("HasFlag misbehaved for %v", s.Flags)
	}
}

func TestState_Normalize(t *testing.T) {
	s := State{Location: "hall", HP: -2}.Normalize()
	if s.Inventory == nil || s.Flags == nil {
		t.Errorf("expected non-nil collections, got %+v", s)
	}
	if s.HP != 0 {
		t.Errorf("hp must never be observable below zero, got %d", s.HP)
	}
}
