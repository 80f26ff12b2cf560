package roster

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-contests/internal/domain/player"
	"github.com/riskibarqy/fantasy-contests/internal/domain/slot"
)

func testSlots() []slot.Slot {
	return []slot.Slot{
		{ID: "slot-wk", Code: "WK", Name: "Wicket Keeper", MinSelect: 1, MaxSelect: 2},
		{ID: "slot-bat", Code: "BAT", Name: "Batter", MinSelect: 2, MaxSelect: 4},
		{ID: "slot-bowl", Code: "BOWL", Name: "Bowler", MinSelect: 0, MaxSelect: 3},
	}
}

func pick(id, slotID string) player.Player {
	return player.Player{ID: id, Name: id, SlotID: slotID}
}

func TestValidateSelectionRefs(t *testing.T) {
	ids := []string{"p1", "p2", "p3"}

	if err := ValidateSelectionRefs(ids, "p1", "p2"); err != nil {
		t.Fatalf("valid refs rejected: %v", err)
	}
	if err := ValidateSelectionRefs(ids, "p9", "p2"); !errors.Is(err, ErrCaptainNotSelected) {
		t.Fatalf("expected ErrCaptainNotSelected, got %v", err)
	}
	if err := ValidateSelectionRefs(ids, "p1", "p9"); !errors.Is(err, ErrViceCaptainNotSelected) {
		t.Fatalf("expected ErrViceCaptainNotSelected, got %v", err)
	}
	if err := ValidateSelectionRefs(ids, "p1", "p1"); !errors.Is(err, ErrCaptainEqualsViceCaptain) {
		t.Fatalf("expected ErrCaptainEqualsViceCaptain, got %v", err)
	}
}

func TestValidateComposition_WithinBounds(t *testing.T) {
	selected := []player.Player{
		pick("p1", "slot-wk"),
		pick("p2", "slot-bat"),
		pick("p3", "slot-bat"),
		pick("p4", "slot-bowl"),
	}

	if err := ValidateComposition(selected, testSlots()); err != nil {
		t.Fatalf("valid composition rejected: %v", err)
	}
}

func TestValidateComposition_ReportsAllViolations(t *testing.T) {
	// Missing the required keeper, too many bowlers.
	selected := []player.Player{
		pick("p1", "slot-bat"),
		pick("p2", "slot-bat"),
		pick("p3", "slot-bowl"),
		pick("p4", "slot-bowl"),
		pick("p5", "slot-bowl"),
		pick("p6", "slot-bowl"),
	}

	err := ValidateComposition(selected, testSlots())
	var compErr *CompositionError
	if !errors.As(err, &compErr) {
		t.Fatalf("expected *CompositionError, got %v", err)
	}
	if len(compErr.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %d: %v", len(compErr.Violations), compErr.Violations)
	}

	byID := make(map[string]SlotViolation)
	for _, v := range compErr.Violations {
		byID[v.SlotID] = v
	}
	if v := byID["slot-wk"]; v.Actual != 0 || v.Expected.Min != 1 {
		t.Fatalf("unexpected keeper violation: %+v", v)
	}
	if v := byID["slot-bowl"]; v.Actual != 4 || v.Expected.Max != 3 {
		t.Fatalf("unexpected bowler violation: %+v", v)
	}
}

func TestValidateComposition_IgnoresSlotlessPlayers(t *testing.T) {
	selected := []player.Player{
		pick("p1", "slot-wk"),
		pick("p2", "slot-bat"),
		pick("p3", "slot-bat"),
		pick("p4", ""),
	}

	if err := ValidateComposition(selected, testSlots()); err != nil {
		t.Fatalf("slotless player should not affect grouping: %v", err)
	}
}

func TestValidateComposition_UnknownSlot(t *testing.T) {
	selected := []player.Player{
		pick("p1", "slot-wk"),
		pick("p2", "slot-bat"),
		pick("p3", "slot-bat"),
		pick("p4", "slot-ghost"),
	}

	err := ValidateComposition(selected, testSlots())
	var compErr *CompositionError
	if !errors.As(err, &compErr) {
		t.Fatalf("expected *CompositionError for unknown slot, got %v", err)
	}
	if len(compErr.Violations) != 1 || compErr.Violations[0].SlotID != "slot-ghost" {
		t.Fatalf("unexpected violations: %v", compErr.Violations)
	}
}
