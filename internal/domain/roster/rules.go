package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-contests/internal/domain/player"
	"github.com/riskibarqy/fantasy-contests/internal/domain/slot"
)

// Blocking input errors, checked before any slot evaluation.
var (
	ErrCaptainNotSelected       = errors.New("captain must be one of the selected players")
	ErrViceCaptainNotSelected   = errors.New("vice-captain must be one of the selected players")
	ErrCaptainEqualsViceCaptain = errors.New("captain and vice-captain must be different players")
)

// SlotBounds is the allowed selection range for one slot.
type SlotBounds struct {
	Min int
	Max int
}

// SlotViolation records one out-of-bound slot in a team selection.
type SlotViolation struct {
	SlotID   string
	SlotName string
	Expected SlotBounds
	Actual   int
}

func (v SlotViolation) String() string {
	name := v.SlotName
	if name == "" {
		name = v.SlotID
	}
	return fmt.Sprintf("slot %s: expected %d..%d, selected %d", name, v.Expected.Min, v.Expected.Max, v.Actual)
}

// CompositionError carries the full list of slot violations so callers can
// report every problem at once instead of the first one found.
type CompositionError struct {
	Violations []SlotViolation
}

func (e *CompositionError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return "team composition rejected: " + strings.Join(parts, "; ")
}

// ValidateSelectionRefs checks captain and vice-captain membership and
// distinctness against the selected player ids.
func ValidateSelectionRefs(playerIDs []string, captainID, viceCaptainID string) error {
	selected := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		selected[id] = struct{}{}
	}

	if _, ok := selected[captainID]; !ok {
		return ErrCaptainNotSelected
	}
	if _, ok := selected[viceCaptainID]; !ok {
		return ErrViceCaptainNotSelected
	}
	if captainID == viceCaptainID {
		return ErrCaptainEqualsViceCaptain
	}

	return nil
}

// ValidateComposition compares the selected players against the slot rules.
// Captain/vice-captain membership must already have passed
// ValidateSelectionRefs. Players without a slot assignment are excluded from
// grouping. Every slot that appears in the selection, or that demands a
// minimum, is checked; all out-of-bound slots are returned together as a
// *CompositionError.
func ValidateComposition(selected []player.Player, rules []slot.Slot) error {
	countBySlot := make(map[string]int)
	for _, p := range selected {
		if p.SlotID == "" {
			continue
		}
		countBySlot[p.SlotID]++
	}

	ruleByID := make(map[string]slot.Slot, len(rules))
	for _, r := range rules {
		ruleByID[r.ID] = r
	}

	// Slots to evaluate: any slot present in the selection plus any slot
	// that requires a minimum even when nothing was picked from it.
	evaluate := make(map[string]struct{}, len(countBySlot))
	for slotID := range countBySlot {
		evaluate[slotID] = struct{}{}
	}
	for _, r := range rules {
		if r.MinSelect > 0 {
			evaluate[r.ID] = struct{}{}
		}
	}

	var violations []SlotViolation
	for _, r := range rules {
		if _, ok := evaluate[r.ID]; !ok {
			continue
		}
		actual := countBySlot[r.ID]
		if actual < r.MinSelect || actual > r.MaxSelect {
			violations = append(violations, SlotViolation{
				SlotID:   r.ID,
				SlotName: r.Name,
				Expected: SlotBounds{Min: r.MinSelect, Max: r.MaxSelect},
				Actual:   actual,
			})
		}
	}

	// Inconsistent data: a selected player references a slot the rule store
	// does not know. Report it as a zero-bound violation instead of letting
	// it pass unvalidated.
	for slotID, actual := range countBySlot {
		if _, ok := ruleByID[slotID]; ok {
			continue
		}
		violations = append(violations, SlotViolation{
			SlotID:   slotID,
			Expected: SlotBounds{},
			Actual:   actual,
		})
	}

	if len(violations) > 0 {
		return &CompositionError{Violations: violations}
	}

	return nil
}
