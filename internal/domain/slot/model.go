package slot

import "fmt"

// Slot is a named roster category with selection bounds, e.g. a batting or
// bowling slot. Teams must field between MinSelect and MaxSelect players
// from each slot.
type Slot struct {
	ID          string
	Code        string
	Name        string
	MinSelect   int
	MaxSelect   int
	Description string
}

func (s Slot) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("slot id is required")
	}
	if s.Code == "" {
		return fmt.Errorf("slot code is required")
	}
	if s.Name == "" {
		return fmt.Errorf("slot name is required")
	}
	if s.MinSelect < 0 {
		return fmt.Errorf("slot min_select cannot be negative")
	}
	if s.MaxSelect < s.MinSelect {
		return fmt.Errorf("slot max_select cannot be less than min_select")
	}

	return nil
}
