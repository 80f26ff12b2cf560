package player

import "fmt"

// Player is a selectable athlete from the player registry. The registry is
// maintained by the admin back office; this engine reads it to price teams
// and validate composition.
type Player struct {
	ID   string
	Name string
	// Team is the real-world club the player belongs to, matched against a
	// daily contest's allowed-team list.
	Team string
	Role string
	// SlotID references a roster category in the slot rule store. Players
	// without a slot are skipped by composition grouping.
	SlotID      string
	Price       float64
	IsAvailable bool
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("player price cannot be negative")
	}

	return nil
}
