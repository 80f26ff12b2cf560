package roster

import (
	"fmt"
	"time"
)

const (
	MinTeamSize = 1
	MaxTeamSize = 16

	MaxTeamNameLength = 100
)

// Team is a user-assembled fantasy roster. PlayerIDs keeps selection order;
// captain and vice-captain must be members of the selection.
type Team struct {
	ID            string
	UserID        string
	Name          string
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
	// TotalValue caches the summed price of the selected players.
	TotalValue float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (t Team) ValidateBasic() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.UserID == "" {
		return fmt.Errorf("team user id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if len(t.Name) > MaxTeamNameLength {
		return fmt.Errorf("team name cannot exceed %d characters", MaxTeamNameLength)
	}
	if len(t.PlayerIDs) < MinTeamSize || len(t.PlayerIDs) > MaxTeamSize {
		return fmt.Errorf("team must select between %d and %d players", MinTeamSize, MaxTeamSize)
	}

	return nil
}
