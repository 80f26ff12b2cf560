package scoreledger

import (
	"fmt"
	"time"
)

// Captain and vice-captain contribution multipliers applied when a team's
// contest score is aggregated.
const (
	CaptainMultiplier     = 2.0
	ViceCaptainMultiplier = 1.5
)

// PlayerPoints is the points a player accumulated within one contest's
// scoring window, independent of lifetime points. Rows are written by the
// scoring ingestion pipeline; this engine reads them.
type PlayerPoints struct {
	ContestID string
	PlayerID  string
	Points    float64
	UpdatedAt time.Time
}

func (p PlayerPoints) Validate() error {
	if p.ContestID == "" {
		return fmt.Errorf("contest id is required")
	}
	if p.PlayerID == "" {
		return fmt.Errorf("player id is required")
	}

	return nil
}
