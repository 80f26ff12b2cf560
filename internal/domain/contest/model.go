package contest

import (
	"fmt"
	"time"
)

// Visibility controls who can discover a contest.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Type distinguishes single-day contests from season-long ones.
type Type string

const (
	TypeDaily Type = "daily"
	TypeFull  Type = "full"
)

// Status is a contest lifecycle phase. Except for StatusArchived the phase is
// derived from the time window on every read; the persisted column is only an
// advisory cache.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

var AllStatuses = map[Status]struct{}{
	StatusUpcoming:  {},
	StatusOngoing:   {},
	StatusCompleted: {},
	StatusArchived:  {},
}

// Contest is a time-boxed competition that teams enroll into.
type Contest struct {
	ID          string
	Code        string
	Name        string
	Description string
	StartAt     time.Time
	EndAt       time.Time
	Visibility  Visibility
	Type        Type
	// AllowedTeams restricts daily contests to players from the listed
	// real-world clubs. Empty means unrestricted.
	AllowedTeams []string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (c Contest) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("contest id is required")
	}
	if c.Code == "" {
		return fmt.Errorf("contest code is required")
	}
	if c.Name == "" {
		return fmt.Errorf("contest name is required")
	}
	if c.StartAt.IsZero() || c.EndAt.IsZero() {
		return fmt.Errorf("contest time window is required")
	}
	if !c.StartAt.Before(c.EndAt) {
		return fmt.Errorf("contest start_at must be before end_at")
	}
	if c.Visibility != VisibilityPublic && c.Visibility != VisibilityPrivate {
		return fmt.Errorf("invalid contest visibility: %s", c.Visibility)
	}
	if c.Type != TypeDaily && c.Type != TypeFull {
		return fmt.Errorf("invalid contest type: %s", c.Type)
	}

	return nil
}

// DeriveStatus computes the effective lifecycle phase from the time window.
// Archived is sticky: once persisted it is never overwritten by the
// time-derived value.
func DeriveStatus(c Contest, now time.Time) Status {
	if c.Status == StatusArchived {
		return StatusArchived
	}
	if now.Before(c.StartAt) {
		return StatusUpcoming
	}
	if now.Before(c.EndAt) {
		return StatusOngoing
	}
	return StatusCompleted
}

// AllowsTeam reports whether players from the given real-world club may be
// fielded in this contest.
func (c Contest) AllowsTeam(team string) bool {
	if c.Type != TypeDaily || len(c.AllowedTeams) == 0 {
		return true
	}
	for _, allowed := range c.AllowedTeams {
		if allowed == team {
			return true
		}
	}
	return false
}
