package enrollment

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusRemoved Status = "removed"
)

// ErrDuplicateActive is returned by repositories when an insert would create
// a second active enrollment for the same (team, contest) pair. The postgres
// repository maps the partial unique index violation to it; the memory
// repository checks under its write lock.
var ErrDuplicateActive = errors.New("active enrollment already exists")

// Enrollment joins a Team to a Contest. Rows are never physically deleted;
// unenrollment transitions them to removed.
type Enrollment struct {
	ID        string
	TeamID    string
	ContestID string
	// UserID is denormalized from the team owner for cheap per-user queries.
	UserID     string
	Status     Status
	EnrolledAt time.Time
	RemovedAt  *time.Time
}

func (e Enrollment) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("enrollment id is required")
	}
	if e.TeamID == "" {
		return fmt.Errorf("enrollment team id is required")
	}
	if e.ContestID == "" {
		return fmt.Errorf("enrollment contest id is required")
	}
	if e.UserID == "" {
		return fmt.Errorf("enrollment user id is required")
	}
	if e.Status != StatusActive && e.Status != StatusRemoved {
		return fmt.Errorf("invalid enrollment status: %s", e.Status)
	}

	return nil
}

// AllowedTeamsError reports daily-contest players whose real-world club is
// outside the contest's allowed set.
type AllowedTeamsError struct {
	PlayerNames []string
	Allowed     []string
}

func (e *AllowedTeamsError) Error() string {
	return fmt.Sprintf("players outside allowed teams: %s (allowed: %s)",
		strings.Join(e.PlayerNames, ", "), strings.Join(e.Allowed, ", "))
}
