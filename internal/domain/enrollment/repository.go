package enrollment

import (
	"context"
	"time"
)

// Repository describes enrollment persistence needs from use cases.
// List methods return rows ordered by enrolled_at ascending, which the
// leaderboard relies on for its stable tie-break.
type Repository interface {
	GetByID(ctx context.Context, enrollmentID string) (Enrollment, bool, error)
	GetActive(ctx context.Context, teamID, contestID string) (Enrollment, bool, error)
	ListActiveByContest(ctx context.Context, contestID string) ([]Enrollment, error)
	ListActiveByUser(ctx context.Context, userID string) ([]Enrollment, error)
	ListActiveByTeam(ctx context.Context, teamID string) ([]Enrollment, error)
	HasActiveByUserAndContest(ctx context.Context, userID, contestID string) (bool, error)
	// Insert persists a new active enrollment. It returns ErrDuplicateActive
	// when the (team, contest) pair already has an active row.
	Insert(ctx context.Context, e Enrollment) error
	// MarkRemoved transitions an active row to removed. The bool reports
	// whether a row was actually transitioned.
	MarkRemoved(ctx context.Context, enrollmentID string, removedAt time.Time) (bool, error)
}
