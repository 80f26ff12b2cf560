package postgres

import (
	"time"

	"github.com/riskibarqy/fantasy-contests/internal/domain/enrollment"
)

type enrollmentTableModel struct {
	ID         int64      `db:"id"`
	PublicID   string     `db:"public_id"`
	TeamID     string     `db:"team_id"`
	ContestID  string     `db:"contest_id"`
	UserID     string     `db:"user_id"`
	Status     string     `db:"status"`
	EnrolledAt time.Time  `db:"enrolled_at"`
	RemovedAt  *time.Time `db:"removed_at"`
}

type enrollmentInsertModel struct {
	PublicID   string    `db:"public_id"`
	TeamID     string    `db:"team_id"`
	ContestID  string    `db:"contest_id"`
	UserID     string    `db:"user_id"`
	Status     string    `db:"status"`
	EnrolledAt time.Time `db:"enrolled_at"`
}

func enrollmentFromRow(row enrollmentTableModel) enrollment.Enrollment {
	return enrollment.Enrollment{
		ID:         row.PublicID,
		TeamID:     row.TeamID,
		ContestID:  row.ContestID,
		UserID:     row.UserID,
		Status:     enrollment.Status(row.Status),
		EnrolledAt: row.EnrolledAt,
		RemovedAt:  row.RemovedAt,
	}
}
