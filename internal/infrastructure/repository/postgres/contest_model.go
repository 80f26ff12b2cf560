package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/riskibarqy/fantasy-contests/internal/domain/contest"
)

type contestTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	Code         string         `db:"code"`
	Name         string         `db:"name"`
	Description  string         `db:"description"`
	StartAt      time.Time      `db:"start_at"`
	EndAt        time.Time      `db:"end_at"`
	Visibility   string         `db:"visibility"`
	ContestType  string         `db:"contest_type"`
	AllowedTeams pq.StringArray `db:"allowed_teams"`
	Status       string         `db:"status"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

type contestInsertModel struct {
	PublicID     string         `db:"public_id"`
	Code         string         `db:"code"`
	Name         string         `db:"name"`
	Description  string         `db:"description"`
	StartAt      time.Time      `db:"start_at"`
	EndAt        time.Time      `db:"end_at"`
	Visibility   string         `db:"visibility"`
	ContestType  string         `db:"contest_type"`
	AllowedTeams pq.StringArray `db:"allowed_teams"`
	Status       string         `db:"status"`
}

func contestFromRow(row contestTableModel) contest.Contest {
	return contest.Contest{
		ID:           row.PublicID,
		Code:         row.Code,
		Name:         row.Name,
		Description:  row.Description,
		StartAt:      row.StartAt,
		EndAt:        row.EndAt,
		Visibility:   contest.Visibility(row.Visibility),
		Type:         contest.Type(row.ContestType),
		AllowedTeams: append([]string(nil), row.AllowedTeams...),
		Status:       contest.Status(row.Status),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
