package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/riskibarqy/fantasy-contests/internal/domain/roster"
)

type teamTableModel struct {
	ID            int64          `db:"id"`
	PublicID      string         `db:"public_id"`
	UserID        string         `db:"user_id"`
	Name          string         `db:"name"`
	PlayerIDs     pq.StringArray `db:"player_ids"`
	CaptainID     string         `db:"captain_player_id"`
	ViceCaptainID string         `db:"vice_captain_player_id"`
	TotalValue    float64        `db:"total_value"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
	DeletedAt     *time.Time     `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID      string         `db:"public_id"`
	UserID        string         `db:"user_id"`
	Name          string         `db:"name"`
	PlayerIDs     pq.StringArray `db:"player_ids"`
	CaptainID     string         `db:"captain_player_id"`
	ViceCaptainID string         `db:"vice_captain_player_id"`
	TotalValue    float64        `db:"total_value"`
}

func teamFromRow(row teamTableModel) roster.Team {
	return roster.Team{
		ID:            row.PublicID,
		UserID:        row.UserID,
		Name:          row.Name,
		PlayerIDs:     append([]string(nil), row.PlayerIDs...),
		CaptainID:     row.CaptainID,
		ViceCaptainID: row.ViceCaptainID,
		TotalValue:    row.TotalValue,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
