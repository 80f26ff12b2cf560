package postgres

import (
	"time"

	"github.com/riskibarqy/fantasy-contests/internal/domain/player"
)

type playerTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	Name        string     `db:"name"`
	TeamName    string     `db:"team_name"`
	Role        string     `db:"role"`
	SlotID      string     `db:"slot_id"`
	Price       float64    `db:"price"`
	IsAvailable bool       `db:"is_available"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:          row.PublicID,
		Name:        row.Name,
		Team:        row.TeamName,
		Role:        row.Role,
		SlotID:      row.SlotID,
		Price:       row.Price,
		IsAvailable: row.IsAvailable,
	}
}
