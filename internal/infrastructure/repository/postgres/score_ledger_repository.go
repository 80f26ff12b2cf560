package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-contests/internal/domain/scoreledger"
	qb "github.com/riskibarqy/fantasy-contests/internal/platform/querybuilder"
)

type scoreLedgerTableModel struct {
	ID        int64     `db:"id"`
	ContestID string    `db:"contest_id"`
	PlayerID  string    `db:"player_id"`
	Points    float64   `db:"points"`
	UpdatedAt time.Time `db:"updated_at"`
}

type scoreLedgerInsertModel struct {
	ContestID string    `db:"contest_id"`
	PlayerID  string    `db:"player_id"`
	Points    float64   `db:"points"`
	UpdatedAt time.Time `db:"updated_at"`
}

type ScoreLedgerRepository struct {
	db *sqlx.DB
}

func NewScoreLedgerRepository(db *sqlx.DB) *ScoreLedgerRepository {
	return &ScoreLedgerRepository{db: db}
}

func (r *ScoreLedgerRepository) PointsFor(ctx context.Context, contestID string, playerIDs []string) (map[string]float64, error) {
	if len(playerIDs) == 0 {
		return map[string]float64{}, nil
	}

	values := make([]any, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		values = append(values, playerID)
	}
	query, args, err := qb.Select("*").From("score_ledger").
		Where(qb.Eq("contest_id", contestID), qb.In("player_id", values)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build score ledger query: %w", err)
	}

	var rows []scoreLedgerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("read score ledger: %w", err)
	}

	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.PlayerID] = row.Points
	}

	return out, nil
}

func (r *ScoreLedgerRepository) Upsert(ctx context.Context, rows []scoreledger.PlayerPoints) error {
	if len(rows) == 0 {
		return nil
	}

	for _, row := range rows {
		insertModel := scoreLedgerInsertModel{
			ContestID: row.ContestID,
			PlayerID:  row.PlayerID,
			Points:    row.Points,
			UpdatedAt: row.UpdatedAt,
		}

		query, args, err := qb.InsertModel("score_ledger", insertModel, `ON CONFLICT (contest_id, player_id)
DO UPDATE SET
    points = EXCLUDED.points,
    updated_at = EXCLUDED.updated_at`)
		if err != nil {
			return fmt.Errorf("build score ledger upsert query: %w", err)
		}

		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert score ledger row contest=%s player=%s: %w", row.ContestID, row.PlayerID, err)
		}
	}

	return nil
}
