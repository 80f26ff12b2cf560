package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-contests/internal/domain/player"
	qb "github.com/riskibarqy/fantasy-contests/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	values := make([]any, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		values = append(values, playerID)
	}
	query, args, err := qb.Select("*").From("players").
		Where(qb.In("public_id", values), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}

	return out, nil
}

func (r *PlayerRepository) CountBySlot(ctx context.Context, slotID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("players").
		Where(
			qb.Eq("slot_id", slotID),
			qb.Eq("is_available", true),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count players query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count players by slot: %w", err)
	}

	return count, nil
}
