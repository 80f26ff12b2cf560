package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-contests/internal/domain/slot"
	qb "github.com/riskibarqy/fantasy-contests/internal/platform/querybuilder"
)

type slotTableModel struct {
	ID          int64  `db:"id"`
	PublicID    string `db:"public_id"`
	Code        string `db:"code"`
	Name        string `db:"name"`
	MinSelect   int    `db:"min_select"`
	MaxSelect   int    `db:"max_select"`
	Description string `db:"description"`
}

func slotFromRow(row slotTableModel) slot.Slot {
	return slot.Slot{
		ID:          row.PublicID,
		Code:        row.Code,
		Name:        row.Name,
		MinSelect:   row.MinSelect,
		MaxSelect:   row.MaxSelect,
		Description: row.Description,
	}
}

type SlotRepository struct {
	db *sqlx.DB
}

func NewSlotRepository(db *sqlx.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) List(ctx context.Context) ([]slot.Slot, error) {
	query, args, err := qb.Select("*").From("slots").OrderBy("code").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list slots query: %w", err)
	}

	var rows []slotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	out := make([]slot.Slot, 0, len(rows))
	for _, row := range rows {
		out = append(out, slotFromRow(row))
	}

	return out, nil
}

func (r *SlotRepository) GetByID(ctx context.Context, slotID string) (slot.Slot, bool, error) {
	query, args, err := qb.Select("*").From("slots").
		Where(qb.Eq("public_id", slotID)).
		ToSQL()
	if err != nil {
		return slot.Slot{}, false, fmt.Errorf("build get slot query: %w", err)
	}

	var row slotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return slot.Slot{}, false, nil
		}
		return slot.Slot{}, false, fmt.Errorf("get slot: %w", err)
	}

	return slotFromRow(row), true, nil
}
