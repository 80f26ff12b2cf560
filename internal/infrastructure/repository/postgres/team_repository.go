package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/fantasy-contests/internal/domain/roster"
	qb "github.com/riskibarqy/fantasy-contests/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (roster.Team, bool, error) {
	query, args, err := teamBaseSelectBuilder().
		Where(qb.Eq("public_id", teamID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return roster.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Team{}, false, nil
		}
		return roster.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) GetByIDs(ctx context.Context, teamIDs []string) ([]roster.Team, error) {
	if len(teamIDs) == 0 {
		return []roster.Team{}, nil
	}

	values := make([]any, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		values = append(values, teamID)
	}
	query, args, err := teamBaseSelectBuilder().
		Where(qb.In("public_id", values), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get teams: %w", err)
	}

	out := make([]roster.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) ListByUser(ctx context.Context, userID string) ([]roster.Team, error) {
	query, args, err := teamBaseSelectBuilder().
		Where(qb.Eq("user_id", userID), qb.IsNull("deleted_at")).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]roster.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) Insert(ctx context.Context, item roster.Team) error {
	insertModel := teamInsertModel{
		PublicID:      item.ID,
		UserID:        item.UserID,
		Name:          item.Name,
		PlayerIDs:     pq.StringArray(item.PlayerIDs),
		CaptainID:     item.CaptainID,
		ViceCaptainID: item.ViceCaptainID,
		TotalValue:    item.TotalValue,
	}

	query, args, err := qb.InsertModel("fantasy_teams", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}

	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item roster.Team) error {
	query, args, err := qb.Update("fantasy_teams").
		Set("name", item.Name).
		Set("player_ids", pq.StringArray(item.PlayerIDs)).
		Set("captain_player_id", item.CaptainID).
		Set("vice_captain_player_id", item.ViceCaptainID).
		Set("total_value", item.TotalValue).
		Set("updated_at", item.UpdatedAt).
		Where(qb.Eq("public_id", item.ID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update team: %w", err)
	}

	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) (bool, error) {
	query, args, err := qb.Update("fantasy_teams").
		SetExpr("deleted_at", "NOW()").
		Where(qb.Eq("public_id", teamID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete team query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete team: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete team rows affected: %w", err)
	}

	return affected > 0, nil
}

func teamBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("fantasy_teams")
}
