package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/fantasy-contests/internal/domain/contest"
	qb "github.com/riskibarqy/fantasy-contests/internal/platform/querybuilder"
)

type ContestRepository struct {
	db *sqlx.DB
}

func NewContestRepository(db *sqlx.DB) *ContestRepository {
	return &ContestRepository{db: db}
}

func (r *ContestRepository) List(ctx context.Context, filter contest.ListFilter) ([]contest.Contest, int, error) {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if filter.Visibility != "" {
		conditions = append(conditions, qb.Eq("visibility", string(filter.Visibility)))
	}
	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("status", string(filter.Status)))
	}
	if query := strings.TrimSpace(filter.Query); query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		conditions = append(conditions, qb.Expr("(LOWER(name) LIKE ? OR LOWER(code) LIKE ?)", pattern, pattern))
	}

	countQuery, countArgs, err := qb.Select("COUNT(*)").From("contests").Where(conditions...).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count contests query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count contests: %w", err)
	}

	builder := qb.Select("*").From("contests").
		Where(conditions...).
		OrderBy("start_at DESC", "id")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build list contests query: %w", err)
	}

	var rows []contestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list contests: %w", err)
	}

	out := make([]contest.Contest, 0, len(rows))
	for _, row := range rows {
		out = append(out, contestFromRow(row))
	}

	return out, total, nil
}

func (r *ContestRepository) GetByID(ctx context.Context, contestID string) (contest.Contest, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", contestID))
}

func (r *ContestRepository) GetByCode(ctx context.Context, code string) (contest.Contest, bool, error) {
	return r.getOne(ctx, qb.Expr("LOWER(code) = LOWER(?)", code))
}

func (r *ContestRepository) getOne(ctx context.Context, condition qb.Condition) (contest.Contest, bool, error) {
	query, args, err := qb.Select("*").From("contests").
		Where(condition, qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return contest.Contest{}, false, fmt.Errorf("build get contest query: %w", err)
	}

	var row contestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return contest.Contest{}, false, nil
		}
		return contest.Contest{}, false, fmt.Errorf("get contest: %w", err)
	}

	return contestFromRow(row), true, nil
}

func (r *ContestRepository) Insert(ctx context.Context, item contest.Contest) error {
	insertModel := contestInsertModel{
		PublicID:     item.ID,
		Code:         item.Code,
		Name:         item.Name,
		Description:  item.Description,
		StartAt:      item.StartAt,
		EndAt:        item.EndAt,
		Visibility:   string(item.Visibility),
		ContestType:  string(item.Type),
		AllowedTeams: pq.StringArray(item.AllowedTeams),
		Status:       string(item.Status),
	}

	query, args, err := qb.InsertModel("contests", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert contest query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert contest: %w", err)
	}

	return nil
}

func (r *ContestRepository) Update(ctx context.Context, item contest.Contest) error {
	query, args, err := qb.Update("contests").
		Set("name", item.Name).
		Set("description", item.Description).
		Set("start_at", item.StartAt).
		Set("end_at", item.EndAt).
		Set("visibility", string(item.Visibility)).
		Set("contest_type", string(item.Type)).
		Set("allowed_teams", pq.StringArray(item.AllowedTeams)).
		Set("status", string(item.Status)).
		Set("updated_at", item.UpdatedAt).
		Where(qb.Eq("public_id", item.ID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update contest query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update contest: %w", err)
	}

	return nil
}

func (r *ContestRepository) UpdateStatus(ctx context.Context, contestID string, status contest.Status, updatedAt time.Time) error {
	query, args, err := qb.Update("contests").
		Set("status", string(status)).
		Set("updated_at", updatedAt).
		Where(qb.Eq("public_id", contestID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update contest status query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update contest status: %w", err)
	}

	return nil
}

func (r *ContestRepository) Delete(ctx context.Context, contestID string) (bool, error) {
	query, args, err := qb.Update("contests").
		SetExpr("deleted_at", "NOW()").
		Where(qb.Eq("public_id", contestID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete contest query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete contest: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete contest rows affected: %w", err)
	}

	return affected > 0, nil
}
