package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-contests/internal/domain/enrollment"
	qb "github.com/riskibarqy/fantasy-contests/internal/platform/querybuilder"
)

type EnrollmentRepository struct {
	db *sqlx.DB
}

func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) GetByID(ctx context.Context, enrollmentID string) (enrollment.Enrollment, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", enrollmentID))
}

func (r *EnrollmentRepository) GetActive(ctx context.Context, teamID, contestID string) (enrollment.Enrollment, bool, error) {
	return r.getOne(ctx,
		qb.Eq("team_id", teamID),
		qb.Eq("contest_id", contestID),
		qb.Eq("status", string(enrollment.StatusActive)),
	)
}

func (r *EnrollmentRepository) getOne(ctx context.Context, conditions ...qb.Condition) (enrollment.Enrollment, bool, error) {
	query, args, err := enrollmentBaseSelectBuilder().Where(conditions...).ToSQL()
	if err != nil {
		return enrollment.Enrollment{}, false, fmt.Errorf("build get enrollment query: %w", err)
	}

	var row enrollmentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return enrollment.Enrollment{}, false, nil
		}
		return enrollment.Enrollment{}, false, fmt.Errorf("get enrollment: %w", err)
	}

	return enrollmentFromRow(row), true, nil
}

// ListActiveByContest returns active rows ordered by enrollment time; the
// leaderboard tie-break depends on this ordering.
func (r *EnrollmentRepository) ListActiveByContest(ctx context.Context, contestID string) ([]enrollment.Enrollment, error) {
	return r.listActive(ctx, qb.Eq("contest_id", contestID))
}

func (r *EnrollmentRepository) ListActiveByUser(ctx context.Context, userID string) ([]enrollment.Enrollment, error) {
	return r.listActive(ctx, qb.Eq("user_id", userID))
}

func (r *EnrollmentRepository) ListActiveByTeam(ctx context.Context, teamID string) ([]enrollment.Enrollment, error) {
	return r.listActive(ctx, qb.Eq("team_id", teamID))
}

func (r *EnrollmentRepository) listActive(ctx context.Context, condition qb.Condition) ([]enrollment.Enrollment, error) {
	query, args, err := enrollmentBaseSelectBuilder().
		Where(condition, qb.Eq("status", string(enrollment.StatusActive))).
		OrderBy("enrolled_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list enrollments query: %w", err)
	}

	var rows []enrollmentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	out := make([]enrollment.Enrollment, 0, len(rows))
	for _, row := range rows {
		out = append(out, enrollmentFromRow(row))
	}

	return out, nil
}

func (r *EnrollmentRepository) HasActiveByUserAndContest(ctx context.Context, userID, contestID string) (bool, error) {
	query, args, err := qb.Select("COUNT(*)").From("enrollments").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("contest_id", contestID),
			qb.Eq("status", string(enrollment.StatusActive)),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build has enrollment query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("has enrollment: %w", err)
	}

	return count > 0, nil
}

// Insert relies on the partial unique index over (team_id, contest_id)
// restricted to active rows; a violation surfaces as ErrDuplicateActive so
// the caller can resolve the race.
func (r *EnrollmentRepository) Insert(ctx context.Context, item enrollment.Enrollment) error {
	insertModel := enrollmentInsertModel{
		PublicID:   item.ID,
		TeamID:     item.TeamID,
		ContestID:  item.ContestID,
		UserID:     item.UserID,
		Status:     string(item.Status),
		EnrolledAt: item.EnrolledAt,
	}

	query, args, err := qb.InsertModel("enrollments", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert enrollment query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return enrollment.ErrDuplicateActive
		}
		return fmt.Errorf("insert enrollment: %w", err)
	}

	return nil
}

func (r *EnrollmentRepository) MarkRemoved(ctx context.Context, enrollmentID string, removedAt time.Time) (bool, error) {
	query, args, err := qb.Update("enrollments").
		Set("status", string(enrollment.StatusRemoved)).
		Set("removed_at", removedAt).
		Where(
			qb.Eq("public_id", enrollmentID),
			qb.Eq("status", string(enrollment.StatusActive)),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build mark enrollment removed query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("mark enrollment removed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark enrollment removed rows affected: %w", err)
	}

	return affected > 0, nil
}

func enrollmentBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("enrollments")
}
