package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-contests/internal/domain/user"
	qb "github.com/riskibarqy/fantasy-contests/internal/platform/querybuilder"
)

type userTableModel struct {
	ID          int64  `db:"id"`
	PublicID    string `db:"public_id"`
	Username    string `db:"username"`
	DisplayName string `db:"display_name"`
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByIDs(ctx context.Context, userIDs []string) ([]user.Profile, error) {
	if len(userIDs) == 0 {
		return []user.Profile{}, nil
	}

	values := make([]any, 0, len(userIDs))
	for _, userID := range userIDs {
		values = append(values, userID)
	}
	query, args, err := qb.Select("id", "public_id", "username", "display_name").
		From("users").
		Where(qb.In("public_id", values)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}

	out := make([]user.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, user.Profile{
			ID:          row.PublicID,
			Username:    row.Username,
			DisplayName: row.DisplayName,
		})
	}

	return out, nil
}
