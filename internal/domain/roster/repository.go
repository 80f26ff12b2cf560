package roster

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	GetByIDs(ctx context.Context, teamIDs []string) ([]Team, error)
	ListByUser(ctx context.Context, userID string) ([]Team, error)
	Insert(ctx context.Context, t Team) error
	Update(ctx context.Context, t Team) error
	Delete(ctx context.Context, teamID string) (bool, error)
}
