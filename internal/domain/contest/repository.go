package contest

import (
	"context"
	"time"
)

// ListFilter narrows contest listings. Zero values mean "no filter".
// Status matches the persisted column, which may lag the derived value
// until the next opportunistic refresh.
type ListFilter struct {
	Visibility Visibility
	Status     Status
	Query      string
	Offset     int
	Limit      int
}

// Repository describes contest persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Contest, int, error)
	GetByID(ctx context.Context, contestID string) (Contest, bool, error)
	GetByCode(ctx context.Context, code string) (Contest, bool, error)
	Insert(ctx context.Context, c Contest) error
	Update(ctx context.Context, c Contest) error
	// UpdateStatus refreshes the advisory status cache without touching
	// other fields.
	UpdateStatus(ctx context.Context, contestID string, status Status, updatedAt time.Time) error
	Delete(ctx context.Context, contestID string) (bool, error)
}
