package player

import "context"

// Repository describes player registry reads needed by use cases.
type Repository interface {
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	CountBySlot(ctx context.Context, slotID string) (int, error)
}
