package slot

import "context"

// Repository describes slot rule store reads needed by use cases. The store
// is consumed read-only by this engine; rules are managed elsewhere.
type Repository interface {
	List(ctx context.Context) ([]Slot, error)
	GetByID(ctx context.Context, slotID string) (Slot, bool, error)
}
