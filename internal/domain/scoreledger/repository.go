package scoreledger

import "context"

// Repository describes ledger access from use cases. PointsFor omits players
// with no ledger row; callers treat missing entries as zero.
type Repository interface {
	PointsFor(ctx context.Context, contestID string, playerIDs []string) (map[string]float64, error)
	Upsert(ctx context.Context, rows []PlayerPoints) error
}
