package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-contests/internal/domain/scoreledger"
)

type ScoreLedgerRepository struct {
	mu sync.RWMutex
	// contest id -> player id -> row
	points map[string]map[string]scoreledger.PlayerPoints
}

func NewScoreLedgerRepository(rows []scoreledger.PlayerPoints) *ScoreLedgerRepository {
	r := &ScoreLedgerRepository{points: make(map[string]map[string]scoreledger.PlayerPoints)}
	for _, row := range rows {
		r.upsertLocked(row)
	}

	return r
}

func (r *ScoreLedgerRepository) PointsFor(_ context.Context, contestID string, playerIDs []string) (map[string]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]float64, len(playerIDs))
	rows := r.points[contestID]
	for _, playerID := range playerIDs {
		if row, ok := rows[playerID]; ok {
			out[playerID] = row.Points
		}
	}

	return out, nil
}

func (r *ScoreLedgerRepository) Upsert(_ context.Context, rows []scoreledger.PlayerPoints) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range rows {
		r.upsertLocked(row)
	}

	return nil
}

func (r *ScoreLedgerRepository) upsertLocked(row scoreledger.PlayerPoints) {
	byPlayer, ok := r.points[row.ContestID]
	if !ok {
		byPlayer = make(map[string]scoreledger.PlayerPoints)
		r.points[row.ContestID] = byPlayer
	}
	byPlayer[row.PlayerID] = row
}
