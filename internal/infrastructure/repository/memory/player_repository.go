package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-contests/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	byID := make(map[string]player.Player, len(players))
	for _, item := range players {
		byID[item.ID] = item
	}

	return &PlayerRepository{players: byID}
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		if item, ok := r.players[playerID]; ok {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *PlayerRepository) CountBySlot(_ context.Context, slotID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.players {
		if item.SlotID == slotID && item.IsAvailable {
			count++
		}
	}

	return count, nil
}
