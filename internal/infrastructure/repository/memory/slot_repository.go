package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-contests/internal/domain/slot"
)

type SlotRepository struct {
	mu    sync.RWMutex
	slots map[string]slot.Slot
}

func NewSlotRepository(slots []slot.Slot) *SlotRepository {
	byID := make(map[string]slot.Slot, len(slots))
	for _, item := range slots {
		byID[item.ID] = item
	}

	return &SlotRepository{slots: byID}
}

func (r *SlotRepository) List(_ context.Context) ([]slot.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]slot.Slot, 0, len(r.slots))
	for _, item := range r.slots {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })

	return out, nil
}

func (r *SlotRepository) GetByID(_ context.Context, slotID string) (slot.Slot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.slots[slotID]
	return item, ok, nil
}
