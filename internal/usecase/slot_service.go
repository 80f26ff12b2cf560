package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-contests/internal/domain/player"
	"github.com/riskibarqy/fantasy-contests/internal/domain/slot"
	"github.com/riskibarqy/fantasy-contests/internal/platform/logging"
)

// SlotWithCount pairs a slot rule with the number of available players that
// can fill it, for team-builder screens.
type SlotWithCount struct {
	slot.Slot
	PlayerCount int
}

type SlotService struct {
	slotRepo   slot.Repository
	playerRepo player.Repository
	logger     *logging.Logger
}

func NewSlotService(slotRepo slot.Repository, playerRepo player.Repository, logger *logging.Logger) *SlotService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SlotService{
		slotRepo:   slotRepo,
		playerRepo: playerRepo,
		logger:     logger,
	}
}

func (s *SlotService) List(ctx context.Context) ([]SlotWithCount, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SlotService.List")
	defer span.End()

	slots, err := s.slotRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	out := make([]SlotWithCount, 0, len(slots))
	for _, sl := range slots {
		count, err := s.playerRepo.CountBySlot(ctx, sl.ID)
		if err != nil {
			return nil, fmt.Errorf("count players for slot %s: %w", sl.ID, err)
		}
		out = append(out, SlotWithCount{Slot: sl, PlayerCount: count})
	}

	return out, nil
}

func (s *SlotService) Get(ctx context.Context, slotID string) (slot.Slot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SlotService.Get")
	defer span.End()

	sl, exists, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return slot.Slot{}, fmt.Errorf("get slot: %w", err)
	}
	if !exists {
		return slot.Slot{}, fmt.Errorf("%w: slot=%s", ErrNotFound, slotID)
	}

	return sl, nil
}
