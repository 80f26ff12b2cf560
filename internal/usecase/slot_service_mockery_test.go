package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-contests/internal/domain/slot"
	playermock "github.com/riskibarqy/fantasy-contests/internal/mocks/domain/player"
	slotmock "github.com/riskibarqy/fantasy-contests/internal/mocks/domain/slot"
	"github.com/riskibarqy/fantasy-contests/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestSlotService_List_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	slotRepo := slotmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)

	service := NewSlotService(slotRepo, playerRepo, logging.NewNop())
	slots := []slot.Slot{
		{ID: "slot-wk", Code: "WK", Name: "Wicket Keeper", MinSelect: 1, MaxSelect: 2},
		{ID: "slot-bat", Code: "BAT", Name: "Batter", MinSelect: 3, MaxSelect: 5},
	}

	slotRepo.
		On("List", mock.Anything).
		Return(slots, nil).
		Once()
	playerRepo.
		On("CountBySlot", mock.Anything, "slot-wk").
		Return(2, nil).
		Once()
	playerRepo.
		On("CountBySlot", mock.Anything, "slot-bat").
		Return(5, nil).
		Once()

	got, err := service.List(ctx)
	if err != nil {
		t.Fatalf("list slots: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected slot count: got=%d want=2", len(got))
	}
	if got[0].ID != "slot-wk" || got[0].PlayerCount != 2 {
		t.Fatalf("unexpected first slot: id=%s count=%d", got[0].ID, got[0].PlayerCount)
	}
	if got[1].PlayerCount != 5 {
		t.Fatalf("unexpected batter count: got=%d want=5", got[1].PlayerCount)
	}
}

func TestSlotService_Get_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	slotRepo := slotmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)

	service := NewSlotService(slotRepo, playerRepo, logging.NewNop())

	slotRepo.
		On("GetByID", mock.Anything, "slot-missing").
		Return(slot.Slot{}, false, nil).
		Once()

	_, err := service.Get(ctx, "slot-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
