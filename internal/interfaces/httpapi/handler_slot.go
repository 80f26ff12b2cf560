package httpapi

import (
	"net/http"
	"strings"
)

type slotDTO struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	MinSelect   int    `json:"minSelect"`
	MaxSelect   int    `json:"maxSelect"`
	Description string `json:"description,omitempty"`
	PlayerCount int    `json:"playerCount"`
}

// AdminListSlots serves the slot rule store together with the number of
// available players per slot.
func (h *Handler) AdminListSlots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminListSlots")
	defer span.End()

	slots, err := h.slotService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list slots failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]slotDTO, 0, len(slots))
	for _, s := range slots {
		items = append(items, slotDTO{
			ID:          s.ID,
			Code:        s.Code,
			Name:        s.Name,
			MinSelect:   s.MinSelect,
			MaxSelect:   s.MaxSelect,
			Description: s.Description,
			PlayerCount: s.PlayerCount,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AdminGetSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminGetSlot")
	defer span.End()

	slotID := strings.TrimSpace(r.PathValue("slotID"))
	s, err := h.slotService.Get(ctx, slotID)
	if err != nil {
		h.logger.WarnContext(ctx, "get slot failed", "slot_id", slotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, slotDTO{
		ID:          s.ID,
		Code:        s.Code,
		Name:        s.Name,
		MinSelect:   s.MinSelect,
		MaxSelect:   s.MaxSelect,
		Description: s.Description,
	})
}
