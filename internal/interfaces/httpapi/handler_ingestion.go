package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-contests/internal/usecase"
)

type ingestPlayerPointsRequest struct {
	ContestID string                     `json:"contestId" validate:"required"`
	Points    []ingestPlayerPointsUpdate `json:"points" validate:"required,min=1,dive"`
}

type ingestPlayerPointsUpdate struct {
	PlayerID string  `json:"playerId" validate:"required"`
	Points   float64 `json:"points"`
}

// IngestPlayerPoints upserts a batch of per-contest player points from the
// scoring pipeline. Duplicate player ids within the batch resolve to the
// last occurrence.
func (h *Handler) IngestPlayerPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestPlayerPoints")
	defer span.End()

	var req ingestPlayerPointsRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updates := make([]usecase.PointsUpdate, 0, len(req.Points))
	for _, p := range req.Points {
		updates = append(updates, usecase.PointsUpdate{
			PlayerID: p.PlayerID,
			Points:   p.Points,
		})
	}

	applied, err := h.ledgerService.Ingest(ctx, req.ContestID, updates)
	if err != nil {
		h.logger.WarnContext(ctx, "ingest player points failed", "contest_id", req.ContestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"applied": applied})
}
