package httpapi

import "net/http"

type leaderboardWarmupRequest struct {
	ContestID string `json:"contestId" validate:"required"`
}

// RunLeaderboardWarmupJob rebuilds the first standings page of a contest so
// the next read after a ledger ingest hits a warm cache. Invoked by the job
// queue, guarded by the internal job token.
func (h *Handler) RunLeaderboardWarmupJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunLeaderboardWarmupJob")
	defer span.End()

	var req leaderboardWarmupRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := h.leaderboardService.Warm(ctx, req.ContestID)
	if err != nil {
		h.logger.WarnContext(ctx, "leaderboard warmup failed", "contest_id", req.ContestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "leaderboard warmed",
		"contest_id", req.ContestID,
		"entries", len(board.Entries),
		"total", board.Total,
	)

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"status":  "warmed",
		"entries": len(board.Entries),
	})
}
