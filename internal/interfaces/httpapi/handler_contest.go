package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-contests/internal/usecase"
)

func (h *Handler) ListContests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListContests")
	defer span.End()

	page, pageSize := queryPaging(r)
	input := usecase.ListContestsInput{
		Status:   r.URL.Query().Get("status"),
		Query:    r.URL.Query().Get("q"),
		Page:     page,
		PageSize: pageSize,
	}

	contests, total, err := h.contestService.ListPublic(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "list contests failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]contestDTO, 0, len(contests))
	for _, c := range contests {
		items = append(items, contestToDTO(ctx, c))
	}

	writeSuccess(ctx, w, http.StatusOK, pagedDTO{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetContest serves a single public contest. Private contests are reported
// as not found regardless of the caller.
func (h *Handler) GetContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetContest")
	defer span.End()

	contestID := strings.TrimSpace(r.PathValue("contestID"))
	c, err := h.contestService.GetPublic(ctx, contestID)
	if err != nil {
		h.logger.WarnContext(ctx, "get contest failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, contestToDTO(ctx, c))
}

// GetContestForMe additionally resolves private contests the caller holds an
// active enrollment in.
func (h *Handler) GetContestForMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetContestForMe")
	defer span.End()

	userID, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	contestID := strings.TrimSpace(r.PathValue("contestID"))
	c, err := h.contestService.GetForUser(ctx, contestID, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "get contest for user failed", "contest_id", contestID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, contestToDTO(ctx, c))
}
