package httpapi

import (
	"net/http"
	"strings"
)

type enrollRequest struct {
	TeamID string `json:"teamId" validate:"required"`
}

// Enroll joins the caller's team into a contest. Re-enrolling an already
// active pair returns the existing enrollment unchanged.
func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Enroll")
	defer span.End()

	userID, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req enrollRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	contestID := strings.TrimSpace(r.PathValue("contestID"))
	enr, err := h.enrollmentService.Enroll(ctx, contestID, req.TeamID, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "enroll failed",
			"contest_id", contestID,
			"team_id", req.TeamID,
			"user_id", userID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, enrollmentToDTO(ctx, enr))
}

func (h *Handler) ListMyEnrollments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyEnrollments")
	defer span.End()

	userID, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	enrollments, err := h.enrollmentService.ListMine(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "list enrollments failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]enrollmentDTO, 0, len(enrollments))
	for _, enr := range enrollments {
		items = append(items, enrollmentToDTO(ctx, enr))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
