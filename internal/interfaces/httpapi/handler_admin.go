package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-contests/internal/usecase"
)

type createContestRequest struct {
	Code         string    `json:"code" validate:"required,max=64"`
	Name         string    `json:"name" validate:"required,max=200"`
	Description  string    `json:"description" validate:"max=2000"`
	StartAt      time.Time `json:"startAt" validate:"required"`
	EndAt        time.Time `json:"endAt" validate:"required"`
	Visibility   string    `json:"visibility" validate:"omitempty,oneof=public private"`
	Type         string    `json:"type" validate:"omitempty,oneof=daily full"`
	AllowedTeams []string  `json:"allowedTeams" validate:"omitempty,dive,required"`
}

type updateContestRequest struct {
	Name         *string    `json:"name" validate:"omitempty,max=200"`
	Description  *string    `json:"description" validate:"omitempty,max=2000"`
	StartAt      *time.Time `json:"startAt"`
	EndAt        *time.Time `json:"endAt"`
	Visibility   *string    `json:"visibility" validate:"omitempty,oneof=public private"`
	Type         *string    `json:"type" validate:"omitempty,oneof=daily full"`
	AllowedTeams *[]string  `json:"allowedTeams" validate:"omitempty,dive,required"`
	Archive      *bool      `json:"archive"`
}

type bulkEnrollRequest struct {
	TeamIDs []string `json:"teamIds" validate:"required,min=1,dive,required"`
}

type unenrollRequest struct {
	TeamIDs       []string `json:"teamIds" validate:"omitempty,dive,required"`
	EnrollmentIDs []string `json:"enrollmentIds" validate:"omitempty,dive,required"`
}

func (h *Handler) AdminListContests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminListContests")
	defer span.End()

	page, pageSize := queryPaging(r)
	contests, total, err := h.contestService.ListForAdmin(ctx, usecase.ListContestsInput{
		Status:   r.URL.Query().Get("status"),
		Query:    r.URL.Query().Get("q"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "admin list contests failed", "error", err)
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

func (h *Handler) AdminGetContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminGetContest")
	defer span.End()

	contestID := strings.TrimSpace(r.PathValue("contestID"))
	c, err := h.contestService.GetForAdmin(ctx, contestID)
	if err != nil {
		h.logger.WarnContext(ctx, "admin get contest failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, contestToDTO(ctx, c))
}

func (h *Handler) AdminCreateContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreateContest")
	defer span.End()

	var req createContestRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	c, err := h.contestService.Create(ctx, usecase.CreateContestInput{
		Code:         req.Code,
		Name:         req.Name,
		Description:  req.Description,
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
		Visibility:   req.Visibility,
		Type:         req.Type,
		AllowedTeams: req.AllowedTeams,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create contest failed", "code", req.Code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, contestToDTO(ctx, c))
}

func (h *Handler) AdminUpdateContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminUpdateContest")
	defer span.End()

	var req updateContestRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	contestID := strings.TrimSpace(r.PathValue("contestID"))
	c, err := h.contestService.Update(ctx, contestID, usecase.UpdateContestInput{
		Name:         req.Name,
		Description:  req.Description,
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
		Visibility:   req.Visibility,
		Type:         req.Type,
		AllowedTeams: req.AllowedTeams,
		Archive:      req.Archive,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update contest failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, contestToDTO(ctx, c))
}

// AdminDeleteContest removes a contest. With ?force=true active enrollments
// are cascaded to removed first; without it the delete is refused while any
// active enrollment exists.
func (h *Handler) AdminDeleteContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminDeleteContest")
	defer span.End()

	contestID := strings.TrimSpace(r.PathValue("contestID"))
	force := strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("force")), "true")

	if err := h.contestService.Delete(ctx, contestID, force); err != nil {
		h.logger.WarnContext(ctx, "delete contest failed", "contest_id", contestID, "forced", force, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AdminBulkEnroll enrolls a batch of teams into a contest on behalf of their
// owners. Teams already enrolled are skipped; the response carries only the
// enrollments created by this call.
func (h *Handler) AdminBulkEnroll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminBulkEnroll")
	defer span.End()

	var req bulkEnrollRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	contestID := strings.TrimSpace(r.PathValue("contestID"))
	created, err := h.enrollmentService.BulkEnroll(ctx, contestID, req.TeamIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "bulk enroll failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]enrollmentDTO, 0, len(created))
	for _, enr := range created {
		items = append(items, enrollmentToDTO(ctx, enr))
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"created":   items,
		"requested": len(req.TeamIDs),
	})
}

// AdminUnenroll marks matching active enrollments removed, by team id or
// enrollment id. Best effort: unresolvable items are skipped and only the
// count of removals is reported.
func (h *Handler) AdminUnenroll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminUnenroll")
	defer span.End()

	var req unenrollRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	contestID := strings.TrimSpace(r.PathValue("contestID"))
	removed, err := h.enrollmentService.Unenroll(ctx, contestID, usecase.UnenrollInput{
		TeamIDs:       req.TeamIDs,
		EnrollmentIDs: req.EnrollmentIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "unenroll failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"removed": removed})
}
