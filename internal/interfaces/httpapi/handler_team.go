package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-contests/internal/usecase"
)

type createTeamRequest struct {
	Name          string   `json:"name" validate:"required,max=100"`
	PlayerIDs     []string `json:"playerIds" validate:"required,min=1,max=16,dive,required"`
	CaptainID     string   `json:"captainId" validate:"required"`
	ViceCaptainID string   `json:"viceCaptainId" validate:"required"`
}

type updateTeamRequest struct {
	Name          *string   `json:"name" validate:"omitempty,max=100"`
	PlayerIDs     *[]string `json:"playerIds" validate:"omitempty,min=1,max=16,dive,required"`
	CaptainID     *string   `json:"captainId"`
	ViceCaptainID *string   `json:"viceCaptainId"`
}

type renameTeamRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	userID, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req createTeamRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	team, err := h.teamService.CreateTeam(ctx, usecase.CreateTeamInput{
		UserID:        userID,
		Name:          req.Name,
		PlayerIDs:     req.PlayerIDs,
		CaptainID:     req.CaptainID,
		ViceCaptainID: req.ViceCaptainID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(ctx, team))
}

func (h *Handler) ListMyTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyTeams")
	defer span.End()

	userID, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	teams, err := h.teamService.ListTeams(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(ctx, t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	userID, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	team, err := h.teamService.GetTeam(ctx, teamID, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, team))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	userID, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req updateTeamRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	team, err := h.teamService.UpdateTeam(ctx, teamID, userID, usecase.UpdateTeamInput{
		Name:          req.Name,
		PlayerIDs:     req.PlayerIDs,
		CaptainID:     req.CaptainID,
		ViceCaptainID: req.ViceCaptainID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, team))
}

// RenameTeam changes the display name only, bypassing the enrollment edit
// lock that protects the selection.
func (h *Handler) RenameTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RenameTeam")
	defer span.End()

	userID, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req renameTeamRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	team, err := h.teamService.RenameTeam(ctx, teamID, userID, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "rename team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, team))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	userID, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	if err := h.teamService.DeleteTeam(ctx, teamID, userID); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
