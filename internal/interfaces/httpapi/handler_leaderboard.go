package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-contests/internal/usecase"
)

type leaderboardDTO struct {
	ContestID   string                `json:"contestId"`
	Status      string                `json:"status"`
	Entries     []leaderboardEntryDTO `json:"entries"`
	Total       int                   `json:"total"`
	Page        int                   `json:"page"`
	PageSize    int                   `json:"pageSize"`
	ViewerEntry *leaderboardEntryDTO  `json:"viewerEntry,omitempty"`
}

type leaderboardEntryDTO struct {
	Rank          int     `json:"rank"`
	EnrollmentID  string  `json:"enrollmentId"`
	TeamID        string  `json:"teamId"`
	TeamName      string  `json:"teamName"`
	UserID        string  `json:"userId"`
	UserLabel     string  `json:"userLabel"`
	Points        float64 `json:"points"`
	EnrolledAtUTC string  `json:"enrolledAtUtc"`
}

type teamScoreDTO struct {
	ContestID string           `json:"contestId"`
	TeamID    string           `json:"teamId"`
	Total     float64          `json:"total"`
	Players   []playerScoreDTO `json:"players"`
}

type playerScoreDTO struct {
	PlayerID   string  `json:"playerId"`
	Points     float64 `json:"points"`
	Multiplier float64 `json:"multiplier"`
	Effective  float64 `json:"effective"`
}

// GetLeaderboard serves one page of contest standings. An authenticated
// viewer additionally gets their best-ranked entry even when it falls
// outside the requested page.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	contestID := strings.TrimSpace(r.PathValue("contestID"))
	page, pageSize := queryPaging(r)

	board, err := h.leaderboardService.Build(ctx, usecase.LeaderboardInput{
		ContestID: contestID,
		Page:      page,
		PageSize:  pageSize,
		ViewerID:  optionalViewerID(ctx),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "build leaderboard failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(ctx, board))
}

// GetTeamScore serves a team's per-player score breakdown within a contest.
func (h *Handler) GetTeamScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamScore")
	defer span.End()

	userID, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	contestID := strings.TrimSpace(r.PathValue("contestID"))
	teamID := strings.TrimSpace(r.PathValue("teamID"))

	score, err := h.leaderboardService.TeamScore(ctx, contestID, teamID, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team score failed",
			"contest_id", contestID,
			"team_id", teamID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	players := make([]playerScoreDTO, 0, len(score.Players))
	for _, p := range score.Players {
		players = append(players, playerScoreDTO{
			PlayerID:   p.PlayerID,
			Points:     p.Points,
			Multiplier: p.Multiplier,
			Effective:  p.Effective,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, teamScoreDTO{
		ContestID: score.ContestID,
		TeamID:    score.TeamID,
		Total:     score.Total,
		Players:   players,
	})
}

func leaderboardToDTO(ctx context.Context, board usecase.Leaderboard) leaderboardDTO {
	ctx, span := startSpan(ctx, "httpapi.leaderboardToDTO")
	defer span.End()

	entries := make([]leaderboardEntryDTO, 0, len(board.Entries))
	for _, e := range board.Entries {
		entries = append(entries, leaderboardEntryToDTO(e))
	}

	dto := leaderboardDTO{
		ContestID: board.ContestID,
		Status:    string(board.Status),
		Entries:   entries,
		Total:     board.Total,
		Page:      board.Page,
		PageSize:  board.PageSize,
	}
	if board.ViewerEntry != nil {
		viewer := leaderboardEntryToDTO(*board.ViewerEntry)
		dto.ViewerEntry = &viewer
	}
	return dto
}

func leaderboardEntryToDTO(e usecase.LeaderboardEntry) leaderboardEntryDTO {
	return leaderboardEntryDTO{
		Rank:          e.Rank,
		EnrollmentID:  e.EnrollmentID,
		TeamID:        e.TeamID,
		TeamName:      e.TeamName,
		UserID:        e.UserID,
		UserLabel:     e.UserLabel,
		Points:        e.Points,
		EnrolledAtUTC: e.EnrolledAt.UTC().Format(time.RFC3339),
	}
}
