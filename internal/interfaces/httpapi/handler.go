package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-contests/internal/domain/contest"
	"github.com/riskibarqy/fantasy-contests/internal/domain/enrollment"
	"github.com/riskibarqy/fantasy-contests/internal/domain/roster"
	"github.com/riskibarqy/fantasy-contests/internal/platform/logging"
	"github.com/riskibarqy/fantasy-contests/internal/usecase"
)

type Handler struct {
	contestService     *usecase.ContestService
	teamService        *usecase.TeamService
	enrollmentService  *usecase.EnrollmentService
	leaderboardService *usecase.LeaderboardService
	ledgerService      *usecase.LedgerService
	slotService        *usecase.SlotService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	contestService *usecase.ContestService,
	teamService *usecase.TeamService,
	enrollmentService *usecase.EnrollmentService,
	leaderboardService *usecase.LeaderboardService,
	ledgerService *usecase.LedgerService,
	slotService *usecase.SlotService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		contestService:     contestService,
		teamService:        teamService,
		enrollmentService:  enrollmentService,
		leaderboardService: leaderboardService,
		ledgerService:      ledgerService,
		slotService:        slotService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeBody(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func requirePrincipal(ctx context.Context, w http.ResponseWriter) (string, bool) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return "", false
	}
	return principal.UserID, true
}

// optionalViewerID returns the caller's user id when a principal was attached
// by OptionalAuth, empty for anonymous requests.
func optionalViewerID(ctx context.Context) string {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return ""
	}
	return principal.UserID
}

func queryInt(r *http.Request, key string) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

// queryPaging reads page/pageSize query parameters clamped the same way the
// listing services clamp them, so the echoed paging envelope matches what
// was actually applied.
func queryPaging(r *http.Request) (page, pageSize int) {
	page = queryInt(r, "page")
	if page < 1 {
		page = 1
	}
	pageSize = queryInt(r, "pageSize")
	if pageSize < 1 {
		pageSize = usecase.DefaultPageSize
	}
	if pageSize > usecase.MaxPageSize {
		pageSize = usecase.MaxPageSize
	}
	return page, pageSize
}

// pagedDTO wraps a listing payload with its paging envelope.
type pagedDTO struct {
	Items    any `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

type contestDTO struct {
	ID           string   `json:"id"`
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	StartAt      string   `json:"startAt"`
	EndAt        string   `json:"endAt"`
	Visibility   string   `json:"visibility"`
	Type         string   `json:"type"`
	AllowedTeams []string `json:"allowedTeams,omitempty"`
	Status       string   `json:"status"`
	CreatedAtUTC string   `json:"createdAtUtc"`
	UpdatedAtUTC string   `json:"updatedAtUtc"`
}

type teamDTO struct {
	ID            string   `json:"id"`
	UserID        string   `json:"userId"`
	Name          string   `json:"name"`
	PlayerIDs     []string `json:"playerIds"`
	CaptainID     string   `json:"captainId"`
	ViceCaptainID string   `json:"viceCaptainId"`
	TotalValue    float64  `json:"totalValue"`
	CreatedAtUTC  string   `json:"createdAtUtc"`
	UpdatedAtUTC  string   `json:"updatedAtUtc"`
}

type enrollmentDTO struct {
	ID            string `json:"id"`
	TeamID        string `json:"teamId"`
	ContestID     string `json:"contestId"`
	UserID        string `json:"userId"`
	Status        string `json:"status"`
	EnrolledAtUTC string `json:"enrolledAtUtc"`
	RemovedAtUTC  string `json:"removedAtUtc,omitempty"`
}

func contestToDTO(ctx context.Context, v contest.Contest) contestDTO {
	ctx, span := startSpan(ctx, "httpapi.contestToDTO")
	defer span.End()

	return contestDTO{
		ID:           v.ID,
		Code:         v.Code,
		Name:         v.Name,
		Description:  v.Description,
		StartAt:      v.StartAt.UTC().Format(time.RFC3339),
		EndAt:        v.EndAt.UTC().Format(time.RFC3339),
		Visibility:   string(v.Visibility),
		Type:         string(v.Type),
		AllowedTeams: append([]string(nil), v.AllowedTeams...),
		Status:       string(v.Status),
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtUTC: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func teamToDTO(ctx context.Context, v roster.Team) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	return teamDTO{
		ID:            v.ID,
		UserID:        v.UserID,
		Name:          v.Name,
		PlayerIDs:     append([]string(nil), v.PlayerIDs...),
		CaptainID:     v.CaptainID,
		ViceCaptainID: v.ViceCaptainID,
		TotalValue:    v.TotalValue,
		CreatedAtUTC:  v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtUTC:  v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func enrollmentToDTO(ctx context.Context, v enrollment.Enrollment) enrollmentDTO {
	ctx, span := startSpan(ctx, "httpapi.enrollmentToDTO")
	defer span.End()

	dto := enrollmentDTO{
		ID:            v.ID,
		TeamID:        v.TeamID,
		ContestID:     v.ContestID,
		UserID:        v.UserID,
		Status:        string(v.Status),
		EnrolledAtUTC: v.EnrolledAt.UTC().Format(time.RFC3339),
	}
	if v.RemovedAt != nil {
		dto.RemovedAtUTC = v.RemovedAt.UTC().Format(time.RFC3339)
	}
	return dto
}
