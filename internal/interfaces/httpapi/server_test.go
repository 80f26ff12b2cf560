package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-contests/internal/domain/user"
	"github.com/riskibarqy/fantasy-contests/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-contests/internal/platform/id"
	"github.com/riskibarqy/fantasy-contests/internal/platform/logging"
	"github.com/riskibarqy/fantasy-contests/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	contestRepo := memory.NewContestRepository(memory.SeedContests())
	teamRepo := memory.NewTeamRepository(nil)
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	slotRepo := memory.NewSlotRepository(memory.SeedSlots())
	enrollmentRepo := memory.NewEnrollmentRepository(nil)
	ledgerRepo := memory.NewScoreLedgerRepository(nil)
	userRepo := memory.NewUserRepository(memory.SeedUsers())

	idGen := id.NewRandomGenerator()
	logger := logging.NewNop()

	handler := NewHandler(
		usecase.NewContestService(contestRepo, enrollmentRepo, idGen, logger),
		usecase.NewTeamService(teamRepo, playerRepo, slotRepo, contestRepo, enrollmentRepo, idGen, logger),
		usecase.NewEnrollmentService(contestRepo, teamRepo, playerRepo, enrollmentRepo, idGen, logger),
		usecase.NewLeaderboardService(contestRepo, teamRepo, enrollmentRepo, ledgerRepo, userRepo, logger),
		usecase.NewLedgerService(contestRepo, ledgerRepo, nil, logger),
		usecase.NewSlotService(slotRepo, playerRepo, logger),
		logger,
	)

	verifier := &stubVerifier{principals: map[string]user.Principal{
		"asha-token":  {UserID: "usr-001", Username: "asha.k"},
		"admin-token": {UserID: "usr-adm", Username: "ops", IsAdmin: true},
	}}

	return NewRouter(handler, verifier, logger, []string{"*"}, "job-secret")
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body struct {
		Data map[string]any `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body.Data
}

func TestRouter_HealthzBypassesAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRouter_ListContestsIsPublic(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/contests", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	data := decodeData(t, rec)
	items, ok := data["items"].([]any)
	if !ok {
		t.Fatalf("expected items array, got %T", data["items"])
	}
	// The private seed contest must not leak into the public listing.
	if len(items) != 2 {
		t.Fatalf("expected 2 public contests, got %d", len(items))
	}
}

func TestRouter_TeamLifecycle(t *testing.T) {
	router := newTestRouter(t)

	payload := `{
		"name": "Asha XI",
		"playerIds": ["plr-wk-01","plr-bat-01","plr-bat-02","plr-bat-03","plr-ar-01","plr-bowl-01","plr-bowl-02","plr-bowl-03"],
		"captainId": "plr-bat-01",
		"viceCaptainId": "plr-ar-01"
	}`

	req := httptest.NewRequest(http.MethodPost, "/v1/teams", strings.NewReader(payload))
	req.Header.Set("Authorization", "Bearer asha-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	data := decodeData(t, rec)
	teamID, _ := data["id"].(string)
	if teamID == "" {
		t.Fatalf("expected created team id, got %v", data)
	}

	enrollBody := `{"teamId": "` + teamID + `"}`
	req = httptest.NewRequest(http.MethodPost, "/v1/contests/cst-weekly-open/enroll", strings.NewReader(enrollBody))
	req.Header.Set("Authorization", "Bearer asha-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on enroll, got %d: %s", rec.Code, rec.Body.String())
	}

	enrollData := decodeData(t, rec)
	enrollmentID, _ := enrollData["id"].(string)
	if got, _ := enrollData["status"].(string); got != "active" || enrollmentID == "" {
		t.Fatalf("expected active enrollment with id, got %v", enrollData)
	}

	// Re-enrolling the same pair is idempotent.
	req = httptest.NewRequest(http.MethodPost, "/v1/contests/cst-weekly-open/enroll", strings.NewReader(enrollBody))
	req.Header.Set("Authorization", "Bearer asha-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on repeat enroll, got %d: %s", rec.Code, rec.Body.String())
	}
	if again := decodeData(t, rec); again["id"] != enrollmentID {
		t.Fatalf("expected the same enrollment id on repeat enroll, got %v want %v", again["id"], enrollmentID)
	}
	req = httptest.NewRequest(http.MethodPatch, "/v1/teams/"+teamID, strings.NewReader(`{"name": "Asha XI v2"}`))
	req.Header.Set("Authorization", "Bearer asha-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on rename, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_AdminRoutesRequireAdminRole(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/contests", nil)
	req.Header.Set("Authorization", "Bearer asha-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for non-admin, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/admin/contests", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for admin, got %d", rec.Code)
	}
}

func TestRouter_IngestionRequiresJobToken(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"contestId": "cst-daily-derby", "points": [{"playerId": "plr-bat-01", "points": 42}]}`

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/ingestion/player-points", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without job token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/ingestion/player-points", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 with job token, got %d: %s", rec.Code, rec.Body.String())
	}

	data := decodeData(t, rec)
	if got, _ := data["applied"].(float64); got != 1 {
		t.Fatalf("expected 1 applied update, got %v", data["applied"])
	}
}
