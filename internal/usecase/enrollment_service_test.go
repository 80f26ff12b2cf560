package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-contests/internal/domain/contest"
	"github.com/riskibarqy/fantasy-contests/internal/domain/enrollment"
	"github.com/riskibarqy/fantasy-contests/internal/domain/roster"
	"github.com/riskibarqy/fantasy-contests/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/fantasy-contests/internal/platform/id"
	"github.com/riskibarqy/fantasy-contests/internal/platform/logging"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func testContests() []contest.Contest {
	return []contest.Contest{
		{
			ID:         "cst-open",
			Code:       "OPEN",
			Name:       "Open Contest",
			StartAt:    testNow.Add(24 * time.Hour),
			EndAt:      testNow.Add(48 * time.Hour),
			Visibility: contest.VisibilityPublic,
			Type:       contest.TypeFull,
			Status:     contest.StatusUpcoming,
		},
		{
			ID:         "cst-done",
			Code:       "DONE",
			Name:       "Finished Contest",
			StartAt:    testNow.Add(-48 * time.Hour),
			EndAt:      testNow.Add(-24 * time.Hour),
			Visibility: contest.VisibilityPublic,
			Type:       contest.TypeFull,
			Status:     contest.StatusCompleted,
		},
		{
			ID:         "cst-hidden",
			Code:       "HIDDEN",
			Name:       "Private Contest",
			StartAt:    testNow.Add(24 * time.Hour),
			EndAt:      testNow.Add(48 * time.Hour),
			Visibility: contest.VisibilityPrivate,
			Type:       contest.TypeFull,
			Status:     contest.StatusUpcoming,
		},
		{
			ID:           "cst-derby",
			Code:         "DERBY",
			Name:         "Mumbai Only Daily",
			StartAt:      testNow.Add(1 * time.Hour),
			EndAt:        testNow.Add(7 * time.Hour),
			Visibility:   contest.VisibilityPublic,
			Type:         contest.TypeDaily,
			AllowedTeams: []string{"Mumbai"},
			Status:       contest.StatusUpcoming,
		},
	}
}

func testTeams() []roster.Team {
	return []roster.Team{
		{
			ID:     "team-asha",
			UserID: "usr-001",
			Name:   "Asha XI",
			PlayerIDs: []string{
				"plr-wk-01",
				"plr-bat-01", "plr-bat-02", "plr-bat-03",
				"plr-ar-01",
				"plr-bowl-01", "plr-bowl-02", "plr-bowl-03",
			},
			CaptainID:     "plr-bat-01",
			ViceCaptainID: "plr-ar-01",
			CreatedAt:     testNow.Add(-time.Hour),
		},
		{
			ID:     "team-budi",
			UserID: "usr-002",
			Name:   "Budi Blasters",
			PlayerIDs: []string{
				"plr-wk-02",
				"plr-bat-02", "plr-bat-04", "plr-bat-05",
				"plr-ar-02",
				"plr-bowl-02", "plr-bowl-03", "plr-bowl-04",
			},
			CaptainID:     "plr-ar-02",
			ViceCaptainID: "plr-bat-04",
			CreatedAt:     testNow.Add(-time.Hour),
		},
	}
}

func newEnrollmentService(enrollmentRepo *memory.EnrollmentRepository) *EnrollmentService {
	svc := NewEnrollmentService(
		memory.NewContestRepository(testContests()),
		memory.NewTeamRepository(testTeams()),
		memory.NewPlayerRepository(memory.SeedPlayers()),
		enrollmentRepo,
		idgen.NewRandomGenerator(),
		logging.NewNop(),
	)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestEnrollmentService_Enroll(t *testing.T) {
	svc := newEnrollmentService(memory.NewEnrollmentRepository(nil))

	enr, err := svc.Enroll(t.Context(), "cst-open", "team-asha", "usr-001")
	if err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if enr.Status != enrollment.StatusActive {
		t.Fatalf("unexpected status: %s", enr.Status)
	}
	if !enr.EnrolledAt.Equal(testNow) {
		t.Fatalf("unexpected enrolled_at: %v", enr.EnrolledAt)
	}
}

func TestEnrollmentService_Enroll_Idempotent(t *testing.T) {
	svc := newEnrollmentService(memory.NewEnrollmentRepository(nil))

	first, err := svc.Enroll(t.Context(), "cst-open", "team-asha", "usr-001")
	if err != nil {
		t.Fatalf("first enroll failed: %v", err)
	}
	second, err := svc.Enroll(t.Context(), "cst-open", "team-asha", "usr-001")
	if err != nil {
		t.Fatalf("repeat enroll failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("repeat enroll created a new row: %s != %s", first.ID, second.ID)
	}
}

func TestEnrollmentService_Enroll_CompletedContest(t *testing.T) {
	svc := newEnrollmentService(memory.NewEnrollmentRepository(nil))

	_, err := svc.Enroll(t.Context(), "cst-done", "team-asha", "usr-001")
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestEnrollmentService_Enroll_PrivateContestHidden(t *testing.T) {
	svc := newEnrollmentService(memory.NewEnrollmentRepository(nil))

	_, err := svc.Enroll(t.Context(), "cst-hidden", "team-asha", "usr-001")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEnrollmentService_Enroll_ForeignTeam(t *testing.T) {
	svc := newEnrollmentService(memory.NewEnrollmentRepository(nil))

	_, err := svc.Enroll(t.Context(), "cst-open", "team-budi", "usr-001")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestEnrollmentService_Enroll_AllowedTeamsViolation(t *testing.T) {
	svc := newEnrollmentService(memory.NewEnrollmentRepository(nil))

	_, err := svc.Enroll(t.Context(), "cst-derby", "team-asha", "usr-001")
	var allowedErr *enrollment.AllowedTeamsError
	if !errors.As(err, &allowedErr) {
		t.Fatalf("expected AllowedTeamsError, got %v", err)
	}
	if len(allowedErr.PlayerNames) == 0 {
		t.Fatal("expected offending player names")
	}
}

func TestEnrollmentService_BulkEnroll_SkipsExisting(t *testing.T) {
	enrollmentRepo := memory.NewEnrollmentRepository([]enrollment.Enrollment{
		{
			ID:         "enr-existing",
			TeamID:     "team-asha",
			ContestID:  "cst-hidden",
			UserID:     "usr-001",
			Status:     enrollment.StatusActive,
			EnrolledAt: testNow.Add(-time.Hour),
		},
	})
	svc := newEnrollmentService(enrollmentRepo)

	created, err := svc.BulkEnroll(t.Context(), "cst-hidden", []string{"team-asha", "team-budi", "team-missing"})
	if err != nil {
		t.Fatalf("bulk enroll failed: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 created enrollment, got %d", len(created))
	}
	if created[0].TeamID != "team-budi" {
		t.Fatalf("unexpected enrolled team: %s", created[0].TeamID)
	}
}

func TestEnrollmentService_Unenroll(t *testing.T) {
	enrollmentRepo := memory.NewEnrollmentRepository([]enrollment.Enrollment{
		{ID: "enr-1", TeamID: "team-asha", ContestID: "cst-open", UserID: "usr-001", Status: enrollment.StatusActive, EnrolledAt: testNow.Add(-time.Hour)},
		{ID: "enr-2", TeamID: "team-budi", ContestID: "cst-open", UserID: "usr-002", Status: enrollment.StatusActive, EnrolledAt: testNow.Add(-time.Hour)},
	})
	svc := newEnrollmentService(enrollmentRepo)

	count, err := svc.Unenroll(t.Context(), "cst-open", UnenrollInput{
		TeamIDs:       []string{"team-asha", "team-unknown"},
		EnrollmentIDs: []string{"enr-2", "enr-missing"},
	})
	if err != nil {
		t.Fatalf("unenroll failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 removals, got %d", count)
	}

	// Removed rows stay but no longer count as active.
	if _, ok, _ := enrollmentRepo.GetActive(t.Context(), "team-asha", "cst-open"); ok {
		t.Fatal("enrollment still active after unenroll")
	}
	enr, ok, _ := enrollmentRepo.GetByID(t.Context(), "enr-1")
	if !ok || enr.Status != enrollment.StatusRemoved || enr.RemovedAt == nil {
		t.Fatalf("unexpected removed row: %+v", enr)
	}
}

func TestEnrollmentService_Unenroll_NoMatches(t *testing.T) {
	svc := newEnrollmentService(memory.NewEnrollmentRepository(nil))

	count, err := svc.Unenroll(t.Context(), "cst-open", UnenrollInput{TeamIDs: []string{"team-unknown"}})
	if err != nil {
		t.Fatalf("unenroll failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 removals, got %d", count)
	}
}

func TestEnrollmentService_ListMine(t *testing.T) {
	enrollmentRepo := memory.NewEnrollmentRepository([]enrollment.Enrollment{
		{ID: "enr-1", TeamID: "team-asha", ContestID: "cst-open", UserID: "usr-001", Status: enrollment.StatusActive, EnrolledAt: testNow.Add(-time.Hour)},
		{ID: "enr-2", TeamID: "team-budi", ContestID: "cst-open", UserID: "usr-002", Status: enrollment.StatusActive, EnrolledAt: testNow.Add(-time.Hour)},
	})
	svc := newEnrollmentService(enrollmentRepo)

	mine, err := svc.ListMine(t.Context(), "usr-001")
	if err != nil {
		t.Fatalf("list mine failed: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != "enr-1" {
		t.Fatalf("unexpected enrollments: %+v", mine)
	}
}
