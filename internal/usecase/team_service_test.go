package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-contests/internal/domain/enrollment"
	"github.com/riskibarqy/fantasy-contests/internal/domain/roster"
	"github.com/riskibarqy/fantasy-contests/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/fantasy-contests/internal/platform/id"
	"github.com/riskibarqy/fantasy-contests/internal/platform/logging"
)

func newTeamService(enrollments []enrollment.Enrollment) (*TeamService, *memory.TeamRepository) {
	teamRepo := memory.NewTeamRepository(testTeams())
	svc := NewTeamService(
		teamRepo,
		memory.NewPlayerRepository(memory.SeedPlayers()),
		memory.NewSlotRepository(memory.SeedSlots()),
		memory.NewContestRepository(testContests()),
		memory.NewEnrollmentRepository(enrollments),
		idgen.NewRandomGenerator(),
		logging.NewNop(),
	)
	svc.now = func() time.Time { return testNow }
	return svc, teamRepo
}

func validTeamInput(userID string) CreateTeamInput {
	return CreateTeamInput{
		UserID: userID,
		Name:   "Test XI",
		PlayerIDs: []string{
			"plr-wk-01",
			"plr-bat-01", "plr-bat-02", "plr-bat-03",
			"plr-ar-01",
			"plr-bowl-01", "plr-bowl-02", "plr-bowl-03",
		},
		CaptainID:     "plr-bat-01",
		ViceCaptainID: "plr-ar-01",
	}
}

func TestTeamService_CreateTeam(t *testing.T) {
	svc, _ := newTeamService(nil)

	team, err := svc.CreateTeam(t.Context(), validTeamInput("usr-003"))
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}
	if team.ID == "" {
		t.Fatal("expected generated team id")
	}
	if team.TotalValue <= 0 {
		t.Fatalf("total value not computed: %v", team.TotalValue)
	}
}

func TestTeamService_CreateTeam_CaptainOutsideSelection(t *testing.T) {
	svc, _ := newTeamService(nil)

	input := validTeamInput("usr-003")
	input.CaptainID = "plr-bat-05"
	if _, err := svc.CreateTeam(t.Context(), input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTeamService_CreateTeam_CaptainEqualsViceCaptain(t *testing.T) {
	svc, _ := newTeamService(nil)

	input := validTeamInput("usr-003")
	input.ViceCaptainID = input.CaptainID
	if _, err := svc.CreateTeam(t.Context(), input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTeamService_CreateTeam_CompositionViolations(t *testing.T) {
	svc, _ := newTeamService(nil)

	// No wicket keeper and only two batters.
	input := CreateTeamInput{
		UserID: "usr-003",
		Name:   "Broken XI",
		PlayerIDs: []string{
			"plr-bat-01", "plr-bat-02",
			"plr-ar-01",
			"plr-bowl-01", "plr-bowl-02", "plr-bowl-03",
		},
		CaptainID:     "plr-bat-01",
		ViceCaptainID: "plr-ar-01",
	}
	_, err := svc.CreateTeam(t.Context(), input)
	var compErr *roster.CompositionError
	if !errors.As(err, &compErr) {
		t.Fatalf("expected CompositionError, got %v", err)
	}
	if len(compErr.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %+v", compErr.Violations)
	}
}

func TestTeamService_CreateTeam_DuplicatePlayer(t *testing.T) {
	svc, _ := newTeamService(nil)

	input := validTeamInput("usr-003")
	input.PlayerIDs = append(input.PlayerIDs, "plr-wk-01")
	if _, err := svc.CreateTeam(t.Context(), input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTeamService_UpdateTeam_LockedWhileContestOngoing(t *testing.T) {
	// cst-derby is inside its window at testNow.
	enrollments := []enrollment.Enrollment{
		{ID: "enr-1", TeamID: "team-asha", ContestID: "cst-derby", UserID: "usr-001", Status: enrollment.StatusActive, EnrolledAt: testNow.Add(-time.Hour)},
	}
	svc, _ := newTeamService(enrollments)

	captain := "plr-ar-01"
	_, err := svc.UpdateTeam(t.Context(), "team-asha", "usr-001", UpdateTeamInput{CaptainID: &captain})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestTeamService_UpdateTeam_NameOnlyBypassesLock(t *testing.T) {
	enrollments := []enrollment.Enrollment{
		{ID: "enr-1", TeamID: "team-asha", ContestID: "cst-derby", UserID: "usr-001", Status: enrollment.StatusActive, EnrolledAt: testNow.Add(-time.Hour)},
	}
	svc, _ := newTeamService(enrollments)

	name := "Renamed XI"
	team, err := svc.UpdateTeam(t.Context(), "team-asha", "usr-001", UpdateTeamInput{Name: &name})
	if err != nil {
		t.Fatalf("name-only update failed: %v", err)
	}
	if team.Name != "Renamed XI" {
		t.Fatalf("unexpected name: %s", team.Name)
	}
}

func TestTeamService_UpdateTeam_SwapCaptaincy(t *testing.T) {
	svc, _ := newTeamService(nil)

	captain := "plr-ar-01"
	vice := "plr-bat-01"
	team, err := svc.UpdateTeam(t.Context(), "team-asha", "usr-001", UpdateTeamInput{
		CaptainID:     &captain,
		ViceCaptainID: &vice,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if team.CaptainID != "plr-ar-01" || team.ViceCaptainID != "plr-bat-01" {
		t.Fatalf("captaincy not swapped: %+v", team)
	}
}

func TestTeamService_UpdateTeam_ForeignTeam(t *testing.T) {
	svc, _ := newTeamService(nil)

	name := "Hijack"
	if _, err := svc.UpdateTeam(t.Context(), "team-asha", "usr-002", UpdateTeamInput{Name: &name}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTeamService_RenameTeam_TooLong(t *testing.T) {
	svc, _ := newTeamService(nil)

	long := make([]byte, roster.MaxTeamNameLength+1)
	for i := range long {
		long[i] = 'x'
	}
	if _, err := svc.RenameTeam(t.Context(), "team-asha", "usr-001", string(long)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTeamService_DeleteTeam(t *testing.T) {
	svc, teamRepo := newTeamService(nil)

	if err := svc.DeleteTeam(t.Context(), "team-asha", "usr-001"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := teamRepo.GetByID(t.Context(), "team-asha"); ok {
		t.Fatal("team still present after delete")
	}
}

func TestTeamService_ListTeams(t *testing.T) {
	svc, _ := newTeamService(nil)

	teams, err := svc.ListTeams(t.Context(), "usr-001")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(teams) != 1 || teams[0].ID != "team-asha" {
		t.Fatalf("unexpected teams: %+v", teams)
	}
}
