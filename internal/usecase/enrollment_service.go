package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-contests/internal/domain/contest"
	"github.com/riskibarqy/fantasy-contests/internal/domain/enrollment"
	"github.com/riskibarqy/fantasy-contests/internal/domain/player"
	"github.com/riskibarqy/fantasy-contests/internal/domain/roster"
	idgen "github.com/riskibarqy/fantasy-contests/internal/platform/id"
	"github.com/riskibarqy/fantasy-contests/internal/platform/logging"
)

const bulkEnrollWorkers = 8

// UnenrollInput selects enrollments to remove, by team id and/or enrollment
// id. Items that do not resolve to an active enrollment of the contest are
// skipped.
type UnenrollInput struct {
	TeamIDs       []string
	EnrollmentIDs []string
}

type EnrollmentService struct {
	contestRepo    contest.Repository
	teamRepo       roster.Repository
	playerRepo     player.Repository
	enrollmentRepo enrollment.Repository
	idGen          idgen.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewEnrollmentService(
	contestRepo contest.Repository,
	teamRepo roster.Repository,
	playerRepo player.Repository,
	enrollmentRepo enrollment.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *EnrollmentService {
	if logger == nil {
		logger = logging.Default()
	}

	return &EnrollmentService{
		contestRepo:    contestRepo,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		enrollmentRepo: enrollmentRepo,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

// Enroll joins the user's team into a public contest. The operation is
// idempotent: an existing active enrollment for the pair is returned
// unchanged. Private contests are only reachable through the administrative
// bulk path and report not found here.
func (s *EnrollmentService) Enroll(ctx context.Context, contestID, teamID, userID string) (enrollment.Enrollment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnrollmentService.Enroll")
	defer span.End()

	contestID = strings.TrimSpace(contestID)
	teamID = strings.TrimSpace(teamID)
	userID = strings.TrimSpace(userID)
	if contestID == "" || teamID == "" {
		return enrollment.Enrollment{}, fmt.Errorf("%w: contest id and team id are required", ErrInvalidInput)
	}
	if userID == "" {
		return enrollment.Enrollment{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	c, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return enrollment.Enrollment{}, fmt.Errorf("get contest: %w", err)
	}
	if !exists || c.Visibility != contest.VisibilityPublic {
		return enrollment.Enrollment{}, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
	}

	switch contest.DeriveStatus(c, s.now().UTC()) {
	case contest.StatusCompleted, contest.StatusArchived:
		return enrollment.Enrollment{}, fmt.Errorf("%w: contest is not open for enrollment", ErrInvalidState)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return enrollment.Enrollment{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return enrollment.Enrollment{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if t.UserID != userID {
		return enrollment.Enrollment{}, fmt.Errorf("%w: team belongs to another user", ErrForbidden)
	}

	if err := s.checkAllowedTeams(ctx, c, t); err != nil {
		return enrollment.Enrollment{}, err
	}

	if existing, ok, err := s.enrollmentRepo.GetActive(ctx, t.ID, c.ID); err != nil {
		return enrollment.Enrollment{}, fmt.Errorf("check existing enrollment: %w", err)
	} else if ok {
		return existing, nil
	}

	enr, err := s.insertEnrollment(ctx, c.ID, t)
	if err != nil {
		return enrollment.Enrollment{}, err
	}

	s.logger.InfoContext(ctx, "team enrolled",
		"contest_id", c.ID,
		"team_id", t.ID,
		"user_id", t.UserID,
	)

	return enr, nil
}

// BulkEnroll is the administrative path used for private contests. Existing
// active enrollments are skipped silently and per-team failures do not stop
// the batch; created enrollments are returned in team order.
func (s *EnrollmentService) BulkEnroll(ctx context.Context, contestID string, teamIDs []string) ([]enrollment.Enrollment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnrollmentService.BulkEnroll")
	defer span.End()

	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return nil, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	}

	c, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("get contest: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
	}
	if len(teamIDs) == 0 {
		return []enrollment.Enrollment{}, nil
	}

	workerCount := bulkEnrollWorkers
	if len(teamIDs) < workerCount {
		workerCount = len(teamIDs)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create bulk enroll pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		created = make([]enrollment.Enrollment, len(teamIDs))
		ok      = make([]bool, len(teamIDs))
	)

	for i, raw := range teamIDs {
		i, teamID := i, strings.TrimSpace(raw)
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			enr, enrollErr := s.enrollOne(ctx, c, teamID)
			if enrollErr != nil {
				if !errors.Is(enrollErr, errAlreadyEnrolled) {
					s.logger.WarnContext(ctx, "bulk enroll item failed",
						"contest_id", c.ID,
						"team_id", teamID,
						"error", enrollErr,
					)
				}
				return
			}

			mu.Lock()
			created[i] = enr
			ok[i] = true
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			s.logger.WarnContext(ctx, "bulk enroll submit failed", "team_id", teamID, "error", submitErr)
		}
	}
	wg.Wait()

	out := make([]enrollment.Enrollment, 0, len(teamIDs))
	for i := range created {
		if ok[i] {
			out = append(out, created[i])
		}
	}

	s.logger.InfoContext(ctx, "bulk enroll finished",
		"contest_id", c.ID,
		"requested", len(teamIDs),
		"created", len(out),
	)

	return out, nil
}

var errAlreadyEnrolled = errors.New("already enrolled")

func (s *EnrollmentService) enrollOne(ctx context.Context, c contest.Contest, teamID string) (enrollment.Enrollment, error) {
	if teamID == "" {
		return enrollment.Enrollment{}, fmt.Errorf("%w: team id is empty", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return enrollment.Enrollment{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return enrollment.Enrollment{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	if _, ok, err := s.enrollmentRepo.GetActive(ctx, t.ID, c.ID); err != nil {
		return enrollment.Enrollment{}, fmt.Errorf("check existing enrollment: %w", err)
	} else if ok {
		return enrollment.Enrollment{}, errAlreadyEnrolled
	}

	return s.insertEnrollment(ctx, c.ID, t)
}

// insertEnrollment performs the insert and resolves the duplicate-insert
// race by re-reading the winning row, keeping the operation idempotent even
// under concurrent callers.
func (s *EnrollmentService) insertEnrollment(ctx context.Context, contestID string, t roster.Team) (enrollment.Enrollment, error) {
	enrollmentID, err := s.idGen.NewID()
	if err != nil {
		return enrollment.Enrollment{}, fmt.Errorf("generate enrollment id: %w", err)
	}

	enr := enrollment.Enrollment{
		ID:         enrollmentID,
		TeamID:     t.ID,
		ContestID:  contestID,
		UserID:     t.UserID,
		Status:     enrollment.StatusActive,
		EnrolledAt: s.now().UTC(),
	}
	if err := enr.Validate(); err != nil {
		return enrollment.Enrollment{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.enrollmentRepo.Insert(ctx, enr); err != nil {
		if errors.Is(err, enrollment.ErrDuplicateActive) {
			existing, ok, getErr := s.enrollmentRepo.GetActive(ctx, t.ID, contestID)
			if getErr != nil {
				return enrollment.Enrollment{}, fmt.Errorf("resolve duplicate enrollment: %w", getErr)
			}
			if ok {
				return existing, nil
			}
			return enrollment.Enrollment{}, fmt.Errorf("%w: concurrent enrollment", ErrConflict)
		}
		return enrollment.Enrollment{}, fmt.Errorf("insert enrollment: %w", err)
	}

	return enr, nil
}

func (s *EnrollmentService) checkAllowedTeams(ctx context.Context, c contest.Contest, t roster.Team) error {
	if c.Type != contest.TypeDaily || len(c.AllowedTeams) == 0 {
		return nil
	}

	players, err := s.playerRepo.GetByIDs(ctx, t.PlayerIDs)
	if err != nil {
		return fmt.Errorf("get players for allowed-team check: %w", err)
	}

	var offending []string
	for _, p := range players {
		if !c.AllowsTeam(p.Team) {
			offending = append(offending, p.Name)
		}
	}
	if len(offending) > 0 {
		return &enrollment.AllowedTeamsError{
			PlayerNames: offending,
			Allowed:     append([]string(nil), c.AllowedTeams...),
		}
	}

	return nil
}

// Unenroll marks matching active enrollments removed. Best-effort bulk
// semantics: items that fail or do not match are skipped, and only the
// count of successful transitions is returned.
func (s *EnrollmentService) Unenroll(ctx context.Context, contestID string, input UnenrollInput) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnrollmentService.Unenroll")
	defer span.End()

	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return 0, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	}

	c, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return 0, fmt.Errorf("get contest: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
	}

	count := 0
	removedAt := s.now().UTC()

	for _, enrollmentID := range input.EnrollmentIDs {
		enrollmentID = strings.TrimSpace(enrollmentID)
		if enrollmentID == "" {
			continue
		}
		enr, ok, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
		if err != nil {
			s.logger.WarnContext(ctx, "unenroll lookup failed", "enrollment_id", enrollmentID, "error", err)
			continue
		}
		if !ok || enr.ContestID != c.ID || enr.Status != enrollment.StatusActive {
			continue
		}
		if s.markRemoved(ctx, enr.ID, removedAt) {
			count++
		}
	}

	for _, teamID := range input.TeamIDs {
		teamID = strings.TrimSpace(teamID)
		if teamID == "" {
			continue
		}
		enr, ok, err := s.enrollmentRepo.GetActive(ctx, teamID, c.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "unenroll lookup failed", "team_id", teamID, "error", err)
			continue
		}
		if !ok {
			continue
		}
		if s.markRemoved(ctx, enr.ID, removedAt) {
			count++
		}
	}

	s.logger.InfoContext(ctx, "unenroll finished", "contest_id", c.ID, "removed", count)

	return count, nil
}

func (s *EnrollmentService) markRemoved(ctx context.Context, enrollmentID string, removedAt time.Time) bool {
	removed, err := s.enrollmentRepo.MarkRemoved(ctx, enrollmentID, removedAt)
	if err != nil {
		s.logger.WarnContext(ctx, "mark enrollment removed failed", "enrollment_id", enrollmentID, "error", err)
		return false
	}
	return removed
}

// ListMine returns the caller's active enrollments across contests.
func (s *EnrollmentService) ListMine(ctx context.Context, userID string) ([]enrollment.Enrollment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnrollmentService.ListMine")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	items, err := s.enrollmentRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	return items, nil
}
