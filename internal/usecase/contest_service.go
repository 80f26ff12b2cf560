package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-contests/internal/domain/contest"
	"github.com/riskibarqy/fantasy-contests/internal/domain/enrollment"
	idgen "github.com/riskibarqy/fantasy-contests/internal/platform/id"
	"github.com/riskibarqy/fantasy-contests/internal/platform/logging"
)

// Paging bounds shared by every listing operation.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	statusRefreshTimeout = 5 * time.Second
)

// ListContestsInput narrows and pages a contest listing.
type ListContestsInput struct {
	Status   string
	Query    string
	Page     int
	PageSize int
}

func (in ListContestsInput) normalize() (ListContestsInput, error) {
	in.Status = strings.TrimSpace(in.Status)
	in.Query = strings.TrimSpace(in.Query)
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 {
		in.PageSize = DefaultPageSize
	}
	if in.PageSize > MaxPageSize {
		in.PageSize = MaxPageSize
	}
	if in.Status != "" {
		if _, ok := contest.AllStatuses[contest.Status(in.Status)]; !ok {
			return in, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
		}
	}

	return in, nil
}

// CreateContestInput is the administrative payload for a new contest.
type CreateContestInput struct {
	Code         string
	Name         string
	Description  string
	StartAt      time.Time
	EndAt        time.Time
	Visibility   string
	Type         string
	AllowedTeams []string
}

// UpdateContestInput carries optional field updates. Code is immutable and
// deliberately absent. Archive=true applies the sticky archived override;
// there is no way back.
type UpdateContestInput struct {
	Name         *string
	Description  *string
	StartAt      *time.Time
	EndAt        *time.Time
	Visibility   *string
	Type         *string
	AllowedTeams *[]string
	Archive      *bool
}

type ContestService struct {
	contestRepo    contest.Repository
	enrollmentRepo enrollment.Repository
	idGen          idgen.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewContestService(
	contestRepo contest.Repository,
	enrollmentRepo enrollment.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ContestService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ContestService{
		contestRepo:    contestRepo,
		enrollmentRepo: enrollmentRepo,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

// ListPublic returns public contests, newest window first, with derived
// lifecycle status applied to every row.
func (s *ContestService) ListPublic(ctx context.Context, input ListContestsInput) ([]contest.Contest, int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.ListPublic")
	defer span.End()

	input, err := input.normalize()
	if err != nil {
		return nil, 0, err
	}

	items, total, err := s.contestRepo.List(ctx, contest.ListFilter{
		Visibility: contest.VisibilityPublic,
		Status:     contest.Status(input.Status),
		Query:      input.Query,
		Offset:     (input.Page - 1) * input.PageSize,
		Limit:      input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list contests: %w", err)
	}

	now := s.now().UTC()
	for i := range items {
		items[i] = s.withDerivedStatus(items[i], now)
	}

	return items, total, nil
}

// ListForAdmin is the back-office listing across both visibilities.
func (s *ContestService) ListForAdmin(ctx context.Context, input ListContestsInput) ([]contest.Contest, int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.ListForAdmin")
	defer span.End()

	input, err := input.normalize()
	if err != nil {
		return nil, 0, err
	}

	items, total, err := s.contestRepo.List(ctx, contest.ListFilter{
		Status: contest.Status(input.Status),
		Query:  input.Query,
		Offset: (input.Page - 1) * input.PageSize,
		Limit:  input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list contests: %w", err)
	}

	now := s.now().UTC()
	for i := range items {
		items[i] = s.withDerivedStatus(items[i], now)
	}

	return items, total, nil
}

// GetPublic returns a public contest by id. Private contests are reported as
// not found to keep them undiscoverable.
func (s *ContestService) GetPublic(ctx context.Context, contestID string) (contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.GetPublic")
	defer span.End()

	c, err := s.getContest(ctx, contestID)
	if err != nil {
		return contest.Contest{}, err
	}
	if c.Visibility != contest.VisibilityPublic {
		return contest.Contest{}, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
	}

	return s.withDerivedStatus(c, s.now().UTC()), nil
}

// GetForUser returns a contest when it is public or when the user holds an
// active enrollment in it. Anything else is not found, including private
// contests the user is not part of.
func (s *ContestService) GetForUser(ctx context.Context, contestID, userID string) (contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.GetForUser")
	defer span.End()

	c, err := s.getContest(ctx, contestID)
	if err != nil {
		return contest.Contest{}, err
	}

	if c.Visibility != contest.VisibilityPublic {
		userID = strings.TrimSpace(userID)
		if userID == "" {
			return contest.Contest{}, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
		}
		enrolled, err := s.enrollmentRepo.HasActiveByUserAndContest(ctx, userID, contestID)
		if err != nil {
			return contest.Contest{}, fmt.Errorf("check enrollment for private contest: %w", err)
		}
		if !enrolled {
			return contest.Contest{}, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
		}
	}

	return s.withDerivedStatus(c, s.now().UTC()), nil
}

// GetForAdmin returns any contest by id regardless of visibility.
func (s *ContestService) GetForAdmin(ctx context.Context, contestID string) (contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.GetForAdmin")
	defer span.End()

	c, err := s.getContest(ctx, contestID)
	if err != nil {
		return contest.Contest{}, err
	}

	return s.withDerivedStatus(c, s.now().UTC()), nil
}

func (s *ContestService) Create(ctx context.Context, input CreateContestInput) (contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.Create")
	defer span.End()

	input.Code = strings.TrimSpace(input.Code)
	input.Name = strings.TrimSpace(input.Name)
	if input.Code == "" {
		return contest.Contest{}, fmt.Errorf("%w: contest code is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return contest.Contest{}, fmt.Errorf("%w: contest name is required", ErrInvalidInput)
	}
	if !input.StartAt.Before(input.EndAt) {
		return contest.Contest{}, fmt.Errorf("%w: start_at must be before end_at", ErrInvalidInput)
	}

	_, exists, err := s.contestRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("check contest code: %w", err)
	}
	if exists {
		return contest.Contest{}, fmt.Errorf("%w: contest code %s already exists", ErrConflict, input.Code)
	}

	contestID, err := s.idGen.NewID()
	if err != nil {
		return contest.Contest{}, fmt.Errorf("generate contest id: %w", err)
	}

	now := s.now().UTC()
	c := contest.Contest{
		ID:           contestID,
		Code:         input.Code,
		Name:         input.Name,
		Description:  strings.TrimSpace(input.Description),
		StartAt:      input.StartAt.UTC(),
		EndAt:        input.EndAt.UTC(),
		Visibility:   contest.Visibility(input.Visibility),
		Type:         contest.Type(input.Type),
		AllowedTeams: cleanAllowedTeams(input.AllowedTeams),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if c.Visibility == "" {
		c.Visibility = contest.VisibilityPublic
	}
	if c.Type == "" {
		c.Type = contest.TypeFull
	}
	c.Status = contest.DeriveStatus(c, now)

	if err := c.Validate(); err != nil {
		return contest.Contest{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.contestRepo.Insert(ctx, c); err != nil {
		return contest.Contest{}, fmt.Errorf("insert contest: %w", err)
	}

	s.logger.InfoContext(ctx, "contest created",
		"contest_id", c.ID,
		"code", c.Code,
		"visibility", string(c.Visibility),
	)

	return c, nil
}

func (s *ContestService) Update(ctx context.Context, contestID string, input UpdateContestInput) (contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.Update")
	defer span.End()

	c, err := s.getContest(ctx, contestID)
	if err != nil {
		return contest.Contest{}, err
	}

	if input.Name != nil {
		c.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		c.Description = strings.TrimSpace(*input.Description)
	}
	if input.StartAt != nil {
		c.StartAt = input.StartAt.UTC()
	}
	if input.EndAt != nil {
		c.EndAt = input.EndAt.UTC()
	}
	if input.Visibility != nil {
		c.Visibility = contest.Visibility(*input.Visibility)
	}
	if input.Type != nil {
		c.Type = contest.Type(*input.Type)
	}
	if input.AllowedTeams != nil {
		c.AllowedTeams = cleanAllowedTeams(*input.AllowedTeams)
	}
	if input.Archive != nil && *input.Archive {
		c.Status = contest.StatusArchived
	}

	if err := c.Validate(); err != nil {
		return contest.Contest{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	c.UpdatedAt = s.now().UTC()
	if err := s.contestRepo.Update(ctx, c); err != nil {
		return contest.Contest{}, fmt.Errorf("update contest: %w", err)
	}

	return s.withDerivedStatus(c, s.now().UTC()), nil
}

// Delete removes a contest. With active enrollments present it refuses
// unless force is set, in which case every active enrollment is cascaded to
// removed first.
func (s *ContestService) Delete(ctx context.Context, contestID string, force bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.Delete")
	defer span.End()

	c, err := s.getContest(ctx, contestID)
	if err != nil {
		return err
	}

	active, err := s.enrollmentRepo.ListActiveByContest(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("list active enrollments: %w", err)
	}
	if len(active) > 0 {
		if !force {
			return fmt.Errorf("%w: contest has %d active enrollments, use force to cascade", ErrConflict, len(active))
		}
		removedAt := s.now().UTC()
		for _, enr := range active {
			if _, err := s.enrollmentRepo.MarkRemoved(ctx, enr.ID, removedAt); err != nil {
				s.logger.WarnContext(ctx, "cascade unenroll failed",
					"contest_id", c.ID,
					"enrollment_id", enr.ID,
					"error", err,
				)
			}
		}
	}

	deleted, err := s.contestRepo.Delete(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("delete contest: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
	}

	s.logger.InfoContext(ctx, "contest deleted",
		"contest_id", c.ID,
		"cascaded_enrollments", len(active),
		"forced", force,
	)

	return nil
}

func (s *ContestService) getContest(ctx context.Context, contestID string) (contest.Contest, error) {
	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return contest.Contest{}, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	}

	c, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("get contest: %w", err)
	}
	if !exists {
		return contest.Contest{}, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
	}

	return c, nil
}

// withDerivedStatus substitutes the authoritative derived status and, when
// the persisted cache lags behind, schedules a fire-and-forget refresh so
// reads never block on the write.
func (s *ContestService) withDerivedStatus(c contest.Contest, now time.Time) contest.Contest {
	derived := contest.DeriveStatus(c, now)
	if derived != c.Status && c.Status != contest.StatusArchived {
		s.refreshStatusCache(c.ID, derived)
	}
	c.Status = derived
	return c
}

func (s *ContestService) refreshStatusCache(contestID string, derived contest.Status) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), statusRefreshTimeout)
		defer cancel()

		if err := s.contestRepo.UpdateStatus(ctx, contestID, derived, s.now().UTC()); err != nil {
			s.logger.Warn("refresh contest status cache failed",
				"contest_id", contestID,
				"status", string(derived),
				"error", err,
			)
		}
	}()
}

func cleanAllowedTeams(teams []string) []string {
	cleaned := make([]string, 0, len(teams))
	seen := make(map[string]struct{}, len(teams))
	for _, name := range teams {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		cleaned = append(cleaned, name)
	}
	return cleaned
}
