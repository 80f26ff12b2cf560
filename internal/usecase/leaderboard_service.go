package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-contests/internal/domain/contest"
	"github.com/riskibarqy/fantasy-contests/internal/domain/enrollment"
	"github.com/riskibarqy/fantasy-contests/internal/domain/roster"
	"github.com/riskibarqy/fantasy-contests/internal/domain/scoreledger"
	"github.com/riskibarqy/fantasy-contests/internal/domain/user"
	"github.com/riskibarqy/fantasy-contests/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

// LeaderboardEntry is one ranked row. Rank is global and 1-based, assigned
// after sorting the full standings, so a page carries the ranks it would
// have in the complete list.
type LeaderboardEntry struct {
	Rank         int
	EnrollmentID string
	TeamID       string
	TeamName     string
	UserID       string
	UserLabel    string
	Points       float64
	EnrolledAt   time.Time
}

// Leaderboard is one page of standings plus the viewer's best entry when
// the viewer is enrolled, regardless of whether that entry falls inside
// the requested page.
type Leaderboard struct {
	ContestID   string
	Status      contest.Status
	Entries     []LeaderboardEntry
	Total       int
	Page        int
	PageSize    int
	ViewerEntry *LeaderboardEntry
}

// TeamScore is a team's composed score inside one contest, broken down per
// player with the multiplier that applied.
type TeamScore struct {
	ContestID string
	TeamID    string
	Total     float64
	Players   []PlayerScore
}

type PlayerScore struct {
	PlayerID   string
	Points     float64
	Multiplier float64
	Effective  float64
}

type LeaderboardInput struct {
	ContestID string
	Page      int
	PageSize  int
	// ViewerID is empty for anonymous callers.
	ViewerID string
}

func (in *LeaderboardInput) normalize() {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 {
		in.PageSize = DefaultPageSize
	}
	if in.PageSize > MaxPageSize {
		in.PageSize = MaxPageSize
	}
}

type LeaderboardService struct {
	contestRepo    contest.Repository
	teamRepo       roster.Repository
	enrollmentRepo enrollment.Repository
	ledgerRepo     scoreledger.Repository
	userRepo       user.Repository
	logger         *logging.Logger
	now            func() time.Time
}

func NewLeaderboardService(
	contestRepo contest.Repository,
	teamRepo roster.Repository,
	enrollmentRepo enrollment.Repository,
	ledgerRepo scoreledger.Repository,
	userRepo user.Repository,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeaderboardService{
		contestRepo:    contestRepo,
		teamRepo:       teamRepo,
		enrollmentRepo: enrollmentRepo,
		ledgerRepo:     ledgerRepo,
		userRepo:       userRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// Build computes the full standings for a contest and returns the requested
// page. Points are read from the ledger in one batched call; teams and user
// profiles are fetched concurrently.
func (s *LeaderboardService) Build(ctx context.Context, input LeaderboardInput) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Build")
	defer span.End()

	return s.build(ctx, input, true)
}

// Warm rebuilds the first standings page without viewer authorization, so
// private contests get warmed too. Reserved for the internal warmup job,
// which runs behind the job token.
func (s *LeaderboardService) Warm(ctx context.Context, contestID string) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Warm")
	defer span.End()

	return s.build(ctx, LeaderboardInput{ContestID: contestID}, false)
}

func (s *LeaderboardService) build(ctx context.Context, input LeaderboardInput, authorize bool) (Leaderboard, error) {
	input.normalize()
	contestID := strings.TrimSpace(input.ContestID)
	if contestID == "" {
		return Leaderboard{}, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	}

	c, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("get contest: %w", err)
	}
	if !exists {
		return Leaderboard{}, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
	}
	if authorize {
		if err := s.authorizeViewer(ctx, c, input.ViewerID); err != nil {
			return Leaderboard{}, err
		}
	}

	status := contest.DeriveStatus(c, s.now().UTC())

	enrollments, err := s.enrollmentRepo.ListActiveByContest(ctx, c.ID)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("list enrollments: %w", err)
	}
	if len(enrollments) == 0 {
		return Leaderboard{
			ContestID: c.ID,
			Status:    status,
			Entries:   []LeaderboardEntry{},
			Page:      input.Page,
			PageSize:  input.PageSize,
		}, nil
	}

	teamIDs := make([]string, 0, len(enrollments))
	userIDSet := make(map[string]struct{}, len(enrollments))
	for _, enr := range enrollments {
		teamIDs = append(teamIDs, enr.TeamID)
		userIDSet[enr.UserID] = struct{}{}
	}
	userIDs := make([]string, 0, len(userIDSet))
	for id := range userIDSet {
		userIDs = append(userIDs, id)
	}

	var (
		teams    []roster.Team
		profiles []user.Profile
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		teams, err = s.teamRepo.GetByIDs(ctx, teamIDs)
		if err != nil {
			return fmt.Errorf("get teams: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		profiles, err = s.userRepo.GetByIDs(ctx, userIDs)
		if err != nil {
			return fmt.Errorf("get users: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return Leaderboard{}, err
	}

	teamByID := make(map[string]roster.Team, len(teams))
	playerIDSet := make(map[string]struct{})
	for _, t := range teams {
		teamByID[t.ID] = t
		for _, pid := range t.PlayerIDs {
			playerIDSet[pid] = struct{}{}
		}
	}
	playerIDs := make([]string, 0, len(playerIDSet))
	for id := range playerIDSet {
		playerIDs = append(playerIDs, id)
	}

	points, err := s.ledgerRepo.PointsFor(ctx, c.ID, playerIDs)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("read score ledger: %w", err)
	}

	profileByID := make(map[string]user.Profile, len(profiles))
	for _, pr := range profiles {
		profileByID[pr.ID] = pr
	}

	entries := make([]LeaderboardEntry, 0, len(enrollments))
	for _, enr := range enrollments {
		t, ok := teamByID[enr.TeamID]
		if !ok {
			s.logger.WarnContext(ctx, "enrollment references missing team",
				"enrollment_id", enr.ID,
				"team_id", enr.TeamID,
			)
			continue
		}

		entry := LeaderboardEntry{
			EnrollmentID: enr.ID,
			TeamID:       t.ID,
			TeamName:     t.Name,
			UserID:       enr.UserID,
			Points:       composeTeamPoints(t, points),
			EnrolledAt:   enr.EnrolledAt,
		}
		if pr, ok := profileByID[enr.UserID]; ok {
			entry.UserLabel = pr.Label()
		}
		entries = append(entries, entry)
	}

	// Enrollments arrive ordered by enrolled_at ascending; the stable sort
	// keeps that order among equal scores, so the earliest enrollment wins
	// ties.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	lb := Leaderboard{
		ContestID: c.ID,
		Status:    status,
		Total:     len(entries),
		Page:      input.Page,
		PageSize:  input.PageSize,
	}

	if viewerID := strings.TrimSpace(input.ViewerID); viewerID != "" {
		lb.ViewerEntry = bestEntryFor(entries, viewerID)
	}

	start := (input.Page - 1) * input.PageSize
	if start >= len(entries) {
		lb.Entries = []LeaderboardEntry{}
		return lb, nil
	}
	end := start + input.PageSize
	if end > len(entries) {
		end = len(entries)
	}
	lb.Entries = entries[start:end]

	return lb, nil
}

// TeamScore computes the per-player score breakdown of one enrolled team.
// The team owner can see the breakdown in any phase; other viewers only
// once the contest is ongoing or completed.
func (s *LeaderboardService) TeamScore(ctx context.Context, contestID, teamID, viewerID string) (TeamScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.TeamScore")
	defer span.End()

	contestID = strings.TrimSpace(contestID)
	teamID = strings.TrimSpace(teamID)
	if contestID == "" || teamID == "" {
		return TeamScore{}, fmt.Errorf("%w: contest id and team id are required", ErrInvalidInput)
	}

	c, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return TeamScore{}, fmt.Errorf("get contest: %w", err)
	}
	if !exists {
		return TeamScore{}, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamScore{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return TeamScore{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	if _, ok, err := s.enrollmentRepo.GetActive(ctx, t.ID, c.ID); err != nil {
		return TeamScore{}, fmt.Errorf("check enrollment: %w", err)
	} else if !ok {
		return TeamScore{}, fmt.Errorf("%w: team is not enrolled in contest", ErrNotFound)
	}

	if strings.TrimSpace(viewerID) != t.UserID {
		switch contest.DeriveStatus(c, s.now().UTC()) {
		case contest.StatusOngoing, contest.StatusCompleted:
		default:
			return TeamScore{}, fmt.Errorf("%w: scores are hidden before the contest starts", ErrForbidden)
		}
	}

	points, err := s.ledgerRepo.PointsFor(ctx, c.ID, t.PlayerIDs)
	if err != nil {
		return TeamScore{}, fmt.Errorf("read score ledger: %w", err)
	}

	out := TeamScore{ContestID: c.ID, TeamID: t.ID, Players: make([]PlayerScore, 0, len(t.PlayerIDs))}
	for _, playerID := range t.PlayerIDs {
		base := points[playerID]
		mult := multiplierFor(t, playerID)
		ps := PlayerScore{
			PlayerID:   playerID,
			Points:     base,
			Multiplier: mult,
			Effective:  base * mult,
		}
		out.Players = append(out.Players, ps)
		out.Total += ps.Effective
	}

	return out, nil
}

// authorizeViewer gates private-contest standings to enrolled viewers.
func (s *LeaderboardService) authorizeViewer(ctx context.Context, c contest.Contest, viewerID string) error {
	if c.Visibility == contest.VisibilityPublic {
		return nil
	}

	viewerID = strings.TrimSpace(viewerID)
	if viewerID == "" {
		return fmt.Errorf("%w: contest=%s", ErrNotFound, c.ID)
	}

	enrolled, err := s.enrollmentRepo.HasActiveByUserAndContest(ctx, viewerID, c.ID)
	if err != nil {
		return fmt.Errorf("check viewer enrollment: %w", err)
	}
	if !enrolled {
		return fmt.Errorf("%w: contest=%s", ErrNotFound, c.ID)
	}

	return nil
}

func composeTeamPoints(t roster.Team, points map[string]float64) float64 {
	total := 0.0
	for _, playerID := range t.PlayerIDs {
		total += points[playerID] * multiplierFor(t, playerID)
	}
	return total
}

func multiplierFor(t roster.Team, playerID string) float64 {
	switch playerID {
	case t.CaptainID:
		return scoreledger.CaptainMultiplier
	case t.ViceCaptainID:
		return scoreledger.ViceCaptainMultiplier
	default:
		return 1
	}
}

// bestEntryFor scans the ranked standings for the viewer's highest entry.
// A user can field several teams in one contest; the first hit after the
// sort is the best-ranked one.
func bestEntryFor(entries []LeaderboardEntry, viewerID string) *LeaderboardEntry {
	for i := range entries {
		if entries[i].UserID == viewerID {
			e := entries[i]
			return &e
		}
	}
	return nil
}
