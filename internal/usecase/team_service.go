package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-contests/internal/domain/contest"
	"github.com/riskibarqy/fantasy-contests/internal/domain/enrollment"
	"github.com/riskibarqy/fantasy-contests/internal/domain/player"
	"github.com/riskibarqy/fantasy-contests/internal/domain/roster"
	"github.com/riskibarqy/fantasy-contests/internal/domain/slot"
	idgen "github.com/riskibarqy/fantasy-contests/internal/platform/id"
	"github.com/riskibarqy/fantasy-contests/internal/platform/logging"
)

// CreateTeamInput is the incoming payload for a new fantasy team.
type CreateTeamInput struct {
	UserID        string
	Name          string
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
}

// UpdateTeamInput carries optional team updates. Any change touching the
// selection or captaincy re-runs composition validation.
type UpdateTeamInput struct {
	Name          *string
	PlayerIDs     *[]string
	CaptainID     *string
	ViceCaptainID *string
}

type TeamService struct {
	teamRepo       roster.Repository
	playerRepo     player.Repository
	slotRepo       slot.Repository
	contestRepo    contest.Repository
	enrollmentRepo enrollment.Repository
	idGen          idgen.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewTeamService(
	teamRepo roster.Repository,
	playerRepo player.Repository,
	slotRepo slot.Repository,
	contestRepo contest.Repository,
	enrollmentRepo enrollment.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		slotRepo:       slotRepo,
		contestRepo:    contestRepo,
		enrollmentRepo: enrollmentRepo,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)
	if input.UserID == "" {
		return roster.Team{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return roster.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	playerIDs, err := cleanPlayerIDs(input.PlayerIDs)
	if err != nil {
		return roster.Team{}, err
	}

	players, err := s.validateSelection(ctx, playerIDs, input.CaptainID, input.ViceCaptainID)
	if err != nil {
		return roster.Team{}, err
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return roster.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	t := roster.Team{
		ID:            teamID,
		UserID:        input.UserID,
		Name:          input.Name,
		PlayerIDs:     playerIDs,
		CaptainID:     input.CaptainID,
		ViceCaptainID: input.ViceCaptainID,
		TotalValue:    totalValue(players),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := t.ValidateBasic(); err != nil {
		return roster.Team{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Insert(ctx, t); err != nil {
		return roster.Team{}, fmt.Errorf("insert team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created",
		"team_id", t.ID,
		"user_id", t.UserID,
		"player_count", len(t.PlayerIDs),
	)

	return t, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, teamID, userID string, input UpdateTeamInput) (roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.UpdateTeam")
	defer span.End()

	t, err := s.getOwnedTeam(ctx, teamID, userID)
	if err != nil {
		return roster.Team{}, err
	}

	touchesSelection := input.PlayerIDs != nil || input.CaptainID != nil || input.ViceCaptainID != nil
	if touchesSelection {
		if err := s.ensureEditable(ctx, t.ID); err != nil {
			return roster.Team{}, err
		}
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return roster.Team{}, fmt.Errorf("%w: team name cannot be empty", ErrInvalidInput)
		}
		t.Name = name
	}

	if touchesSelection {
		playerIDs := t.PlayerIDs
		if input.PlayerIDs != nil {
			playerIDs, err = cleanPlayerIDs(*input.PlayerIDs)
			if err != nil {
				return roster.Team{}, err
			}
		}
		captainID := t.CaptainID
		if input.CaptainID != nil {
			captainID = strings.TrimSpace(*input.CaptainID)
		}
		viceCaptainID := t.ViceCaptainID
		if input.ViceCaptainID != nil {
			viceCaptainID = strings.TrimSpace(*input.ViceCaptainID)
		}

		players, err := s.validateSelection(ctx, playerIDs, captainID, viceCaptainID)
		if err != nil {
			return roster.Team{}, err
		}

		t.PlayerIDs = playerIDs
		t.CaptainID = captainID
		t.ViceCaptainID = viceCaptainID
		t.TotalValue = totalValue(players)
	}

	if err := t.ValidateBasic(); err != nil {
		return roster.Team{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	t.UpdatedAt = s.now().UTC()
	if err := s.teamRepo.Update(ctx, t); err != nil {
		return roster.Team{}, fmt.Errorf("update team: %w", err)
	}

	return t, nil
}

// RenameTeam changes only the display name; it stays available even while
// the team is locked in an ongoing contest.
func (s *TeamService) RenameTeam(ctx context.Context, teamID, userID, name string) (roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RenameTeam")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return roster.Team{}, fmt.Errorf("%w: team name cannot be empty", ErrInvalidInput)
	}
	if len(name) > roster.MaxTeamNameLength {
		return roster.Team{}, fmt.Errorf("%w: team name cannot exceed %d characters", ErrInvalidInput, roster.MaxTeamNameLength)
	}

	t, err := s.getOwnedTeam(ctx, teamID, userID)
	if err != nil {
		return roster.Team{}, err
	}

	t.Name = name
	t.UpdatedAt = s.now().UTC()
	if err := s.teamRepo.Update(ctx, t); err != nil {
		return roster.Team{}, fmt.Errorf("rename team: %w", err)
	}

	return t, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID, userID string) (roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	return s.getOwnedTeam(ctx, teamID, userID)
}

func (s *TeamService) ListTeams(ctx context.Context, userID string) ([]roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return teams, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, teamID, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.DeleteTeam")
	defer span.End()

	t, err := s.getOwnedTeam(ctx, teamID, userID)
	if err != nil {
		return err
	}

	deleted, err := s.teamRepo.Delete(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	s.logger.InfoContext(ctx, "team deleted", "team_id", t.ID, "user_id", t.UserID)

	return nil
}

func (s *TeamService) getOwnedTeam(ctx context.Context, teamID, userID string) (roster.Team, error) {
	teamID = strings.TrimSpace(teamID)
	userID = strings.TrimSpace(userID)
	if teamID == "" {
		return roster.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if userID == "" {
		return roster.Team{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return roster.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return roster.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if t.UserID != userID {
		return roster.Team{}, fmt.Errorf("%w: team belongs to another user", ErrForbidden)
	}

	return t, nil
}

// ensureEditable refuses selection edits while the team holds an active
// enrollment in a contest whose derived status is ongoing.
func (s *TeamService) ensureEditable(ctx context.Context, teamID string) error {
	enrollments, err := s.enrollmentRepo.ListActiveByTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("list team enrollments: %w", err)
	}

	now := s.now().UTC()
	for _, enr := range enrollments {
		c, exists, err := s.contestRepo.GetByID(ctx, enr.ContestID)
		if err != nil {
			return fmt.Errorf("get contest %s: %w", enr.ContestID, err)
		}
		if !exists {
			continue
		}
		if contest.DeriveStatus(c, now) == contest.StatusOngoing {
			return fmt.Errorf("%w: team is locked while contest %s is ongoing", ErrConflict, c.Code)
		}
	}

	return nil
}

// validateSelection loads the selected players, runs captain/vice-captain
// membership checks and the slot-bounds composition rules, and returns the
// loaded players for value calculation.
func (s *TeamService) validateSelection(ctx context.Context, playerIDs []string, captainID, viceCaptainID string) ([]player.Player, error) {
	if len(playerIDs) < roster.MinTeamSize || len(playerIDs) > roster.MaxTeamSize {
		return nil, fmt.Errorf("%w: team must select between %d and %d players", ErrInvalidInput, roster.MinTeamSize, roster.MaxTeamSize)
	}

	if err := roster.ValidateSelectionRefs(playerIDs, captainID, viceCaptainID); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	if len(players) != len(playerIDs) {
		return nil, fmt.Errorf("%w: some player ids are invalid", ErrInvalidInput)
	}

	rules, err := s.slotRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slot rules: %w", err)
	}

	if err := roster.ValidateComposition(players, rules); err != nil {
		return nil, err
	}

	return players, nil
}

func totalValue(players []player.Player) float64 {
	var total float64
	for _, p := range players {
		total += p.Price
	}
	return total
}

func cleanPlayerIDs(playerIDs []string) ([]string, error) {
	cleaned := make([]string, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: duplicate player id %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}

	return cleaned, nil
}
