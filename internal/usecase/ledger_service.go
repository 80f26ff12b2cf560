package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-contests/internal/domain/contest"
	"github.com/riskibarqy/fantasy-contests/internal/domain/scoreledger"
	"github.com/riskibarqy/fantasy-contests/internal/platform/logging"
)

// JobPublisher hands jobs to the external queue. Publishing is best-effort
// from the ledger's point of view; ingestion must not fail because the
// queue is down.
type JobPublisher interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

// PointsUpdate is one player's raw score for a contest as reported by the
// stats feed.
type PointsUpdate struct {
	PlayerID string
	Points   float64
}

type LedgerService struct {
	contestRepo contest.Repository
	ledgerRepo  scoreledger.Repository
	publisher   JobPublisher
	logger      *logging.Logger
	now         func() time.Time
}

func NewLedgerService(
	contestRepo contest.Repository,
	ledgerRepo scoreledger.Repository,
	publisher JobPublisher,
	logger *logging.Logger,
) *LedgerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LedgerService{
		contestRepo: contestRepo,
		ledgerRepo:  ledgerRepo,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

// Ingest upserts raw player points for a contest. Later updates overwrite
// earlier ones; multipliers are never applied here, composition happens at
// read time. After a successful write a leaderboard warmup job is published
// so caches catch up, but a publish failure only logs.
func (s *LedgerService) Ingest(ctx context.Context, contestID string, updates []PointsUpdate) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerService.Ingest")
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
	if contest.DeriveStatus(c, s.now().UTC()) == contest.StatusArchived {
		return 0, fmt.Errorf("%w: contest is archived", ErrInvalidState)
	}

	updatedAt := s.now().UTC()
	rows := make([]scoreledger.PlayerPoints, 0, len(updates))
	seen := make(map[string]int, len(updates))
	for _, u := range updates {
		playerID := strings.TrimSpace(u.PlayerID)
		if playerID == "" {
			return 0, fmt.Errorf("%w: player id is required on every update", ErrInvalidInput)
		}
		row := scoreledger.PlayerPoints{
			ContestID: c.ID,
			PlayerID:  playerID,
			Points:    u.Points,
			UpdatedAt: updatedAt,
		}
		// Last occurrence wins when a feed repeats a player in one batch.
		if idx, ok := seen[playerID]; ok {
			rows[idx] = row
			continue
		}
		seen[playerID] = len(rows)
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	if err := s.ledgerRepo.Upsert(ctx, rows); err != nil {
		return 0, fmt.Errorf("upsert score ledger: %w", err)
	}

	s.logger.InfoContext(ctx, "score ledger updated", "contest_id", c.ID, "players", len(rows))

	s.publishWarmup(ctx, c.ID)

	return len(rows), nil
}

func (s *LedgerService) publishWarmup(ctx context.Context, contestID string) {
	if s.publisher == nil {
		return
	}

	payload := map[string]string{"contestId": contestID}
	dedupID := fmt.Sprintf("leaderboard-warmup-%s-%d", contestID, s.now().UTC().Unix())
	if err := s.publisher.Enqueue(ctx, "/v1/internal/jobs/leaderboard-warmup", payload, 0, dedupID); err != nil {
		s.logger.WarnContext(ctx, "publish leaderboard warmup failed", "contest_id", contestID, "error", err)
	}
}
