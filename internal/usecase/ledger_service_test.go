package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-contests/internal/domain/contest"
	"github.com/riskibarqy/fantasy-contests/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-contests/internal/platform/logging"
)

type capturingPublisher struct {
	paths   []string
	failErr error
}

func (p *capturingPublisher) Enqueue(_ context.Context, path string, _ any, _ time.Duration, _ string) error {
	if p.failErr != nil {
		return p.failErr
	}
	p.paths = append(p.paths, path)
	return nil
}

func newLedgerService(ledgerRepo *memory.ScoreLedgerRepository, publisher JobPublisher) *LedgerService {
	svc := NewLedgerService(
		memory.NewContestRepository(testContests()),
		ledgerRepo,
		publisher,
		logging.NewNop(),
	)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestLedgerService_Ingest(t *testing.T) {
	ledgerRepo := memory.NewScoreLedgerRepository(nil)
	publisher := &capturingPublisher{}
	svc := newLedgerService(ledgerRepo, publisher)

	count, err := svc.Ingest(t.Context(), "cst-open", []PointsUpdate{
		{PlayerID: "p1", Points: 12},
		{PlayerID: "p2", Points: 7.5},
	})
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("unexpected count: %d", count)
	}

	points, _ := ledgerRepo.PointsFor(t.Context(), "cst-open", []string{"p1", "p2"})
	if points["p1"] != 12 || points["p2"] != 7.5 {
		t.Fatalf("unexpected ledger rows: %v", points)
	}
	if len(publisher.paths) != 1 || publisher.paths[0] != "/v1/internal/jobs/leaderboard-warmup" {
		t.Fatalf("warmup job not published: %v", publisher.paths)
	}
}

func TestLedgerService_Ingest_LaterUpdateOverwrites(t *testing.T) {
	ledgerRepo := memory.NewScoreLedgerRepository(nil)
	svc := newLedgerService(ledgerRepo, nil)

	if _, err := svc.Ingest(t.Context(), "cst-open", []PointsUpdate{{PlayerID: "p1", Points: 10}}); err != nil {
		t.Fatalf("first ingest failed: %v", err)
	}
	if _, err := svc.Ingest(t.Context(), "cst-open", []PointsUpdate{{PlayerID: "p1", Points: 25}}); err != nil {
		t.Fatalf("second ingest failed: %v", err)
	}

	points, _ := ledgerRepo.PointsFor(t.Context(), "cst-open", []string{"p1"})
	if points["p1"] != 25 {
		t.Fatalf("later update did not overwrite: %v", points["p1"])
	}
}

func TestLedgerService_Ingest_LastOccurrenceWinsInBatch(t *testing.T) {
	ledgerRepo := memory.NewScoreLedgerRepository(nil)
	svc := newLedgerService(ledgerRepo, nil)

	count, err := svc.Ingest(t.Context(), "cst-open", []PointsUpdate{
		{PlayerID: "p1", Points: 10},
		{PlayerID: "p1", Points: 40},
	})
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("unexpected count: %d", count)
	}

	points, _ := ledgerRepo.PointsFor(t.Context(), "cst-open", []string{"p1"})
	if points["p1"] != 40 {
		t.Fatalf("unexpected points: %v", points["p1"])
	}
}

func TestLedgerService_Ingest_PublishFailureIsTolerated(t *testing.T) {
	ledgerRepo := memory.NewScoreLedgerRepository(nil)
	publisher := &capturingPublisher{failErr: errors.New("queue down")}
	svc := newLedgerService(ledgerRepo, publisher)

	if _, err := svc.Ingest(t.Context(), "cst-open", []PointsUpdate{{PlayerID: "p1", Points: 5}}); err != nil {
		t.Fatalf("ingest should tolerate publish failure: %v", err)
	}
}

func TestLedgerService_Ingest_ArchivedContest(t *testing.T) {
	contests := []contest.Contest{{
		ID:         "cst-arch",
		Code:       "ARCH",
		Name:       "Archived",
		StartAt:    testNow.Add(-2 * time.Hour),
		EndAt:      testNow.Add(-time.Hour),
		Visibility: contest.VisibilityPublic,
		Type:       contest.TypeFull,
		Status:     contest.StatusArchived,
	}}
	svc := NewLedgerService(
		memory.NewContestRepository(contests),
		memory.NewScoreLedgerRepository(nil),
		nil,
		logging.NewNop(),
	)
	svc.now = func() time.Time { return testNow }

	if _, err := svc.Ingest(t.Context(), "cst-arch", []PointsUpdate{{PlayerID: "p1", Points: 5}}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestLedgerService_Ingest_UnknownContest(t *testing.T) {
	svc := newLedgerService(memory.NewScoreLedgerRepository(nil), nil)

	if _, err := svc.Ingest(t.Context(), "cst-missing", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
