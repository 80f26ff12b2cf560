package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/riskibarqy/fantasy-contests/internal/config"
	"github.com/riskibarqy/fantasy-contests/internal/domain/contest"
	"github.com/riskibarqy/fantasy-contests/internal/domain/enrollment"
	"github.com/riskibarqy/fantasy-contests/internal/domain/player"
	"github.com/riskibarqy/fantasy-contests/internal/domain/roster"
	"github.com/riskibarqy/fantasy-contests/internal/domain/scoreledger"
	"github.com/riskibarqy/fantasy-contests/internal/domain/slot"
	"github.com/riskibarqy/fantasy-contests/internal/domain/user"
	"github.com/riskibarqy/fantasy-contests/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/fantasy-contests/internal/infrastructure/jobqueue"
	cacherepo "github.com/riskibarqy/fantasy-contests/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-contests/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-contests/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-contests/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/fantasy-contests/internal/platform/cache"
	idgen "github.com/riskibarqy/fantasy-contests/internal/platform/id"
	"github.com/riskibarqy/fantasy-contests/internal/platform/logging"
	"github.com/riskibarqy/fantasy-contests/internal/usecase"
)

// repositories bundles the persistence ports the use cases depend on, so the
// memory and postgres wirings stay interchangeable.
type repositories struct {
	contests    contest.Repository
	teams       roster.Repository
	players     player.Repository
	slots       slot.Repository
	enrollments enrollment.Repository
	ledger      scoreledger.Repository
	users       user.Repository
}

// NewHTTPServer assembles repositories, use cases, and the HTTP surface into
// a ready-to-run server. With DB_URL unset it falls back to the seeded
// in-memory repositories, which is the local development mode.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.contests = cacherepo.NewContestRepository(repos.contests, store)
		repos.slots = cacherepo.NewSlotRepository(repos.slots, store)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
	}

	idGen := idgen.NewRandomGenerator()

	contestSvc := usecase.NewContestService(repos.contests, repos.enrollments, idGen, logger)
	teamSvc := usecase.NewTeamService(repos.teams, repos.players, repos.slots, repos.contests, repos.enrollments, idGen, logger)
	enrollmentSvc := usecase.NewEnrollmentService(repos.contests, repos.teams, repos.players, repos.enrollments, idGen, logger)
	leaderboardSvc := usecase.NewLeaderboardService(repos.contests, repos.teams, repos.enrollments, repos.ledger, repos.users, logger)
	ledgerSvc := usecase.NewLedgerService(repos.contests, repos.ledger, buildJobPublisher(cfg, logger), logger)
	slotSvc := usecase.NewSlotService(repos.slots, repos.players, logger)

	anubisClient := anubis.NewClient(
		&http.Client{Timeout: cfg.AnubisTimeout},
		cfg.AnubisBaseURL,
		cfg.AnubisIntrospectURL,
		buildAnubisCircuitConfig(cfg),
		cfg.AnubisTokenCacheTTL,
		logger,
	)

	handler := httpapi.NewHandler(contestSvc, teamSvc, enrollmentSvc, leaderboardSvc, ledgerSvc, slotSvc, logger)
	router := httpapi.NewRouter(handler, anubisClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		logger.Info("repositories wired", "backend", "memory")
		return repositories{
			contests:    memory.NewContestRepository(memory.SeedContests()),
			teams:       memory.NewTeamRepository(nil),
			players:     memory.NewPlayerRepository(memory.SeedPlayers()),
			slots:       memory.NewSlotRepository(memory.SeedSlots()),
			enrollments: memory.NewEnrollmentRepository(nil),
			ledger:      memory.NewScoreLedgerRepository(nil),
			users:       memory.NewUserRepository(memory.SeedUsers()),
		}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}

	logger.Info("repositories wired", "backend", "postgres")
	return repositories{
		contests:    postgres.NewContestRepository(db),
		teams:       postgres.NewTeamRepository(db),
		players:     postgres.NewPlayerRepository(db),
		slots:       postgres.NewSlotRepository(db),
		enrollments: postgres.NewEnrollmentRepository(db),
		ledger:      postgres.NewScoreLedgerRepository(db),
		users:       postgres.NewUserRepository(db),
	}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	dbName := dbNameFromURL(dsn)
	if dbName == "" {
		dbName = "fantasy_contests"
	}

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func buildAnubisCircuitConfig(cfg config.Config) anubis.CircuitBreakerConfig {
	if !cfg.AnubisCircuitEnabled {
		return anubis.DefaultCircuitBreakerConfig()
	}

	return anubis.CircuitBreakerConfig{
		FailureThreshold: cfg.AnubisCircuitFailureCount,
		OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
	}
}

func buildJobPublisher(cfg config.Config, logger *logging.Logger) usecase.JobPublisher {
	if !cfg.QStashEnabled {
		logger.Info("job publisher disabled", "reason", "QSTASH_ENABLED=false")
		return nil
	}

	return jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
		BaseURL:          cfg.QStashBaseURL,
		Token:            cfg.QStashToken,
		TargetBaseURL:    cfg.QStashTargetBaseURL,
		Retries:          cfg.QStashRetries,
		InternalJobToken: cfg.InternalJobToken,
		Timeout:          cfg.QStashTimeout,
	}, logger)
}
