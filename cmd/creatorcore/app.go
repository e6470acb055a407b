package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"creatorcore/internal/config"
	"creatorcore/internal/domain"
	"creatorcore/internal/genre"
	"creatorcore/internal/metrics"
	"creatorcore/internal/normalize"
	"creatorcore/internal/publisher"
	"creatorcore/internal/search"
	"creatorcore/internal/service"
	"creatorcore/internal/source/agency"
	"creatorcore/internal/storage/postgres"
)

var _ service.Publisher = (*publisher.RabbitMQ)(nil)

// app holds the wired dependencies shared by every command.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *sqlx.DB
	registry *prometheus.Registry

	engine   *service.Engine
	sweep    *service.SweepService
	rollup   *service.RollupService
	classify *service.ClassificationService

	closers []func() error
}

// connect loads config and opens the database; it does not wire services.
func connect(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := setupLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("connected to database")

	return &app{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		closers: []func() error{db.Close},
	}, nil
}

// newApp connects and wires the full pipeline. withPublisher opens the broker connection when
// one is configured.
func newApp(ctx context.Context, configPath string, withPublisher bool) (*app, error) {
	a, err := connect(ctx, configPath)
	if err != nil {
		return nil, err
	}
	cfg, logger := a.cfg, a.logger

	if cfg.Schedule.MigrateOnStart {
		if err := postgres.Migrate(ctx, a.db, logger); err != nil {
			a.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.New(a.registry)

	chunk := cfg.Sync.UpsertChunkSize
	genreStore := postgres.NewGenreStore(a.db)
	stores := service.Stores{
		Sources:   postgres.NewSourceStore(a.db),
		Cursors:   postgres.NewCursorStore(a.db),
		Campaigns: postgres.NewCampaignStore(a.db, chunk),
		Posts:     postgres.NewPostStore(a.db, chunk),
		Creators:  postgres.NewCreatorStore(a.db),
		Sweeps:    postgres.NewSweepStore(a.db),
		Metrics:   postgres.NewMetricsStore(a.db, chunk),
		Stats:     postgres.NewStatsStore(a.db),
		Genres:    genreStore,
		Runs:      postgres.NewRunStore(a.db),
		TxManager: postgres.NewTransactionManager(a.db),
	}

	configured, sources := buildSources(cfg, logger)
	normalizer := normalize.New(normalize.Options{
		Environment:   cfg.Environment,
		AllowFixtures: cfg.AllowFixtureIngestion,
	})

	provider, err := search.NewProvider(search.Config{
		Provider: cfg.Search.Provider,
		APIKey:   cfg.Search.APIKey,
		APIURL:   cfg.Search.APIURL,
		Timeout:  cfg.Search.Timeout,
	})
	switch {
	case errors.Is(err, search.ErrDisabled):
		logger.Info("search provider not configured; genre search tier disabled")
		provider = nil
	case err != nil:
		a.Close()
		return nil, fmt.Errorf("search provider: %w", err)
	}
	classifier := genre.NewClassifier(genreStore, provider, logger)

	var pub service.Publisher
	if withPublisher && cfg.RabbitMQ.Enabled() {
		rabbit, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			// Summaries are best-effort; a broker outage must not block syncing.
			logger.Warn("rabbitmq unavailable; run summaries will not be published", "error", err)
		} else {
			pub = rabbit
			a.closers = append(a.closers, rabbit.Close)
		}
	}

	syncer := service.NewSyncService(sources, stores, normalizer, recorder, logger, cfg.Sync)
	a.rollup = service.NewRollupService(stores, logger, cfg)
	a.sweep = service.NewSweepService(sources, stores, a.rollup, normalizer, recorder, logger, cfg.Sweep)
	a.classify = service.NewClassificationService(stores, classifier, recorder, logger, cfg.Genre)
	a.engine = service.NewEngine(configured, stores, syncer, a.sweep, a.rollup, a.classify, pub, recorder, logger)

	return a, nil
}

func buildSources(cfg *config.Config, logger *slog.Logger) ([]domain.AgencySource, []service.Source) {
	configured := make([]domain.AgencySource, 0, len(cfg.Sources))
	sources := make([]service.Source, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		src := domain.AgencySource{Key: sc.Key, Name: sc.Name, BaseEndpoint: sc.BaseURL, Active: true}
		configured = append(configured, src)
		sources = append(sources, agency.New(agency.Config{
			Source:          src,
			Timeout:         cfg.API.Timeout,
			UserAgent:       cfg.API.UserAgent,
			BreakerFailures: cfg.API.BreakerFailures,
			BreakerWindow:   cfg.API.BreakerWindow,
			BreakerDelay:    cfg.API.BreakerDelay,
		}, logger))
	}
	if len(sources) == 0 {
		logger.Warn("no agency sources configured")
	}
	return configured, sources
}

// Close releases resources in reverse acquisition order.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}
