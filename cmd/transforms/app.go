package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ehr/transforms/internal/config"
	"github.com/ehr/transforms/internal/idmap"
	"github.com/ehr/transforms/internal/merge"
	"github.com/ehr/transforms/internal/pipeline"
	"github.com/ehr/transforms/internal/platform/db"
	"github.com/ehr/transforms/internal/platform/telemetry"
	"github.com/ehr/transforms/internal/store"
)

const idCacheTTL = 24 * time.Hour

// app holds the process-wide dependencies shared by every command.
type app struct {
	cfg       *config.Config
	logger    zerolog.Logger
	pool      *pgxpool.Pool
	redis     *redis.Client
	telemetry *telemetry.Provider

	ids    *idmap.Mapper
	store  store.Store
	runner *pipeline.Runner
}

func newLogger(env string) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp connects the stores selected by configuration. The caller must
// Close it.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: newLogger(cfg.Env)}

	a.telemetry, err = telemetry.Setup(ctx, telemetry.TelemetryConfig{
		ServiceName:  cfg.ServiceName,
		OTLPEndpoint: cfg.OTLPEndpoint,
		Environment:  cfg.Env,
	}, a.logger)
	if err != nil {
		return nil, err
	}

	var idStore idmap.Store
	if cfg.InMemory() {
		a.logger.Warn().Msg("DATABASE_URL not set, using in-memory stores")
		idStore = idmap.NewMemoryStore()
		a.store = store.NewMemoryStore()
	} else {
		a.pool, err = db.NewPool(ctx, cfg.DatabaseURL, cfg.ServiceName, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.logger.Info().Msg("connected to database")
		idStore = idmap.NewPGStore(a.pool)
		a.store = store.NewPGStore(a.pool)
	}

	if cfg.RedisURL != "" {
		a.redis, err = idmap.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		idStore = idmap.NewRedisCache(idStore, a.redis, idCacheTTL, a.logger)
		a.logger.Info().Msg("identifier cache enabled")
	}

	a.ids = idmap.NewMapper(idStore, a.logger, idmap.WithStrict(cfg.StrictMode))

	rules := merge.DefaultRules()
	if cfg.MergeRulesFile != "" {
		rules, err = merge.LoadRules(cfg.MergeRulesFile)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("load merge rules: %w", err)
		}
	}

	a.runner, err = pipeline.NewRunner(a.ids, a.store, merge.NewEngine(rules, a.logger), a.logger,
		pipeline.WithWorkers(cfg.Workers))
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
	if a.telemetry != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.telemetry.Shutdown(ctx); err != nil {
			a.logger.Warn().Err(err).Msg("telemetry shutdown failed")
		}
	}
}
