// Package main provides a standalone reconciliation runner: it collapses
// repeated-quest progress in every stored profile without reloading quests.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/questforge/questforge/internal/config"
	"github.com/questforge/questforge/internal/observability"
	"github.com/questforge/questforge/internal/reconcile"
	"github.com/questforge/questforge/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, cfg.Quest.Debug)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()
	if err := pool.Health(ctx, 5*time.Second); err != nil {
		logger.Fatal("database health check", zap.Error(err))
	}

	templates := postgres.NewTemplateRepository(pool.DB())
	profiles := postgres.NewProfileRepository(pool.DB())
	reconciler := reconcile.NewReconciler(templates, logger)

	profileIDs, err := profiles.ProfileIDs(ctx)
	if err != nil {
		logger.Fatal("listing profiles", zap.Error(err))
	}

	changed := 0
	for _, pid := range profileIDs {
		p, err := profiles.Profile(ctx, pid)
		if err != nil {
			logger.Fatal("loading profile", zap.String("profile_id", pid), zap.Error(err))
		}
		stats, err := reconciler.Run(ctx, p)
		if err != nil {
			logger.Fatal("reconciling profile", zap.String("profile_id", pid), zap.Error(err))
		}
		if stats == (reconcile.Stats{}) {
			continue
		}
		if err := profiles.SaveProfile(ctx, p); err != nil {
			logger.Fatal("saving profile", zap.String("profile_id", pid), zap.Error(err))
		}
		changed++
	}

	logger.Info("reconciliation complete",
		zap.Int("profiles", len(profileIDs)),
		zap.Int("changed", changed),
		zap.Duration("elapsed", time.Since(start)),
	)
}
