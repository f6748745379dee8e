// Package main provides the quest loader binary that runs the full
// session-start pass: at-start cleanups, quest generation and registration,
// and save-state reconciliation.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/questforge/questforge/internal/config"
	"github.com/questforge/questforge/internal/loader"
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

	if !cfg.Quest.Enabled {
		logger.Info("quest loading disabled")
		return
	}

	dbStart := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()
	if err := pool.Health(ctx, 5*time.Second); err != nil {
		logger.Fatal("database health check", zap.Error(err))
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Duration("elapsed", time.Since(dbStart)),
	)

	templates := postgres.NewTemplateRepository(pool.DB())
	locales := postgres.NewLocaleRepository(pool.DB())
	profiles := postgres.NewProfileRepository(pool.DB())

	for _, name := range cfg.Quest.Locales {
		if err := locales.AddLocale(ctx, name); err != nil {
			logger.Fatal("registering locale", zap.String("locale", name), zap.Error(err))
		}
	}

	startup := reconcile.NewStartupHandler(templates, profiles,
		cfg.AtStart.DisableAllBuiltinQuests,
		cfg.AtStart.WipeEnabledCustomQuestsStateFromAllProfiles,
		logger)

	if err := startup.BeforeLoad(ctx); err != nil {
		logger.Fatal("running pre-load cleanup", zap.Error(err))
	}

	svc := loader.New(cfg.Quest.Directory, templates, locales,
		cfg.Quest.LimitRepeatedQuest, cfg.Quest.DefaultNamePrefix, logger)

	loadStart := time.Now()
	loaded, err := svc.LoadAll(ctx)
	if err != nil {
		logger.Fatal("loading quests", zap.Error(err))
	}
	logger.Info("quests loaded",
		zap.Int("count", len(loaded)),
		zap.Duration("elapsed", time.Since(loadStart)),
	)

	questIDs := make([]string, 0, len(loaded))
	for _, q := range loaded {
		questIDs = append(questIDs, q.ID)
	}
	if err := startup.AfterLoad(ctx, questIDs); err != nil {
		logger.Fatal("running post-load cleanup", zap.Error(err))
	}

	reconciler := reconcile.NewReconciler(templates, logger)
	profileIDs, err := profiles.ProfileIDs(ctx)
	if err != nil {
		logger.Fatal("listing profiles", zap.Error(err))
	}
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
	}

	logger.Info("quest load pass complete", zap.Duration("elapsed", time.Since(start)))
}
