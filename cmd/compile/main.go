// Package main provides the offline quest compiler: it runs the generation
// pipeline over a quest directory and writes the resulting template and
// locale tables as JSON files, without touching a database.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/questforge/questforge/internal/config"
	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/loader"
	"github.com/questforge/questforge/internal/observability"
	"github.com/questforge/questforge/internal/storage"
)

func main() {
	start := time.Now()

	questDir := flag.String("quests", "quests", "path to quest JSON directory")
	outputDir := flag.String("output", "", "path to output directory")
	localeList := flag.String("locales", "en", "comma-separated locale names")
	repeatLimit := flag.Int("repeat-limit", 10, "clone count for repeatable quests")
	namePrefix := flag.String("name-prefix", "", "prefix for repeated-quest clone names")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	debug := flag.Bool("debug", false, "verbose generation logging")
	flag.Parse()

	if *outputDir == "" {
		fmt.Fprintln(os.Stderr, "usage: compile -quests <dir> -output <dir> [-locales en,fr] [-repeat-limit n] [-name-prefix s]")
		os.Exit(1)
	}

	logger, err := observability.NewLogger(config.LoggingConfig{Level: *logLevel, Format: "console"}, *debug)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	locales := strings.Split(*localeList, ",")
	templates := storage.NewMemoryTemplateStore()
	localeStore := storage.NewMemoryLocaleStore(locales)

	svc := loader.New(*questDir, templates, localeStore, *repeatLimit, *namePrefix, logger)
	loaded, err := svc.LoadAll(ctx)
	if err != nil {
		logger.Fatal("compiling quests", zap.Error(err))
	}

	if err := writeOutput(ctx, *outputDir, locales, templates, localeStore); err != nil {
		logger.Fatal("writing output", zap.Error(err))
	}

	logger.Info("compile complete",
		zap.Int("quests", len(loaded)),
		zap.String("output", *outputDir),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// writeOutput dumps the template table to quests.json and each locale's
// tables to locales/<name>.json under dir.
func writeOutput(ctx context.Context, dir string, locales []string, templates *storage.MemoryTemplateStore, localeStore *storage.MemoryLocaleStore) error {
	if err := os.MkdirAll(filepath.Join(dir, "locales"), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	ids, err := templates.QuestIDs(ctx)
	if err != nil {
		return fmt.Errorf("listing quests: %w", err)
	}
	questTable := make(map[string]*engine.Quest, len(ids))
	for _, id := range ids {
		q, err := templates.Quest(ctx, id)
		if err != nil {
			return fmt.Errorf("reading quest %s: %w", id, err)
		}
		questTable[id] = q
	}
	if err := writeJSON(filepath.Join(dir, "quests.json"), questTable); err != nil {
		return err
	}

	for _, locale := range locales {
		quests, mail, ok := localeStore.Dump(locale)
		if !ok {
			continue
		}
		payload := struct {
			Quests map[string]engine.QuestLocale `json:"quests"`
			Mail   map[string]string             `json:"mail"`
		}{quests, mail}
		if err := writeJSON(filepath.Join(dir, "locales", locale+".json"), payload); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
