// Command importfile imports one or more ISUCalcFS competition export files
// into the results database. Each file is imported in its own transaction;
// a failed file leaves no partial data behind.
//
// Usage:
//
//	importfile [flags] FILE [FILE...]
//
// Flags:
//
//	--config    path to the YAML config file
//	--no-merge  skip the club deduplication pass after import
//
// Exit codes: 0 = all files imported, 1 = at least one file failed.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/figskate/results-backend/internal/adapter/postgres"
	"github.com/figskate/results-backend/internal/adapter/postgres/athlete"
	"github.com/figskate/results-backend/internal/adapter/postgres/club"
	"github.com/figskate/results-backend/internal/adapter/postgres/coach"
	"github.com/figskate/results-backend/internal/adapter/postgres/event"
	"github.com/figskate/results-backend/internal/adapter/postgres/judge"
	"github.com/figskate/results-backend/internal/adapter/postgres/result"
	"github.com/figskate/results-backend/internal/app"
	"github.com/figskate/results-backend/internal/config"
	"github.com/figskate/results-backend/internal/importer"
)

func main() {
	configFlag := flag.String("config", "", "path to the YAML config file")
	noMergeFlag := flag.Bool("no-merge", false, "skip the club deduplication pass after import")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		log.Fatal("usage: importfile [flags] FILE [FILE...]")
	}

	if *configFlag != "" {
		os.Setenv("CONFIG_PATH", *configFlag)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	logger.Info("starting import",
		slog.String("version", app.BuildVersion()),
		slog.Int("files", len(files)),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	opts := importer.Options{
		ClubSimilarityThreshold: cfg.Import.ClubSimilarityThreshold,
		AutoMergeClubs:          cfg.Import.AutoMerge() && !*noMergeFlag,
	}

	imp := importer.New(
		logger,
		txm,
		event.New(pool),
		club.New(pool),
		athlete.New(pool),
		coach.New(pool),
		coach.NewAssignmentRepo(pool),
		judge.New(pool),
		result.New(pool),
		opts,
	)

	failed := 0
	for _, path := range files {
		sum, err := imp.ImportFile(ctx, path)
		if err != nil {
			var dup *importer.DuplicateEventError
			if errors.As(err, &dup) {
				logger.Warn("skipping file", slog.String("file", path), slog.String("reason", dup.Error()))
			} else {
				logger.Error("import failed", slog.String("file", path), slog.String("error", err.Error()))
			}
			failed++
			continue
		}

		logger.Info("file imported",
			slog.String("file", path),
			slog.Int("categories", sum.Categories),
			slog.Int("athletes", sum.Athletes),
			slog.Int("participants", sum.Participants),
			slog.Int("performances", sum.Performances),
			slog.Int("clubs_merged", sum.ClubsMerged),
			slog.Int("warnings", sum.Warnings),
			slog.Duration("duration", sum.Duration),
		)
	}

	if failed > 0 {
		logger.Warn("import completed with failures", slog.Int("failed", failed))
		os.Exit(1)
	}
}
