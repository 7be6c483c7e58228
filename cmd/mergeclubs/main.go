// Command mergeclubs collapses near-duplicate club records accumulated
// across imports. It is the offline counterpart of the importer's auto-merge
// pass and uses the same similarity scoring.
//
// Flags:
//
//	--config     path to the YAML config file
//	--threshold  minimum name similarity for a merge (overrides config)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/figskate/results-backend/internal/adapter/postgres"
	"github.com/figskate/results-backend/internal/adapter/postgres/club"
	"github.com/figskate/results-backend/internal/app"
	"github.com/figskate/results-backend/internal/config"
	"github.com/figskate/results-backend/internal/registry"
)

func main() {
	configFlag := flag.String("config", "", "path to the YAML config file")
	thresholdFlag := flag.Float64("threshold", 0, "minimum name similarity for a merge (overrides config)")
	flag.Parse()

	if *configFlag != "" {
		os.Setenv("CONFIG_PATH", *configFlag)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	threshold := cfg.Import.ClubSimilarityThreshold
	if *thresholdFlag > 0 {
		threshold = *thresholdFlag
	}
	if threshold <= 0 || threshold > 1 {
		logger.Error("threshold must be in (0, 1]", slog.Float64("threshold", threshold))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	reg := registry.NewClubRegistry(logger, club.New(pool), threshold)

	var merged int
	err = txm.RunInTx(ctx, func(ctx context.Context) error {
		var mergeErr error
		merged, mergeErr = reg.MergeDuplicates(ctx)
		return mergeErr
	})
	if err != nil {
		logger.Error("merge failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("merge completed",
		slog.Float64("threshold", threshold),
		slog.Int("clubs_merged", merged),
	)
}
