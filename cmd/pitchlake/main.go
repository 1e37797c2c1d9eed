// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

// Command pitchlake runs the warehouse pipeline: bronze ingestion, silver
// conformance, and the gold build, separately or end to end.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pitchlake/pitchlake/internal/bronze"
	"github.com/pitchlake/pitchlake/internal/config"
	"github.com/pitchlake/pitchlake/internal/gold"
	"github.com/pitchlake/pitchlake/internal/logging"
	"github.com/pitchlake/pitchlake/internal/silver"
	"github.com/pitchlake/pitchlake/internal/store"
)

var configPathFlag string

var rootCmd = &cobra.Command{
	Use:   "pitchlake",
	Short: "Pitchlake - match tracking analytics warehouse",
	Long: `Pitchlake converts raw match, tracking, and dynamic-event files into a
bronze/silver/gold DuckDB warehouse with Parquet exports of the gold views.

Available commands:
  ingest    - Land raw source files into the bronze tables
  conform   - Build the silver dimensions and facts from bronze
  aggregate - Build the gold views and aggregate reports from silver
  run       - Run all three stages in order

Examples:
  pitchlake run                      # Full pipeline with default config
  pitchlake ingest --config my.yaml  # Bronze stage only
  PITCHLAKE_DB_PATH=/tmp/wh.duckdb pitchlake aggregate`,
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Land raw source files into the bronze tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd.Context(), stageIngest)
	},
}

var conformCmd = &cobra.Command{
	Use:   "conform",
	Short: "Build the silver dimensions and facts from bronze",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd.Context(), stageConform)
	},
}

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Build the gold views and aggregate reports from silver",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd.Context(), stageAggregate)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run ingest, conform, and aggregate in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd.Context(), stageIngest, stageConform, stageAggregate)
	},
}

type stage string

const (
	stageIngest    stage = "ingest"
	stageConform   stage = "conform"
	stageAggregate stage = "aggregate"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "",
		"path to config file (default: search pitchlake.yaml, /etc/pitchlake)")
	rootCmd.AddCommand(ingestCmd, conformCmd, aggregateCmd, runCmd)
}

// runStages loads config, opens the warehouse, and runs the named stages in
// order. The first stage failure stops the run; completed stages keep their
// written tables, so a re-run resumes from consistent snapshots.
func runStages(ctx context.Context, stages ...stage) error {
	cfg, err := config.Load(configPathFlag)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Timestamp: true,
		Output:    os.Stderr,
	})

	runID := uuid.NewString()
	log := logging.With().Str("run_id", runID).Logger()
	logging.SetLogger(log)

	st, err := store.Open(&cfg.Database, cfg.Pipeline.StrictSchema)
	if err != nil {
		return fmt.Errorf("open warehouse: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Err(err).Msg("Warehouse close failed")
		}
	}()

	for _, s := range stages {
		logging.Info().Str("stage", string(s)).Msg("Stage started")
		if err := runStage(ctx, s, cfg, st); err != nil {
			logging.Err(err).Str("stage", string(s)).Msg("Stage failed")
			return err
		}
	}
	return nil
}

func runStage(ctx context.Context, s stage, cfg *config.Config, st *store.Store) error {
	switch s {
	case stageIngest:
		return bronze.NewIngestor(st, cfg.Source).Run(ctx)
	case stageConform:
		return silver.NewBuilder(st).Run(ctx)
	case stageAggregate:
		return gold.NewBuilder(st, cfg.Pipeline.ExportDir).Run(ctx)
	default:
		return fmt.Errorf("unknown stage: %s", s)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
