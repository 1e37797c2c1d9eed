// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

// Package store is the warehouse storage collaborator: a DuckDB file holding
// every bronze, silver, and gold table. Reads return full snapshots; writes
// replace a table's snapshot transactionally after enforcing the registered
// schema, so a failed write never leaves a half-replaced table behind.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/pitchlake/pitchlake/internal/config"
	"github.com/pitchlake/pitchlake/internal/logging"
)

// ErrNoTable is returned by Read when the requested table has never been
// written. Stages treat it as "zero rows contributed", not a failure.
var ErrNoTable = errors.New("table does not exist")

// Store wraps the DuckDB connection for the warehouse file.
type Store struct {
	db     *sql.DB
	cfg    *config.DatabaseConfig
	strict bool
}

// Open opens (creating if needed) the warehouse database. strict promotes
// schema shape diagnostics on write to errors.
func Open(cfg *config.DatabaseConfig, strict bool) (*Store, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Ensure the parent directory exists for the database file.
	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
	dbDir := filepath.Dir(cfg.Path)
	if dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
		}
	}

	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "2GB"
	}
	preserveOrder := "true"
	if !cfg.PreserveInsertionOrder {
		preserveOrder = "false"
	}

	// Disable auto-install/auto-load to prevent hangs in restricted network
	// environments.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&preserve_insertion_order=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, maxMemory, preserveOrder)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(runtime.NumCPU())
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: conn, cfg: cfg, strict: strict}, nil
}

// Close checkpoints and closes the database connection. The checkpoint
// flushes the WAL so the file on disk is self-contained after a run.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := s.db.ExecContext(ctx, "CHECKPOINT"); err != nil {
		logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
	}
	return s.db.Close()
}

// Ping checks if the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return s.db.PingContext(ctx)
}

// Conn returns the underlying SQL database connection.
func (s *Store) Conn() *sql.DB {
	return s.db
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use in error paths where Close() errors are not actionable.
func closeQuietly(c interface{ Close() error }) {
	if c != nil {
		_ = c.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
