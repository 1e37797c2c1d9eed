// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

// Package gold builds the denormalized analytical layer: wide tracking and
// event views joined against the silver dimensions, and per-player and
// per-team aggregate reports, with Parquet exports of all four.
package gold

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/pitchlake/pitchlake/internal/logging"
	"github.com/pitchlake/pitchlake/internal/schema"
	"github.com/pitchlake/pitchlake/internal/store"
	"github.com/pitchlake/pitchlake/internal/table"
)

// exportNames maps gold tables to their Parquet file names.
var exportNames = map[string]string{
	schema.GoldTracking:         "tracking.parquet",
	schema.GoldDynamicEvents:    "dynamic_events.parquet",
	schema.GoldPlayerAggregates: "agg_player.parquet",
	schema.GoldTeamAggregates:   "agg_team.parquet",
}

// Builder runs the gold stage over silver snapshots.
type Builder struct {
	store     *store.Store
	exportDir string
	now       time.Time
}

// NewBuilder creates a Builder. exportDir may be empty to skip the Parquet
// exports.
func NewBuilder(s *store.Store, exportDir string) *Builder {
	return &Builder{store: s, exportDir: exportDir, now: time.Now().UTC()}
}

// Run reads the silver layer, overwrites the four gold tables, and exports
// each written table to Parquet. Absent silver tables degrade to empty
// inputs; the stage still runs so a partial warehouse stays queryable.
func (b *Builder) Run(ctx context.Context) error {
	read := func(name string) (*table.Table, error) {
		t, err := b.store.ReadOrEmpty(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return t, nil
	}

	dimMatch, err := read(schema.DimMatch)
	if err != nil {
		return err
	}
	dimPlayer, err := read(schema.DimPlayer)
	if err != nil {
		return err
	}
	dimTeam, err := read(schema.DimTeam)
	if err != nil {
		return err
	}
	dimCompetition, err := read(schema.DimCompetition)
	if err != nil {
		return err
	}
	dimTeamKit, err := read(schema.DimTeamKit)
	if err != nil {
		return err
	}
	factPlayerMatch, err := read(schema.FactPlayerMatch)
	if err != nil {
		return err
	}
	factTracking, err := read(schema.FactTracking)
	if err != nil {
		return err
	}
	factEvents, err := read(schema.FactDynamicEvent)
	if err != nil {
		return err
	}

	l := buildLookups(dimMatch, dimPlayer, dimTeam, dimCompetition, dimTeamKit, factPlayerMatch)

	trackingView := buildTrackingView(factTracking, l)
	eventsView := buildEventsView(factEvents, l)
	playerAgg := buildPlayerAggregates(eventsView, factPlayerMatch, l, b.now)
	teamAgg := buildTeamAggregates(eventsView, dimMatch, l)

	outputs := []struct {
		name string
		t    *table.Table
	}{
		{schema.GoldTracking, trackingView},
		{schema.GoldDynamicEvents, eventsView},
		{schema.GoldPlayerAggregates, playerAgg},
		{schema.GoldTeamAggregates, teamAgg},
	}

	for _, o := range outputs {
		rows, err := b.store.Overwrite(ctx, o.name, o.t)
		if err != nil {
			return err
		}
		if rows > 0 && b.exportDir != "" {
			path := filepath.Join(b.exportDir, exportNames[o.name])
			if err := b.store.ExportParquet(ctx, o.name, path); err != nil {
				return err
			}
		}
	}

	logging.Info().
		Int("tracking_rows", trackingView.Len()).
		Int("event_rows", eventsView.Len()).
		Int("player_aggregates", playerAgg.Len()).
		Int("team_aggregates", teamAgg.Len()).
		Msg("Gold build completed")
	return nil
}
