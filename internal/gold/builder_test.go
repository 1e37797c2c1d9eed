// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package gold

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pitchlake/pitchlake/internal/config"
	"github.com/pitchlake/pitchlake/internal/schema"
	"github.com/pitchlake/pitchlake/internal/store"
	"github.com/pitchlake/pitchlake/internal/table"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Path:                   filepath.Join(t.TempDir(), "gold.duckdb"),
		Threads:                1,
		PreserveInsertionOrder: true,
	}
	s, err := store.Open(cfg, false)
	if err != nil {
		t.Fatalf("store.Open() error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// seedSilver writes a one-match silver layer: the fixture dimensions plus one
// tracking frame and one pressure event.
func seedSilver(t *testing.T, s *store.Store) {
	t.Helper()
	ctx := context.Background()

	dimMatch := newRegistryTable(schema.DimMatch)
	appendRow(dimMatch, map[string]any{
		"match_id":                       int64(100),
		"date_time":                      time.Date(2024, 3, 9, 15, 30, 0, 0, time.UTC),
		"home_team_id":                   int32(1),
		"away_team_id":                   int32(2),
		"home_team_side_first":           "left",
		"home_team_side_second":          "right",
		"away_team_side_first":           "right",
		"away_team_side_second":          "left",
		"team_homekit_id":                int32(11),
		"team_awaykit_id":                int32(12),
		"first_period_duration_minutes":  float32(47.2),
		"second_period_duration_minutes": float32(49.1),
		"competition_edition_id":         int32(300),
		"round_number":                   int32(25),
		"youtube_video_id":               "ytid123",
		"first_period_start":             int32(37),
		"second_period_start":            int32(3680),
	})

	dimPlayer := newRegistryTable(schema.DimPlayer)
	appendRow(dimPlayer, map[string]any{
		"player_id": int32(501), "team_id": int32(1), "short_name": "A. Dupont",
		"birthday": time.Date(1998, 4, 12, 0, 0, 0, 0, time.UTC),
	})

	dimTeam := newRegistryTable(schema.DimTeam)
	appendRow(dimTeam, map[string]any{"team_id": int32(1), "short_name": "Lyon"})
	appendRow(dimTeam, map[string]any{"team_id": int32(2), "short_name": "Reims"})

	dimCompetition := newRegistryTable(schema.DimCompetition)
	appendRow(dimCompetition, map[string]any{
		"competition_edition_id": int32(300), "competition_id": int32(30),
		"competition_name": "Ligue 1", "season_id": int32(40), "season_name": "2023/2024",
	})

	dimTeamKit := newRegistryTable(schema.DimTeamKit)
	appendRow(dimTeamKit, map[string]any{
		"team_kit_id": int32(11), "jersey_color": "#ffffff", "number_color": "#000000",
	})
	appendRow(dimTeamKit, map[string]any{
		"team_kit_id": int32(12), "jersey_color": "#dd0000", "number_color": "#ffffff",
	})

	factPlayerMatch := newRegistryTable(schema.FactPlayerMatch)
	appendRow(factPlayerMatch, map[string]any{
		"match_id": int64(100), "player_id": int32(501), "team_id": int32(1),
		"competition_edition_id": int32(300), "competition_id": int32(30), "season_id": int32(40),
		"number": int16(10), "minutes_played": float32(90), "start_time": "00:00:00",
		"position_group": "Midfield", "position_acronym": "CM",
	})

	factTracking := newRegistryTable(schema.FactTracking)
	appendRow(factTracking, map[string]any{
		"match_id": int64(100), "frame": int32(1200), "timestamp": "0:48.00",
		"period": int32(1), "object_id": int32(501), "group": "home team",
		"x": float32(3.0), "y": float32(4.0), "has_possession": true,
	})

	factEvents := newRegistryTable(schema.FactDynamicEvent)
	appendRow(factEvents, map[string]any{
		"match_id": int64(100), "event_id": "ev1", "event_type": "pressure",
		"period": int32(1), "player_id": int32(501), "team_id": int32(1),
		"seconds_start": int32(89), "seconds_end": int32(94),
	})

	writes := []struct {
		name string
		t    *table.Table
	}{
		{schema.DimMatch, dimMatch},
		{schema.DimPlayer, dimPlayer},
		{schema.DimTeam, dimTeam},
		{schema.DimCompetition, dimCompetition},
		{schema.DimTeamKit, dimTeamKit},
		{schema.FactPlayerMatch, factPlayerMatch},
		{schema.FactTracking, factTracking},
		{schema.FactDynamicEvent, factEvents},
	}
	for _, w := range writes {
		if _, err := s.Overwrite(ctx, w.name, w.t); err != nil {
			t.Fatalf("seed %s: %v", w.name, err)
		}
	}
}

func TestRunBuildsAndExportsGoldLayer(t *testing.T) {
	s := newTestStore(t)
	seedSilver(t, s)
	ctx := context.Background()
	exportDir := filepath.Join(t.TempDir(), "export")

	if err := NewBuilder(s, exportDir).Run(ctx); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	wantRows := map[string]int{
		schema.GoldTracking:         1,
		schema.GoldDynamicEvents:    1,
		schema.GoldPlayerAggregates: 1,
		schema.GoldTeamAggregates:   2,
	}
	for name, want := range wantRows {
		out, err := s.Read(ctx, name)
		if err != nil {
			t.Errorf("Read(%s) error: %v", name, err)
			continue
		}
		if out.Len() != want {
			t.Errorf("%s has %d rows, want %d", name, out.Len(), want)
		}
	}

	ev, err := s.Read(ctx, schema.GoldDynamicEvents)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := ev.Value(0, "match_name"); v != "Lyon - Reims" {
		t.Errorf("match_name = %v, want Lyon - Reims", v)
	}
	if v, _ := ev.Value(0, "event_start_seconds"); v != int32(126) {
		t.Errorf("event_start_seconds = %v, want 126", v)
	}

	for _, file := range exportNames {
		info, err := os.Stat(filepath.Join(exportDir, file))
		if err != nil {
			t.Errorf("export %s: %v", file, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("export %s is empty", file)
		}
	}
}

func TestRunWithEmptySilverLayer(t *testing.T) {
	s := newTestStore(t)
	exportDir := filepath.Join(t.TempDir(), "export")

	if err := NewBuilder(s, exportDir).Run(context.Background()); err != nil {
		t.Fatalf("Run() over empty silver layer error: %v", err)
	}

	// No rows, so no gold tables and no Parquet files.
	if _, err := s.Read(context.Background(), schema.GoldTracking); err == nil {
		t.Error("gold tracking table materialized from an empty input")
	}
	if _, err := os.Stat(exportDir); !os.IsNotExist(err) {
		t.Error("export directory created with nothing to export")
	}
}
