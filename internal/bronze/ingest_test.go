// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package bronze

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pitchlake/pitchlake/internal/config"
	"github.com/pitchlake/pitchlake/internal/schema"
	"github.com/pitchlake/pitchlake/internal/store"
	"github.com/pitchlake/pitchlake/internal/table"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Path:                   filepath.Join(t.TempDir(), "bronze.duckdb"),
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

func TestRunLandsAllTables(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "100_match.json", `{"id": 100, "home_team": {"id": 1}}`)
	writeFile(t, dir, "100_tracking_extrapolated.jsonl",
		"{\"frame\": 1}\n\n{\"frame\": 2}\n")
	writeFile(t, dir, "100_dynamic_events.csv",
		"match_id,event_id,event_type,time_start\n100,ev1,pressure,01:30\n100,ev2,off_ball_run,02:00\n")
	writeFile(t, dir, "match_video_info.csv",
		"match_id,youtube_video_id,first_period_start,second_period_start\n100,ytid123,37,3680\n")

	s := newTestStore(t)
	in := NewIngestor(s, config.SourceConfig{Dir: dir})
	if err := in.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	ctx := context.Background()

	matches, err := s.Read(ctx, schema.BronzeMatchRaw)
	if err != nil {
		t.Fatalf("read matches: %v", err)
	}
	if matches.Len() != 1 {
		t.Fatalf("bronze_match_raw has %d rows, want 1", matches.Len())
	}
	if v, _ := matches.Value(0, "match_id"); v != int64(100) {
		t.Errorf("match_id = %v, want 100", v)
	}
	if v, _ := matches.Value(0, "json"); !strings.Contains(v.(string), `"home_team"`) {
		t.Errorf("match json = %v, want verbatim document", v)
	}

	tracking, err := s.Read(ctx, schema.BronzeTrackingRaw)
	if err != nil {
		t.Fatalf("read tracking: %v", err)
	}
	if tracking.Len() != 2 {
		t.Errorf("bronze_tracking_raw has %d rows, want 2 (blank line skipped)", tracking.Len())
	}

	events, err := s.Read(ctx, schema.BronzeDynamicEvents)
	if err != nil {
		t.Fatalf("read events: %v", err)
	}
	if events.Len() != 2 {
		t.Fatalf("bronze_dynamic_events has %d rows, want 2", events.Len())
	}
	if v, _ := events.Value(0, "event_type"); v != "pressure" {
		t.Errorf("event_type = %v, want pressure", v)
	}
	// Columns the CSV does not carry land as nulls.
	if v, _ := events.Value(0, "x_start"); v != nil {
		t.Errorf("x_start = %v, want nil", v)
	}

	video, err := s.Read(ctx, schema.BronzeMatchVideoInfo)
	if err != nil {
		t.Fatalf("read video info: %v", err)
	}
	if video.Len() != 1 {
		t.Fatalf("bronze_match_video_info has %d rows, want 1", video.Len())
	}
	if v, _ := video.Value(0, "first_period_start"); v != int32(37) {
		t.Errorf("first_period_start = %v (%T), want int32 37", v, v)
	}
}

func TestRunSkipsBadMatchFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "100_match.json", `{"id": 100}`)
	writeFile(t, dir, "101_match.json", `not json at all`)
	writeFile(t, dir, "102_match.json", `{"status": "no id field"}`)

	s := newTestStore(t)
	in := NewIngestor(s, config.SourceConfig{Dir: dir})
	if err := in.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	matches, err := s.Read(context.Background(), schema.BronzeMatchRaw)
	if err != nil {
		t.Fatalf("read matches: %v", err)
	}
	if matches.Len() != 1 {
		t.Errorf("bronze_match_raw has %d rows, want 1 (two files skipped)", matches.Len())
	}
}

func TestRunWithoutOptionalFiles(t *testing.T) {
	dir := t.TempDir()
	// Match only: no tracking, no events, no video info.
	writeFile(t, dir, "100_match.json", `{"id": 100}`)

	s := newTestStore(t)
	in := NewIngestor(s, config.SourceConfig{Dir: dir})
	if err := in.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if _, err := s.Read(context.Background(), schema.BronzeMatchRaw); err != nil {
		t.Errorf("read matches: %v", err)
	}
	// Empty tables are skipped, not written.
	if _, err := s.Read(context.Background(), schema.BronzeTrackingRaw); err == nil {
		t.Error("bronze_tracking_raw exists, want skipped empty table")
	}
}

func TestVideoInfoCustomPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "100_match.json", `{"id": 100}`)
	writeFile(t, dir, "offsets.csv",
		"match_id,youtube_video_id,first_period_start,second_period_start\n100,abc,1,2\n")

	s := newTestStore(t)
	in := NewIngestor(s, config.SourceConfig{Dir: dir, VideoInfoFile: "offsets.csv"})
	if err := in.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	video, err := s.Read(context.Background(), schema.BronzeMatchVideoInfo)
	if err != nil {
		t.Fatalf("read video info: %v", err)
	}
	if v, _ := video.Value(0, "youtube_video_id"); v != "abc" {
		t.Errorf("youtube_video_id = %v, want abc", v)
	}
}

func TestAppendCSV(t *testing.T) {
	out := table.New("match_id", "event_type", "x_start")

	// Header order differs from the table's; unknown column is dropped,
	// missing column stays null, empty cells are null.
	csv := "event_type,stray,match_id\npressure,zzz,100\noff_ball_run,,\n"
	if err := appendCSV(strings.NewReader(csv), out); err != nil {
		t.Fatalf("appendCSV() error: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("appendCSV() landed %d rows, want 2", out.Len())
	}
	if v, _ := out.Value(0, "match_id"); v != "100" {
		t.Errorf("match_id = %v, want \"100\"", v)
	}
	if v, _ := out.Value(0, "event_type"); v != "pressure" {
		t.Errorf("event_type = %v, want pressure", v)
	}
	if v, _ := out.Value(0, "x_start"); v != nil {
		t.Errorf("x_start = %v, want nil for a column the file lacks", v)
	}
	if v, _ := out.Value(1, "match_id"); v != nil {
		t.Errorf("empty cell = %v, want nil", v)
	}
}

func TestAppendCSVEmptyInput(t *testing.T) {
	out := table.New("match_id")
	if err := appendCSV(strings.NewReader(""), out); err != nil {
		t.Fatalf("appendCSV(empty) error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("appendCSV(empty) landed %d rows, want 0", out.Len())
	}
}
