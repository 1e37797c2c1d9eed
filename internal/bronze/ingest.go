// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

// Package bronze lands raw source records. Match and tracking payloads are
// kept verbatim as JSON text keyed by match id; the dynamic-events and video
// info CSVs are landed column-for-column. Typing is deferred to silver.
package bronze

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/pitchlake/pitchlake/internal/config"
	"github.com/pitchlake/pitchlake/internal/fetch"
	"github.com/pitchlake/pitchlake/internal/logging"
	"github.com/pitchlake/pitchlake/internal/schema"
	"github.com/pitchlake/pitchlake/internal/store"
	"github.com/pitchlake/pitchlake/internal/table"
)

const (
	matchSuffix       = "_match.json"
	trackingSuffix    = "_tracking_extrapolated.jsonl"
	eventsSuffix      = "_dynamic_events.csv"
	defaultVideoInfo  = "match_video_info.csv"
	trackingScanLimit = 16 * 1024 * 1024 // single tracking frame upper bound
)

// Ingestor lands raw files from the source directory into bronze tables.
type Ingestor struct {
	store *store.Store
	src   config.SourceConfig
}

// NewIngestor creates an Ingestor over the given store and source layout.
func NewIngestor(s *store.Store, src config.SourceConfig) *Ingestor {
	return &Ingestor{store: s, src: src}
}

// Run executes the bronze stage: mirror the remote tree when one is
// configured, then land every local match into the four bronze tables. A
// match file that cannot be read or parsed is logged and skipped.
func (in *Ingestor) Run(ctx context.Context) error {
	if in.src.Remote != "" {
		f, err := fetch.New(in.src.Remote, in.src.Dir)
		if err != nil {
			return fmt.Errorf("configure fetch: %w", err)
		}
		if _, err := f.Mirror(ctx); err != nil {
			return fmt.Errorf("mirror source files: %w", err)
		}
	}

	matchFiles, err := filepath.Glob(filepath.Join(in.src.Dir, "*"+matchSuffix))
	if err != nil {
		return fmt.Errorf("scan source directory: %w", err)
	}
	if len(matchFiles) == 0 {
		logging.Warn().Str("dir", in.src.Dir).Msg("No match files found in source directory")
	}

	matches := table.New("match_id", "json")
	tracking := table.New("match_id", "json")
	events := table.New(schema.MustGet(schema.BronzeDynamicEvents).Columns()...)

	skipped := 0
	for _, mf := range matchFiles {
		if err := in.landMatch(mf, matches, tracking, events); err != nil {
			logging.Warn().Err(err).Str("file", filepath.Base(mf)).Msg("Match skipped")
			skipped++
		}
	}

	videoInfo, err := in.loadVideoInfo()
	if err != nil {
		return err
	}

	if _, err := in.store.Overwrite(ctx, schema.BronzeMatchRaw, matches); err != nil {
		return err
	}
	if _, err := in.store.Overwrite(ctx, schema.BronzeTrackingRaw, tracking); err != nil {
		return err
	}
	if _, err := in.store.Overwrite(ctx, schema.BronzeDynamicEvents, events); err != nil {
		return err
	}
	if _, err := in.store.Overwrite(ctx, schema.BronzeMatchVideoInfo, videoInfo); err != nil {
		return err
	}

	logging.Info().
		Int("matches", matches.Len()).
		Int("tracking_frames", tracking.Len()).
		Int("dynamic_events", events.Len()).
		Int("skipped_matches", skipped).
		Msg("Bronze ingestion completed")
	return nil
}

// landMatch appends one match's records: the match document itself, its
// tracking frames (one row per JSONL line), and its dynamic events.
func (in *Ingestor) landMatch(matchFile string, matches, tracking, events *table.Table) error {
	raw, err := os.ReadFile(matchFile)
	if err != nil {
		return err
	}

	var doc struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse match document: %w", err)
	}
	if doc.ID == 0 {
		return errors.New("match document has no id")
	}

	matches.Append(doc.ID, string(raw))

	base := strings.TrimSuffix(matchFile, matchSuffix)
	if err := in.landTracking(base+trackingSuffix, doc.ID, tracking); err != nil {
		return err
	}
	if err := in.landEvents(base+eventsSuffix, events); err != nil {
		return err
	}
	return nil
}

// landTracking appends one bronze row per non-empty JSONL line. A missing
// tracking file is normal: not every published match ships frames.
func (in *Ingestor) landTracking(path string, matchID int64, tracking *table.Table) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		logging.Debug().Str("file", filepath.Base(path)).Msg("No tracking file for match")
		return nil
	}
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), trackingScanLimit)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		tracking.Append(matchID, line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read tracking lines: %w", err)
	}
	return nil
}

// landEvents appends the dynamic-events CSV rows, mapped by header so the
// file's column order does not have to match the registered one.
func (in *Ingestor) landEvents(path string, events *table.Table) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		logging.Debug().Str("file", filepath.Base(path)).Msg("No dynamic events file for match")
		return nil
	}
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return appendCSV(f, events)
}

// loadVideoInfo reads the match video offset CSV. The file is shared across
// matches; when absent the table is left empty and gold falls back to
// relative seconds.
func (in *Ingestor) loadVideoInfo() (*table.Table, error) {
	name := in.src.VideoInfoFile
	if name == "" {
		name = defaultVideoInfo
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(in.src.Dir, name)
	}

	out := table.New(schema.MustGet(schema.BronzeMatchVideoInfo).Columns()...)

	f, err := os.Open(name)
	if errors.Is(err, os.ErrNotExist) {
		logging.Warn().Str("file", name).Msg("Video info file absent")
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if err := appendCSV(f, out); err != nil {
		return nil, fmt.Errorf("read video info: %w", err)
	}
	return out, nil
}

// appendCSV reads a header-mapped CSV into t. Columns t does not carry are
// ignored; columns the file does not carry come through as nulls. Empty
// cells are nulls.
func appendCSV(r io.Reader, t *table.Table) error {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read CSV header: %w", err)
	}

	colFor := make([]int, len(header))
	for i, h := range header {
		colFor[i] = t.ColumnIndex(strings.TrimSpace(h))
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read CSV record: %w", err)
		}

		row := make([]any, len(t.Columns()))
		for i, cell := range rec {
			if i >= len(colFor) || colFor[i] < 0 || cell == "" {
				continue
			}
			row[colFor[i]] = cell
		}
		t.Append(row...)
	}
}
