// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

// Package silver conforms bronze landings into dimension and fact tables.
// Match documents feed the dimensions, tracking frames become one row per
// tracked object, and dynamic events gain derived clock, minute, and zone
// columns plus a two-source possession-zone resolution.
package silver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/pitchlake/pitchlake/internal/logging"
	"github.com/pitchlake/pitchlake/internal/pitch"
	"github.com/pitchlake/pitchlake/internal/schema"
	"github.com/pitchlake/pitchlake/internal/store"
	"github.com/pitchlake/pitchlake/internal/table"
)

const ballObjectID = int64(-1)

// Builder runs the silver conformance stage over bronze snapshots.
type Builder struct {
	store *store.Store
}

// NewBuilder creates a Builder over the given store.
func NewBuilder(s *store.Store) *Builder {
	return &Builder{store: s}
}

// stats counts recoverable conditions for the end-of-stage summary.
type stats struct {
	malformedMatches int
	malformedFrames  int
	malformedEvents  int
	skippedPlayers   int
	unkeyedDimRows   int
}

// trackKey addresses one tracked player within one frame of one match.
type trackKey struct {
	match  int64
	frame  int64
	player int64
}

// Run reads the bronze layer and overwrites all eight silver tables.
// Malformed individual records are skipped and counted; an absent bronze
// match table is fatal, the optional bronze tables degrade to empty.
func (b *Builder) Run(ctx context.Context) error {
	matches, err := b.store.Read(ctx, schema.BronzeMatchRaw)
	if err != nil {
		return fmt.Errorf("read bronze matches: %w", err)
	}
	trackingRaw, err := b.store.ReadOrEmpty(ctx, schema.BronzeTrackingRaw)
	if err != nil {
		return fmt.Errorf("read bronze tracking: %w", err)
	}
	eventsRaw, err := b.store.ReadOrEmpty(ctx, schema.BronzeDynamicEvents)
	if err != nil {
		return fmt.Errorf("read bronze dynamic events: %w", err)
	}
	videoInfo, err := b.store.ReadOrEmpty(ctx, schema.BronzeMatchVideoInfo)
	if err != nil {
		return fmt.Errorf("read bronze video info: %w", err)
	}

	var st stats

	dimMatch := newAccumulator(schema.DimMatch)
	dimPlayer := newAccumulator(schema.DimPlayer)
	dimTeam := newAccumulator(schema.DimTeam)
	dimCompetition := newAccumulator(schema.DimCompetition)
	dimTeamKit := newAccumulator(schema.DimTeamKit)
	factPlayerMatch := newAccumulator(schema.FactPlayerMatch)
	factTracking := table.New(schema.MustGet(schema.FactTracking).Columns()...)

	trackLines := groupTrackingLines(trackingRaw)
	video := indexVideoInfo(videoInfo)
	trackZones := make(map[trackKey]string)

	for i := 0; i < matches.Len(); i++ {
		raw, _ := matches.Value(i, "json")
		s := table.AsString(raw)
		if s == nil {
			st.malformedMatches++
			continue
		}

		var doc matchDocument
		if err := json.Unmarshal([]byte(*s), &doc); err != nil || doc.ID == 0 {
			logging.Warn().Err(err).Msg("Malformed match document skipped")
			st.malformedMatches++
			continue
		}

		b.conformMatch(&doc, video[doc.ID], dimMatch, dimPlayer, dimTeam, dimCompetition, dimTeamKit, factPlayerMatch, &st)
		b.conformTracking(&doc, trackLines[doc.ID], factTracking, trackZones, &st)
	}

	factEvents := b.conformEvents(eventsRaw, trackZones, &st)

	writes := []struct {
		name string
		t    *table.Table
	}{
		{schema.DimMatch, dimMatch.build()},
		{schema.DimPlayer, dimPlayer.build()},
		{schema.DimTeam, dimTeam.build()},
		{schema.DimCompetition, dimCompetition.build()},
		{schema.DimTeamKit, dimTeamKit.build()},
		{schema.FactPlayerMatch, factPlayerMatch.build()},
		{schema.FactTracking, factTracking},
		{schema.FactDynamicEvent, factEvents},
	}
	for _, w := range writes {
		if _, err := b.store.Overwrite(ctx, w.name, w.t); err != nil {
			return err
		}
	}

	logging.Info().
		Int("matches", matches.Len()).
		Int("malformed_matches", st.malformedMatches).
		Int("malformed_tracking_lines", st.malformedFrames).
		Int("malformed_events", st.malformedEvents).
		Int("skipped_players", st.skippedPlayers).
		Int("unkeyed_dimension_rows", st.unkeyedDimRows).
		Msg("Silver conformance completed")
	return nil
}

// conformMatch appends one match document's contribution to the dimensions
// and the per-player match fact.
func (b *Builder) conformMatch(doc *matchDocument, video []any,
	dimMatch, dimPlayer, dimTeam, dimCompetition, dimTeamKit, factPlayerMatch *accumulator, st *stats,
) {
	homeFirst, homeSecond := homeSides(doc.HomeTeamSide)

	var ed edition
	if doc.Edition != nil {
		ed = *doc.Edition
	}
	comp := ed.Competition
	if comp == nil {
		comp = &competition{}
	}
	seas := ed.Season
	if seas == nil {
		seas = &season{}
	}

	var youtubeID, firstStart, secondStart any
	if video != nil {
		youtubeID, firstStart, secondStart = video[0], video[1], video[2]
	}

	dimMatch.put(strconv.FormatInt(doc.ID, 10),
		doc.ID,
		opt(doc.HomeTeamScore), opt(doc.AwayTeamScore),
		homeFirst, homeSecond,
		homeSecond, homeFirst, // away ends mirror the home list
		opt(doc.DateTime),
		optID(doc.Stadium),
		optTeamID(doc.HomeTeam), optTeamID(doc.AwayTeam),
		optKitID(doc.HomeTeamKit), optKitID(doc.AwayTeamKit),
		opt(doc.HomeTeamCoach), opt(doc.AwayTeamCoach),
		opt(doc.HomeMinutesTIP), opt(doc.AwayMinutesTIP),
		opt(doc.HomeMinutesOTI), opt(doc.AwayMinutesOTI),
		periodDuration(doc.MatchPeriods, 0), periodDuration(doc.MatchPeriods, 1),
		opt(ed.ID), opt(comp.ID), opt(seas.ID),
		optRound(doc.Round),
		youtubeID, firstStart, secondStart,
	)

	if key, ok := dimKey(ed.ID); ok {
		dimCompetition.put(key,
			opt(ed.ID), opt(comp.ID), opt(comp.Name), opt(comp.Area), opt(comp.Name),
			opt(comp.Gender), opt(comp.AgeGroup),
			opt(seas.ID), opt(seas.StartYear), opt(seas.EndYear), opt(seas.Name),
		)
	} else {
		st.unkeyedDimRows++
	}

	for _, team := range []*teamRef{doc.HomeTeam, doc.AwayTeam} {
		if team == nil {
			continue
		}
		if key, ok := dimKey(team.ID); ok {
			dimTeam.put(key, opt(team.ID), opt(team.Name), opt(team.ShortName), opt(team.Acronym))
		} else {
			st.unkeyedDimRows++
		}
	}

	for _, kit := range []*teamKit{doc.HomeTeamKit, doc.AwayTeamKit} {
		if kit == nil {
			continue
		}
		if key, ok := dimKey(kit.ID); ok {
			dimTeamKit.put(key, opt(kit.ID), opt(kit.JerseyColor), opt(kit.NumberColor))
		} else {
			st.unkeyedDimRows++
		}
	}

	for i := range doc.Players {
		p := &doc.Players[i]
		key, ok := dimKey(p.ID)
		if !ok {
			st.skippedPlayers++
			continue
		}

		dimPlayer.put(key,
			opt(p.ID), opt(p.TeamID),
			opt(p.FirstName), opt(p.LastName), opt(p.ShortName),
			opt(p.Birthday), opt(p.Gender),
		)

		role := p.PlayerRole
		if role == nil {
			role = &playerRole{}
		}
		var minutesPlayed any
		if p.PlayingTime != nil && p.PlayingTime.Total != nil {
			minutesPlayed = opt(p.PlayingTime.Total.MinutesPlayed)
		}

		factPlayerMatch.put(strconv.FormatInt(doc.ID, 10)+":"+key,
			doc.ID, opt(p.ID), opt(p.TeamID),
			opt(ed.ID), opt(comp.ID), opt(seas.ID),
			opt(p.Number), minutesPlayed,
			opt(p.StartTime), opt(p.EndTime),
			opt(role.ID), opt(role.PositionGroup), opt(role.Acronym),
			opt(p.YellowCard), opt(p.RedCard), opt(p.Goal), opt(p.OwnGoal),
			opt(p.Injured),
		)
	}
}

// conformTracking turns one match's raw JSONL frames into fact rows: the
// ball as object -1, then one row per tracked player with home/away group
// and possession flag. Player zones are also indexed by (match, frame,
// player) for the dynamic-event possession fallback.
func (b *Builder) conformTracking(doc *matchDocument, lines []string,
	out *table.Table, trackZones map[trackKey]string, st *stats,
) {
	playerTeam := make(map[int64]int64, len(doc.Players))
	for i := range doc.Players {
		p := &doc.Players[i]
		if p.ID != nil && p.TeamID != nil {
			playerTeam[*p.ID] = *p.TeamID
		}
	}

	for _, line := range lines {
		var frame trackingFrame
		if err := json.Unmarshal([]byte(line), &frame); err != nil {
			st.malformedFrames++
			continue
		}

		ball := frame.BallData
		if ball == nil {
			ball = &ballData{}
		}
		out.Append(doc.ID, opt(frame.Frame), opt(frame.Timestamp), opt(frame.Period),
			ballObjectID, opt(ball.X), opt(ball.Y), opt(ball.Z),
			"ball", false, opt(ball.IsDetected), zoneOf(ball.X, ball.Y))

		var possessionHolder *int64
		if frame.Possession != nil {
			possessionHolder = frame.Possession.PlayerID
		}

		for i := range frame.PlayerData {
			p := &frame.PlayerData[i]
			if p.PlayerID == nil {
				st.skippedPlayers++
				continue
			}

			var group any
			switch teamID, ok := playerTeam[*p.PlayerID]; {
			case !ok:
			case doc.HomeTeam != nil && doc.HomeTeam.ID != nil && teamID == *doc.HomeTeam.ID:
				group = "home team"
			case doc.AwayTeam != nil && doc.AwayTeam.ID != nil && teamID == *doc.AwayTeam.ID:
				group = "away team"
			}

			hasPossession := possessionHolder != nil && *p.PlayerID == *possessionHolder
			zone := zoneOf(p.X, p.Y)

			out.Append(doc.ID, opt(frame.Frame), opt(frame.Timestamp), opt(frame.Period),
				*p.PlayerID, opt(p.X), opt(p.Y), nil,
				group, hasPossession, opt(p.IsDetected), zone)

			if frame.Frame != nil {
				if z, ok := zone.(string); ok {
					trackZones[trackKey{doc.ID, *frame.Frame, *p.PlayerID}] = z
				}
			}
		}
	}
}

// conformEvents types the raw dynamic-events rows and adds the derived
// clock seconds, match minute, zone codes, and resolved possession zones.
// An event with an unparseable clock or without a match id is skipped.
func (b *Builder) conformEvents(raw *table.Table, trackZones map[trackKey]string, st *stats) *table.Table {
	cols := schema.MustGet(schema.FactDynamicEvent).Columns()
	out := table.New(cols...)

	for i := 0; i < raw.Len(); i++ {
		matchID := valueInt64(raw, i, "match_id")
		if matchID == nil {
			st.malformedEvents++
			continue
		}

		secondsStart, okStart := eventSeconds(raw, i, "time_start", true)
		secondsEnd, okEnd := eventSeconds(raw, i, "time_end", false)
		if !okStart || !okEnd {
			st.malformedEvents++
			continue
		}

		row := make([]any, 0, len(cols))
		for _, col := range cols {
			switch col {
			case "seconds_start":
				row = append(row, optAny(secondsStart))
			case "seconds_end":
				row = append(row, optAny(secondsEnd))
			case "minute_start":
				row = append(row, minuteOf(secondsStart))
			case "minute_end":
				row = append(row, minuteOf(secondsEnd))
			case "zone_start":
				row = append(row, zoneOf(valueFloat(raw, i, "x_start"), valueFloat(raw, i, "y_start")))
			case "zone_end":
				row = append(row, zoneOf(valueFloat(raw, i, "x_end"), valueFloat(raw, i, "y_end")))
			case "player_in_possession_zone_start":
				row = append(row, b.possessionZone(raw, i, "start", trackZones, *matchID))
			case "player_in_possession_zone_end":
				row = append(row, b.possessionZone(raw, i, "end", trackZones, *matchID))
			default:
				v, _ := raw.Value(i, col)
				row = append(row, v)
			}
		}
		out.Append(row...)
	}
	return out
}

// possessionZone resolves the possession holder's zone for one end of an
// event. The event's own holder coordinates win; when either is absent the
// tracking frame the event references supplies the zone, keyed by (match,
// frame, holder).
func (b *Builder) possessionZone(raw *table.Table, i int, side string, trackZones map[trackKey]string, matchID int64) any {
	x := valueFloat(raw, i, "player_in_possession_x_"+side)
	y := valueFloat(raw, i, "player_in_possession_y_"+side)
	if x != nil && y != nil {
		return pitch.Zone(x, y)
	}

	frame := valueInt64(raw, i, "frame_"+side)
	holder := valueInt64(raw, i, "player_in_possession_id")
	if frame == nil || holder == nil {
		return nil
	}
	if z, ok := trackZones[trackKey{matchID, *frame, *holder}]; ok {
		return z
	}
	return nil
}

// groupTrackingLines splits the bronze tracking snapshot into per-match
// line slices.
func groupTrackingLines(t *table.Table) map[int64][]string {
	lines := make(map[int64][]string)
	for i := 0; i < t.Len(); i++ {
		id := valueInt64(t, i, "match_id")
		line := valueString(t, i, "json")
		if id == nil || line == nil || strings.TrimSpace(*line) == "" {
			continue
		}
		lines[*id] = append(lines[*id], *line)
	}
	return lines
}

// indexVideoInfo maps match id to (youtube_video_id, first_period_start,
// second_period_start) for the dim_match join.
func indexVideoInfo(t *table.Table) map[int64][]any {
	idx := make(map[int64][]any, t.Len())
	for i := 0; i < t.Len(); i++ {
		id := valueInt64(t, i, "match_id")
		if id == nil {
			continue
		}
		yt, _ := t.Value(i, "youtube_video_id")
		first, _ := t.Value(i, "first_period_start")
		second, _ := t.Value(i, "second_period_start")
		idx[*id] = []any{yt, first, second}
	}
	return idx
}

// eventSeconds parses one clock cell. A nil cell stays nil; a present but
// malformed clock reports failure so the caller can skip the record.
func eventSeconds(t *table.Table, i int, col string, isStart bool) (*int, bool) {
	v, _ := t.Value(i, col)
	s := table.AsString(v)
	if s == nil {
		return nil, true
	}
	sec, err := pitch.Seconds(*s, isStart)
	if errors.Is(err, pitch.ErrMalformedTime) {
		return nil, false
	}
	if err != nil {
		return nil, false
	}
	return &sec, true
}

func minuteOf(seconds *int) any {
	if seconds == nil {
		return nil
	}
	return pitch.Minute(*seconds)
}

// zoneOf composes the zone code, null when either coordinate is absent.
// Out-of-range coordinates still classify through the sentinel labels.
func zoneOf(x, y *float64) any {
	if x == nil || y == nil {
		return nil
	}
	return pitch.Zone(x, y)
}

// homeSides extracts the end-of-pitch prefix ("left"/"right") the home team
// defends in each half.
func homeSides(sides []string) (first, second any) {
	if len(sides) > 0 {
		first = sidePrefix(sides[0])
	}
	if len(sides) > 1 {
		second = sidePrefix(sides[1])
	}
	return first, second
}

func sidePrefix(s string) string {
	if i := strings.IndexByte(s, '_'); i >= 0 {
		return s[:i]
	}
	return s
}

func valueInt64(t *table.Table, i int, col string) *int64 {
	v, _ := t.Value(i, col)
	return table.AsInt64(v)
}

func valueFloat(t *table.Table, i int, col string) *float64 {
	v, _ := t.Value(i, col)
	return table.AsFloat64(v)
}

func valueString(t *table.Table, i int, col string) *string {
	v, _ := t.Value(i, col)
	return table.AsString(v)
}

// opt lifts a possibly-nil pointer into a nullable cell value.
func opt[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func optAny(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func optID(r *idRef) any {
	if r == nil {
		return nil
	}
	return opt(r.ID)
}

func optTeamID(r *teamRef) any {
	if r == nil {
		return nil
	}
	return opt(r.ID)
}

func optKitID(k *teamKit) any {
	if k == nil {
		return nil
	}
	return opt(k.ID)
}

func optRound(r *roundInfo) any {
	if r == nil {
		return nil
	}
	return opt(r.RoundNumber)
}

func periodDuration(periods []period, i int) any {
	if i < len(periods) {
		return opt(periods[i].DurationMinutes)
	}
	return nil
}
