// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package gold

import (
	"fmt"

	"github.com/pitchlake/pitchlake/internal/pitch"
	"github.com/pitchlake/pitchlake/internal/schema"
	"github.com/pitchlake/pitchlake/internal/table"
)

// secondHalfOffset is subtracted from second-half clock seconds before the
// video offset is applied: the match clock restarts relative to 45:00.
const secondHalfOffset = 45 * 60

var periodNames = map[int64]string{
	1: "First Half",
	2: "Second Half",
	3: "First Extra Time",
	4: "Second Extra Time",
}

func periodName(period *int64) string {
	if period != nil {
		if name, ok := periodNames[*period]; ok {
			return name
		}
	}
	return "Penalty Shootout"
}

// buildTrackingView denormalizes fact_tracking against the dimensions:
// per-object player and team identity, kit colors, and competition naming.
// Frames without a timestamp are dropped.
func buildTrackingView(tracking *table.Table, l *lookups) *table.Table {
	cols := schema.MustGet(schema.GoldTracking).Columns()
	out := table.New(cols...)

	for i := 0; i < tracking.Len(); i++ {
		if ts := cell(tracking, i, "timestamp"); ts == nil {
			continue
		}

		matchID := cellInt64(tracking, i, "match_id")
		if matchID == nil {
			continue
		}
		m := l.match[*matchID]

		row := map[string]any{
			"match_id":       *matchID,
			"date_time":      m.dateTime,
			"frame":          cell(tracking, i, "frame"),
			"timestamp":      cell(tracking, i, "timestamp"),
			"round_number":   m.roundNumber,
			"period":         cell(tracking, i, "period"),
			"object_id":      cell(tracking, i, "object_id"),
			"group":          cell(tracking, i, "group"),
			"x":              cell(tracking, i, "x"),
			"y":              cell(tracking, i, "y"),
			"z":              cell(tracking, i, "z"),
			"has_possession": cell(tracking, i, "has_possession"),
		}

		if m.editionID != nil {
			comp := l.competition[*m.editionID]
			row["competition_name"] = comp.name
			row["season_name"] = comp.seasonName
		}

		objectID := cellInt64(tracking, i, "object_id")
		var teamID *int64
		if objectID != nil {
			if pm, ok := l.playerMatch[playerMatchKey{*matchID, *objectID}]; ok {
				teamID = pm.teamID
				row["player_id"] = *objectID
				row["player_number"] = pm.number
				row["position_acronym"] = pm.positionAcronym
				row["player_name"] = l.player[*objectID].shortName
			}
		}
		if teamID != nil {
			row["team_id"] = *teamID
			row["team_shortname"] = l.teamShort[*teamID]
		}

		kit := l.matchKit(m, teamID)
		row["team_jersey_color"] = kit.jerseyColor
		row["team_number_color"] = kit.numberColor

		emit(out, cols, row)
	}
	return out
}

// buildEventsView denormalizes fact_dynamic_events: match and competition
// naming, home/away group, kit colors, period labels, the video-offset
// absolute event clock, and orientation-normalized tracking coordinates.
func buildEventsView(events *table.Table, l *lookups) *table.Table {
	cols := schema.MustGet(schema.GoldDynamicEvents).Columns()
	out := table.New(cols...)

	passthrough := []string{
		"event_id", "frame_start", "frame_end", "time_start", "time_end",
		"minute_start", "minute_end", "seconds_start", "seconds_end", "period",
		"team_id", "team_shortname", "event_type", "event_subtype",
		"player_id", "player_name", "player_position",
		"player_in_possession_id", "player_in_possession_name", "player_in_possession_position",
		"x_start", "y_start", "x_end", "y_end",
		"channel_start", "channel_end", "third_start", "third_end",
		"zone_start", "zone_end",
		"player_in_possession_zone_start", "player_in_possession_zone_end",
		"team_in_possession_phase_type", "team_out_of_possession_phase_type",
		"start_type", "end_type", "game_state_id", "game_state",
		"associated_player_possession_event_id",
		"targeted", "received", "xthreat", "xpass_completion", "passing_option_score",
		"speed_avg_band", "pressing_chain_index", "pressing_chain_end_type",
		"first_line_break", "second_last_line_break", "last_line_break", "pass_ahead",
	}

	for i := 0; i < events.Len(); i++ {
		matchID := cellInt64(events, i, "match_id")
		if matchID == nil {
			continue
		}
		m := l.match[*matchID]

		row := make(map[string]any, len(cols))
		for _, c := range passthrough {
			row[c] = cell(events, i, c)
		}
		row["match_id"] = *matchID
		row["date_time"] = m.dateTime
		row["round_number"] = m.roundNumber
		row["youtube_video_id"] = m.youtubeVideoID
		row["home_team_side_first"] = m.homeSideFirst
		row["home_team_side_second"] = m.homeSideSecond
		row["away_team_side_first"] = m.awaySideFirst
		row["away_team_side_second"] = m.awaySideSecond

		if m.editionID != nil {
			comp := l.competition[*m.editionID]
			row["competition_name"] = comp.name
			row["season_name"] = comp.seasonName
		}

		period := cellInt64(events, i, "period")
		row["period_name"] = periodName(period)
		row["event_start_seconds"] = absoluteSeconds(m, period, cellInt64(events, i, "seconds_start"))
		row["event_end_seconds"] = absoluteSeconds(m, period, cellInt64(events, i, "seconds_end"))

		teamID := cellInt64(events, i, "team_id")
		var group *string
		if teamID != nil {
			g := "away"
			if m.homeTeamID != nil && *teamID == *m.homeTeamID {
				g = "home"
			}
			group = &g
			row["group"] = g
		}

		kit := l.matchKit(m, teamID)
		row["team_jersey_color"] = kit.jerseyColor
		row["team_number_color"] = kit.numberColor

		if playerID := cellInt64(events, i, "player_id"); playerID != nil {
			if pm, ok := l.playerMatch[playerMatchKey{*matchID, *playerID}]; ok {
				row["player_number"] = pm.number
				row["position_group"] = pm.positionGroup
			}
		}

		row["match_name"], row["match_longname"] = matchNames(m, l)

		side := actingSide(m, group, period)
		row["x_start_tracking"] = normalized(cellFloat(events, i, "x_start"), side, period)
		row["y_start_tracking"] = normalized(cellFloat(events, i, "y_start"), side, period)
		row["x_end_tracking"] = normalized(cellFloat(events, i, "x_end"), side, period)
		row["y_end_tracking"] = normalized(cellFloat(events, i, "y_end"), side, period)

		emit(out, cols, row)
	}
	return out
}

// absoluteSeconds anchors an event's clock seconds to the match video: the
// recorded period start offset plus the clock, with the second-half clock
// rebased from 45:00. Any missing operand yields null.
func absoluteSeconds(m matchInfo, period *int64, seconds *int64) any {
	if period == nil || seconds == nil {
		return nil
	}
	if *period == 1 {
		if m.firstStart == nil {
			return nil
		}
		return *m.firstStart + *seconds
	}
	if m.secondStart == nil {
		return nil
	}
	return *m.secondStart + *seconds - secondHalfOffset
}

// matchNames composes the "HOME - AWAY" label and its round-prefixed long
// form. Either is null when a component is missing.
func matchNames(m matchInfo, l *lookups) (name, longname any) {
	if m.homeTeamID == nil || m.awayTeamID == nil {
		return nil, nil
	}
	home := table.AsString(l.teamShort[*m.homeTeamID])
	away := table.AsString(l.teamShort[*m.awayTeamID])
	if home == nil || away == nil {
		return nil, nil
	}
	name = *home + " - " + *away
	if round := table.AsInt64(m.roundNumber); round != nil {
		longname = fmt.Sprintf("R%d: %s - %s", *round, *home, *away)
	}
	return name, longname
}

// actingSide returns the end of the pitch the acting team defends in the
// event's period, or nil when the team or period cannot be resolved.
func actingSide(m matchInfo, group *string, period *int64) *string {
	if group == nil || period == nil {
		return nil
	}
	var side any
	switch {
	case *group == "home" && *period == 1:
		side = m.homeSideFirst
	case *group == "home" && *period == 2:
		side = m.homeSideSecond
	case *group == "away" && *period == 1:
		side = m.awaySideFirst
	case *group == "away" && *period == 2:
		side = m.awaySideSecond
	}
	return table.AsString(side)
}

func normalized(v *float64, side *string, period *int64) any {
	if side == nil || period == nil {
		return nil
	}
	if out := pitch.NormalizeCoord(v, *side, int(*period)); out != nil {
		return *out
	}
	return nil
}

// emit appends one row assembled by column name, in registry order.
func emit(t *table.Table, cols []string, vals map[string]any) {
	row := make([]any, len(cols))
	for i, c := range cols {
		row[i] = vals[c]
	}
	t.Append(row...)
}
