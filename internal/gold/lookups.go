// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package gold

import (
	"github.com/pitchlake/pitchlake/internal/table"
)

// Dimension lookups backing the denormalized views. Each index maps a
// business key to the row values the views pull in; absent keys read as
// nulls, matching a left join.

type matchInfo struct {
	dateTime       any
	homeTeamID     *int64
	awayTeamID     *int64
	editionID      *int64
	roundNumber    any
	homeKitID      *int64
	awayKitID      *int64
	youtubeVideoID any
	firstStart     *int64
	secondStart    *int64
	homeSideFirst  any
	homeSideSecond any
	awaySideFirst  any
	awaySideSecond any
	firstDuration  *float64
	secondDuration *float64
}

type competitionInfo struct {
	competitionID any
	seasonID      any
	name          any
	seasonName    any
}

type kitInfo struct {
	jerseyColor any
	numberColor any
}

type playerInfo struct {
	shortName any
	birthday  any
}

type playerMatchInfo struct {
	teamID          *int64
	number          any
	positionAcronym any
	positionGroup   any
}

type playerMatchKey struct {
	match  int64
	player int64
}

type lookups struct {
	match       map[int64]matchInfo
	player      map[int64]playerInfo
	teamShort   map[int64]any
	competition map[int64]competitionInfo
	kit         map[int64]kitInfo
	playerMatch map[playerMatchKey]playerMatchInfo
}

func buildLookups(dimMatch, dimPlayer, dimTeam, dimCompetition, dimTeamKit, factPlayerMatch *table.Table) *lookups {
	l := &lookups{
		match:       make(map[int64]matchInfo, dimMatch.Len()),
		player:      make(map[int64]playerInfo, dimPlayer.Len()),
		teamShort:   make(map[int64]any, dimTeam.Len()),
		competition: make(map[int64]competitionInfo, dimCompetition.Len()),
		kit:         make(map[int64]kitInfo, dimTeamKit.Len()),
		playerMatch: make(map[playerMatchKey]playerMatchInfo, factPlayerMatch.Len()),
	}

	for i := 0; i < dimMatch.Len(); i++ {
		id := cellInt64(dimMatch, i, "match_id")
		if id == nil {
			continue
		}
		l.match[*id] = matchInfo{
			dateTime:       cell(dimMatch, i, "date_time"),
			homeTeamID:     cellInt64(dimMatch, i, "home_team_id"),
			awayTeamID:     cellInt64(dimMatch, i, "away_team_id"),
			editionID:      cellInt64(dimMatch, i, "competition_edition_id"),
			roundNumber:    cell(dimMatch, i, "round_number"),
			homeKitID:      cellInt64(dimMatch, i, "team_homekit_id"),
			awayKitID:      cellInt64(dimMatch, i, "team_awaykit_id"),
			youtubeVideoID: cell(dimMatch, i, "youtube_video_id"),
			firstStart:     cellInt64(dimMatch, i, "first_period_start"),
			secondStart:    cellInt64(dimMatch, i, "second_period_start"),
			homeSideFirst:  cell(dimMatch, i, "home_team_side_first"),
			homeSideSecond: cell(dimMatch, i, "home_team_side_second"),
			awaySideFirst:  cell(dimMatch, i, "away_team_side_first"),
			awaySideSecond: cell(dimMatch, i, "away_team_side_second"),
			firstDuration:  cellFloat(dimMatch, i, "first_period_duration_minutes"),
			secondDuration: cellFloat(dimMatch, i, "second_period_duration_minutes"),
		}
	}

	for i := 0; i < dimPlayer.Len(); i++ {
		id := cellInt64(dimPlayer, i, "player_id")
		if id == nil {
			continue
		}
		l.player[*id] = playerInfo{
			shortName: cell(dimPlayer, i, "short_name"),
			birthday:  cell(dimPlayer, i, "birthday"),
		}
	}

	for i := 0; i < dimTeam.Len(); i++ {
		id := cellInt64(dimTeam, i, "team_id")
		if id == nil {
			continue
		}
		l.teamShort[*id] = cell(dimTeam, i, "short_name")
	}

	for i := 0; i < dimCompetition.Len(); i++ {
		id := cellInt64(dimCompetition, i, "competition_edition_id")
		if id == nil {
			continue
		}
		l.competition[*id] = competitionInfo{
			competitionID: cell(dimCompetition, i, "competition_id"),
			seasonID:      cell(dimCompetition, i, "season_id"),
			name:          cell(dimCompetition, i, "competition_name"),
			seasonName:    cell(dimCompetition, i, "season_name"),
		}
	}

	for i := 0; i < dimTeamKit.Len(); i++ {
		id := cellInt64(dimTeamKit, i, "team_kit_id")
		if id == nil {
			continue
		}
		l.kit[*id] = kitInfo{
			jerseyColor: cell(dimTeamKit, i, "jersey_color"),
			numberColor: cell(dimTeamKit, i, "number_color"),
		}
	}

	for i := 0; i < factPlayerMatch.Len(); i++ {
		matchID := cellInt64(factPlayerMatch, i, "match_id")
		playerID := cellInt64(factPlayerMatch, i, "player_id")
		if matchID == nil || playerID == nil {
			continue
		}
		l.playerMatch[playerMatchKey{*matchID, *playerID}] = playerMatchInfo{
			teamID:          cellInt64(factPlayerMatch, i, "team_id"),
			number:          cell(factPlayerMatch, i, "number"),
			positionAcronym: cell(factPlayerMatch, i, "position_acronym"),
			positionGroup:   cell(factPlayerMatch, i, "position_group"),
		}
	}

	return l
}

// matchKit selects the kit the acting team wears in a match: the home kit
// when the team is the home side, otherwise the away kit.
func (l *lookups) matchKit(m matchInfo, teamID *int64) kitInfo {
	if teamID == nil {
		return kitInfo{}
	}
	kitID := m.awayKitID
	if m.homeTeamID != nil && *teamID == *m.homeTeamID {
		kitID = m.homeKitID
	}
	if kitID == nil {
		return kitInfo{}
	}
	return l.kit[*kitID]
}

func cell(t *table.Table, i int, col string) any {
	v, _ := t.Value(i, col)
	return v
}

func cellInt64(t *table.Table, i int, col string) *int64 {
	v, _ := t.Value(i, col)
	return table.AsInt64(v)
}

func cellFloat(t *table.Table, i int, col string) *float64 {
	v, _ := t.Value(i, col)
	return table.AsFloat64(v)
}

func cellString(t *table.Table, i int, col string) *string {
	v, _ := t.Value(i, col)
	return table.AsString(v)
}

func cellBool(t *table.Table, i int, col string) bool {
	v, _ := t.Value(i, col)
	b := table.AsBool(v)
	return b != nil && *b
}
