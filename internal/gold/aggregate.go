// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package gold

import (
	"math"
	"strings"
	"time"

	"github.com/pitchlake/pitchlake/internal/schema"
	"github.com/pitchlake/pitchlake/internal/table"
)

// playerRecoveryEnds / teamRecoveryEnds: the player table credits only
// regains won directly from the engagement, the team table also counts
// regains the engagement forced indirectly.
var (
	playerRecoveryEnds = []string{"direct_regain"}
	teamRecoveryEnds   = []string{"direct_regain", "indirect_regain"}
)

type eventGroupKey struct {
	id     int64
	team   int64
	comp   string
	season string
}

type eventCounts struct {
	counts   map[string]int
	posScore meanAccumulator
}

type passCounts struct {
	counts          map[string]int
	xpassTargeted   meanAccumulator
	xpassReceived   meanAccumulator
	xthreatReceived meanAccumulator
}

type lineCounts struct {
	count  int
	height meanAccumulator
}

// buildPlayerAggregates reports per (player, team, competition edition): the
// appearance base from fact_player_match, the off-ball and defensive tallies
// keyed by the acting player, and the passing tallies keyed by the
// possession holder. Count metrics default to zero for players with no
// events.
func buildPlayerAggregates(events, factPlayerMatch *table.Table, l *lookups, now time.Time) *table.Table {
	type baseKey struct{ player, team, edition int64 }
	type base struct {
		minutes   float64
		matches   int
		starts    int
		positions []string
	}

	var order []baseKey
	bases := make(map[baseKey]*base)

	for i := 0; i < factPlayerMatch.Len(); i++ {
		acronym := cellString(factPlayerMatch, i, "position_acronym")
		if acronym == nil || *acronym == "SUB" {
			continue
		}
		player := cellInt64(factPlayerMatch, i, "player_id")
		team := cellInt64(factPlayerMatch, i, "team_id")
		edition := cellInt64(factPlayerMatch, i, "competition_edition_id")
		if player == nil || team == nil || edition == nil {
			continue
		}

		key := baseKey{*player, *team, *edition}
		b, ok := bases[key]
		if !ok {
			b = &base{}
			bases[key] = b
			order = append(order, key)
		}

		b.matches++
		if m := cellFloat(factPlayerMatch, i, "minutes_played"); m != nil {
			b.minutes += *m
		}
		if s := cellString(factPlayerMatch, i, "start_time"); s != nil && *s == "00:00:00" {
			b.starts++
		}
		if !contains(b.positions, *acronym) {
			b.positions = append(b.positions, *acronym)
		}
	}

	countPreds := countTallies(playerRecoveryEnds)
	passPreds := passTallies()
	tallies := make(map[eventGroupKey]*eventCounts)
	passes := make(map[eventGroupKey]*passCounts)

	for i := 0; i < events.Len(); i++ {
		ev := readEventView(events, i)

		if ev.playerID != nil && ev.teamID != nil {
			key := eventGroupKey{*ev.playerID, *ev.teamID, ev.compName, ev.seasonName}
			ec, ok := tallies[key]
			if !ok {
				ec = &eventCounts{counts: make(map[string]int)}
				tallies[key] = ec
			}
			for name, hit := range countPreds {
				if hit(&ev) {
					ec.counts[name]++
				}
			}
			ec.posScore.add(ev.passingOptionScore)
		}

		if ev.holderID != nil && ev.teamID != nil {
			key := eventGroupKey{*ev.holderID, *ev.teamID, ev.compName, ev.seasonName}
			pc, ok := passes[key]
			if !ok {
				pc = &passCounts{counts: make(map[string]int)}
				passes[key] = pc
			}
			for name, hit := range passPreds {
				if hit(&ev) {
					pc.counts[name]++
				}
			}
			option := ev.eventType == "passing_option"
			if option && ev.targeted {
				pc.xpassTargeted.add(ev.xpassCompletion)
			}
			if option && ev.received {
				pc.xpassReceived.add(ev.xpassCompletion)
				pc.xthreatReceived.add(ev.xthreat)
			}
		}
	}

	cols := schema.MustGet(schema.GoldPlayerAggregates).Columns()
	out := table.New(cols...)

	for _, key := range order {
		b := bases[key]
		comp := l.competition[key.edition]
		info := l.player[key.player]

		groupKey := eventGroupKey{key.player, key.team, stringOr(comp.name), stringOr(comp.seasonName)}
		ec := tallies[groupKey]
		if ec == nil {
			ec = &eventCounts{counts: map[string]int{}}
		}
		pc := passes[groupKey]
		if pc == nil {
			pc = &passCounts{counts: map[string]int{}}
		}

		row := map[string]any{
			"player_id":        key.player,
			"player_name":      info.shortName,
			"birthday":         info.birthday,
			"age":              ageAt(info.birthday, now),
			"team_id":          key.team,
			"team_shortname":   l.teamShort[key.team],
			"competition_id":   comp.competitionID,
			"competition_name": comp.name,
			"season_id":        comp.seasonID,
			"season_name":      comp.seasonName,
			"positions":        strings.Join(b.positions, ", "),
			"minutes_played":   int64(math.Trunc(b.minutes)),
			"matches_played":   b.matches,
			"starts":           b.starts,
		}

		for _, name := range schema.AggregateCountMetrics() {
			row[name] = ec.counts[name]
			row[name+"_90"] = per90(ec.counts[name], b.minutes)
		}
		row["passing_option_score_avg"] = ec.posScore.mean()
		for _, r := range schema.AggregateRatios() {
			row[r.Name] = pct(ec.counts[r.Numerator], ec.counts[r.Denominator])
		}

		for _, name := range schema.PassCountMetrics() {
			row[name] = pc.counts[name]
			row[name+"_90"] = per90(pc.counts[name], b.minutes)
		}
		row["pass_completion_pct"] = pct(pc.counts["passes_completed"], pc.counts["passes"])
		row["xpass_completion_avg"] = pc.xpassTargeted.mean()
		row["xpass_completion_completed_avg"] = pc.xpassReceived.mean()
		row["xthreat"] = round2(pc.xthreatReceived.sum)
		row["xthreat_avg"] = pc.xthreatReceived.mean()

		emit(out, cols, row)
	}
	return out
}

// buildTeamAggregates reports per (team, competition edition): playing time
// summed from both teams' period durations, the off-ball and defensive
// tallies, and per-line recovery counts and average recovery heights.
func buildTeamAggregates(events, dimMatch *table.Table, l *lookups) *table.Table {
	type baseKey struct{ team, edition int64 }
	type base struct {
		minutes float64
		matches int
	}

	var order []baseKey
	bases := make(map[baseKey]*base)

	addMatch := func(team *int64, m matchInfo) {
		if team == nil || m.editionID == nil {
			return
		}
		key := baseKey{*team, *m.editionID}
		b, ok := bases[key]
		if !ok {
			b = &base{}
			bases[key] = b
			order = append(order, key)
		}
		b.matches++
		if m.firstDuration != nil && m.secondDuration != nil {
			b.minutes += *m.firstDuration + *m.secondDuration
		}
	}

	for i := 0; i < dimMatch.Len(); i++ {
		id := cellInt64(dimMatch, i, "match_id")
		if id == nil {
			continue
		}
		m := l.match[*id]
		addMatch(m.homeTeamID, m)
		addMatch(m.awayTeamID, m)
	}

	countPreds := countTallies(teamRecoveryEnds)
	tallies := make(map[eventGroupKey]*eventCounts)
	lines := make(map[eventGroupKey]map[string]*lineCounts)

	for i := 0; i < events.Len(); i++ {
		ev := readEventView(events, i)
		if ev.teamID == nil {
			continue
		}
		key := eventGroupKey{0, *ev.teamID, ev.compName, ev.seasonName}

		ec, ok := tallies[key]
		if !ok {
			ec = &eventCounts{counts: make(map[string]int)}
			tallies[key] = ec
		}
		for name, hit := range countPreds {
			if hit(&ev) {
				ec.counts[name]++
			}
		}

		if ev.eventType == "on_ball_engagement" && isRegain(ev.endType) {
			if line := lineOf(ev.positionGroup); line != "" {
				lm, ok := lines[key]
				if !ok {
					lm = make(map[string]*lineCounts)
					lines[key] = lm
				}
				lc, ok := lm[line]
				if !ok {
					lc = &lineCounts{}
					lm[line] = lc
				}
				lc.count++
				lc.height.add(ev.xEnd)
			}
		}
	}

	cols := schema.MustGet(schema.GoldTeamAggregates).Columns()
	out := table.New(cols...)

	for _, key := range order {
		b := bases[key]
		comp := l.competition[key.edition]

		groupKey := eventGroupKey{0, key.team, stringOr(comp.name), stringOr(comp.seasonName)}
		ec := tallies[groupKey]
		if ec == nil {
			ec = &eventCounts{counts: map[string]int{}}
		}

		row := map[string]any{
			"team_id":          key.team,
			"team_shortname":   l.teamShort[key.team],
			"competition_id":   comp.competitionID,
			"competition_name": comp.name,
			"season_id":        comp.seasonID,
			"season_name":      comp.seasonName,
			"minutes_played":   int64(math.Trunc(b.minutes)),
			"matches_played":   b.matches,
		}

		for _, name := range schema.AggregateCountMetrics() {
			row[name] = ec.counts[name]
			row[name+"_90"] = per90(ec.counts[name], b.minutes)
		}
		for _, r := range schema.AggregateRatios() {
			row[r.Name] = pct(ec.counts[r.Numerator], ec.counts[r.Denominator])
		}

		lm := lines[groupKey]
		for _, line := range schema.TeamLines {
			lc := lm[line.Name]
			if lc == nil {
				lc = &lineCounts{}
			}
			row[line.Name+"_recoveries"] = lc.count
			row[line.Name+"_recovery_height_avg"] = lc.height.meanOrNull()
		}

		emit(out, cols, row)
	}
	return out
}

func isRegain(endType string) bool {
	return endType == "direct_regain" || endType == "indirect_regain"
}

// lineOf maps a position group to its pitch line, or "" for goalkeepers and
// unknown groups.
func lineOf(positionGroup string) string {
	for _, line := range schema.TeamLines {
		for _, g := range line.PositionGroups {
			if g == positionGroup {
				return line.Name
			}
		}
	}
	return ""
}

// ageAt computes completed years between a birthday and now, null when the
// birthday is unknown.
func ageAt(birthday any, now time.Time) any {
	b := table.AsTime(birthday)
	if b == nil {
		return nil
	}
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	return age
}

func stringOr(v any) string {
	if s := table.AsString(v); s != nil {
		return *s
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
