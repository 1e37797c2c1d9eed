// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package gold

import (
	"math"

	"github.com/pitchlake/pitchlake/internal/schema"
	"github.com/pitchlake/pitchlake/internal/table"
)

// eventView is the slice of a denormalized event row the aggregate tallies
// read. Missing strings come through empty, which never matches a tally.
type eventView struct {
	playerID *int64
	holderID *int64
	teamID   *int64

	compName   string
	seasonName string

	eventType     string
	eventSubtype  string
	endType       string
	oppPhase      string
	positionGroup string

	targeted bool
	received bool

	passingOptionScore *float64
	xthreat            *float64
	xpassCompletion    *float64
	xEnd               *float64

	firstLineBreak      bool
	secondLastLineBreak bool
	lastLineBreak       bool
	passAhead           bool
}

func readEventView(t *table.Table, i int) eventView {
	return eventView{
		playerID:            cellInt64(t, i, "player_id"),
		holderID:            cellInt64(t, i, "player_in_possession_id"),
		teamID:              cellInt64(t, i, "team_id"),
		compName:            stringOrEmpty(t, i, "competition_name"),
		seasonName:          stringOrEmpty(t, i, "season_name"),
		eventType:           stringOrEmpty(t, i, "event_type"),
		eventSubtype:        stringOrEmpty(t, i, "event_subtype"),
		endType:             stringOrEmpty(t, i, "end_type"),
		oppPhase:            stringOrEmpty(t, i, "team_out_of_possession_phase_type"),
		positionGroup:       stringOrEmpty(t, i, "position_group"),
		targeted:            cellBool(t, i, "targeted"),
		received:            cellBool(t, i, "received"),
		passingOptionScore:  cellFloat(t, i, "passing_option_score"),
		xthreat:             cellFloat(t, i, "xthreat"),
		xpassCompletion:     cellFloat(t, i, "xpass_completion"),
		xEnd:                cellFloat(t, i, "x_end"),
		firstLineBreak:      cellBool(t, i, "first_line_break"),
		secondLastLineBreak: cellBool(t, i, "second_last_line_break"),
		lastLineBreak:       cellBool(t, i, "last_line_break"),
		passAhead:           cellBool(t, i, "pass_ahead"),
	}
}

func stringOrEmpty(t *table.Table, i int, col string) string {
	if s := cellString(t, i, col); s != nil {
		return *s
	}
	return ""
}

type predicate func(*eventView) bool

func allOf(ps ...predicate) predicate {
	return func(e *eventView) bool {
		for _, p := range ps {
			if !p(e) {
				return false
			}
		}
		return true
	}
}

func hasType(t string) predicate {
	return func(e *eventView) bool { return e.eventType == t }
}

func hasSubtype(s string) predicate {
	return func(e *eventView) bool { return e.eventSubtype == s }
}

func isTargeted(e *eventView) bool { return e.targeted }
func isHighBlock(e *eventView) bool { return e.oppPhase == "high_block" }

// countTallies returns one predicate per schema.AggregateCountMetrics name.
// recoveryEnds varies between the player table (direct regains only) and the
// team table (direct and indirect regains).
func countTallies(recoveryEnds []string) map[string]predicate {
	isRecovery := func(e *eventView) bool {
		for _, end := range recoveryEnds {
			if e.endType == end {
				return true
			}
		}
		return false
	}

	m := make(map[string]predicate)
	run := hasType("off_ball_run")
	m["off_ball_runs"] = run
	m["off_ball_runs_targeted"] = allOf(run, isTargeted)
	for _, s := range schema.RunSubtypes {
		sub := hasSubtype(s)
		m[s+"_runs"] = sub
		m[s+"_runs_targeted"] = allOf(sub, isTargeted)
	}

	engagement := hasType("on_ball_engagement")
	pressure := hasSubtype("pressure")
	recoveryPress := hasSubtype("recovery_press")
	counterPress := hasSubtype("counter_press")

	m["on_ball_engagements"] = engagement
	m["pressures"] = pressure
	m["recovery_pressures"] = recoveryPress
	m["counter_pressures"] = counterPress
	m["on_ball_engagement_recoveries"] = allOf(engagement, isRecovery)
	m["pressure_recoveries"] = allOf(pressure, isRecovery)
	m["recovery_pressure_recoveries"] = allOf(recoveryPress, isRecovery)
	m["counter_pressure_recoveries"] = allOf(counterPress, isRecovery)
	m["on_ball_engagements_high"] = allOf(engagement, isHighBlock)
	m["on_ball_engagement_high_recoveries"] = allOf(engagement, isRecovery, isHighBlock)
	m["pressures_high"] = allOf(pressure, isHighBlock)
	m["pressure_high_recoveries"] = allOf(pressure, isRecovery, isHighBlock)
	m["recovery_pressures_high"] = allOf(recoveryPress, isHighBlock)
	m["recovery_pressure_high_recoveries"] = allOf(recoveryPress, isRecovery, isHighBlock)
	m["counter_pressures_high"] = allOf(counterPress, isHighBlock)
	m["counter_pressure_high_recoveries"] = allOf(counterPress, isRecovery, isHighBlock)
	return m
}

// passTallies returns one predicate per schema.PassCountMetrics name,
// evaluated against the possession holder of passing-option events.
func passTallies() map[string]predicate {
	option := hasType("passing_option")
	isReceived := func(e *eventView) bool { return e.received }
	anyLineBreak := func(e *eventView) bool {
		return e.firstLineBreak || e.secondLastLineBreak || e.lastLineBreak
	}
	ahead := func(e *eventView) bool { return e.passAhead }

	return map[string]predicate{
		"passes":                         allOf(option, isTargeted),
		"passes_completed":               allOf(option, isReceived),
		"line_breaking_passes":           allOf(option, isTargeted, anyLineBreak),
		"line_breaking_passes_completed": allOf(option, isReceived, anyLineBreak),
		"first_line_breaking_passes": allOf(option, isTargeted,
			func(e *eventView) bool { return e.firstLineBreak }),
		"second_last_line_breaking_passes": allOf(option, isTargeted,
			func(e *eventView) bool { return e.secondLastLineBreak }),
		"last_line_breaking_passes": allOf(option, isTargeted,
			func(e *eventView) bool { return e.lastLineBreak }),
		"first_line_breaking_passes_completed": allOf(option, isReceived,
			func(e *eventView) bool { return e.firstLineBreak }),
		"second_last_line_breaking_passes_completed": allOf(option, isReceived,
			func(e *eventView) bool { return e.secondLastLineBreak }),
		"last_line_breaking_passes_completed": allOf(option, isReceived,
			func(e *eventView) bool { return e.lastLineBreak }),
		"ahead_passes":           allOf(option, isTargeted, ahead),
		"ahead_passes_completed": allOf(option, isReceived, ahead),
	}
}

// meanAccumulator folds an optional series into sum, mean, and count.
type meanAccumulator struct {
	sum float64
	n   int
}

func (a *meanAccumulator) add(v *float64) {
	if v != nil {
		a.sum += *v
		a.n++
	}
}

func (a *meanAccumulator) mean() float64 {
	if a.n == 0 {
		return 0
	}
	return round2(a.sum / float64(a.n))
}

// meanOrNull is mean without the zero fill, for averages whose absence is
// meaningful (recovery heights).
func (a *meanAccumulator) meanOrNull() any {
	if a.n == 0 {
		return nil
	}
	return round2(a.sum / float64(a.n))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// per90 rescales a count to a 90-minutes-played basis; zero minutes yields
// zero rather than dividing.
func per90(count int, minutes float64) float64 {
	if minutes == 0 {
		return 0
	}
	return round2(float64(count) / minutes * 90)
}

// pct is the share of part in whole as a percentage; zero whole yields zero.
func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round2(float64(part) / float64(whole) * 100)
}
