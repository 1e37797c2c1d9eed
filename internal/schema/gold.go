// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package schema

// Gold layer table names: denormalized views and aggregate reports.
const (
	GoldTracking         = "gold_tracking"
	GoldDynamicEvents    = "gold_dynamic_events"
	GoldPlayerAggregates = "gold_player_aggregates"
	GoldTeamAggregates   = "gold_team_aggregates"
)

// RunSubtypes are the off-ball-run subtypes tallied in the aggregate tables.
// The aggregate schemas and the aggregate builder both iterate this list, so
// adding a subtype here grows the tables and the tallies together.
var RunSubtypes = []string{
	"dropping_off",
	"coming_short",
	"pulling_wide",
	"pulling_half_space",
	"support",
	"run_ahead_of_the_ball",
	"overlap",
	"underlap",
	"behind",
	"cross_receiver",
}

// AggregateRatio is a percentage column derived from two count columns.
type AggregateRatio struct {
	Name        string
	Numerator   string
	Denominator string
}

// AggregateCountMetrics returns the ordered tally column names shared by the
// player and team aggregate tables. Every name also yields a "<name>_90"
// per-90-minutes column.
func AggregateCountMetrics() []string {
	names := []string{"off_ball_runs", "off_ball_runs_targeted"}
	for _, s := range RunSubtypes {
		names = append(names, s+"_runs", s+"_runs_targeted")
	}
	names = append(names,
		"on_ball_engagements",
		"pressures",
		"recovery_pressures",
		"counter_pressures",
		"on_ball_engagement_recoveries",
		"pressure_recoveries",
		"recovery_pressure_recoveries",
		"counter_pressure_recoveries",
		"on_ball_engagements_high",
		"on_ball_engagement_high_recoveries",
		"pressures_high",
		"pressure_high_recoveries",
		"recovery_pressures_high",
		"recovery_pressure_high_recoveries",
		"counter_pressures_high",
		"counter_pressure_high_recoveries",
	)
	return names
}

// AggregateRatios returns the percentage columns of the aggregate tables
// with their numerator and denominator tally columns.
func AggregateRatios() []AggregateRatio {
	ratios := []AggregateRatio{
		{"off_ball_runs_targeted_pct", "off_ball_runs_targeted", "off_ball_runs"},
	}
	for _, s := range RunSubtypes {
		ratios = append(ratios, AggregateRatio{s + "_runs_targeted_pct", s + "_runs_targeted", s + "_runs"})
	}
	ratios = append(ratios,
		AggregateRatio{"on_ball_engagement_recoveries_pct", "on_ball_engagement_recoveries", "on_ball_engagements"},
		AggregateRatio{"pressure_recoveries_pct", "pressure_recoveries", "pressures"},
		AggregateRatio{"recovery_pressure_recoveries_pct", "recovery_pressure_recoveries", "recovery_pressures"},
		AggregateRatio{"counter_pressure_recoveries_pct", "counter_pressure_recoveries", "counter_pressures"},
		AggregateRatio{"on_ball_engagement_high_recoveries_pct", "on_ball_engagement_high_recoveries", "on_ball_engagements_high"},
		AggregateRatio{"pressure_high_recoveries_pct", "pressure_high_recoveries", "pressures_high"},
		AggregateRatio{"recovery_pressure_high_recoveries_pct", "recovery_pressure_high_recoveries", "recovery_pressures_high"},
		AggregateRatio{"counter_pressure_high_recoveries_pct", "counter_pressure_high_recoveries", "counter_pressures_high"},
	)
	return ratios
}

// TeamLine groups outfield position groups into a pitch line for the team
// recovery tallies.
type TeamLine struct {
	Name           string
	PositionGroups []string
}

// TeamLines are the position-group lines whose ball recoveries and average
// recovery height are reported per team.
var TeamLines = []TeamLine{
	{"defense", []string{"Full Back", "Central Defender"}},
	{"midfield", []string{"Midfield"}},
	{"attack", []string{"Center Forward", "Wide Attacker"}},
}

// PassCountMetrics returns the ordered pass tally columns of the player
// aggregate table. Each also yields a "<name>_90" column.
func PassCountMetrics() []string {
	return []string{
		"passes",
		"passes_completed",
		"line_breaking_passes",
		"line_breaking_passes_completed",
		"first_line_breaking_passes",
		"second_last_line_breaking_passes",
		"last_line_breaking_passes",
		"first_line_breaking_passes_completed",
		"second_last_line_breaking_passes_completed",
		"last_line_breaking_passes_completed",
		"ahead_passes",
		"ahead_passes_completed",
	}
}

//nolint:gochecknoinits // registry is assembled from package-level definitions
func init() {
	register(GoldTracking, []Field{
		{"match_id", TypeInt64},
		{"date_time", TypeTimestamp},
		{"frame", TypeInt32},
		{"timestamp", TypeString},
		{"competition_name", TypeString},
		{"season_name", TypeString},
		{"round_number", TypeInt32},
		{"period", TypeInt32},
		{"object_id", TypeInt32},
		{"player_id", TypeInt32},
		{"player_name", TypeString},
		{"player_number", TypeInt16},
		{"team_id", TypeInt32},
		{"team_shortname", TypeString},
		{"group", TypeString},
		{"position_acronym", TypeString},
		{"x", TypeFloat32},
		{"y", TypeFloat32},
		{"z", TypeFloat32},
		{"has_possession", TypeBool},
		{"team_jersey_color", TypeString},
		{"team_number_color", TypeString},
	})

	register(GoldDynamicEvents, goldDynamicEventFields())
	register(GoldPlayerAggregates, goldPlayerAggregateFields())
	register(GoldTeamAggregates, goldTeamAggregateFields())
}

func goldDynamicEventFields() []Field {
	return []Field{
		{"match_id", TypeInt64},
		{"match_name", TypeString},
		{"match_longname", TypeString},
		{"date_time", TypeTimestamp},
		{"competition_name", TypeString},
		{"season_name", TypeString},
		{"round_number", TypeInt32},
		{"event_id", TypeString},
		{"frame_start", TypeInt32},
		{"frame_end", TypeInt32},
		{"time_start", TypeString},
		{"time_end", TypeString},
		{"minute_start", TypeInt16},
		{"minute_end", TypeInt16},
		{"seconds_start", TypeInt32},
		{"seconds_end", TypeInt32},
		{"period", TypeInt32},
		{"period_name", TypeString},
		{"team_id", TypeInt32},
		{"team_shortname", TypeString},
		{"group", TypeString},
		{"team_jersey_color", TypeString},
		{"team_number_color", TypeString},
		{"event_type", TypeString},
		{"event_subtype", TypeString},
		{"player_id", TypeInt32},
		{"player_name", TypeString},
		{"player_number", TypeInt16},
		{"position_group", TypeString},
		{"player_position", TypeString},
		{"player_in_possession_id", TypeInt32},
		{"player_in_possession_name", TypeString},
		{"player_in_possession_position", TypeString},
		{"x_start", TypeFloat32},
		{"y_start", TypeFloat32},
		{"x_end", TypeFloat32},
		{"y_end", TypeFloat32},
		{"channel_start", TypeString},
		{"channel_end", TypeString},
		{"third_start", TypeString},
		{"third_end", TypeString},
		{"zone_start", TypeString},
		{"zone_end", TypeString},
		{"player_in_possession_zone_start", TypeString},
		{"player_in_possession_zone_end", TypeString},
		{"team_in_possession_phase_type", TypeString},
		{"team_out_of_possession_phase_type", TypeString},
		{"start_type", TypeString},
		{"end_type", TypeString},
		{"game_state_id", TypeInt32},
		{"game_state", TypeString},
		{"associated_player_possession_event_id", TypeString},
		{"targeted", TypeBool},
		{"received", TypeBool},
		{"xthreat", TypeFloat32},
		{"xpass_completion", TypeFloat32},
		{"passing_option_score", TypeFloat32},
		{"speed_avg_band", TypeString},
		{"pressing_chain_index", TypeInt32},
		{"pressing_chain_end_type", TypeString},
		{"first_line_break", TypeBool},
		{"second_last_line_break", TypeBool},
		{"last_line_break", TypeBool},
		{"pass_ahead", TypeBool},
		{"youtube_video_id", TypeString},
		{"event_start_seconds", TypeInt32},
		{"event_end_seconds", TypeInt32},
		{"home_team_side_first", TypeString},
		{"home_team_side_second", TypeString},
		{"away_team_side_first", TypeString},
		{"away_team_side_second", TypeString},
		{"x_start_tracking", TypeFloat32},
		{"y_start_tracking", TypeFloat32},
		{"x_end_tracking", TypeFloat32},
		{"y_end_tracking", TypeFloat32},
	}
}

func goldPlayerAggregateFields() []Field {
	fields := []Field{
		{"player_id", TypeInt32},
		{"player_name", TypeString},
		{"birthday", TypeDate},
		{"age", TypeInt16},
		{"team_id", TypeInt32},
		{"team_shortname", TypeString},
		{"competition_id", TypeInt32},
		{"competition_name", TypeString},
		{"season_id", TypeInt32},
		{"season_name", TypeString},
		{"positions", TypeString},
		{"minutes_played", TypeInt32},
		{"matches_played", TypeInt16},
		{"starts", TypeInt16},
	}
	for _, name := range AggregateCountMetrics() {
		fields = append(fields, Field{Name: name, Type: TypeInt32})
	}
	fields = append(fields, Field{"passing_option_score_avg", TypeFloat32})
	for _, name := range AggregateCountMetrics() {
		fields = append(fields, Field{Name: name + "_90", Type: TypeFloat32})
	}
	for _, r := range AggregateRatios() {
		fields = append(fields, Field{Name: r.Name, Type: TypeFloat32})
	}
	fields = append(fields,
		Field{"passes", TypeInt32},
		Field{"passes_completed", TypeInt32},
		Field{"pass_completion_pct", TypeFloat32},
		Field{"xpass_completion_avg", TypeFloat32},
		Field{"xpass_completion_completed_avg", TypeFloat32},
		Field{"xthreat", TypeFloat32},
		Field{"xthreat_avg", TypeFloat32},
	)
	for _, name := range PassCountMetrics()[2:] {
		fields = append(fields, Field{Name: name, Type: TypeInt32})
	}
	for _, name := range PassCountMetrics() {
		fields = append(fields, Field{Name: name + "_90", Type: TypeFloat32})
	}
	return fields
}

func goldTeamAggregateFields() []Field {
	fields := []Field{
		{"team_id", TypeInt32},
		{"team_shortname", TypeString},
		{"competition_id", TypeInt32},
		{"competition_name", TypeString},
		{"season_id", TypeInt32},
		{"season_name", TypeString},
		{"minutes_played", TypeInt32},
		{"matches_played", TypeInt16},
	}
	for _, name := range AggregateCountMetrics() {
		fields = append(fields, Field{Name: name, Type: TypeInt32})
	}
	for _, name := range AggregateCountMetrics() {
		fields = append(fields, Field{Name: name + "_90", Type: TypeFloat32})
	}
	for _, r := range AggregateRatios() {
		fields = append(fields, Field{Name: r.Name, Type: TypeFloat32})
	}
	for _, line := range TeamLines {
		fields = append(fields, Field{Name: line.Name + "_recovery_height_avg", Type: TypeFloat32})
	}
	for _, line := range TeamLines {
		fields = append(fields, Field{Name: line.Name + "_recoveries", Type: TypeInt32})
	}
	return fields
}
