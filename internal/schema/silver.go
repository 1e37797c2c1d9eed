// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package schema

// Silver layer table names: conformed dimensions and facts.
const (
	DimMatch         = "dim_match"
	DimPlayer        = "dim_player"
	DimTeam          = "dim_team"
	DimCompetition   = "dim_competition"
	DimTeamKit       = "dim_team_kit"
	FactPlayerMatch  = "fact_player_match"
	FactTracking     = "fact_tracking"
	FactDynamicEvent = "fact_dynamic_events"
)

//nolint:gochecknoinits // registry is assembled from package-level definitions
func init() {
	register(DimMatch, []Field{
		{"match_id", TypeInt64},
		{"home_team_score", TypeInt32},
		{"away_team_score", TypeInt32},
		{"home_team_side_first", TypeString},
		{"home_team_side_second", TypeString},
		{"away_team_side_first", TypeString},
		{"away_team_side_second", TypeString},
		{"date_time", TypeTimestamp},
		{"stadium_id", TypeInt32},
		{"home_team_id", TypeInt32},
		{"away_team_id", TypeInt32},
		{"team_homekit_id", TypeInt32},
		{"team_awaykit_id", TypeInt32},
		{"home_team_coach_id", TypeInt32},
		{"away_team_coach_id", TypeInt32},
		{"home_team_playing_minutes_tip", TypeFloat32},
		{"away_team_playing_minutes_tip", TypeFloat32},
		{"home_team_playing_minutes_otip", TypeFloat32},
		{"away_team_playing_minutes_otip", TypeFloat32},
		{"first_period_duration_minutes", TypeFloat32},
		{"second_period_duration_minutes", TypeFloat32},
		{"competition_edition_id", TypeInt32},
		{"competition_id", TypeInt32},
		{"season_id", TypeInt32},
		{"round_number", TypeInt32},
		{"youtube_video_id", TypeString},
		{"first_period_start", TypeInt32},
		{"second_period_start", TypeInt32},
	})

	register(DimPlayer, []Field{
		{"player_id", TypeInt32},
		{"team_id", TypeInt32},
		{"first_name", TypeString},
		{"last_name", TypeString},
		{"short_name", TypeString},
		{"birthday", TypeDate},
		{"gender", TypeString},
	})

	register(DimTeam, []Field{
		{"team_id", TypeInt32},
		{"name", TypeString},
		{"short_name", TypeString},
		{"acronym", TypeString},
	})

	register(DimCompetition, []Field{
		{"competition_edition_id", TypeInt32},
		{"competition_id", TypeInt32},
		{"competition_name", TypeString},
		{"area", TypeString},
		{"name", TypeString},
		{"gender", TypeString},
		{"age_group", TypeString},
		{"season_id", TypeInt32},
		{"season_start_year", TypeString},
		{"season_end_year", TypeString},
		{"season_name", TypeString},
	})

	register(DimTeamKit, []Field{
		{"team_kit_id", TypeInt32},
		{"jersey_color", TypeString},
		{"number_color", TypeString},
	})

	register(FactPlayerMatch, []Field{
		{"match_id", TypeInt64},
		{"player_id", TypeInt32},
		{"team_id", TypeInt32},
		{"competition_edition_id", TypeInt32},
		{"competition_id", TypeInt32},
		{"season_id", TypeInt32},
		{"number", TypeInt16},
		{"minutes_played", TypeFloat32},
		{"start_time", TypeString},
		{"end_time", TypeString},
		{"player_role_id", TypeInt32},
		{"position_group", TypeString},
		{"position_acronym", TypeString},
		{"yellow_card", TypeInt32},
		{"red_card", TypeInt32},
		{"goal", TypeInt32},
		{"own_goal", TypeInt32},
		{"injured", TypeBool},
	})

	register(FactTracking, []Field{
		{"match_id", TypeInt64},
		{"frame", TypeInt32},
		{"timestamp", TypeString},
		{"period", TypeInt32},
		{"object_id", TypeInt32},
		{"x", TypeFloat32},
		{"y", TypeFloat32},
		{"z", TypeFloat32},
		{"group", TypeString},
		{"has_possession", TypeBool},
		{"is_detected", TypeBool},
		{"zone_tracking", TypeString},
	})

	register(FactDynamicEvent, []Field{
		{"match_id", TypeInt64},
		{"event_id", TypeString},
		{"frame_start", TypeInt32},
		{"frame_end", TypeInt32},
		{"time_start", TypeString},
		{"time_end", TypeString},
		{"period", TypeInt32},
		{"team_id", TypeInt32},
		{"team_shortname", TypeString},
		{"event_type", TypeString},
		{"event_subtype", TypeString},
		{"player_id", TypeInt32},
		{"player_name", TypeString},
		{"player_position", TypeString},
		{"player_in_possession_id", TypeInt32},
		{"player_in_possession_name", TypeString},
		{"player_in_possession_position", TypeString},
		{"x_start", TypeFloat32},
		{"y_start", TypeFloat32},
		{"x_end", TypeFloat32},
		{"y_end", TypeFloat32},
		{"player_in_possession_x_start", TypeFloat32},
		{"player_in_possession_y_start", TypeFloat32},
		{"player_in_possession_x_end", TypeFloat32},
		{"player_in_possession_y_end", TypeFloat32},
		{"channel_start", TypeString},
		{"third_start", TypeString},
		{"channel_end", TypeString},
		{"third_end", TypeString},
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
		{"minute_start", TypeInt16},
		{"minute_end", TypeInt16},
		{"seconds_start", TypeInt32},
		{"seconds_end", TypeInt32},
		{"zone_start", TypeString},
		{"zone_end", TypeString},
		{"player_in_possession_zone_start", TypeString},
		{"player_in_possession_zone_end", TypeString},
	})
}
