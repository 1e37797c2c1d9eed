// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package schema

// Bronze layer table names. Bronze lands source records untouched: raw JSON
// payloads keyed by match, plus the per-match video offset file.
const (
	BronzeMatchRaw       = "bronze_match_raw"
	BronzeTrackingRaw    = "bronze_tracking_raw"
	BronzeDynamicEvents  = "bronze_dynamic_events"
	BronzeMatchVideoInfo = "bronze_match_video_info"
)

//nolint:gochecknoinits // registry is assembled from package-level definitions
func init() {
	register(BronzeMatchRaw, []Field{
		{"match_id", TypeInt64},
		{"json", TypeString},
	})

	register(BronzeTrackingRaw, []Field{
		{"match_id", TypeInt64},
		{"json", TypeString},
	})

	register(BronzeMatchVideoInfo, []Field{
		{"match_id", TypeInt64},
		{"youtube_video_id", TypeString},
		{"first_period_start", TypeInt32},
		{"second_period_start", TypeInt32},
	})

	// Dynamic events arrive as CSV and are landed column-for-column as text;
	// typing happens at the silver boundary.
	register(BronzeDynamicEvents, dynamicEventSourceFields())
}

// dynamicEventSourceFields describes the raw dynamic-events CSV columns.
// Everything is landed as VARCHAR so a drifting upstream export cannot fail
// bronze ingestion; the silver enforcer owns the casts.
func dynamicEventSourceFields() []Field {
	names := []string{
		"match_id",
		"event_id",
		"frame_start", "frame_end",
		"time_start", "time_end",
		"period",
		"team_id", "team_shortname",
		"event_type", "event_subtype",
		"player_id", "player_name", "player_position",
		"player_in_possession_id", "player_in_possession_name", "player_in_possession_position",
		"x_start", "y_start",
		"x_end", "y_end",
		"player_in_possession_x_start", "player_in_possession_y_start",
		"player_in_possession_x_end", "player_in_possession_y_end",
		"channel_start", "third_start",
		"channel_end", "third_end",
		"team_in_possession_phase_type", "team_out_of_possession_phase_type",
		"start_type", "end_type",
		"game_state_id", "game_state",
		"associated_player_possession_event_id",
		"targeted", "received",
		"xthreat", "xpass_completion", "passing_option_score",
		"speed_avg_band",
		"pressing_chain_index", "pressing_chain_end_type",
		"first_line_break", "second_last_line_break", "last_line_break",
		"pass_ahead", "quick_pass", "one_touch",
	}
	fields := make([]Field, len(names))
	for i, n := range names {
		fields[i] = Field{Name: n, Type: TypeString}
	}
	return fields
}
