// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package silver

// Raw source document shapes. Every leaf is a pointer so an absent upstream
// field decodes to nil and lands as a typed null downstream; numeric leaves
// stay wide here and are narrowed by the schema enforcer at write time.

type matchDocument struct {
	ID             int64      `json:"id"`
	HomeTeam       *teamRef   `json:"home_team"`
	AwayTeam       *teamRef   `json:"away_team"`
	HomeTeamScore  *int64     `json:"home_team_score"`
	AwayTeamScore  *int64     `json:"away_team_score"`
	HomeTeamSide   []string   `json:"home_team_side"`
	DateTime       *string    `json:"date_time"`
	Stadium        *idRef     `json:"stadium"`
	HomeTeamKit    *teamKit   `json:"home_team_kit"`
	AwayTeamKit    *teamKit   `json:"away_team_kit"`
	HomeTeamCoach  *int64     `json:"home_team_coach"`
	AwayTeamCoach  *int64     `json:"away_team_coach"`
	HomeMinutesTIP *float64   `json:"home_team_playing_minutes_tip"`
	AwayMinutesTIP *float64   `json:"away_team_playing_minutes_tip"`
	HomeMinutesOTI *float64   `json:"home_team_playing_minutes_otip"`
	AwayMinutesOTI *float64   `json:"away_team_playing_minutes_otip"`
	MatchPeriods   []period   `json:"match_periods"`
	Edition        *edition   `json:"competition_edition"`
	Round          *roundInfo `json:"competition_round"`
	Players        []player   `json:"players"`
}

type idRef struct {
	ID *int64 `json:"id"`
}

type teamRef struct {
	ID        *int64  `json:"id"`
	Name      *string `json:"name"`
	ShortName *string `json:"short_name"`
	Acronym   *string `json:"acronym"`
}

type teamKit struct {
	ID          *int64  `json:"id"`
	JerseyColor *string `json:"jersey_color"`
	NumberColor *string `json:"number_color"`
}

type period struct {
	DurationMinutes *float64 `json:"duration_minutes"`
}

type edition struct {
	ID          *int64       `json:"id"`
	Competition *competition `json:"competition"`
	Season      *season      `json:"season"`
}

type competition struct {
	ID       *int64  `json:"id"`
	Name     *string `json:"name"`
	Area     *string `json:"area"`
	Gender   *string `json:"gender"`
	AgeGroup *string `json:"age_group"`
}

type season struct {
	ID        *int64  `json:"id"`
	StartYear *string `json:"start_year"`
	EndYear   *string `json:"end_year"`
	Name      *string `json:"name"`
}

type roundInfo struct {
	RoundNumber *int64 `json:"round_number"`
}

type player struct {
	ID          *int64       `json:"id"`
	TeamID      *int64       `json:"team_id"`
	FirstName   *string      `json:"first_name"`
	LastName    *string      `json:"last_name"`
	ShortName   *string      `json:"short_name"`
	Birthday    *string      `json:"birthday"`
	Gender      *string      `json:"gender"`
	Number      *int64       `json:"number"`
	StartTime   *string      `json:"start_time"`
	EndTime     *string      `json:"end_time"`
	PlayerRole  *playerRole  `json:"player_role"`
	PlayingTime *playingTime `json:"playing_time"`
	YellowCard  *int64       `json:"yellow_card"`
	RedCard     *int64       `json:"red_card"`
	Goal        *int64       `json:"goal"`
	OwnGoal     *int64       `json:"own_goal"`
	Injured     *bool        `json:"injured"`
}

type playerRole struct {
	ID            *int64  `json:"id"`
	PositionGroup *string `json:"position_group"`
	Acronym       *string `json:"acronym"`
}

type playingTime struct {
	Total *playingTotal `json:"total"`
}

type playingTotal struct {
	MinutesPlayed *float64 `json:"minutes_played"`
}

type trackingFrame struct {
	Frame      *int64           `json:"frame"`
	Timestamp  *string          `json:"timestamp"`
	Period     *int64           `json:"period"`
	BallData   *ballData        `json:"ball_data"`
	Possession *possessionData  `json:"possession"`
	PlayerData []playerPosition `json:"player_data"`
}

type ballData struct {
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
	Z          *float64 `json:"z"`
	IsDetected *bool    `json:"is_detected"`
}

type possessionData struct {
	PlayerID *int64  `json:"player_id"`
	Group    *string `json:"group"`
}

type playerPosition struct {
	PlayerID   *int64   `json:"player_id"`
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
	IsDetected *bool    `json:"is_detected"`
}
