// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package pitch

// Team side labels as recorded per half in the match dimension.
const (
	SideLeft  = "left"
	SideRight = "right"
)

// NormalizeCoord re-expresses a raw event coordinate in the canonical
// attacking direction for the team that acted: a team recorded on the right
// side for the half attacks leftward, so its coordinates are negated; a team
// on the left keeps them as is. Applies independently to x and y.
//
// Only regulation halves (periods 1 and 2) are in the rule's domain; extra
// time and shootouts return null, as does a null coordinate or an
// unrecognized side label.
func NormalizeCoord(v *float64, side string, period int) *float64 {
	if v == nil {
		return nil
	}
	if period != 1 && period != 2 {
		return nil
	}
	switch side {
	case SideLeft:
		out := *v
		return &out
	case SideRight:
		out := -*v
		return &out
	default:
		return nil
	}
}
