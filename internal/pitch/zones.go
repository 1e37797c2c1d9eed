// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

// Package pitch holds the pure spatial and temporal domain functions: pitch
// zone classification, clock-time normalization, and the attacking-direction
// coordinate normalization used by the gold layer.
//
// Coordinates follow the tracking provider's convention: x runs along the
// long axis of the pitch in [-52.5, 52.5] meters, y across it in [-34, 34].
package pitch

// OutOfPitch is the sentinel zone code for null coordinates and coordinates
// outside every bin.
const OutOfPitch = "Out of pitch"

// subthirdLimits are the upper bounds of the six vertical bins. A coordinate
// belongs to the lowest-indexed bin whose upper bound it does not exceed,
// making each upper edge inclusive.
var subthirdLimits = [...]float64{-52.5, -36, -17.5, 0, 17.5, 36, 52.5}

// channelBins are the five horizontal bins, right wing to left wing. The
// half-space bins are asymmetric on purpose: they span the width of the
// penalty-area channels, not an even fifth of the pitch.
var channelBins = [...]struct {
	max  float64
	code string
}{
	{-20.16, "RW"},
	{-9.16, "RHS"},
	{9.16, "C"},
	{20.16, "LHS"},
	{34, "LW"},
}

// Subthird classifies a long-axis coordinate into one of six vertical bins,
// returned as the 1-based bin index. Null coordinates and values beyond the
// last bound return OutOfPitch. Total: never fails.
func Subthird(x *float64) string {
	if x == nil {
		return OutOfPitch
	}
	for i := 1; i < len(subthirdLimits); i++ {
		if *x <= subthirdLimits[i] {
			return string(rune('0' + i))
		}
	}
	return OutOfPitch
}

// Channel classifies a cross-axis coordinate into one of five horizontal
// channels. Null coordinates and values beyond the left touchline return
// OutOfPitch. Total: never fails.
func Channel(y *float64) string {
	if y == nil {
		return OutOfPitch
	}
	for _, bin := range channelBins {
		if *y <= bin.max {
			return bin.code
		}
	}
	return OutOfPitch
}

// Zone returns the composite zone code for a point: channel followed by
// subthird, e.g. "C4" for a central point just past the halfway line.
func Zone(x, y *float64) string {
	return Channel(y) + Subthird(x)
}
