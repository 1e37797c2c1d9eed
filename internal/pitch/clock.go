// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package pitch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedTime is returned when a clock string cannot be parsed.
var ErrMalformedTime = errors.New("malformed clock time")

// Seconds converts a match clock string "MM:SS" (an optional fractional
// second part is ignored) to whole seconds, adjusted for the half-open
// [start, end) event-duration convention at one-second granularity: start
// times are decremented by one second, end times incremented.
//
// Minutes may exceed 59; the clock keeps counting past the hour.
func Seconds(clock string, isStart bool) (int, error) {
	minPart, secPart, found := strings.Cut(clock, ":")
	if !found {
		return 0, fmt.Errorf("%w: %q has no ':' separator", ErrMalformedTime, clock)
	}

	minutes, err := strconv.Atoi(minPart)
	if err != nil {
		return 0, fmt.Errorf("%w: minutes in %q: %v", ErrMalformedTime, clock, err)
	}

	secPart, _, _ = strings.Cut(secPart, ".")
	seconds, err := strconv.Atoi(secPart)
	if err != nil {
		return 0, fmt.Errorf("%w: seconds in %q: %v", ErrMalformedTime, clock, err)
	}

	total := minutes*60 + seconds
	if isStart {
		return total - 1, nil
	}
	return total + 1, nil
}

// Minute derives the 1-based minute of the match from event seconds.
func Minute(seconds int) int {
	return seconds/60 + 1
}
