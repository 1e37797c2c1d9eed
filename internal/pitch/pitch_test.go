// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package pitch

import (
	"errors"
	"testing"
)

func fp(v float64) *float64 { return &v }

func TestSubthird(t *testing.T) {
	tests := []struct {
		name string
		x    *float64
		want string
	}{
		{"nil coordinate", nil, OutOfPitch},
		{"own goal line", fp(-52.5), "1"},
		{"deep defensive", fp(-40), "1"},
		{"defensive bound inclusive", fp(-36), "1"},
		{"defensive third", fp(-20), "2"},
		{"pre-halfway", fp(-1), "3"},
		{"halfway line", fp(0), "3"},
		{"just past halfway", fp(0.1), "4"},
		{"attacking third", fp(20), "5"},
		{"final bin", fp(50), "6"},
		{"opponent goal line", fp(52.5), "6"},
		{"beyond goal line", fp(53), OutOfPitch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Subthird(tt.x); got != tt.want {
				t.Errorf("Subthird(%v) = %q, want %q", *orNaN(tt.x), got, tt.want)
			}
		})
	}
}

func TestChannel(t *testing.T) {
	tests := []struct {
		name string
		y    *float64
		want string
	}{
		{"nil coordinate", nil, OutOfPitch},
		{"right touchline", fp(-34), "RW"},
		{"right wing bound", fp(-20.16), "RW"},
		{"right half space", fp(-15), "RHS"},
		{"center", fp(0), "C"},
		{"left half space bound", fp(20.16), "LHS"},
		{"left wing", fp(25), "LW"},
		{"left touchline", fp(34), "LW"},
		{"beyond left touchline", fp(34.5), OutOfPitch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Channel(tt.y); got != tt.want {
				t.Errorf("Channel(%v) = %q, want %q", *orNaN(tt.y), got, tt.want)
			}
		})
	}
}

func TestZone(t *testing.T) {
	if got := Zone(fp(0.1), fp(0)); got != "C4" {
		t.Errorf("Zone(0.1, 0) = %q, want C4", got)
	}
	if got := Zone(nil, fp(0)); got != "C"+OutOfPitch {
		t.Errorf("Zone(nil, 0) = %q, want channel with sentinel subthird", got)
	}
}

func orNaN(p *float64) *float64 {
	if p == nil {
		v := -999.0
		return &v
	}
	return p
}

func TestSeconds(t *testing.T) {
	tests := []struct {
		clock   string
		isStart bool
		want    int
		wantErr bool
	}{
		{"01:30", true, 89, false},
		{"01:30", false, 91, false},
		{"00:00", true, -1, false},
		{"00:00", false, 1, false},
		{"45:12.48", true, 2711, false},
		{"90:05", false, 5406, false},
		{"102:00", true, 6119, false},
		{"90", true, 0, true},
		{"ab:cd", true, 0, true},
		{"12:x9", false, 0, true},
		{"", true, 0, true},
	}
	for _, tt := range tests {
		got, err := Seconds(tt.clock, tt.isStart)
		if tt.wantErr {
			if !errors.Is(err, ErrMalformedTime) {
				t.Errorf("Seconds(%q, %v) error = %v, want ErrMalformedTime", tt.clock, tt.isStart, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Seconds(%q, %v) unexpected error: %v", tt.clock, tt.isStart, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Seconds(%q, %v) = %d, want %d", tt.clock, tt.isStart, got, tt.want)
		}
	}
}

func TestMinute(t *testing.T) {
	tests := []struct {
		seconds int
		want    int
	}{
		{0, 1},
		{59, 1},
		{60, 2},
		{89, 2},
		{2711, 46},
	}
	for _, tt := range tests {
		if got := Minute(tt.seconds); got != tt.want {
			t.Errorf("Minute(%d) = %d, want %d", tt.seconds, got, tt.want)
		}
	}
}

func TestNormalizeCoord(t *testing.T) {
	tests := []struct {
		name   string
		v      *float64
		side   string
		period int
		want   *float64
	}{
		{"left side keeps sign", fp(10), SideLeft, 1, fp(10)},
		{"right side negates", fp(10), SideRight, 2, fp(-10)},
		{"right side negative input", fp(-3.5), SideRight, 1, fp(3.5)},
		{"nil coordinate", nil, SideLeft, 1, nil},
		{"extra time", fp(10), SideLeft, 3, nil},
		{"shootout", fp(10), SideRight, 5, nil},
		{"unknown side", fp(10), "", 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCoord(tt.v, tt.side, tt.period)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("NormalizeCoord() = %v, want nil", *got)
			case tt.want != nil && got == nil:
				t.Errorf("NormalizeCoord() = nil, want %v", *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("NormalizeCoord() = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestNormalizeCoordCopies(t *testing.T) {
	in := 7.0
	out := NormalizeCoord(&in, SideLeft, 1)
	if out == &in {
		t.Error("NormalizeCoord returned the input pointer, want a copy")
	}
}
