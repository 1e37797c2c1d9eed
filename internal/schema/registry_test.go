// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package schema

import (
	"errors"
	"strings"
	"testing"
)

func TestGetUnknown(t *testing.T) {
	_, err := Get("gold_nonsense")
	if !errors.Is(err, ErrUnknownSchema) {
		t.Fatalf("Get(unknown) error = %v, want ErrUnknownSchema", err)
	}
}

func TestRegisteredTables(t *testing.T) {
	want := []string{
		BronzeMatchRaw, BronzeTrackingRaw, BronzeDynamicEvents, BronzeMatchVideoInfo,
		DimMatch, DimPlayer, DimTeam, DimCompetition, DimTeamKit,
		FactPlayerMatch, FactTracking, FactDynamicEvent,
		GoldTracking, GoldDynamicEvents, GoldPlayerAggregates, GoldTeamAggregates,
	}
	for _, name := range want {
		if _, err := Get(name); err != nil {
			t.Errorf("Get(%q) error: %v", name, err)
		}
	}
	if got := len(Names()); got != len(want) {
		t.Errorf("registry holds %d schemas, want %d: %v", got, len(want), Names())
	}
}

func TestSchemaShapeIsConsistent(t *testing.T) {
	for _, name := range Names() {
		s := MustGet(name)
		seen := make(map[string]bool, len(s.Fields))
		for i, f := range s.Fields {
			if f.Name == "" {
				t.Errorf("%s: field %d has empty name", name, i)
			}
			if seen[f.Name] {
				t.Errorf("%s: duplicate column %q", name, f.Name)
			}
			seen[f.Name] = true
			if f.Type == TypeInvalid {
				t.Errorf("%s.%s: field has invalid type", name, f.Name)
			}
		}
	}
}

func TestIndexAndField(t *testing.T) {
	s := MustGet(DimTeam)
	if got := s.Index("short_name"); got != 2 {
		t.Errorf("Index(short_name) = %d, want 2", got)
	}
	if got := s.Index("nope"); got != -1 {
		t.Errorf("Index(nope) = %d, want -1", got)
	}
	f, ok := s.Field("team_id")
	if !ok || f.Type != TypeInt32 {
		t.Errorf("Field(team_id) = (%v, %v), want int32 field", f, ok)
	}
}

func TestAggregateColumnGeneration(t *testing.T) {
	counts := AggregateCountMetrics()
	if len(counts) != 2+2*len(RunSubtypes)+16 {
		t.Fatalf("AggregateCountMetrics() has %d names, want %d", len(counts), 2+2*len(RunSubtypes)+16)
	}

	player := MustGet(GoldPlayerAggregates)
	for _, name := range counts {
		if player.Index(name) < 0 {
			t.Errorf("player aggregates missing count column %q", name)
		}
		if player.Index(name+"_90") < 0 {
			t.Errorf("player aggregates missing per-90 column %q", name+"_90")
		}
	}
	for _, r := range AggregateRatios() {
		if player.Index(r.Name) < 0 {
			t.Errorf("player aggregates missing ratio column %q", r.Name)
		}
		if player.Index(r.Numerator) < 0 || player.Index(r.Denominator) < 0 {
			t.Errorf("ratio %q references unregistered operand", r.Name)
		}
	}
	for _, name := range PassCountMetrics() {
		if player.Index(name) < 0 || player.Index(name+"_90") < 0 {
			t.Errorf("player aggregates missing pass columns for %q", name)
		}
	}

	team := MustGet(GoldTeamAggregates)
	for _, line := range TeamLines {
		if team.Index(line.Name+"_recoveries") < 0 {
			t.Errorf("team aggregates missing %s_recoveries", line.Name)
		}
		if team.Index(line.Name+"_recovery_height_avg") < 0 {
			t.Errorf("team aggregates missing %s_recovery_height_avg", line.Name)
		}
	}
	for _, name := range PassCountMetrics() {
		if team.Index(name) >= 0 {
			t.Errorf("team aggregates unexpectedly has pass column %q", name)
		}
	}
}

func TestRunSubtypeColumnsPaired(t *testing.T) {
	counts := AggregateCountMetrics()
	for _, s := range RunSubtypes {
		var base, targeted bool
		for _, name := range counts {
			if name == s+"_runs" {
				base = true
			}
			if name == s+"_runs_targeted" {
				targeted = true
			}
		}
		if !base || !targeted {
			t.Errorf("subtype %q missing paired run columns", s)
		}
	}
	for _, name := range counts {
		if strings.HasSuffix(name, "_pct") {
			t.Errorf("count metric %q looks like a ratio column", name)
		}
	}
}
