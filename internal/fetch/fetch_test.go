// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package fetch

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// roundTripFunc routes requests to canned responses without a network.
type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestNew(t *testing.T) {
	f, err := New("https://github.com/SkillCorner/opendata/tree/master/data", t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if f.owner != "SkillCorner" || f.repo != "opendata" || f.ref != "master" || f.root != "data" {
		t.Errorf("New() parsed %s/%s@%s root %q, want SkillCorner/opendata@master data",
			f.owner, f.repo, f.ref, f.root)
	}

	if _, err := New("https://github.com/SkillCorner/opendata/tree/master/data/matches", t.TempDir()); err != nil {
		t.Errorf("New(nested path) error: %v", err)
	}

	bad := []string{
		"https://gitlab.com/a/b/tree/main/data",
		"https://github.com/a/b",
		"https://github.com/a/b/blob/main/file.json",
	}
	for _, url := range bad {
		if _, err := New(url, t.TempDir()); err == nil {
			t.Errorf("New(%q) = nil error, want failure", url)
		}
	}
}

func TestDownloadURL(t *testing.T) {
	f, err := New("https://github.com/SkillCorner/opendata/tree/master/data", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	// LFS-tracked tracking files resolve through the raw redirect endpoint.
	url, ok := f.downloadURL(contentsEntry{
		Name: "100_tracking_extrapolated.jsonl",
		Path: "data/matches/100/100_tracking_extrapolated.jsonl",
	})
	if !ok {
		t.Fatal("downloadURL(.jsonl) = not ok")
	}
	want := "https://github.com/SkillCorner/opendata/raw/refs/heads/master/data/matches/100/100_tracking_extrapolated.jsonl"
	if url != want {
		t.Errorf("downloadURL(.jsonl) = %q, want %q", url, want)
	}

	url, ok = f.downloadURL(contentsEntry{
		Name:        "100_match.json",
		DownloadURL: "https://raw.example/100_match.json",
	})
	if !ok || url != "https://raw.example/100_match.json" {
		t.Errorf("downloadURL(.json) = (%q, %v), want the contents API download URL", url, ok)
	}

	if _, ok := f.downloadURL(contentsEntry{Name: "README.md"}); ok {
		t.Error("downloadURL(README.md) = ok, want out of scope")
	}
}

func TestMirror(t *testing.T) {
	target := t.TempDir()

	rootListing := `[
		{"type": "dir", "name": "100", "path": "data/matches/100",
		 "url": "https://api.github.com/repos/SkillCorner/opendata/contents/data/matches/100?ref=master"}
	]`
	matchListing := `[
		{"type": "file", "name": "100_match.json", "path": "data/matches/100/100_match.json",
		 "download_url": "https://raw.example/100_match.json"},
		{"type": "file", "name": "100_tracking_extrapolated.jsonl",
		 "path": "data/matches/100/100_tracking_extrapolated.jsonl"},
		{"type": "file", "name": "100_dynamic_events.csv", "path": "data/matches/100/100_dynamic_events.csv",
		 "download_url": "https://raw.example/100_dynamic_events.csv"},
		{"type": "file", "name": "README.md", "path": "data/matches/100/README.md"}
	]`

	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
		url := req.URL.String()
		switch {
		case strings.Contains(url, "/contents/data/matches/100"):
			return response(http.StatusOK, matchListing)
		case strings.Contains(url, "/contents/data"):
			if got := req.Header.Get("Accept"); got != "application/vnd.github.v3+json" {
				t.Errorf("listing Accept header = %q", got)
			}
			return response(http.StatusOK, rootListing)
		case strings.HasSuffix(url, "100_match.json"):
			return response(http.StatusOK, `{"id": 100}`)
		case strings.HasSuffix(url, "100_tracking_extrapolated.jsonl"):
			return response(http.StatusOK, "{\"frame\": 1}\n")
		case strings.HasSuffix(url, "100_dynamic_events.csv"):
			return response(http.StatusInternalServerError, "boom")
		default:
			t.Errorf("unexpected request: %s", url)
			return response(http.StatusNotFound, "")
		}
	})}

	f, err := New("https://github.com/SkillCorner/opendata/tree/master/data", target, WithHTTPClient(client))
	if err != nil {
		t.Fatal(err)
	}

	res, err := f.Mirror(context.Background())
	if err != nil {
		t.Fatalf("Mirror() error: %v", err)
	}

	if len(res.Downloaded) != 2 {
		t.Errorf("Downloaded = %v, want two files", res.Downloaded)
	}
	if len(res.Failed) != 1 || !strings.HasSuffix(res.Failed[0], "100_dynamic_events.csv") {
		t.Errorf("Failed = %v, want the events file", res.Failed)
	}

	// Mirrored files are flattened into the target directory.
	body, err := os.ReadFile(filepath.Join(target, "100_match.json"))
	if err != nil {
		t.Fatalf("mirrored match file: %v", err)
	}
	if string(body) != `{"id": 100}` {
		t.Errorf("mirrored match body = %q", body)
	}
	if _, err := os.Stat(filepath.Join(target, "100_tracking_extrapolated.jsonl")); err != nil {
		t.Errorf("mirrored tracking file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(target, "README.md")); !os.IsNotExist(err) {
		t.Error("README.md mirrored, want skipped")
	}
}

func TestMirrorListingFailureAborts(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
		return response(http.StatusForbidden, "rate limited")
	})}

	f, err := New("https://github.com/SkillCorner/opendata/tree/master/data", t.TempDir(), WithHTTPClient(client))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Mirror(context.Background()); err == nil {
		t.Error("Mirror() with failing listing = nil error, want failure")
	}
}
