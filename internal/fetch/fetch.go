// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

// Package fetch mirrors match data files from a GitHub repository tree into
// a local directory. Regular files come from the contents API download URL;
// .jsonl tracking files are stored in Git LFS, where the download URL would
// return the LFS pointer, so those are resolved through the raw redirect
// endpoint instead.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/pitchlake/pitchlake/internal/logging"
)

const (
	apiBase        = "https://api.github.com/repos"
	requestTimeout = 60 * time.Second

	// GitHub's unauthenticated API budget is 60 requests/hour, but raw file
	// downloads are not metered the same way. 10 req/s matches the polite
	// pacing the upstream dataset's own tooling uses.
	requestsPerSecond = 10
)

// Result summarizes one mirror run.
type Result struct {
	Downloaded []string
	Failed     []string
}

// Fetcher walks a GitHub repository subtree and downloads data files.
type Fetcher struct {
	httpClient *http.Client
	limiter    *rate.Limiter

	owner  string
	repo   string
	ref    string
	root   string // repo-relative path of the subtree to mirror
	target string // local directory files land in
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the default HTTP client. Used by tests.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.httpClient = c }
}

// New creates a Fetcher for a GitHub tree URL of the form
// https://github.com/<owner>/<repo>/tree/<ref>/<path...>, mirroring into
// targetDir.
func New(repoURL, targetDir string, opts ...Option) (*Fetcher, error) {
	trimmed := strings.TrimPrefix(repoURL, "https://github.com/")
	if trimmed == repoURL {
		return nil, fmt.Errorf("unsupported repository URL: %s", repoURL)
	}
	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	if len(parts) < 4 || parts[2] != "tree" {
		return nil, fmt.Errorf("repository URL must reference a tree: %s", repoURL)
	}

	f := &Fetcher{
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		owner:      parts[0],
		repo:       parts[1],
		ref:        parts[3],
		root:       strings.Join(parts[4:], "/"),
		target:     targetDir,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Mirror walks the configured subtree recursively and downloads every
// .json, .jsonl, and .csv file into the target directory (flattened, as the
// source layout is one directory per match with unique file names). A file
// that fails to download is logged and skipped; only listing failures abort
// the walk.
func (f *Fetcher) Mirror(ctx context.Context) (*Result, error) {
	if err := os.MkdirAll(f.target, 0o750); err != nil {
		return nil, fmt.Errorf("create target directory %s: %w", f.target, err)
	}

	res := &Result{}
	if err := f.walk(ctx, f.contentsURL(f.root), res); err != nil {
		return res, err
	}

	logging.Info().
		Int("downloaded", len(res.Downloaded)).
		Int("failed", len(res.Failed)).
		Str("target", f.target).
		Msg("Mirror finished")
	return res, nil
}

// contentsEntry is the subset of the contents API object we consume.
type contentsEntry struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	URL         string `json:"url"`
	DownloadURL string `json:"download_url"`
}

func (f *Fetcher) walk(ctx context.Context, listURL string, res *Result) error {
	entries, err := f.list(ctx, listURL)
	if err != nil {
		return err
	}

	for _, e := range entries {
		switch e.Type {
		case "dir":
			logging.Debug().Str("dir", e.Name).Msg("Descending into subdirectory")
			if err := f.walk(ctx, e.URL, res); err != nil {
				return err
			}
		case "file":
			url, ok := f.downloadURL(e)
			if !ok {
				continue
			}
			dest := filepath.Join(f.target, path.Base(e.Path))
			if err := f.download(ctx, url, dest); err != nil {
				logging.Warn().Err(err).Str("file", e.Name).Msg("Download failed, file skipped")
				res.Failed = append(res.Failed, e.Path)
				continue
			}
			res.Downloaded = append(res.Downloaded, dest)
		}
	}
	return nil
}

// downloadURL picks the retrieval URL for a file entry, or reports the file
// as out of scope. LFS-tracked .jsonl files go through the raw endpoint,
// which follows the pointer to the actual object.
func (f *Fetcher) downloadURL(e contentsEntry) (string, bool) {
	switch {
	case strings.HasSuffix(e.Name, ".jsonl"):
		return fmt.Sprintf("https://github.com/%s/%s/raw/refs/heads/%s/%s", f.owner, f.repo, f.ref, e.Path), true
	case strings.HasSuffix(e.Name, ".json"), strings.HasSuffix(e.Name, ".csv"):
		return e.DownloadURL, true
	default:
		return "", false
	}
}

func (f *Fetcher) contentsURL(repoPath string) string {
	return fmt.Sprintf("%s/%s/%s/contents/%s?ref=%s", apiBase, f.owner, f.repo, repoPath, f.ref)
}

func (f *Fetcher) list(ctx context.Context, url string) ([]contentsEntry, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list %s: status %d", url, resp.StatusCode)
	}

	var entries []contentsEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode listing %s: %w", url, err)
	}
	return entries, nil
}

func (f *Fetcher) download(ctx context.Context, url, dest string) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dest, err)
	}

	logging.Debug().Str("path", dest).Msg("Download finished")
	return nil
}
