// Package versions discovers the latest released version of the upstream projects a
// generated site depends on. Lookups never fail: any problem resolves to the
// project's fallback version.
package versions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"wp-starter/internal/config"
	"wp-starter/internal/logger"
)

// versionPattern extracts a version from a tag name such as "v2.3.1" or "3.5.1".
var versionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)*`)

// tagRef is one entry of the GitHub git refs listing.
type tagRef struct {
	Ref string `json:"ref"` // e.g. refs/tags/v2.3.1
}

// Resolved holds the version chosen for each upstream project.
type Resolved struct {
	WordPress   string
	Bootstrap   string
	FontAwesome string
}

// Resolver looks up tags through the GitHub API.
type Resolver struct {
	apiURL     string
	strategy   string
	token      string
	httpClient *http.Client
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) {
		r.httpClient = c
	}
}

// WithStrategy selects how "latest" is picked among matching tags.
func WithStrategy(strategy string) Option {
	return func(r *Resolver) {
		r.strategy = strategy
	}
}

// New creates a Resolver against the given API base URL.
// GITHUB_TOKEN, when set, is sent for higher rate limits.
func New(apiURL string, opts ...Option) *Resolver {
	r := &Resolver{
		apiURL:     strings.TrimRight(apiURL, "/"),
		strategy:   config.StrategyLast,
		token:      os.Getenv("GITHUB_TOKEN"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the latest version of project, or its fallback when the lookup fails
// or no tag looks like a version. A cancelled ctx aborts the lookup.
func (r *Resolver) Resolve(ctx context.Context, project config.Project) string {
	tags, err := r.fetchTags(ctx, project.Repo)
	if err != nil {
		logger.Debug("[DEBUG] Tag lookup for %s failed: %v\n", project.Repo, err)
		return project.Fallback
	}

	version := r.pick(tags)
	if version == "" {
		logger.Debug("[DEBUG] No version-like tag in %d tags of %s\n", len(tags), project.Repo)
		return project.Fallback
	}
	return version
}

// ResolveAll looks up the three projects concurrently and waits for all of them.
func (r *Resolver) ResolveAll(ctx context.Context, v config.Versions) Resolved {
	var res Resolved
	var wg sync.WaitGroup

	// Each goroutine writes a distinct field, so no lock is needed.
	lookups := []struct {
		project config.Project
		dst     *string
	}{
		{v.WordPress, &res.WordPress},
		{v.Bootstrap, &res.Bootstrap},
		{v.FontAwesome, &res.FontAwesome},
	}
	for _, l := range lookups {
		wg.Add(1)
		go func(project config.Project, dst *string) {
			defer wg.Done()
			*dst = r.Resolve(ctx, project)
		}(l.project, l.dst)
	}

	wg.Wait()
	return res
}

// fetchTags returns the tag names of repo in the order the API lists them.
func (r *Resolver) fetchTags(ctx context.Context, repo string) ([]string, error) {
	url := fmt.Sprintf("%s/repos/%s/git/refs/tags", r.apiURL, repo)
	logger.Debug("[DEBUG] Fetching tags from URL: %s\n", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "wp-starter")
	if r.token != "" {
		req.Header.Set("Authorization", "token "+r.token)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching tags: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var refs []tagRef
	if err := json.NewDecoder(resp.Body).Decode(&refs); err != nil {
		return nil, fmt.Errorf("parsing tags JSON: %w", err)
	}

	tags := make([]string, 0, len(refs))
	for _, ref := range refs {
		tags = append(tags, strings.TrimPrefix(ref.Ref, "refs/tags/"))
	}
	return tags, nil
}

// pick chooses a version from tags according to the strategy.
func (r *Resolver) pick(tags []string) string {
	if r.strategy == config.StrategySemver {
		return highest(tags)
	}
	return lastInList(tags)
}

// lastInList returns the version of the last tag in API order that contains one.
// The list is not sorted; this mirrors how "latest" has always been chosen.
func lastInList(tags []string) string {
	for i := len(tags) - 1; i >= 0; i-- {
		if m := versionPattern.FindString(tags[i]); m != "" {
			return m
		}
	}
	return ""
}

// highest returns the greatest version by semver ordering among matching tags.
func highest(tags []string) string {
	var best *semver.Version
	var bestRaw string
	for _, tag := range tags {
		m := versionPattern.FindString(tag)
		if m == "" {
			continue
		}
		v, err := semver.NewVersion(m)
		if err != nil {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best, bestRaw = v, m
		}
	}
	return bestRaw
}
