// Package github fetches public repository metadata for the portfolio's
// project cards.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"portfolio/internal/cache"
	"portfolio/internal/observability"
)

// RepoInfo is the aggregated repository view the frontend widget renders.
type RepoInfo struct {
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     string    `json:"description"`
	Stars           int       `json:"stars"`
	Forks           int       `json:"forks"`
	Watchers        int       `json:"watchers"`
	OpenIssues      int       `json:"open_issues"`
	PrimaryLanguage string    `json:"primary_language"`
	Languages       []string  `json:"languages"`
	Topics          []string  `json:"topics"`
	License         string    `json:"license"`
	HTMLURL         string    `json:"html_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Readme          string    `json:"readme,omitempty"`
}

// UpstreamError carries the GitHub status code so the handler can surface a
// 502 with the upstream status attached.
type UpstreamError struct {
	StatusCode int
	Owner      string
	Repo       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("github returned %d for %s/%s", e.StatusCode, e.Owner, e.Repo)
}

// Client talks to the GitHub REST API with a short timeout and serves
// results through the Redis cache so a flaky upstream never blocks a page.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a GitHub API client. An empty token means unauthenticated
// requests, which is fine at portfolio traffic levels.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// repoPayload mirrors the fields of the GitHub repository resource we read.
type repoPayload struct {
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Description string   `json:"description"`
	Stars       int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	Watchers    int      `json:"subscribers_count"`
	OpenIssues  int      `json:"open_issues_count"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
	License     *struct {
		SPDXID string `json:"spdx_id"`
	} `json:"license"`
	HTMLURL   string    `json:"html_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetRepo returns aggregated metadata for owner/repo, cache-aside with a
// 10 minute TTL. Languages and readme are best-effort: their failure does
// not fail the whole widget.
func (c *Client) GetRepo(ctx context.Context, owner, repo string) (*RepoInfo, error) {
	var info RepoInfo
	key := cache.GithubRepoKey(owner, repo)

	hit, err := cache.GetJSON(ctx, key, &info)
	if err == nil && hit {
		observability.GithubAPIRequests.WithLabelValues("hit").Inc()
		return &info, nil
	}

	payload, err := c.fetchRepo(ctx, owner, repo)
	if err != nil {
		observability.GithubAPIRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	observability.GithubAPIRequests.WithLabelValues("miss").Inc()

	info = RepoInfo{
		Name:            payload.Name,
		FullName:        payload.FullName,
		Description:     payload.Description,
		Stars:           payload.Stars,
		Forks:           payload.Forks,
		Watchers:        payload.Watchers,
		OpenIssues:      payload.OpenIssues,
		PrimaryLanguage: payload.Language,
		Topics:          payload.Topics,
		HTMLURL:         payload.HTMLURL,
		CreatedAt:       payload.CreatedAt,
		UpdatedAt:       payload.UpdatedAt,
	}
	if payload.License != nil {
		info.License = payload.License.SPDXID
	}

	if languages, err := c.fetchLanguages(ctx, owner, repo); err != nil {
		slog.Warn("github languages fetch failed", "repo", owner+"/"+repo, "error", err)
	} else {
		info.Languages = languages
	}
	if readme, err := c.fetchReadme(ctx, owner, repo); err != nil {
		slog.Warn("github readme fetch failed", "repo", owner+"/"+repo, "error", err)
	} else {
		info.Readme = readme
	}

	if err := cache.SetJSON(ctx, key, &info, cache.GithubRepoTTL); err != nil {
		slog.Warn("github cache write failed", "key", key, "error", err)
	}
	return &info, nil
}

func (c *Client) fetchRepo(ctx context.Context, owner, repo string) (*repoPayload, error) {
	var payload repoPayload
	if err := c.getJSON(ctx, fmt.Sprintf("/repos/%s/%s", owner, repo), owner, repo, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// fetchLanguages returns language names ordered by bytes of code, descending.
func (c *Client) fetchLanguages(ctx context.Context, owner, repo string) ([]string, error) {
	var byBytes map[string]int64
	if err := c.getJSON(ctx, fmt.Sprintf("/repos/%s/%s/languages", owner, repo), owner, repo, &byBytes); err != nil {
		return nil, err
	}

	languages := make([]string, 0, len(byBytes))
	for name := range byBytes {
		languages = append(languages, name)
	}
	sort.Slice(languages, func(i, j int) bool {
		if byBytes[languages[i]] != byBytes[languages[j]] {
			return byBytes[languages[i]] > byBytes[languages[j]]
		}
		return languages[i] < languages[j]
	})
	return languages, nil
}

const maxReadmeBytes = 64 * 1024

func (c *Client) fetchReadme(ctx context.Context, owner, repo string) (string, error) {
	req, err := c.newRequest(ctx, fmt.Sprintf("/repos/%s/%s/readme", owner, repo))
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github.raw+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Owner: owner, Repo: repo}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReadmeBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) newRequest(ctx context.Context, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, path, owner, repo string, dest any) error {
	req, err := c.newRequest(ctx, path)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("github request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &UpstreamError{StatusCode: resp.StatusCode, Owner: owner, Repo: repo}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode github response: %w", err)
	}
	return nil
}
