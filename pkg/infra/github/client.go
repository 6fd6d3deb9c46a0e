package github

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/neziw/releasecheck/pkg/domain/interfaces"
	"github.com/neziw/releasecheck/pkg/domain/model"
	"github.com/neziw/releasecheck/pkg/domain/types"
)

// DefaultBaseURL is the GitHub REST API origin
const DefaultBaseURL = "https://api.github.com/"

// config holds internal client configuration
type config struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option is a functional option for Client configuration
type Option func(*config)

// WithBaseURL sets the API origin, e.g. a GitHub Enterprise endpoint or a test server
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithToken sets a static bearer token sent as the Authorization header
func WithToken(token string) Option {
	return func(c *config) {
		c.token = token
	}
}

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *config) {
		c.httpClient = httpClient
	}
}

type client struct {
	githubClient *github.Client
}

// NewClient creates a GitHub REST client. Without WithToken requests are anonymous.
func NewClient(opts ...Option) (interfaces.GitHubClient, error) {
	cfg := &config{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// go-github resolves request paths against BaseURL, which must end with a slash
	baseURL, err := url.Parse(strings.TrimRight(cfg.baseURL, "/") + "/")
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, goerr.New("invalid GitHub API base URL",
			goerr.T(types.ErrTagConfig),
			goerr.V("base_url", cfg.baseURL))
	}

	githubClient := github.NewClient(cfg.httpClient)
	if cfg.token != "" {
		githubClient = githubClient.WithAuthToken(cfg.token)
	}
	githubClient.BaseURL = baseURL
	githubClient.UserAgent = types.UserAgent()

	return &client{
		githubClient: githubClient,
	}, nil
}

// GetRepository fetches repository metadata
func (c *client) GetRepository(ctx context.Context, owner, repo string) (*model.Repository, error) {
	var repository model.Repository
	if err := c.get(ctx, repoPath(owner, repo), &repository); err != nil {
		return nil, err
	}

	if repository.Name == "" {
		return nil, goerr.New("repository response has no name",
			goerr.T(types.ErrTagDecode),
			goerr.V("owner", owner),
			goerr.V("repo", repo))
	}

	return &repository, nil
}

// GetLatestRelease fetches the release GitHub considers latest (newest non-draft, non-prerelease)
func (c *client) GetLatestRelease(ctx context.Context, owner, repo string) (*model.Release, error) {
	var release model.Release
	if err := c.get(ctx, repoPath(owner, repo)+"/releases/latest", &release); err != nil {
		return nil, err
	}

	if release.TagName == "" {
		return nil, goerr.New("release response has no tag_name",
			goerr.T(types.ErrTagDecode),
			goerr.V("owner", owner),
			goerr.V("repo", repo))
	}

	return &release, nil
}

// ListReleases fetches the first page of releases
func (c *client) ListReleases(ctx context.Context, owner, repo string) ([]*model.Release, error) {
	var releases []*model.Release
	if err := c.get(ctx, repoPath(owner, repo)+"/releases", &releases); err != nil {
		return nil, err
	}

	for i, release := range releases {
		if release == nil || release.TagName == "" {
			return nil, goerr.New("release list entry has no tag_name",
				goerr.T(types.ErrTagDecode),
				goerr.V("owner", owner),
				goerr.V("repo", repo),
				goerr.V("index", i))
		}
	}

	if releases == nil {
		releases = []*model.Release{}
	}
	return releases, nil
}

func repoPath(owner, repo string) string {
	return "repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo)
}

// get sends a GET request to path, relative to the base URL, and decodes the JSON response body into out
func (c *client) get(ctx context.Context, path string, out any) error {
	logger := ctxlog.From(ctx)

	req, err := c.githubClient.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create GitHub API request",
			goerr.T(types.ErrTagTransport),
			goerr.V("path", path))
	}
	req.Header.Set("Accept", "application/json")
	endpoint := req.URL.String()

	start := time.Now()
	resp, err := c.githubClient.Do(ctx, req, out)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	logger.Debug("GitHub API request",
		"url", endpoint,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if err == nil {
		return nil
	}

	if statusErr := toHTTPStatusError(endpoint, resp, err); statusErr != nil {
		return goerr.Wrap(statusErr, "GitHub API returned an error status",
			goerr.T(types.ErrTagHTTPStatus),
			goerr.V("url", endpoint),
			goerr.V("status", statusErr.StatusCode))
	}

	// A response with a success status means the body arrived but did not decode
	if resp != nil {
		return goerr.Wrap(err, "failed to decode GitHub API response",
			goerr.T(types.ErrTagDecode),
			goerr.V("url", endpoint),
			goerr.V("status", status))
	}

	return goerr.Wrap(err, "failed to send GitHub API request",
		goerr.T(types.ErrTagTransport),
		goerr.V("url", endpoint))
}

// toHTTPStatusError returns nil unless err reports a non-2xx response
func toHTTPStatusError(endpoint string, resp *github.Response, err error) *types.HTTPStatusError {
	var httpResp *http.Response
	var errResp *github.ErrorResponse
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	switch {
	case errors.As(err, &errResp):
		httpResp = errResp.Response
	case errors.As(err, &rateErr):
		httpResp = rateErr.Response
	case errors.As(err, &abuseErr):
		httpResp = abuseErr.Response
	case resp != nil && resp.Response != nil && (resp.StatusCode < 200 || resp.StatusCode > 299):
		httpResp = resp.Response
	}
	if httpResp == nil {
		return nil
	}

	// go-github restores the body it consumed while building the error
	var body []byte
	if httpResp.Body != nil {
		body, _ = io.ReadAll(httpResp.Body)
	}

	return &types.HTTPStatusError{
		URL:        endpoint,
		StatusCode: httpResp.StatusCode,
		Body:       body,
	}
}
