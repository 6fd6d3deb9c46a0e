package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/neziw/releasecheck/pkg/domain/model"
	"github.com/neziw/releasecheck/pkg/domain/types"
	"github.com/neziw/releasecheck/pkg/usecase"
)

// MockGitHubClient is a mock implementation of GitHubClient
type MockGitHubClient struct {
	getRepositoryFunc    func(ctx context.Context, owner, repo string) (*model.Repository, error)
	getLatestReleaseFunc func(ctx context.Context, owner, repo string) (*model.Release, error)
	listReleasesFunc     func(ctx context.Context, owner, repo string) ([]*model.Release, error)

	repositoryCalls int
	latestCalls     int
	listCalls       int
}

func (m *MockGitHubClient) GetRepository(ctx context.Context, owner, repo string) (*model.Repository, error) {
	m.repositoryCalls++
	if m.getRepositoryFunc != nil {
		return m.getRepositoryFunc(ctx, owner, repo)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockGitHubClient) GetLatestRelease(ctx context.Context, owner, repo string) (*model.Release, error) {
	m.latestCalls++
	if m.getLatestReleaseFunc != nil {
		return m.getLatestReleaseFunc(ctx, owner, repo)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockGitHubClient) ListReleases(ctx context.Context, owner, repo string) ([]*model.Release, error) {
	m.listCalls++
	if m.listReleasesFunc != nil {
		return m.listReleasesFunc(ctx, owner, repo)
	}
	return nil, errors.New("mock not configured")
}

func latestRelease(tag string) func(ctx context.Context, owner, repo string) (*model.Release, error) {
	return func(ctx context.Context, owner, repo string) (*model.Release, error) {
		return &model.Release{TagName: tag, HTMLURL: "https://github.com/" + owner + "/" + repo + "/releases/tag/" + tag}, nil
	}
}

func releaseList(releases ...*model.Release) func(ctx context.Context, owner, repo string) ([]*model.Release, error) {
	return func(ctx context.Context, owner, repo string) ([]*model.Release, error) {
		return releases, nil
	}
}

func newChecker(t *testing.T, mock *MockGitHubClient) *usecase.Checker {
	t.Helper()
	checker, err := usecase.NewBuilder().
		WithOwner("owner").
		WithRepository("repo").
		WithClient(mock).
		Build()
	gt.NoError(t, err)
	return checker
}

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestChecker_FetchRepository_Cached(t *testing.T) {
	ctx := context.Background()
	mock := &MockGitHubClient{
		getRepositoryFunc: func(ctx context.Context, owner, repo string) (*model.Repository, error) {
			gt.Value(t, owner).Equal("owner")
			gt.Value(t, repo).Equal("repo")
			return &model.Repository{Name: repo, FullName: owner + "/" + repo}, nil
		},
	}
	checker := newChecker(t, mock)

	first, err := checker.FetchRepository(ctx)
	gt.NoError(t, err)
	second, err := checker.FetchRepository(ctx)
	gt.NoError(t, err)

	gt.Value(t, second).Equal(first)
	gt.Value(t, first.FullName).Equal("owner/repo")
	gt.Value(t, mock.repositoryCalls).Equal(1)
}

func TestChecker_FetchRepository_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	mock := &MockGitHubClient{
		getRepositoryFunc: func(ctx context.Context, owner, repo string) (*model.Repository, error) {
			return nil, goerr.New("connection refused", goerr.T(types.ErrTagTransport))
		},
	}
	checker := newChecker(t, mock)

	_, err := checker.FetchRepository(ctx)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagTransport))

	_, err = checker.FetchRepository(ctx)
	gt.Error(t, err)
	gt.Value(t, mock.repositoryCalls).Equal(2)
}

func TestChecker_FetchReleaseList_SortedDescending(t *testing.T) {
	ctx := context.Background()
	mock := &MockGitHubClient{
		listReleasesFunc: releaseList(
			&model.Release{TagName: "v2", PublishedAt: day0.Add(24 * time.Hour)},
			&model.Release{TagName: "v1", PublishedAt: day0},
			&model.Release{TagName: "v4", PublishedAt: day0.Add(72 * time.Hour)},
			&model.Release{TagName: "v3", PublishedAt: day0.Add(48 * time.Hour)},
		),
	}
	checker := newChecker(t, mock)

	releases, err := checker.FetchReleaseList(ctx)
	gt.NoError(t, err)
	gt.A(t, releases).Length(4)

	for i := 1; i < len(releases); i++ {
		gt.True(t, releases[i-1].PublishedAt.After(releases[i].PublishedAt))
	}
	gt.Value(t, releases[0].TagName).Equal("v4")
	gt.Value(t, releases[3].TagName).Equal("v1")
}

func TestChecker_FetchReleaseList_EmptyFetchedOnce(t *testing.T) {
	ctx := context.Background()
	mock := &MockGitHubClient{
		listReleasesFunc: releaseList(),
	}
	checker := newChecker(t, mock)

	for i := 0; i < 3; i++ {
		releases, err := checker.FetchReleaseList(ctx)
		gt.NoError(t, err)
		gt.A(t, releases).Length(0)
	}
	gt.Value(t, mock.listCalls).Equal(1)

	behind, err := checker.CountReleasesBehind(ctx, "v1")
	gt.NoError(t, err)
	gt.Value(t, behind).Equal(-1)
	gt.Value(t, mock.listCalls).Equal(1)
}

func TestChecker_CountReleasesBehind(t *testing.T) {
	ctx := context.Background()
	mock := &MockGitHubClient{
		listReleasesFunc: releaseList(
			&model.Release{TagName: "v1", PublishedAt: day0},
			&model.Release{TagName: "v3", PublishedAt: day0.Add(48 * time.Hour)},
			&model.Release{TagName: "v2", PublishedAt: day0.Add(24 * time.Hour)},
		),
	}
	checker := newChecker(t, mock)

	tests := []struct {
		tag  string
		want int
	}{
		{"v3", 0},
		{"v2", 1},
		{"v1", 2},
		{"v9", -1},
		{"2", -1},
		{"V2", -1},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := checker.CountReleasesBehind(ctx, tt.tag)
			gt.NoError(t, err)
			gt.Value(t, got).Equal(tt.want)
		})
	}

	gt.Value(t, mock.listCalls).Equal(1)
}

func TestChecker_CountReleasesBehind_FetchError(t *testing.T) {
	mock := &MockGitHubClient{
		listReleasesFunc: func(ctx context.Context, owner, repo string) ([]*model.Release, error) {
			return nil, goerr.Wrap(&types.HTTPStatusError{StatusCode: http.StatusInternalServerError}, "boom",
				goerr.T(types.ErrTagHTTPStatus))
		},
	}
	checker := newChecker(t, mock)

	_, err := checker.CountReleasesBehind(context.Background(), "v1")
	gt.Error(t, err)
	statusErr, ok := types.AsHTTPStatusError(err)
	gt.True(t, ok)
	gt.Value(t, statusErr.StatusCode).Equal(http.StatusInternalServerError)
}

func TestChecker_IsNewerVersionAvailable(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		latestTag string
		want      bool
	}{
		{"patch available", "1.0.0", "v1.0.1", true},
		{"up to date", "1.0.0", "v1.0.0", false},
		{"ahead of latest", "1.0.0", "v0.9.9", false},
		{"shorter prefix", "1.2", "1.2.1", true},
		{"decorated tag", "2.3.3", "release-2.3.4-beta", true},
		{"numeric not lexical", "1.9.0", "v1.10.0", true},
		{"qualifier after last dot", "1.0.0", "v1.2.3.RELEASE", true},
		{"final qualifier", "1.0.0", "5.3.0.Final", true},
		{"trailing dot", "1.0.0", "v2.0.", true},
		{"qualified same version", "1.2.3", "v1.2.3.RELEASE", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockGitHubClient{getLatestReleaseFunc: latestRelease(tt.latestTag)}
			checker := newChecker(t, mock)

			got, err := checker.IsNewerVersionAvailable(context.Background(), tt.version)
			gt.NoError(t, err)
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestChecker_IsNewerVersionAvailable_ParseError(t *testing.T) {
	mock := &MockGitHubClient{getLatestReleaseFunc: latestRelease("v1.0.1")}
	checker := newChecker(t, mock)

	_, err := checker.IsNewerVersionAvailable(context.Background(), "v1.0.0")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagParse))

	mock = &MockGitHubClient{getLatestReleaseFunc: latestRelease("nightly")}
	checker = newChecker(t, mock)

	_, err = checker.IsNewerVersionAvailable(context.Background(), "1.0.0")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagParse))
}

func TestChecker_Check(t *testing.T) {
	mock := &MockGitHubClient{
		getLatestReleaseFunc: latestRelease("v1.2.0"),
		listReleasesFunc: releaseList(
			&model.Release{TagName: "v1.0.0", PublishedAt: day0},
			&model.Release{TagName: "v1.2.0", PublishedAt: day0.Add(48 * time.Hour)},
			&model.Release{TagName: "v1.1.0", PublishedAt: day0.Add(24 * time.Hour)},
		),
	}
	checker := newChecker(t, mock)

	result, err := checker.Check(context.Background(), "1.0.0", "v1.0.0")
	gt.NoError(t, err)
	gt.Value(t, result.FullName()).Equal("owner/repo")
	gt.Value(t, result.LatestTag).Equal("v1.2.0")
	gt.True(t, result.NewerAvailable)
	gt.Value(t, result.ReleasesBehind).Equal(2)
	gt.Value(t, mock.latestCalls).Equal(1)

	t.Run("tag defaults to version", func(t *testing.T) {
		result, err := checker.Check(context.Background(), "1.0.0", "")
		gt.NoError(t, err)
		gt.Value(t, result.CurrentTag).Equal("1.0.0")
		gt.Value(t, result.ReleasesBehind).Equal(-1)
		gt.Value(t, mock.latestCalls).Equal(1)
		gt.Value(t, mock.listCalls).Equal(1)
	})
}

func TestChecker_HTTPCachedRequests(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		gt.Value(t, r.URL.Path).Equal("/repos/neziw/ReleaseChecker")
		gt.Value(t, r.Header.Get("Authorization")).Equal("Bearer secret-token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name": "ReleaseChecker", "full_name": "neziw/ReleaseChecker"}`))
	}))
	defer server.Close()

	checker, err := usecase.NewBuilder().
		WithOwner("neziw").
		WithRepository("ReleaseChecker").
		WithToken("secret-token").
		WithBaseURL(server.URL).
		Build()
	gt.NoError(t, err)

	for i := 0; i < 3; i++ {
		repo, err := checker.FetchRepository(context.Background())
		gt.NoError(t, err)
		gt.Value(t, repo.Name).Equal("ReleaseChecker")
	}
	gt.Value(t, hits.Load()).Equal(int32(1))
}

func TestChecker_HTTPStatusSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	checker, err := usecase.NewBuilder().
		WithOwner("neziw").
		WithRepository("no-releases").
		WithBaseURL(server.URL).
		Build()
	gt.NoError(t, err)

	_, err = checker.IsNewerVersionAvailable(context.Background(), "1.0.0")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagHTTPStatus))
	gt.True(t, types.IsNotFound(err))
}
