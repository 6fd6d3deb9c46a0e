package interfaces

import (
	"context"

	"github.com/neziw/releasecheck/pkg/domain/model"
)

// GitHubClient defines read-only operations against the GitHub REST API
type GitHubClient interface {
	// GetRepository fetches GET /repos/{owner}/{repo}
	GetRepository(ctx context.Context, owner, repo string) (*model.Repository, error)

	// GetLatestRelease fetches GET /repos/{owner}/{repo}/releases/latest
	GetLatestRelease(ctx context.Context, owner, repo string) (*model.Release, error)

	// ListReleases fetches the first page of GET /repos/{owner}/{repo}/releases in API order
	ListReleases(ctx context.Context, owner, repo string) ([]*model.Release, error)
}

// Notifier delivers update notices to humans
type Notifier interface {
	// NotifyUpdate reports that a newer release than the deployed version exists
	NotifyUpdate(ctx context.Context, result *model.CheckResult) error
}
