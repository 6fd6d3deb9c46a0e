package usecase

import (
	"context"
	"slices"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/neziw/releasecheck/pkg/domain/interfaces"
	"github.com/neziw/releasecheck/pkg/domain/model"
	"github.com/neziw/releasecheck/pkg/domain/version"
	"github.com/neziw/releasecheck/pkg/utils/memo"
)

// Checker answers release questions about one repository.
//
// Responses are cached for the lifetime of the Checker: each endpoint is
// requested at most once after it first succeeds, and nothing is ever
// invalidated. Create a new Checker to observe newer data. A Checker is safe
// for concurrent use.
type Checker struct {
	owner  string
	repo   string
	client interfaces.GitHubClient

	repository    memo.Slot[*model.Repository]
	latestRelease memo.Slot[*model.Release]
	releases      memo.Slot[[]*model.Release]
}

// Owner returns the repository owner
func (c *Checker) Owner() string { return c.owner }

// Repository returns the repository name
func (c *Checker) Repository() string { return c.repo }

// FullName returns "owner/repo"
func (c *Checker) FullName() string { return c.owner + "/" + c.repo }

// FetchRepository returns the repository metadata
func (c *Checker) FetchRepository(ctx context.Context) (*model.Repository, error) {
	return c.repository.Get(ctx, func(ctx context.Context) (*model.Repository, error) {
		repository, err := c.client.GetRepository(ctx, c.owner, c.repo)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to fetch repository",
				goerr.V("owner", c.owner),
				goerr.V("repo", c.repo))
		}
		return repository, nil
	})
}

// FetchLatestRelease returns the release GitHub marks as latest
func (c *Checker) FetchLatestRelease(ctx context.Context) (*model.Release, error) {
	return c.latestRelease.Get(ctx, func(ctx context.Context) (*model.Release, error) {
		release, err := c.client.GetLatestRelease(ctx, c.owner, c.repo)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to fetch latest release",
				goerr.V("owner", c.owner),
				goerr.V("repo", c.repo))
		}
		return release, nil
	})
}

// FetchReleaseList returns the first page of releases, newest published first.
// The returned slice is shared with the cache and must not be modified.
func (c *Checker) FetchReleaseList(ctx context.Context) ([]*model.Release, error) {
	return c.releases.Get(ctx, func(ctx context.Context) ([]*model.Release, error) {
		releases, err := c.client.ListReleases(ctx, c.owner, c.repo)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to fetch release list",
				goerr.V("owner", c.owner),
				goerr.V("repo", c.repo))
		}

		sorted := slices.Clone(releases)
		if sorted == nil {
			sorted = []*model.Release{}
		}
		model.SortReleasesByPublishedDesc(sorted)

		ctxlog.From(ctx).Debug("Fetched release list",
			"owner", c.owner,
			"repo", c.repo,
			"count", len(sorted),
		)
		return sorted, nil
	})
}

// CountReleasesBehind returns how many releases were published after the release tagged tagName.
// It returns -1 if no release in the list has exactly that tag.
func (c *Checker) CountReleasesBehind(ctx context.Context, tagName string) (int, error) {
	releases, err := c.FetchReleaseList(ctx)
	if err != nil {
		return 0, err
	}

	for i, release := range releases {
		if release.TagName == tagName {
			return i, nil
		}
	}
	return -1, nil
}

// IsNewerVersionAvailable reports whether the latest release is newer than v.
// v must consist of dot-separated integers; the latest tag is reduced to digits and dots first.
func (c *Checker) IsNewerVersionAvailable(ctx context.Context, v string) (bool, error) {
	latest, err := c.FetchLatestRelease(ctx)
	if err != nil {
		return false, err
	}

	newer, err := version.IsNewer(v, version.Clean(latest.TagName))
	if err != nil {
		return false, goerr.Wrap(err, "failed to compare versions",
			goerr.V("version", v),
			goerr.V("latest_tag", latest.TagName))
	}
	return newer, nil
}

// Check compares v against the releases of the repository. tag is the release tag of v; if empty, v itself is used.
func (c *Checker) Check(ctx context.Context, v, tag string) (*model.CheckResult, error) {
	if tag == "" {
		tag = v
	}

	newer, err := c.IsNewerVersionAvailable(ctx, v)
	if err != nil {
		return nil, err
	}

	behind, err := c.CountReleasesBehind(ctx, tag)
	if err != nil {
		return nil, err
	}

	// Served from cache by IsNewerVersionAvailable above
	latest, err := c.FetchLatestRelease(ctx)
	if err != nil {
		return nil, err
	}

	result := &model.CheckResult{
		Owner:           c.owner,
		Repo:            c.repo,
		CurrentVersion:  v,
		CurrentTag:      tag,
		LatestTag:       latest.TagName,
		LatestURL:       latest.HTMLURL,
		LatestPublished: latest.PublishedAt,
		NewerAvailable:  newer,
		ReleasesBehind:  behind,
	}

	ctxlog.From(ctx).Info("Checked release",
		"repo", result.FullName(),
		"current_version", v,
		"latest_tag", latest.TagName,
		"newer_available", newer,
		"releases_behind", behind,
	)

	return result, nil
}
