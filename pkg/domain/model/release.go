package model

import (
	"slices"
	"time"
)

// Release represents a GitHub release as returned by the REST API
type Release struct {
	ID              int64     `json:"id"`
	HTMLURL         string    `json:"html_url"`
	TagName         string    `json:"tag_name"`
	TargetCommitish string    `json:"target_commitish"` // Branch or commit the tag points to
	Name            string    `json:"name"`
	Draft           bool      `json:"draft"`
	Prerelease      bool      `json:"prerelease"`
	CreatedAt       time.Time `json:"created_at"`
	PublishedAt     time.Time `json:"published_at"` // Zero for drafts
}

// SortReleasesByPublishedDesc sorts releases newest first. Releases published at the same instant keep their order.
func SortReleasesByPublishedDesc(releases []*Release) {
	slices.SortStableFunc(releases, func(a, b *Release) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
}
