package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/neziw/releasecheck/pkg/domain/model"
)

func TestRelease_DecodeWireNames(t *testing.T) {
	body := `{
		"id": 123,
		"html_url": "https://github.com/o/r/releases/tag/v1.2.3",
		"tag_name": "v1.2.3",
		"target_commitish": "main",
		"name": "Release 1.2.3",
		"draft": false,
		"prerelease": true,
		"created_at": "2024-05-01T10:00:00Z",
		"published_at": "2024-05-01T12:30:00+02:00"
	}`

	var release model.Release
	gt.NoError(t, json.Unmarshal([]byte(body), &release))

	gt.Value(t, release.ID).Equal(int64(123))
	gt.Value(t, release.HTMLURL).Equal("https://github.com/o/r/releases/tag/v1.2.3")
	gt.Value(t, release.TagName).Equal("v1.2.3")
	gt.Value(t, release.TargetCommitish).Equal("main")
	gt.True(t, release.Prerelease)
	gt.True(t, release.PublishedAt.Equal(time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)))

	_, offset := release.PublishedAt.Zone()
	gt.Value(t, offset).Equal(2 * 60 * 60)
}

func TestSortReleasesByPublishedDesc(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	releases := []*model.Release{
		{TagName: "v1", PublishedAt: base},
		{TagName: "v3", PublishedAt: base.Add(48 * time.Hour)},
		{TagName: "draft"},
		{TagName: "v2", PublishedAt: base.Add(24 * time.Hour)},
	}

	model.SortReleasesByPublishedDesc(releases)

	var tags []string
	for _, r := range releases {
		tags = append(tags, r.TagName)
	}
	gt.Value(t, tags).Equal([]string{"v3", "v2", "v1", "draft"})
}

func TestWatchTarget_CurrentTag(t *testing.T) {
	gt.Value(t, model.WatchTarget{Version: "1.0.2"}.CurrentTag()).Equal("1.0.2")
	gt.Value(t, model.WatchTarget{Version: "1.0.2", Tag: "v1.0.2"}.CurrentTag()).Equal("v1.0.2")
	gt.Value(t, model.WatchTarget{Owner: "neziw", Name: "ReleaseChecker"}.FullName()).Equal("neziw/ReleaseChecker")
}
