package model

import "time"

// CheckResult summarizes how a running version relates to the releases of a repository
type CheckResult struct {
	Owner           string    `json:"owner"`
	Repo            string    `json:"repo"`
	CurrentVersion  string    `json:"current_version"`
	CurrentTag      string    `json:"current_tag"`
	LatestTag       string    `json:"latest_tag"`
	LatestURL       string    `json:"latest_url"`
	LatestPublished time.Time `json:"latest_published_at"`
	NewerAvailable  bool      `json:"newer_available"`
	ReleasesBehind  int       `json:"releases_behind"` // -1 if CurrentTag is not in the release list
}

// FullName returns "owner/repo"
func (r *CheckResult) FullName() string {
	return r.Owner + "/" + r.Repo
}

// WatchTarget is a repository whose releases are compared against a deployed version
type WatchTarget struct {
	Owner   string `toml:"owner"`
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Tag     string `toml:"tag"` // Defaults to Version
}

// FullName returns "owner/name"
func (w WatchTarget) FullName() string {
	return w.Owner + "/" + w.Name
}

// CurrentTag returns the release tag of the deployed version
func (w WatchTarget) CurrentTag() string {
	if w.Tag != "" {
		return w.Tag
	}
	return w.Version
}
