package model

import "time"

// Repository represents GitHub repository metadata
type Repository struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	FullName        string          `json:"full_name"`
	Owner           RepositoryOwner `json:"owner"`
	Description     string          `json:"description"`
	HTMLURL         string          `json:"html_url"`
	DefaultBranch   string          `json:"default_branch"`
	StargazersCount int             `json:"stargazers_count"`
	ForksCount      int             `json:"forks_count"`
	WatchersCount   int             `json:"watchers_count"`
	OpenIssuesCount int             `json:"open_issues_count"`
	Fork            bool            `json:"fork"`
	Archived        bool            `json:"archived"`
	Private         bool            `json:"private"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	PushedAt        time.Time       `json:"pushed_at"`
}

// RepositoryOwner is the user or organization owning a repository
type RepositoryOwner struct {
	ID      int64  `json:"id"`
	Login   string `json:"login"`
	HTMLURL string `json:"html_url"`
}
