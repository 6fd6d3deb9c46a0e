package config

import (
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API and webhook configuration
type GitHub struct {
	Token         string `masq:"secret"`
	APIURL        string
	WebhookSecret string `masq:"secret"`
}

// Flags returns CLI flags for GitHub API access
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token used as Bearer credential for API requests",
			Destination: &c.Token,
			Sources:     cli.EnvVars("RELEASECHECK_GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL",
			Value:       "https://api.github.com/",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("RELEASECHECK_GITHUB_API_URL"),
		},
	}
}

// WebhookFlags returns CLI flags for receiving GitHub webhooks
func (c *GitHub) WebhookFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret (webhook endpoint is disabled when empty)",
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("RELEASECHECK_GITHUB_WEBHOOK_SECRET"),
		},
	}
}
