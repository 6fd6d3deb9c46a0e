package config

import (
	"github.com/neziw/releasecheck/pkg/domain/interfaces"
	slackinfra "github.com/neziw/releasecheck/pkg/infra/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack notification configuration
type Slack struct {
	WebhookURL string `masq:"secret"`
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL for update notifications",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("RELEASECHECK_SLACK_WEBHOOK_URL"),
		},
	}
}

// Configure returns a notifier, or nil when no webhook URL is set
func (c *Slack) Configure() interfaces.Notifier {
	if c.WebhookURL == "" {
		return nil
	}
	return slackinfra.NewNotifier(c.WebhookURL)
}
