package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/neziw/releasecheck/pkg/domain/interfaces"
	"github.com/neziw/releasecheck/pkg/domain/model"
	"github.com/slack-go/slack"
)

type notifier struct {
	webhookURL string
}

// NewNotifier creates a Notifier posting to a Slack incoming webhook
func NewNotifier(webhookURL string) interfaces.Notifier {
	return &notifier{webhookURL: webhookURL}
}

// NotifyUpdate posts an update notice for result
func (n *notifier) NotifyUpdate(ctx context.Context, result *model.CheckResult) error {
	msg := &slack.WebhookMessage{
		Text: fmt.Sprintf("New release of %s: %s (running %s)", result.FullName(), result.LatestTag, result.CurrentVersion),
		Blocks: &slack.Blocks{
			BlockSet: []slack.Block{
				slack.NewSectionBlock(
					slack.NewTextBlockObject(slack.MarkdownType, formatNotice(result), false, false),
					nil, nil,
				),
			},
		},
	}

	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post Slack message", goerr.V("repository", result.FullName()))
	}
	return nil
}

func formatNotice(result *model.CheckResult) string {
	text := fmt.Sprintf("*<%s|%s %s>* is available\nRunning version: `%s`",
		result.LatestURL, result.FullName(), result.LatestTag, result.CurrentVersion)

	if result.ReleasesBehind >= 0 {
		text += fmt.Sprintf("\nReleases behind: %d", result.ReleasesBehind)
	}
	if !result.LatestPublished.IsZero() {
		text += "\nPublished: " + result.LatestPublished.UTC().Format("2006-01-02 15:04 MST")
	}
	return text
}
