package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/neziw/releasecheck/pkg/domain/interfaces"
	"github.com/neziw/releasecheck/pkg/domain/model"
)

type webhookUseCase struct {
	targets  []model.WatchTarget
	template Builder
	notifier interfaces.Notifier
}

// NewWebhook creates a WebhookUseCase that re-checks watched repositories when a release is published.
// template supplies token and API settings for the checkers it builds; owner and repository are set per event.
// notifier may be nil, in which case updates are only logged.
func NewWebhook(targets []model.WatchTarget, template Builder, notifier interfaces.Notifier) *webhookUseCase {
	return &webhookUseCase{
		targets:  targets,
		template: template,
		notifier: notifier,
	}
}

// ProcessEvent checks the watched version of the event's repository against its new release
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)

	logger.Info("Processing webhook event",
		"id", event.ID,
		"type", event.Type,
		"action", event.Action,
		"repository", event.Repository,
		"sender", event.Sender,
		"tag_name", event.TagName,
		"supported", event.IsSupportedEvent(),
	)

	if !event.IsSupportedEvent() {
		logger.Debug("Ignoring unsupported event",
			"type", event.Type,
			"action", event.Action,
		)
		return nil
	}

	owner, name, ok := event.SplitRepository()
	if !ok {
		logger.Warn("Ignoring release event without owner/name repository", "repository", event.Repository)
		return nil
	}

	target, ok := uc.lookup(owner, name)
	if !ok {
		logger.Info("Ignoring release of unwatched repository", "repository", event.Repository)
		return nil
	}

	// A fresh checker per event; an older instance would answer from its cache
	checker, err := uc.template.
		WithOwner(target.Owner).
		WithRepository(target.Name).
		Build()
	if err != nil {
		return goerr.Wrap(err, "failed to build checker", goerr.V("repository", target.FullName()))
	}

	result, err := checker.Check(ctx, target.Version, target.CurrentTag())
	if err != nil {
		return goerr.Wrap(err, "failed to check release",
			goerr.V("repository", target.FullName()),
			goerr.V("event_id", event.ID))
	}

	if !result.NewerAvailable {
		logger.Info("Watched version is up to date",
			"repository", result.FullName(),
			"current_version", result.CurrentVersion,
			"latest_tag", result.LatestTag,
		)
		return nil
	}

	if uc.notifier == nil {
		logger.Warn("Newer release available",
			"repository", result.FullName(),
			"current_version", result.CurrentVersion,
			"latest_tag", result.LatestTag,
			"releases_behind", result.ReleasesBehind,
		)
		return nil
	}

	if err := uc.notifier.NotifyUpdate(ctx, result); err != nil {
		return goerr.Wrap(err, "failed to notify update", goerr.V("repository", result.FullName()))
	}

	return nil
}

// lookup finds the watch target for owner/name. GitHub names are case-insensitive.
func (uc *webhookUseCase) lookup(owner, name string) (model.WatchTarget, bool) {
	for _, target := range uc.targets {
		if strings.EqualFold(target.Owner, owner) && strings.EqualFold(target.Name, name) {
			return target, true
		}
	}
	return model.WatchTarget{}, false
}
