package interfaces

import (
	"context"

	"github.com/neziw/releasecheck/pkg/domain/model"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent processes a webhook event
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}

// CheckUseCase defines on-demand release checks
type CheckUseCase interface {
	// Check compares version (released as tag) with the releases of owner/repo
	Check(ctx context.Context, owner, repo, version, tag string) (*model.CheckResult, error)
}
