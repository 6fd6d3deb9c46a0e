package http_test

import (
	"context"
	"errors"

	"github.com/neziw/releasecheck/pkg/domain/model"
)

// MockCheckUseCase is a mock implementation of CheckUseCase
type MockCheckUseCase struct {
	checkFunc func(ctx context.Context, owner, repo, version, tag string) (*model.CheckResult, error)
}

func (m *MockCheckUseCase) Check(ctx context.Context, owner, repo, version, tag string) (*model.CheckResult, error) {
	if m.checkFunc != nil {
		return m.checkFunc(ctx, owner, repo, version, tag)
	}
	return nil, errors.New("mock not configured")
}

// MockWebhookUseCase sends every processed event to events
type MockWebhookUseCase struct {
	events chan *model.WebhookEvent
}

func newMockWebhookUseCase() *MockWebhookUseCase {
	return &MockWebhookUseCase{events: make(chan *model.WebhookEvent, 8)}
}

func (m *MockWebhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	m.events <- event
	return nil
}
