package github

import (
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/neziw/releasecheck/pkg/domain/model"
)

// NewWebhookEvent converts a payload returned by github.ParseWebHook into a WebhookEvent.
// Payloads of event types other than release and ping become EventTypeUnknown.
func NewWebhookEvent(deliveryID, eventType string, payload any, body []byte) *model.WebhookEvent {
	event := &model.WebhookEvent{
		ID:         deliveryID,
		Type:       model.WebhookEventType(eventType),
		ReceivedAt: time.Now(),
		RawPayload: body,
	}

	// Get*() helpers are nil-safe
	switch e := payload.(type) {
	case *github.ReleaseEvent:
		event.Type = model.EventTypeRelease
		event.Action = e.GetAction()
		event.Repository = e.GetRepo().GetFullName()
		event.Sender = e.GetSender().GetLogin()
		event.TagName = e.GetRelease().GetTagName()
	case *github.PingEvent:
		event.Type = model.EventTypePing
	default:
		event.Type = model.EventTypeUnknown
	}

	return event
}
