package model

import (
	"strings"
	"time"
)

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypeRelease WebhookEventType = "release"
	EventTypePing    WebhookEventType = "ping"
	EventTypeUnknown WebhookEventType = "unknown"
)

// WebhookEvent represents a webhook event received from GitHub
type WebhookEvent struct {
	ID         string           // Retrieved from X-GitHub-Delivery header
	Type       WebhookEventType // Retrieved from X-GitHub-Event header
	Action     string           // Event action (e.g., published, released)
	Repository string           // Repository full name (owner/name)
	Sender     string           // Sender username
	TagName    string           // Release tag, release events only
	ReceivedAt time.Time        // Time when the event was received
	RawPayload []byte           // Raw JSON payload
}

// IsSupportedEvent checks if the event should trigger a release check
func (e *WebhookEvent) IsSupportedEvent() bool {
	return e.Type == EventTypeRelease && e.Action == "released"
}

// SplitRepository splits Repository into owner and name. ok is false if it is not "owner/name".
func (e *WebhookEvent) SplitRepository() (owner, name string, ok bool) {
	owner, name, ok = strings.Cut(e.Repository, "/")
	if !ok || owner == "" || name == "" {
		return "", "", false
	}
	return owner, name, true
}
