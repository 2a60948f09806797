package outbound

import (
	"context"

	"github.com/google/uuid"
)

// EventType represents the type of a mutation event
type EventType string

const (
	EventTypeListingCreated  EventType = "listing.created"
	EventTypeListingUpdated  EventType = "listing.updated"
	EventTypeListingDeleted  EventType = "listing.deleted"
	EventTypeStatusChanged   EventType = "listing.status_changed"
	EventTypeAttachmentAdded EventType = "listing.attachment_added"
)

// Event describes a successfully applied mutation
type Event struct {
	Type      EventType              `json:"type"`
	ListingID uuid.UUID              `json:"listing_id"`
	ActorID   uuid.UUID              `json:"actor_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// Notifier delivers mutation events to the external notification
// collaborator. It is invoked synchronously after a mutation commits; a
// delivery failure is reported to the caller but must never roll the
// mutation back, so services log the error and move on.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
}
