// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// Catalog entities that emit change events.
const (
	EntityDirector = "director"
	EntityGenre    = "genre"
)

// Actions carried in CatalogEvent.Type after the entity prefix.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// CatalogEvent is published after a director or genre is written through
// the API.  Type is "<entity>.<action>", e.g. "genre.deleted".  Name is
// empty for deletes.
type CatalogEvent struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Entity     string `json:"entity"`
	EntityID   int64  `json:"entity_id"`
	Name       string `json:"name,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// NewCatalogEvent stamps a fresh event id and the current UTC time.
func NewCatalogEvent(entity, action string, entityID int64, name string) CatalogEvent {
	return CatalogEvent{
		ID:         uuid.NewString(),
		Type:       entity + "." + action,
		Entity:     entity,
		EntityID:   entityID,
		Name:       name,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
