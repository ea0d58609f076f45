package domain

import "context"

// Activity actions
const (
	ActivityCreated = "created"
	ActivityUpdated = "updated"
	ActivityDeleted = "deleted"
	ActivityMoved   = "moved"
)

// ActivityLogEntry is an append-only audit record for list and card mutations.
type ActivityLogEntry struct {
	ID         string         `json:"id"`
	EntityType EntityType     `json:"entityType"`
	EntityID   string         `json:"entityId"`
	UserID     string         `json:"userId"`
	Action     string         `json:"action"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  string         `json:"createdAt"`
}

// ActivityRepository defines the interface for activity storage. Entries are
// never updated or deleted.
type ActivityRepository interface {
	Create(ctx context.Context, entry *ActivityLogEntry) error
	ListByEntity(ctx context.Context, entityType EntityType, entityID string, limit int) ([]ActivityLogEntry, error)
}
