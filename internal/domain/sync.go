package domain

import (
	"bytes"
	"encoding/json"
)

// EntityType names the four syncable levels of the hierarchy.
type EntityType string

const (
	EntityWorkspace EntityType = "workspace"
	EntityBoard     EntityType = "board"
	EntityList      EntityType = "list"
	EntityCard      EntityType = "card"
)

// Operation is the kind of mutation a change carries.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// EntityRef points at an entity on a given level.
type EntityRef struct {
	Type EntityType
	ID   string
}

// SyncChange is one client-originated mutation.
type SyncChange struct {
	EntityType        EntityType      `json:"entityType" validate:"required,oneof=workspace board list card"`
	EntityID          string          `json:"entityId" validate:"required,max=64"`
	Operation         Operation       `json:"operation" validate:"required,oneof=create update delete"`
	ParentID          string          `json:"parentId,omitempty" validate:"omitempty,max=64"`
	Data              json.RawMessage `json:"data,omitempty"`
	ExpectedUpdatedAt string          `json:"expectedUpdatedAt,omitempty" validate:"omitempty,max=64"`
	Timestamp         *float64        `json:"timestamp" validate:"required"`
}

// Ref returns the entity the change targets.
func (c SyncChange) Ref() EntityRef {
	return EntityRef{Type: c.EntityType, ID: c.EntityID}
}

// HasData reports whether the change carries a non-null data payload.
func (c SyncChange) HasData() bool {
	d := bytes.TrimSpace(c.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// Clock returns the client logical timestamp used for batch ordering.
func (c SyncChange) Clock() float64 {
	if c.Timestamp == nil {
		return 0
	}
	return *c.Timestamp
}

// SyncRequest is the body of PATCH /sync.
type SyncRequest struct {
	Changes []SyncChange `json:"changes" validate:"required,dive"`
}

// FailedChange pairs a change with the reason it was not applied.
type FailedChange struct {
	Change SyncChange `json:"change"`
	Error  string     `json:"error"`
}

// Conflict reports that the server copy is newer than the client's baseline.
// PendingChange lets the client replay the change after manual resolution.
type Conflict struct {
	EntityType      EntityType `json:"entityType"`
	EntityID        string     `json:"entityId"`
	EntityName      string     `json:"entityName"`
	ClientUpdatedAt string     `json:"clientUpdatedAt"`
	ServerUpdatedAt string     `json:"serverUpdatedAt"`
	ServerData      any        `json:"serverData"`
	PendingChange   SyncChange `json:"pendingChange"`
}

// SyncResult is the aggregated outcome of a batch.
type SyncResult struct {
	Success       bool           `json:"success"`
	AppliedCount  int            `json:"appliedCount"`
	FailedChanges []FailedChange `json:"failedChanges,omitempty"`
	Conflicts     []Conflict     `json:"conflicts,omitempty"`
	ServerVersion int64          `json:"serverVersion"`
}
