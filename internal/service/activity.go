package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Rrens/boardsync/internal/domain"
	"github.com/Rrens/boardsync/internal/permission"
)

const defaultActivityLimit = 50

// ActivityLogger writes and reads the activity trail of lists and cards
type ActivityLogger struct {
	repo     domain.ActivityRepository
	resolver RoleResolver
	now      func() time.Time
}

// NewActivityLogger creates a new activity logger
func NewActivityLogger(repo domain.ActivityRepository, resolver RoleResolver) *ActivityLogger {
	return &ActivityLogger{repo: repo, resolver: resolver, now: time.Now}
}

// Record appends one entry for an applied list or card change. Other entity
// types are ignored. Callers treat a returned error as non-fatal.
func (l *ActivityLogger) Record(ctx context.Context, userID string, change domain.SyncChange, outcome *ApplyOutcome) error {
	if l == nil || outcome == nil {
		return nil
	}

	nameKey := "name"
	switch change.EntityType {
	case domain.EntityList:
	case domain.EntityCard:
		nameKey = "title"
	default:
		return nil
	}

	details := map[string]any{nameKey: outcome.Name}
	if len(outcome.Fields) > 0 {
		details["fields"] = outcome.Fields
	}
	if outcome.FromListID != "" {
		details["fromListId"] = outcome.FromListID
		details["toListId"] = outcome.ToListID
	}

	return l.repo.Create(ctx, &domain.ActivityLogEntry{
		ID:         uuid.NewString(),
		EntityType: change.EntityType,
		EntityID:   change.EntityID,
		UserID:     userID,
		Action:     outcome.Action,
		Details:    details,
		CreatedAt:  domain.FormatTimestamp(l.now()),
	})
}

// History returns the newest entries for a list or card the caller can view
func (l *ActivityLogger) History(ctx context.Context, userID string, ref domain.EntityRef, limit int) ([]domain.ActivityLogEntry, error) {
	role, err := l.resolver.ResolveRole(ctx, userID, ref)
	if err != nil {
		return nil, err
	}
	if !permission.CanView(role) {
		return nil, domain.ErrPermissionDenied
	}

	if limit <= 0 || limit > 500 {
		limit = defaultActivityLimit
	}
	return l.repo.ListByEntity(ctx, ref.Type, ref.ID, limit)
}
