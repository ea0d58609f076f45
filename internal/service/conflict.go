package service

import (
	"context"
	"fmt"

	"github.com/Rrens/boardsync/internal/domain"
	"github.com/Rrens/boardsync/internal/permission"
)

// snapshot is the server copy of an entity used for conflict reporting.
type snapshot struct {
	name      string
	updatedAt string
	data      any
}

// checkConflict compares an update's expectedUpdatedAt with the stored
// updated_at. With no conflict it returns the observed updated_at as the
// guard for the conditional write, or "" when the change carries no baseline.
// Entities the caller cannot view never produce a conflict, so server data is
// not disclosed; the applicator rejects those changes instead.
func (s *SyncService) checkConflict(ctx context.Context, userID string, change domain.SyncChange) (*domain.Conflict, string, error) {
	if change.Operation != domain.OpUpdate || change.ExpectedUpdatedAt == "" {
		return nil, "", nil
	}

	clientTime, err := domain.ParseTimestamp(change.ExpectedUpdatedAt)
	if err != nil {
		return nil, "", fmt.Errorf("expectedUpdatedAt: %w", err)
	}

	snap, err := s.snapshot(ctx, change.Ref())
	if err != nil {
		return nil, "", err
	}
	if snap == nil {
		return nil, "", nil
	}

	role, err := s.resolveRole(ctx, userID, change.Ref())
	if err != nil {
		return nil, "", err
	}
	if !permission.CanView(role) {
		return nil, "", nil
	}

	serverTime, err := domain.ParseTimestamp(snap.updatedAt)
	if err != nil {
		// An unreadable server stamp cannot be ordered; the guard still
		// catches any write that lands before ours.
		return nil, snap.updatedAt, nil
	}

	if serverTime.After(clientTime) {
		return &domain.Conflict{
			EntityType:      change.EntityType,
			EntityID:        change.EntityID,
			EntityName:      snap.name,
			ClientUpdatedAt: change.ExpectedUpdatedAt,
			ServerUpdatedAt: snap.updatedAt,
			ServerData:      snap.data,
			PendingChange:   change,
		}, "", nil
	}

	return nil, snap.updatedAt, nil
}

func (s *SyncService) snapshot(ctx context.Context, ref domain.EntityRef) (*snapshot, error) {
	switch ref.Type {
	case domain.EntityWorkspace:
		w, err := s.repos.Workspaces.GetByID(ctx, ref.ID)
		if err != nil || w == nil {
			return nil, err
		}
		return &snapshot{name: w.Name, updatedAt: w.UpdatedAt, data: w}, nil

	case domain.EntityBoard:
		b, err := s.repos.Boards.GetByID(ctx, ref.ID)
		if err != nil || b == nil {
			return nil, err
		}
		return &snapshot{name: b.Name, updatedAt: b.UpdatedAt, data: b}, nil

	case domain.EntityList:
		l, err := s.repos.Lists.GetByID(ctx, ref.ID)
		if err != nil || l == nil {
			return nil, err
		}
		return &snapshot{name: l.Name, updatedAt: l.UpdatedAt, data: l}, nil

	case domain.EntityCard:
		c, err := s.repos.Cards.GetByID(ctx, ref.ID)
		if err != nil || c == nil {
			return nil, err
		}
		return &snapshot{name: c.Title, updatedAt: c.UpdatedAt, data: c}, nil
	}

	return nil, nil
}
