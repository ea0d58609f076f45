package service

import (
	"context"

	"github.com/Rrens/boardsync/internal/domain"
	"github.com/Rrens/boardsync/internal/permission"
)

func (s *SyncService) applyListChange(ctx context.Context, userID string, change domain.SyncChange, guard string) (*ApplyOutcome, error) {
	switch change.Operation {
	case domain.OpCreate:
		if !change.HasData() {
			return nil, domain.ErrMissingData
		}
		if change.ParentID == "" {
			return nil, domain.ErrMissingParent
		}
		parent := domain.EntityRef{Type: domain.EntityBoard, ID: change.ParentID}
		if err := s.requireRole(ctx, userID, parent, permission.CanManageLists); err != nil {
			return nil, err
		}
		patch, err := decodePatch[domain.ListPatch](change.Data)
		if err != nil {
			return nil, err
		}
		created, updated, err := createStamps(patch.ClientStamps, timestamp(s.now))
		if err != nil {
			return nil, err
		}

		list := &domain.List{
			ID:        change.EntityID,
			BoardID:   change.ParentID,
			Name:      orDefault(patch.Name, "Untitled List"),
			Position:  patch.Position.Or(0),
			Color:     nonEmpty(patch.Color),
			CreatedAt: created,
			UpdatedAt: updated,
		}
		if err := s.repos.Lists.Create(ctx, list); err != nil {
			return nil, err
		}
		return &ApplyOutcome{Action: domain.ActivityCreated, Name: list.Name}, nil

	case domain.OpUpdate:
		if !change.HasData() {
			return nil, domain.ErrMissingData
		}
		if err := s.requireRole(ctx, userID, change.Ref(), permission.CanManageLists); err != nil {
			return nil, err
		}
		patch, err := decodePatch[domain.ListPatch](change.Data)
		if err != nil {
			return nil, err
		}
		name, err := s.listName(ctx, change.EntityID, patch.Name)
		if err != nil {
			return nil, err
		}
		if err := s.repos.Lists.Update(ctx, change.EntityID, patch, timestamp(s.now), guard); err != nil {
			return nil, err
		}
		return &ApplyOutcome{Action: domain.ActivityUpdated, Name: name, Fields: patch.ChangedFields()}, nil

	case domain.OpDelete:
		if err := s.requireRole(ctx, userID, change.Ref(), permission.CanManageLists); err != nil {
			return nil, err
		}
		name, err := s.listName(ctx, change.EntityID, domain.Optional[string]{})
		if err != nil {
			return nil, err
		}
		if err := s.repos.Lists.Delete(ctx, change.EntityID); err != nil {
			return nil, err
		}
		return &ApplyOutcome{Action: domain.ActivityDeleted, Name: name}, nil
	}

	return nil, unknownOperation(change.Operation)
}

// listName prefers the patched name and falls back to the stored one.
func (s *SyncService) listName(ctx context.Context, id string, patched domain.Optional[string]) (string, error) {
	if v := patched.Or(""); v != "" {
		return v, nil
	}
	list, err := s.repos.Lists.GetByID(ctx, id)
	if err != nil || list == nil {
		return "", err
	}
	return list.Name, nil
}
