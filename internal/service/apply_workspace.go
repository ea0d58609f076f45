package service

import (
	"context"

	"github.com/Rrens/boardsync/internal/domain"
)

func (s *SyncService) applyWorkspaceChange(ctx context.Context, userID string, change domain.SyncChange, guard string) (*ApplyOutcome, error) {
	switch change.Operation {
	case domain.OpCreate:
		if !change.HasData() {
			return nil, domain.ErrMissingData
		}
		patch, err := decodePatch[domain.WorkspacePatch](change.Data)
		if err != nil {
			return nil, err
		}
		created, updated, err := createStamps(patch.ClientStamps, timestamp(s.now))
		if err != nil {
			return nil, err
		}

		workspace := &domain.Workspace{
			ID:          change.EntityID,
			UserID:      userID,
			Name:        orDefault(patch.Name, "Untitled Workspace"),
			Description: nonEmpty(patch.Description),
			Icon:        nonEmpty(patch.Icon),
			Color:       nonEmpty(patch.Color),
			CreatedAt:   created,
			UpdatedAt:   updated,
		}
		if err := s.repos.Workspaces.Create(ctx, workspace); err != nil {
			return nil, err
		}
		return &ApplyOutcome{Action: domain.ActivityCreated, Name: workspace.Name}, nil

	case domain.OpUpdate:
		if !change.HasData() {
			return nil, domain.ErrMissingData
		}
		if err := s.requireRole(ctx, userID, change.Ref(), isOwner); err != nil {
			return nil, err
		}
		patch, err := decodePatch[domain.WorkspacePatch](change.Data)
		if err != nil {
			return nil, err
		}
		if err := s.repos.Workspaces.Update(ctx, change.EntityID, patch, timestamp(s.now), guard); err != nil {
			return nil, err
		}
		return &ApplyOutcome{Action: domain.ActivityUpdated, Name: patch.Name.Or("")}, nil

	case domain.OpDelete:
		if err := s.requireRole(ctx, userID, change.Ref(), isOwner); err != nil {
			return nil, err
		}
		if err := s.repos.Workspaces.Delete(ctx, change.EntityID); err != nil {
			return nil, err
		}
		return &ApplyOutcome{Action: domain.ActivityDeleted}, nil
	}

	return nil, unknownOperation(change.Operation)
}

func isOwner(role domain.Role) bool {
	return role == domain.RoleOwner
}
