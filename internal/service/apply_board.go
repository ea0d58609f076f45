package service

import (
	"context"

	"github.com/Rrens/boardsync/internal/domain"
	"github.com/Rrens/boardsync/internal/permission"
)

func (s *SyncService) applyBoardChange(ctx context.Context, userID string, change domain.SyncChange, guard string) (*ApplyOutcome, error) {
	switch change.Operation {
	case domain.OpCreate:
		if !change.HasData() {
			return nil, domain.ErrMissingData
		}
		if change.ParentID == "" {
			return nil, domain.ErrMissingParent
		}
		parent := domain.EntityRef{Type: domain.EntityWorkspace, ID: change.ParentID}
		if err := s.requireRole(ctx, userID, parent, isOwner); err != nil {
			return nil, err
		}
		patch, err := decodePatch[domain.BoardPatch](change.Data)
		if err != nil {
			return nil, err
		}
		created, updated, err := createStamps(patch.ClientStamps, timestamp(s.now))
		if err != nil {
			return nil, err
		}

		board := &domain.Board{
			ID:               change.EntityID,
			WorkspaceID:      change.ParentID,
			Name:             orDefault(patch.Name, "Untitled Board"),
			Description:      nonEmpty(patch.Description),
			Background:       nonEmpty(patch.Background),
			AllowedCardTypes: patch.AllowedCardTypes.Or(nil),
			IsPublic:         patch.IsPublic.Or(false),
			CreatedAt:        created,
			UpdatedAt:        updated,
		}
		if err := s.repos.Boards.Create(ctx, board); err != nil {
			return nil, err
		}
		return &ApplyOutcome{Action: domain.ActivityCreated, Name: board.Name}, nil

	case domain.OpUpdate:
		if !change.HasData() {
			return nil, domain.ErrMissingData
		}
		if err := s.requireRole(ctx, userID, change.Ref(), permission.CanManageBoard); err != nil {
			return nil, err
		}
		patch, err := decodePatch[domain.BoardPatch](change.Data)
		if err != nil {
			return nil, err
		}
		if patch.WorkspaceID.Set {
			if err := s.checkBoardReassignment(ctx, userID, change.EntityID, patch); err != nil {
				return nil, err
			}
		}
		if err := s.repos.Boards.Update(ctx, change.EntityID, patch, timestamp(s.now), guard); err != nil {
			return nil, err
		}
		return &ApplyOutcome{Action: domain.ActivityUpdated, Name: patch.Name.Or("")}, nil

	case domain.OpDelete:
		if err := s.requireRole(ctx, userID, change.Ref(), permission.CanManageBoard); err != nil {
			return nil, err
		}
		if err := s.repos.Boards.Delete(ctx, change.EntityID); err != nil {
			return nil, err
		}
		return &ApplyOutcome{Action: domain.ActivityDeleted}, nil
	}

	return nil, unknownOperation(change.Operation)
}

// checkBoardReassignment allows moving a board only between workspaces the
// caller owns.
func (s *SyncService) checkBoardReassignment(ctx context.Context, userID, boardID string, patch *domain.BoardPatch) error {
	target := patch.WorkspaceID.Or("")
	if target == "" {
		return &domain.ValidationError{Field: "workspaceId", Message: "cannot be cleared"}
	}

	board, err := s.repos.Boards.GetByID(ctx, boardID)
	if err != nil {
		return err
	}
	if board == nil {
		return domain.ErrPermissionDenied
	}
	if board.WorkspaceID == target {
		patch.WorkspaceID = domain.Optional[string]{}
		return nil
	}

	current := domain.EntityRef{Type: domain.EntityWorkspace, ID: board.WorkspaceID}
	if err := s.requireRole(ctx, userID, current, isOwner); err != nil {
		return err
	}

	role, err := s.resolveRole(ctx, userID, domain.EntityRef{Type: domain.EntityWorkspace, ID: target})
	if err != nil {
		return err
	}
	if role != domain.RoleOwner {
		return domain.ErrTargetNotFound
	}
	return nil
}
