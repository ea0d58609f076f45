package permission

import (
	"context"
	"fmt"

	"github.com/Rrens/boardsync/internal/domain"
)

// Hierarchy is the read-only view of the store the resolver walks.
// Lookups return an empty string with a nil error when the row does not exist.
type Hierarchy interface {
	WorkspaceOwner(ctx context.Context, workspaceID string) (string, error)
	BoardWorkspaceOwner(ctx context.Context, boardID string) (string, error)
	ShareRole(ctx context.Context, boardID, userID string) (string, error)
	ListBoardID(ctx context.Context, listID string) (string, error)
	CardBoardID(ctx context.Context, cardID string) (string, error)
}

// Resolver derives a user's effective role on any entity of the hierarchy.
type Resolver struct {
	store Hierarchy
}

// NewResolver creates a new resolver
func NewResolver(store Hierarchy) *Resolver {
	return &Resolver{store: store}
}

// ResolveRole returns the caller's role on ref, or RoleNone when the entity is
// missing or not accessible. It never grants access as a side effect.
func (r *Resolver) ResolveRole(ctx context.Context, userID string, ref domain.EntityRef) (domain.Role, error) {
	if userID == "" || ref.ID == "" {
		return domain.RoleNone, nil
	}

	switch ref.Type {
	case domain.EntityWorkspace:
		owner, err := r.store.WorkspaceOwner(ctx, ref.ID)
		if err != nil {
			return domain.RoleNone, fmt.Errorf("failed to resolve workspace owner: %w", err)
		}
		if owner != "" && owner == userID {
			return domain.RoleOwner, nil
		}
		return domain.RoleNone, nil

	case domain.EntityBoard:
		return r.boardRole(ctx, userID, ref.ID)

	case domain.EntityList:
		boardID, err := r.store.ListBoardID(ctx, ref.ID)
		if err != nil {
			return domain.RoleNone, fmt.Errorf("failed to resolve list board: %w", err)
		}
		return r.boardRole(ctx, userID, boardID)

	case domain.EntityCard:
		boardID, err := r.store.CardBoardID(ctx, ref.ID)
		if err != nil {
			return domain.RoleNone, fmt.Errorf("failed to resolve card board: %w", err)
		}
		return r.boardRole(ctx, userID, boardID)
	}

	return domain.RoleNone, nil
}

func (r *Resolver) boardRole(ctx context.Context, userID, boardID string) (domain.Role, error) {
	if boardID == "" {
		return domain.RoleNone, nil
	}

	owner, err := r.store.BoardWorkspaceOwner(ctx, boardID)
	if err != nil {
		return domain.RoleNone, fmt.Errorf("failed to resolve board owner: %w", err)
	}
	if owner != "" && owner == userID {
		return domain.RoleOwner, nil
	}

	role, err := r.store.ShareRole(ctx, boardID, userID)
	if err != nil {
		return domain.RoleNone, fmt.Errorf("failed to resolve board share: %w", err)
	}
	return domain.ParseRole(role), nil
}
