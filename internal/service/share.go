package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Rrens/boardsync/internal/domain"
	"github.com/Rrens/boardsync/internal/permission"
)

// ShareService manages board share grants
type ShareService struct {
	repos    Repositories
	resolver RoleResolver
	now      func() time.Time
}

// NewShareService creates a new share service
func NewShareService(repos Repositories, resolver RoleResolver) *ShareService {
	return &ShareService{repos: repos, resolver: resolver, now: time.Now}
}

func (s *ShareService) requireManager(ctx context.Context, userID, boardID string) error {
	role, err := s.resolver.ResolveRole(ctx, userID, domain.EntityRef{Type: domain.EntityBoard, ID: boardID})
	if err != nil {
		return fmt.Errorf("failed to resolve role: %w", err)
	}
	if !permission.CanManageBoard(role) {
		return domain.ErrPermissionDenied
	}
	return nil
}

// Grant gives a user a role on a board, replacing any previous grant
func (s *ShareService) Grant(ctx context.Context, userID, boardID string, input domain.ShareCreate) (*domain.BoardShare, error) {
	input.Normalize()
	if err := validateStruct(&input); err != nil {
		return nil, err
	}
	if input.UserID == "" && input.Email == "" {
		return nil, &domain.ValidationError{Field: "userId", Message: "userId or email is required"}
	}

	if err := s.requireManager(ctx, userID, boardID); err != nil {
		return nil, err
	}

	var (
		grantee *domain.User
		err     error
	)
	if input.UserID != "" {
		grantee, err = s.repos.Users.GetByID(ctx, input.UserID)
	} else {
		grantee, err = s.repos.Users.GetByEmail(ctx, input.Email)
	}
	if err != nil {
		return nil, err
	}
	if grantee == nil {
		return nil, domain.ErrTargetNotFound
	}

	board, err := s.repos.Boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, domain.ErrPermissionDenied
	}
	workspace, err := s.repos.Workspaces.GetByID(ctx, board.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if workspace != nil && workspace.UserID == grantee.ID {
		return nil, &domain.ValidationError{Field: "userId", Message: "user already owns this board"}
	}

	share := &domain.BoardShare{
		ID:        uuid.NewString(),
		BoardID:   boardID,
		UserID:    grantee.ID,
		Role:      input.Role,
		CreatedAt: timestamp(s.now),
	}
	if err := s.repos.Shares.Upsert(ctx, share); err != nil {
		return nil, err
	}

	return share, nil
}

// List returns every grant on a board
func (s *ShareService) List(ctx context.Context, userID, boardID string) ([]domain.BoardShare, error) {
	if err := s.requireManager(ctx, userID, boardID); err != nil {
		return nil, err
	}
	return s.repos.Shares.ListByBoard(ctx, boardID)
}

// Revoke removes a grant. Users may always remove their own grant.
func (s *ShareService) Revoke(ctx context.Context, userID, boardID, targetUserID string) error {
	if targetUserID != userID {
		if err := s.requireManager(ctx, userID, boardID); err != nil {
			return err
		}
	}
	return s.repos.Shares.Delete(ctx, boardID, targetUserID)
}
