package service

import (
	"context"
	"fmt"

	"github.com/Rrens/boardsync/internal/domain"
	"github.com/Rrens/boardsync/internal/permission"
)

// BoardService serves the read side of the hierarchy
type BoardService struct {
	repos    Repositories
	resolver RoleResolver
}

// NewBoardService creates a new board service
func NewBoardService(repos Repositories, resolver RoleResolver) *BoardService {
	return &BoardService{repos: repos, resolver: resolver}
}

// Overview lists the caller's workspaces with their boards and the boards
// other users shared with the caller
func (s *BoardService) Overview(ctx context.Context, userID string) (*domain.Overview, error) {
	workspaces, err := s.repos.Workspaces.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	overview := &domain.Overview{Workspaces: make([]domain.WorkspaceWithBoards, 0, len(workspaces))}
	for _, ws := range workspaces {
		boards, err := s.repos.Boards.ListByWorkspace(ctx, ws.ID)
		if err != nil {
			return nil, err
		}
		overview.Workspaces = append(overview.Workspaces, domain.WorkspaceWithBoards{Workspace: ws, Boards: boards})
	}

	overview.SharedBoards, err = s.repos.Boards.ListSharedWith(ctx, userID)
	if err != nil {
		return nil, err
	}

	return overview, nil
}

// GetBoard returns a board with its lists and cards
func (s *BoardService) GetBoard(ctx context.Context, userID, boardID string) (*domain.BoardTree, error) {
	role, err := s.resolver.ResolveRole(ctx, userID, domain.EntityRef{Type: domain.EntityBoard, ID: boardID})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role: %w", err)
	}
	if !permission.CanView(role) {
		return nil, domain.ErrPermissionDenied
	}

	board, err := s.repos.Boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, domain.ErrPermissionDenied
	}

	lists, err := s.repos.Lists.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	cards, err := s.repos.Cards.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	for i := range cards {
		cards[i].ResponsibleLabel = cards[i].DisplayResponsible()
	}

	return &domain.BoardTree{Board: *board, Role: role, Lists: lists, Cards: cards}, nil
}
