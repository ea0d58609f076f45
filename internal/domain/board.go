package domain

import (
	"context"
	"strings"
)

// Board belongs to one workspace; its owner is the workspace owner.
type Board struct {
	ID               string   `json:"id"`
	WorkspaceID      string   `json:"workspaceId"`
	Name             string   `json:"name"`
	Description      *string  `json:"description"`
	Background       *string  `json:"background"`
	AllowedCardTypes []string `json:"allowedCardTypes"`
	IsPublic         bool     `json:"isPublic"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
}

// BoardPatch is the typed field diff accepted for board changes.
// WorkspaceID moves the board to another workspace of the same owner.
type BoardPatch struct {
	Name             Optional[string]   `json:"name" validate:"omitempty,max=255"`
	Description      Optional[string]   `json:"description"`
	Background       Optional[string]   `json:"background" validate:"omitempty,max=1024"`
	AllowedCardTypes Optional[[]string] `json:"allowedCardTypes"`
	IsPublic         Optional[bool]     `json:"isPublic"`
	WorkspaceID      Optional[string]   `json:"workspaceId"`
	ClientStamps
}

// SharedBoard is a board visible to a user through a share grant.
type SharedBoard struct {
	Board
	Role Role `json:"role"`
}

// BoardTree is a board with all of its lists and cards.
type BoardTree struct {
	Board
	Role  Role   `json:"role"`
	Lists []List `json:"lists"`
	Cards []Card `json:"cards"`
}

// BoardShare grants a user a role on a board. At most one per (board, user).
type BoardShare struct {
	ID        string `json:"id"`
	BoardID   string `json:"boardId"`
	UserID    string `json:"userId"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// ShareCreate is the request body for granting access to a board.
// Exactly one of UserID or Email identifies the grantee.
type ShareCreate struct {
	UserID string `json:"userId" validate:"max=64"`
	Email  string `json:"email" validate:"omitempty,email"`
	Role   Role   `json:"role" validate:"required,oneof=owner editor commenter viewer"`
}

// Normalize trims the grantee fields and lowercases the email
func (s *ShareCreate) Normalize() {
	s.UserID = strings.TrimSpace(s.UserID)
	s.Email = normalizeEmail(s.Email)
}

// BoardRepository defines the interface for board storage
type BoardRepository interface {
	Create(ctx context.Context, board *Board) error
	GetByID(ctx context.Context, id string) (*Board, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]Board, error)
	ListSharedWith(ctx context.Context, userID string) ([]SharedBoard, error)
	Update(ctx context.Context, id string, patch *BoardPatch, updatedAt, guard string) error
	Delete(ctx context.Context, id string) error
}

// ShareRepository defines the interface for board share storage
type ShareRepository interface {
	Upsert(ctx context.Context, share *BoardShare) error
	ListByBoard(ctx context.Context, boardID string) ([]BoardShare, error)
	Delete(ctx context.Context, boardID, userID string) error
}
