package domain

import "context"

// Workspace is the top of the hierarchy and is owned by exactly one user.
type Workspace struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// WorkspacePatch is the typed field diff accepted for workspace changes.
type WorkspacePatch struct {
	Name        Optional[string] `json:"name" validate:"omitempty,max=255"`
	Description Optional[string] `json:"description"`
	Icon        Optional[string] `json:"icon" validate:"omitempty,max=255"`
	Color       Optional[string] `json:"color" validate:"omitempty,max=64"`
	ClientStamps
}

// WorkspaceWithBoards is the read model returned to a workspace owner.
type WorkspaceWithBoards struct {
	Workspace
	Boards []Board `json:"boards"`
}

// Overview is everything a user can open: owned workspaces with their boards
// and boards shared with them by others.
type Overview struct {
	Workspaces   []WorkspaceWithBoards `json:"workspaces"`
	SharedBoards []SharedBoard         `json:"sharedBoards"`
}

// WorkspaceRepository defines the interface for workspace storage.
// Update and Delete return ErrNotFound when no row matched, or ErrStaleWrite
// when a non-empty guard no longer matches updated_at.
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *Workspace) error
	GetByID(ctx context.Context, id string) (*Workspace, error)
	ListByUser(ctx context.Context, userID string) ([]Workspace, error)
	Update(ctx context.Context, id string, patch *WorkspacePatch, updatedAt, guard string) error
	Delete(ctx context.Context, id string) error
}
