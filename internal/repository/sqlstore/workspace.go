package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Rrens/boardsync/internal/domain"
)

// WorkspaceRepository handles workspace data access
type WorkspaceRepository struct {
	db *DB
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(db *DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

const workspaceColumns = `id, user_id, name, description, icon, color, created_at, updated_at`

// Create creates a new workspace
func (r *WorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) error {
	query := `
		INSERT INTO workspaces (` + workspaceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.exec(ctx, query,
		workspace.ID,
		workspace.UserID,
		workspace.Name,
		nullableText(workspace.Description),
		nullableText(workspace.Icon),
		nullableText(workspace.Color),
		workspace.CreatedAt,
		workspace.UpdatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	return nil
}

// GetByID retrieves a workspace by ID
func (r *WorkspaceRepository) GetByID(ctx context.Context, id string) (*domain.Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE id = ?`

	workspace, err := scanWorkspace(r.db.queryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	return workspace, nil
}

// ListByUser retrieves all workspaces owned by a user
func (r *WorkspaceRepository) ListByUser(ctx context.Context, userID string) ([]domain.Workspace, error) {
	query := `
		SELECT ` + workspaceColumns + `
		FROM workspaces
		WHERE user_id = ?
		ORDER BY created_at, id
	`

	rows, err := r.db.query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	workspaces := []domain.Workspace{}
	for rows.Next() {
		workspace, err := scanWorkspace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workspace: %w", err)
		}
		workspaces = append(workspaces, *workspace)
	}

	return workspaces, rows.Err()
}

// Update applies a sparse patch. A non-empty guard must match updated_at.
func (r *WorkspaceRepository) Update(ctx context.Context, id string, patch *domain.WorkspacePatch, updatedAt, guard string) error {
	var set setList
	set.requiredText("name", patch.Name)
	set.text("description", patch.Description)
	set.text("icon", patch.Icon)
	set.text("color", patch.Color)

	if err := r.db.update(ctx, "workspaces", id, &set, updatedAt, guard); err != nil {
		return fmt.Errorf("failed to update workspace: %w", err)
	}

	return nil
}

// Delete removes a workspace and everything below it
func (r *WorkspaceRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		err := r.db.execAll(ctx, id,
			`DELETE FROM comments WHERE card_id IN (
				SELECT c.id FROM cards c
				JOIN lists l ON l.id = c.list_id
				JOIN boards b ON b.id = l.board_id
				WHERE b.workspace_id = ?)`,
			`DELETE FROM cards WHERE list_id IN (
				SELECT l.id FROM lists l
				JOIN boards b ON b.id = l.board_id
				WHERE b.workspace_id = ?)`,
			`DELETE FROM lists WHERE board_id IN (SELECT id FROM boards WHERE workspace_id = ?)`,
			`DELETE FROM board_shares WHERE board_id IN (SELECT id FROM boards WHERE workspace_id = ?)`,
			`DELETE FROM boards WHERE workspace_id = ?`,
		)
		if err != nil {
			return fmt.Errorf("failed to delete workspace contents: %w", err)
		}

		if err := r.db.deleteRow(ctx, "workspaces", id); err != nil {
			return fmt.Errorf("failed to delete workspace: %w", err)
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkspace(row rowScanner) (*domain.Workspace, error) {
	var (
		workspace                domain.Workspace
		description, icon, color sql.NullString
	)

	err := row.Scan(
		&workspace.ID,
		&workspace.UserID,
		&workspace.Name,
		&description,
		&icon,
		&color,
		&workspace.CreatedAt,
		&workspace.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	workspace.Description = stringPtr(description)
	workspace.Icon = stringPtr(icon)
	workspace.Color = stringPtr(color)
	return &workspace, nil
}
