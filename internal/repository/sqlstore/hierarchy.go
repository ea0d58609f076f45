package sqlstore

import (
	"context"
	"database/sql"
	"errors"
)

// HierarchyRepository answers the ownership lookups used for role resolution.
// A missing row yields an empty string and no error.
type HierarchyRepository struct {
	db *DB
}

// NewHierarchyRepository creates a new hierarchy repository
func NewHierarchyRepository(db *DB) *HierarchyRepository {
	return &HierarchyRepository{db: db}
}

// WorkspaceOwner returns the owning user of a workspace
func (r *HierarchyRepository) WorkspaceOwner(ctx context.Context, workspaceID string) (string, error) {
	return r.lookup(ctx, `SELECT user_id FROM workspaces WHERE id = ?`, workspaceID)
}

// BoardWorkspaceOwner returns the owner of the workspace holding a board
func (r *HierarchyRepository) BoardWorkspaceOwner(ctx context.Context, boardID string) (string, error) {
	return r.lookup(ctx, `
		SELECT w.user_id
		FROM boards b
		JOIN workspaces w ON w.id = b.workspace_id
		WHERE b.id = ?
	`, boardID)
}

// ShareRole returns the stored share role for a board and user
func (r *HierarchyRepository) ShareRole(ctx context.Context, boardID, userID string) (string, error) {
	return r.lookup(ctx, `SELECT role FROM board_shares WHERE board_id = ? AND user_id = ?`, boardID, userID)
}

// ListBoardID returns the board of a list
func (r *HierarchyRepository) ListBoardID(ctx context.Context, listID string) (string, error) {
	return r.lookup(ctx, `SELECT board_id FROM lists WHERE id = ?`, listID)
}

// CardBoardID returns the board of a card's list
func (r *HierarchyRepository) CardBoardID(ctx context.Context, cardID string) (string, error) {
	return r.lookup(ctx, `
		SELECT l.board_id
		FROM cards c
		JOIN lists l ON l.id = c.list_id
		WHERE c.id = ?
	`, cardID)
}

func (r *HierarchyRepository) lookup(ctx context.Context, query string, args ...any) (string, error) {
	var value string
	err := r.db.queryRow(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}
