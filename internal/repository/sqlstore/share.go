package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Rrens/boardsync/internal/domain"
)

// ShareRepository handles board share data access
type ShareRepository struct {
	db *DB
}

// NewShareRepository creates a new share repository
func NewShareRepository(db *DB) *ShareRepository {
	return &ShareRepository{db: db}
}

// Upsert grants a role, replacing any existing grant for the same board and
// user. On replace the stored id and created_at are copied back into share.
func (r *ShareRepository) Upsert(ctx context.Context, share *domain.BoardShare) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		var id, createdAt string
		err := r.db.queryRow(ctx,
			`SELECT id, created_at FROM board_shares WHERE board_id = ? AND user_id = ?`,
			share.BoardID, share.UserID,
		).Scan(&id, &createdAt)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			_, err = r.db.exec(ctx, `
				INSERT INTO board_shares (id, board_id, user_id, role, created_at)
				VALUES (?, ?, ?, ?, ?)
			`, share.ID, share.BoardID, share.UserID, string(share.Role), share.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to create share: %w", err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("failed to get share: %w", err)
		}

		if _, err := r.db.exec(ctx, `UPDATE board_shares SET role = ? WHERE id = ?`, string(share.Role), id); err != nil {
			return fmt.Errorf("failed to update share: %w", err)
		}
		share.ID = id
		share.CreatedAt = createdAt
		return nil
	})
}

// ListByBoard retrieves every grant on a board
func (r *ShareRepository) ListByBoard(ctx context.Context, boardID string) ([]domain.BoardShare, error) {
	query := `
		SELECT id, board_id, user_id, role, created_at
		FROM board_shares
		WHERE board_id = ?
		ORDER BY created_at, id
	`

	rows, err := r.db.query(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	defer rows.Close()

	shares := []domain.BoardShare{}
	for rows.Next() {
		var (
			share domain.BoardShare
			role  string
		)
		if err := rows.Scan(&share.ID, &share.BoardID, &share.UserID, &role, &share.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		share.Role = domain.Role(role)
		shares = append(shares, share)
	}

	return shares, rows.Err()
}

// Delete revokes a user's grant on a board
func (r *ShareRepository) Delete(ctx context.Context, boardID, userID string) error {
	res, err := r.db.exec(ctx, `DELETE FROM board_shares WHERE board_id = ? AND user_id = ?`, boardID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete share: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete share: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	return nil
}
