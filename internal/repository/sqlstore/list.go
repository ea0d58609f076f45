package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Rrens/boardsync/internal/domain"
)

// ListRepository handles list data access
type ListRepository struct {
	db *DB
}

// NewListRepository creates a new list repository
func NewListRepository(db *DB) *ListRepository {
	return &ListRepository{db: db}
}

const listColumns = `id, board_id, name, position, color, created_at, updated_at`

// Create creates a new list
func (r *ListRepository) Create(ctx context.Context, list *domain.List) error {
	query := `
		INSERT INTO lists (` + listColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.exec(ctx, query,
		list.ID,
		list.BoardID,
		list.Name,
		list.Position,
		nullableText(list.Color),
		list.CreatedAt,
		list.UpdatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create list: %w", err)
	}

	return nil
}

// GetByID retrieves a list by ID
func (r *ListRepository) GetByID(ctx context.Context, id string) (*domain.List, error) {
	query := `SELECT ` + listColumns + ` FROM lists WHERE id = ?`

	list, err := scanList(r.db.queryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get list: %w", err)
	}

	return list, nil
}

// ListByBoard retrieves the lists of a board ordered by position
func (r *ListRepository) ListByBoard(ctx context.Context, boardID string) ([]domain.List, error) {
	query := `
		SELECT ` + listColumns + `
		FROM lists
		WHERE board_id = ?
		ORDER BY position, created_at, id
	`

	rows, err := r.db.query(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	defer rows.Close()

	lists := []domain.List{}
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, *list)
	}

	return lists, rows.Err()
}

// Update applies a sparse patch. A non-empty guard must match updated_at.
func (r *ListRepository) Update(ctx context.Context, id string, patch *domain.ListPatch, updatedAt, guard string) error {
	var set setList
	set.requiredText("name", patch.Name)
	set.float("position", patch.Position)
	set.text("color", patch.Color)

	if err := r.db.update(ctx, "lists", id, &set, updatedAt, guard); err != nil {
		return fmt.Errorf("failed to update list: %w", err)
	}

	return nil
}

// Delete removes a list with its cards and their comments
func (r *ListRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		err := r.db.execAll(ctx, id,
			`DELETE FROM comments WHERE card_id IN (SELECT id FROM cards WHERE list_id = ?)`,
			`DELETE FROM cards WHERE list_id = ?`,
		)
		if err != nil {
			return fmt.Errorf("failed to delete list contents: %w", err)
		}

		if err := r.db.deleteRow(ctx, "lists", id); err != nil {
			return fmt.Errorf("failed to delete list: %w", err)
		}
		return nil
	})
}

func scanList(row rowScanner) (*domain.List, error) {
	var (
		list  domain.List
		color sql.NullString
	)

	err := row.Scan(
		&list.ID,
		&list.BoardID,
		&list.Name,
		&list.Position,
		&color,
		&list.CreatedAt,
		&list.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	list.Color = stringPtr(color)
	return &list, nil
}
