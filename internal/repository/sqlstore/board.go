package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Rrens/boardsync/internal/domain"
)

// BoardRepository handles board data access
type BoardRepository struct {
	db *DB
}

// NewBoardRepository creates a new board repository
func NewBoardRepository(db *DB) *BoardRepository {
	return &BoardRepository{db: db}
}

const boardColumns = `b.id, b.workspace_id, b.name, b.description, b.background, b.allowed_card_types, b.is_public, b.created_at, b.updated_at`

// Create creates a new board
func (r *BoardRepository) Create(ctx context.Context, board *domain.Board) error {
	cardTypes, err := encodeArray(board.AllowedCardTypes)
	if err != nil {
		return fmt.Errorf("failed to marshal allowed card types: %w", err)
	}

	query := `
		INSERT INTO boards (id, workspace_id, name, description, background, allowed_card_types, is_public, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.exec(ctx, query,
		board.ID,
		board.WorkspaceID,
		board.Name,
		nullableText(board.Description),
		nullableText(board.Background),
		cardTypes,
		board.IsPublic,
		board.CreatedAt,
		board.UpdatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create board: %w", err)
	}

	return nil
}

// GetByID retrieves a board by ID
func (r *BoardRepository) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards b WHERE b.id = ?`

	board, err := scanBoard(r.db.queryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	return board, nil
}

// ListByWorkspace retrieves all boards of a workspace
func (r *BoardRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.Board, error) {
	query := `
		SELECT ` + boardColumns + `
		FROM boards b
		WHERE b.workspace_id = ?
		ORDER BY b.created_at, b.id
	`

	rows, err := r.db.query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	defer rows.Close()

	boards := []domain.Board{}
	for rows.Next() {
		board, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, *board)
	}

	return boards, rows.Err()
}

// ListSharedWith retrieves the boards shared with a user through a grant
func (r *BoardRepository) ListSharedWith(ctx context.Context, userID string) ([]domain.SharedBoard, error) {
	query := `
		SELECT ` + boardColumns + `, s.role
		FROM boards b
		JOIN board_shares s ON s.board_id = b.id
		JOIN workspaces w ON w.id = b.workspace_id
		WHERE s.user_id = ? AND w.user_id <> ?
		ORDER BY b.created_at, b.id
	`

	rows, err := r.db.query(ctx, query, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared boards: %w", err)
	}
	defer rows.Close()

	boards := []domain.SharedBoard{}
	for rows.Next() {
		var role string
		board, err := scanBoard(rows, &role)
		if err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		if granted := domain.ParseRole(role); granted != domain.RoleNone {
			boards = append(boards, domain.SharedBoard{Board: *board, Role: granted})
		}
	}

	return boards, rows.Err()
}

// Update applies a sparse patch. A non-empty guard must match updated_at.
func (r *BoardRepository) Update(ctx context.Context, id string, patch *domain.BoardPatch, updatedAt, guard string) error {
	var set setList
	set.requiredText("name", patch.Name)
	set.text("description", patch.Description)
	set.text("background", patch.Background)
	if err := setJSON(&set, "allowed_card_types", patch.AllowedCardTypes); err != nil {
		return err
	}
	set.boolean("is_public", patch.IsPublic)
	if patch.WorkspaceID.Valid {
		set.add("workspace_id", patch.WorkspaceID.Value)
	}

	if err := r.db.update(ctx, "boards", id, &set, updatedAt, guard); err != nil {
		return fmt.Errorf("failed to update board: %w", err)
	}

	return nil
}

// Delete removes a board with its lists, cards, comments and shares
func (r *BoardRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		err := r.db.execAll(ctx, id,
			`DELETE FROM comments WHERE card_id IN (
				SELECT c.id FROM cards c
				JOIN lists l ON l.id = c.list_id
				WHERE l.board_id = ?)`,
			`DELETE FROM cards WHERE list_id IN (SELECT id FROM lists WHERE board_id = ?)`,
			`DELETE FROM lists WHERE board_id = ?`,
			`DELETE FROM board_shares WHERE board_id = ?`,
		)
		if err != nil {
			return fmt.Errorf("failed to delete board contents: %w", err)
		}

		if err := r.db.deleteRow(ctx, "boards", id); err != nil {
			return fmt.Errorf("failed to delete board: %w", err)
		}
		return nil
	})
}

func scanBoard(row rowScanner, extra ...any) (*domain.Board, error) {
	var (
		board                   domain.Board
		description, background sql.NullString
		cardTypes               sql.NullString
	)

	dest := []any{
		&board.ID,
		&board.WorkspaceID,
		&board.Name,
		&description,
		&background,
		&cardTypes,
		&board.IsPublic,
		&board.CreatedAt,
		&board.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	types, err := decodeArray[string](cardTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal allowed card types: %w", err)
	}

	board.Description = stringPtr(description)
	board.Background = stringPtr(background)
	board.AllowedCardTypes = types
	return &board, nil
}
