package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Rrens/boardsync/internal/domain"
)

// ActivityRepository stores the activity trail in the activity_log table
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create appends an entry
func (r *ActivityRepository) Create(ctx context.Context, entry *domain.ActivityLogEntry) error {
	var details any
	if len(entry.Details) > 0 {
		b, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("failed to marshal activity details: %w", err)
		}
		details = string(b)
	}

	query := `
		INSERT INTO activity_log (id, entity_type, entity_id, user_id, action, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.exec(ctx, query,
		entry.ID,
		string(entry.EntityType),
		entry.EntityID,
		entry.UserID,
		entry.Action,
		details,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity entry: %w", err)
	}

	return nil
}

// ListByEntity retrieves the newest entries for one entity
func (r *ActivityRepository) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID string, limit int) ([]domain.ActivityLogEntry, error) {
	query := `
		SELECT id, entity_type, entity_id, user_id, action, details, created_at
		FROM activity_log
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.query(ctx, query, string(entityType), entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	entries := []domain.ActivityLogEntry{}
	for rows.Next() {
		var (
			entry   domain.ActivityLogEntry
			kind    string
			details sql.NullString
		)
		if err := rows.Scan(
			&entry.ID,
			&kind,
			&entry.EntityID,
			&entry.UserID,
			&entry.Action,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}

		entry.EntityType = domain.EntityType(kind)
		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("failed to unmarshal activity details: %w", err)
			}
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
