package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Rrens/boardsync/internal/domain"
)

// setList accumulates the SET clause of a sparse update.
type setList struct {
	cols []string
	args []any
}

func (s *setList) add(column string, value any) {
	s.cols = append(s.cols, column+" = ?")
	s.args = append(s.args, value)
}

// text sets a nullable text column; null and empty both clear it.
func (s *setList) text(column string, o domain.Optional[string]) {
	if !o.Set {
		return
	}
	s.add(column, nullableText(o.Ptr()))
}

// requiredText sets a NOT NULL text column; null clears it to the empty string.
func (s *setList) requiredText(column string, o domain.Optional[string]) {
	if !o.Set {
		return
	}
	s.add(column, o.Or(""))
}

func (s *setList) float(column string, o domain.Optional[float64]) {
	if !o.Set {
		return
	}
	s.add(column, o.Or(0))
}

func (s *setList) boolean(column string, o domain.Optional[bool]) {
	if !o.Set {
		return
	}
	s.add(column, o.Or(false))
}

func (s *setList) integer(column string, o domain.Optional[int]) {
	if !o.Set {
		return
	}
	if !o.Valid {
		s.add(column, nil)
		return
	}
	s.add(column, o.Value)
}

func setJSON[T any](s *setList, column string, o domain.Optional[[]T]) error {
	if !o.Set {
		return nil
	}
	v, err := encodeArray(o.Value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", column, err)
	}
	s.add(column, v)
	return nil
}

// update runs UPDATE table SET ... WHERE id = ? with an optional guard on
// updated_at. It maps zero affected rows to ErrStaleWrite or ErrNotFound.
func (db *DB) update(ctx context.Context, table, id string, s *setList, updatedAt, guard string) error {
	s.add("updated_at", updatedAt)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(s.cols, ", "))
	args := append(s.args, id)
	if guard != "" {
		query += " AND updated_at = ?"
		args = append(args, guard)
	}

	res, err := db.exec(ctx, query, args...)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	exists, err := db.exists(ctx, table, id)
	if err != nil {
		return err
	}
	if exists && guard != "" {
		return domain.ErrStaleWrite
	}
	return domain.ErrNotFound
}

func (db *DB) exists(ctx context.Context, table, id string) (bool, error) {
	var one int
	err := db.queryRow(ctx, fmt.Sprintf("SELECT 1 FROM %s WHERE id = ?", table), id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// deleteRow removes one row by id and reports ErrNotFound when nothing matched.
func (db *DB) deleteRow(ctx context.Context, table, id string) error {
	res, err := db.exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// execAll runs a cascade of statements in order, all with the same argument.
func (db *DB) execAll(ctx context.Context, arg any, statements ...string) error {
	for _, stmt := range statements {
		if _, err := db.exec(ctx, stmt, arg); err != nil {
			return err
		}
	}
	return nil
}

func nullableText(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

// encodeArray stores empty arrays as NULL.
func encodeArray[T any](items []T) (any, error) {
	if len(items) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func decodeArray[T any](ns sql.NullString) ([]T, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(ns.String), &items); err != nil {
		return nil, err
	}
	return items, nil
}
