package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/boardsync/internal/api/handler"
	"github.com/Rrens/boardsync/internal/api/middleware"
	"github.com/Rrens/boardsync/internal/domain"
	"github.com/Rrens/boardsync/internal/permission"
	"github.com/Rrens/boardsync/internal/repository/sqlstore"
	"github.com/Rrens/boardsync/internal/service"
)

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	handler.HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response["success"] != true {
		t.Error("expected success to be true")
	}

	data, ok := response["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data to be a map")
	}

	if data["status"] != "ok" {
		t.Errorf("expected status 'ok', got %v", data["status"])
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestReadyCheck(t *testing.T) {
	rec := httptest.NewRecorder()
	handler.ReadyCheck(pingFunc(func(context.Context) error { return nil }))(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ReadyCheck(pingFunc(func(context.Context) error { return errors.New("down") }))(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

// newSyncHandler wires a sync handler to an in-memory store holding alice's
// workspace ws1 and board b1.
func newSyncHandler(t *testing.T, maxBatch int) *handler.SyncHandler {
	t.Helper()
	ctx := context.Background()

	db, err := sqlstore.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(false))
	t.Cleanup(db.Close)

	stamp := "2024-01-01T00:00:00.000Z"
	require.NoError(t, sqlstore.NewUserRepository(db).Create(ctx, &domain.User{
		ID: "alice", Email: "alice@example.com", Name: "Alice", PasswordHash: "x", CreatedAt: stamp, UpdatedAt: stamp,
	}))
	require.NoError(t, sqlstore.NewWorkspaceRepository(db).Create(ctx, &domain.Workspace{
		ID: "ws1", UserID: "alice", Name: "Home", CreatedAt: stamp, UpdatedAt: stamp,
	}))
	require.NoError(t, sqlstore.NewBoardRepository(db).Create(ctx, &domain.Board{
		ID: "b1", WorkspaceID: "ws1", Name: "Board", CreatedAt: stamp, UpdatedAt: stamp,
	}))

	repos := service.Repositories{
		Tx:         db,
		Users:      sqlstore.NewUserRepository(db),
		Workspaces: sqlstore.NewWorkspaceRepository(db),
		Boards:     sqlstore.NewBoardRepository(db),
		Lists:      sqlstore.NewListRepository(db),
		Cards:      sqlstore.NewCardRepository(db),
		Comments:   sqlstore.NewCommentRepository(db),
		Shares:     sqlstore.NewShareRepository(db),
		Activity:   sqlstore.NewActivityRepository(db),
	}
	resolver := permission.NewResolver(sqlstore.NewHierarchyRepository(db))
	svc := service.NewSyncService(repos, resolver, service.NewActivityLogger(repos.Activity, resolver))

	return handler.NewSyncHandler(svc, maxBatch)
}

func syncRequest(t *testing.T, userID string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/sync", &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req = req.WithContext(middleware.WithUser(req.Context(), userID, userID+"@example.com"))
	}
	return req
}

func TestSyncHandler(t *testing.T) {
	validBatch := map[string]any{
		"changes": []map[string]any{
			{"entityType": "list", "entityId": "list1", "operation": "create", "parentId": "b1", "data": map[string]any{"name": "Todo"}, "timestamp": 1},
			{"entityType": "card", "entityId": "card1", "operation": "create", "parentId": "list1", "data": map[string]any{"title": "Fix bug"}, "timestamp": 2},
		},
	}

	t.Run("applies batch with bare result", func(t *testing.T) {
		h := newSyncHandler(t, 10)
		rec := httptest.NewRecorder()

		h.Sync(rec, syncRequest(t, "alice", validBatch))

		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(2), body["appliedCount"])
		assert.NotZero(t, body["serverVersion"])
		assert.NotContains(t, body, "data")
		assert.NotContains(t, body, "failedChanges")
	})

	t.Run("item failures still return 200", func(t *testing.T) {
		h := newSyncHandler(t, 10)
		rec := httptest.NewRecorder()

		h.Sync(rec, syncRequest(t, "mallory", validBatch))

		require.Equal(t, http.StatusOK, rec.Code)

		var result domain.SyncResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
		assert.False(t, result.Success)
		assert.Equal(t, 0, result.AppliedCount)
		require.Len(t, result.FailedChanges, 2)
		assert.Equal(t, "permission denied", result.FailedChanges[0].Error)
		assert.Equal(t, "list1", result.FailedChanges[0].Change.EntityID)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		h := newSyncHandler(t, 10)
		rec := httptest.NewRecorder()

		h.Sync(rec, syncRequest(t, "", validBatch))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	malformed := []struct {
		name string
		body any
	}{
		{"not json", "{"},
		{"missing changes", map[string]any{}},
		{"unknown entity type", map[string]any{"changes": []map[string]any{
			{"entityType": "column", "entityId": "x", "operation": "create", "timestamp": 1},
		}}},
		{"unknown operation", map[string]any{"changes": []map[string]any{
			{"entityType": "card", "entityId": "x", "operation": "upsert", "timestamp": 1},
		}}},
		{"missing timestamp", map[string]any{"changes": []map[string]any{
			{"entityType": "card", "entityId": "x", "operation": "delete"},
		}}},
		{"missing entity id", map[string]any{"changes": []map[string]any{
			{"entityType": "card", "operation": "delete", "timestamp": 1},
		}}},
		{"entity id longer than the id column", map[string]any{"changes": []map[string]any{
			{"entityType": "card", "entityId": strings.Repeat("x", 65), "operation": "delete", "timestamp": 1},
		}}},
		{"parent id longer than the id column", map[string]any{"changes": []map[string]any{
			{"entityType": "card", "entityId": "x", "operation": "create", "parentId": strings.Repeat("x", 65), "timestamp": 1},
		}}},
	}
	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			h := newSyncHandler(t, 10)
			rec := httptest.NewRecorder()

			h.Sync(rec, syncRequest(t, "alice", tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	t.Run("id at the column width is accepted", func(t *testing.T) {
		h := newSyncHandler(t, 10)
		rec := httptest.NewRecorder()
		id := strings.Repeat("x", 64)

		h.Sync(rec, syncRequest(t, "alice", map[string]any{"changes": []map[string]any{
			{"entityType": "list", "entityId": id, "operation": "create", "parentId": "b1", "data": map[string]any{"name": "Wide"}, "timestamp": 1},
		}}))

		require.Equal(t, http.StatusOK, rec.Code)
		var result domain.SyncResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
		assert.True(t, result.Success, "%+v", result.FailedChanges)
	})

	t.Run("batch too large", func(t *testing.T) {
		h := newSyncHandler(t, 1)
		rec := httptest.NewRecorder()

		h.Sync(rec, syncRequest(t, "alice", validBatch))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
