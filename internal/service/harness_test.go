package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Rrens/boardsync/internal/domain"
	"github.com/Rrens/boardsync/internal/permission"
	"github.com/Rrens/boardsync/internal/repository/sqlstore"
)

const seedStamp = "2024-01-01T00:00:00.000Z"

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	db       *sqlstore.DB
	repos    Repositories
	resolver *permission.Resolver
	sync     *SyncService
}

// newHarness wires every service dependency to an in-memory store.
func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := sqlstore.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(false))
	t.Cleanup(db.Close)

	repos := Repositories{
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

	activity := NewActivityLogger(repos.Activity, resolver)
	activity.now = func() time.Time { return fixedNow }

	sync := NewSyncService(repos, resolver, activity)
	sync.now = func() time.Time { return fixedNow }

	return &harness{db: db, repos: repos, resolver: resolver, sync: sync}
}

// seed builds alice's workspace ws1 with board b1, lists l1 and l2, cards c1
// and c2 on l1, and grants bob editor, carol commenter and dan viewer on b1.
// erin owns ws2 with board b2 and list l3; frank has no access to anything.
func (h *harness) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	for _, id := range []string{"alice", "bob", "carol", "dan", "erin", "frank"} {
		require.NoError(t, h.repos.Users.Create(ctx, &domain.User{
			ID: id, Email: id + "@example.com", Name: id, PasswordHash: "x",
			CreatedAt: seedStamp, UpdatedAt: seedStamp,
		}))
	}

	for _, ws := range []domain.Workspace{
		{ID: "ws1", UserID: "alice", Name: "Alice"},
		{ID: "ws1b", UserID: "alice", Name: "Alice Two"},
		{ID: "ws2", UserID: "erin", Name: "Erin"},
	} {
		ws.CreatedAt, ws.UpdatedAt = seedStamp, seedStamp
		require.NoError(t, h.repos.Workspaces.Create(ctx, &ws))
	}

	for _, b := range []domain.Board{
		{ID: "b1", WorkspaceID: "ws1", Name: "Roadmap"},
		{ID: "b2", WorkspaceID: "ws2", Name: "Erin's board"},
	} {
		b.CreatedAt, b.UpdatedAt = seedStamp, seedStamp
		require.NoError(t, h.repos.Boards.Create(ctx, &b))
	}

	for _, l := range []domain.List{
		{ID: "l1", BoardID: "b1", Name: "Todo", Position: 1},
		{ID: "l2", BoardID: "b1", Name: "Done", Position: 2},
		{ID: "l3", BoardID: "b2", Name: "Inbox", Position: 1},
	} {
		l.CreatedAt, l.UpdatedAt = seedStamp, seedStamp
		require.NoError(t, h.repos.Lists.Create(ctx, &l))
	}

	for _, c := range []domain.Card{
		{ID: "c1", ListID: "l1", Title: "Write docs", Position: 1},
		{ID: "c2", ListID: "l1", Title: "Ship it", Position: 2},
	} {
		c.CreatedAt, c.UpdatedAt = seedStamp, seedStamp
		require.NoError(t, h.repos.Cards.Create(ctx, &c))
	}

	require.NoError(t, h.repos.Comments.Create(ctx, &domain.Comment{
		ID: "m1", CardID: "c1", UserID: "carol", Content: "looks good",
		CreatedAt: seedStamp, UpdatedAt: seedStamp,
	}))

	for i, g := range []struct {
		user string
		role domain.Role
	}{
		{"bob", domain.RoleEditor},
		{"carol", domain.RoleCommenter},
		{"dan", domain.RoleViewer},
	} {
		require.NoError(t, h.repos.Shares.Upsert(ctx, &domain.BoardShare{
			ID: "s" + string(rune('1'+i)), BoardID: "b1", UserID: g.user, Role: g.role, CreatedAt: seedStamp,
		}))
	}
}

func (h *harness) card(t *testing.T, id string) *domain.Card {
	t.Helper()
	c, err := h.repos.Cards.GetByID(context.Background(), id)
	require.NoError(t, err)
	return c
}

func (h *harness) list(t *testing.T, id string) *domain.List {
	t.Helper()
	l, err := h.repos.Lists.GetByID(context.Background(), id)
	require.NoError(t, err)
	return l
}

func (h *harness) board(t *testing.T, id string) *domain.Board {
	t.Helper()
	b, err := h.repos.Boards.GetByID(context.Background(), id)
	require.NoError(t, err)
	return b
}

func change(entity domain.EntityType, id string, op domain.Operation, clock float64, data any) domain.SyncChange {
	c := domain.SyncChange{
		EntityType: entity,
		EntityID:   id,
		Operation:  op,
		Timestamp:  &clock,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			panic(err)
		}
		c.Data = raw
	}
	return c
}

func withParent(c domain.SyncChange, parentID string) domain.SyncChange {
	c.ParentID = parentID
	return c
}

func expecting(c domain.SyncChange, updatedAt string) domain.SyncChange {
	c.ExpectedUpdatedAt = updatedAt
	return c
}
