package sqlstore

import (
	"context"
	"testing"

	"github.com/Rrens/boardsync/internal/domain"
	"github.com/stretchr/testify/require"
)

const testStamp = "2024-01-01T00:00:00.000Z"

// setupTestDB opens an in-memory database with every migration applied.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(false))

	t.Cleanup(db.Close)
	return db
}

type fixture struct {
	db         *DB
	users      *UserRepository
	workspaces *WorkspaceRepository
	boards     *BoardRepository
	lists      *ListRepository
	cards      *CardRepository
	comments   *CommentRepository
	shares     *ShareRepository
	activity   *ActivityRepository
	hierarchy  *HierarchyRepository
}

func newFixture(t *testing.T) *fixture {
	db := setupTestDB(t)
	return &fixture{
		db:         db,
		users:      NewUserRepository(db),
		workspaces: NewWorkspaceRepository(db),
		boards:     NewBoardRepository(db),
		lists:      NewListRepository(db),
		cards:      NewCardRepository(db),
		comments:   NewCommentRepository(db),
		shares:     NewShareRepository(db),
		activity:   NewActivityRepository(db),
		hierarchy:  NewHierarchyRepository(db),
	}
}

func (f *fixture) user(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, f.users.Create(context.Background(), &domain.User{
		ID: id, Email: id + "@example.com", Name: name, PasswordHash: "x",
		CreatedAt: testStamp, UpdatedAt: testStamp,
	}))
}

func (f *fixture) workspace(t *testing.T, id, owner string) {
	t.Helper()
	require.NoError(t, f.workspaces.Create(context.Background(), &domain.Workspace{
		ID: id, UserID: owner, Name: id, CreatedAt: testStamp, UpdatedAt: testStamp,
	}))
}

func (f *fixture) board(t *testing.T, id, workspaceID string) {
	t.Helper()
	require.NoError(t, f.boards.Create(context.Background(), &domain.Board{
		ID: id, WorkspaceID: workspaceID, Name: id, CreatedAt: testStamp, UpdatedAt: testStamp,
	}))
}

func (f *fixture) list(t *testing.T, id, boardID string, position float64) {
	t.Helper()
	require.NoError(t, f.lists.Create(context.Background(), &domain.List{
		ID: id, BoardID: boardID, Name: id, Position: position, CreatedAt: testStamp, UpdatedAt: testStamp,
	}))
}

func (f *fixture) card(t *testing.T, id, listID string) {
	t.Helper()
	require.NoError(t, f.cards.Create(context.Background(), &domain.Card{
		ID: id, ListID: listID, Title: id, CreatedAt: testStamp, UpdatedAt: testStamp,
	}))
}

func (f *fixture) comment(t *testing.T, id, cardID, userID string) {
	t.Helper()
	require.NoError(t, f.comments.Create(context.Background(), &domain.Comment{
		ID: id, CardID: cardID, UserID: userID, Content: "hi", CreatedAt: testStamp, UpdatedAt: testStamp,
	}))
}

func (f *fixture) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.queryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

// seedTree builds alice's workspace ws1 with board b1, lists l1/l2, two cards
// on l1 with comments, one card on l2, and a viewer share for bob.
func (f *fixture) seedTree(t *testing.T) {
	f.user(t, "alice", "Alice")
	f.user(t, "bob", "Bob")
	f.workspace(t, "ws1", "alice")
	f.board(t, "b1", "ws1")
	f.list(t, "l1", "b1", 1)
	f.list(t, "l2", "b1", 2)
	f.card(t, "c1", "l1")
	f.card(t, "c2", "l1")
	f.card(t, "c3", "l2")
	f.comment(t, "m1", "c1", "alice")
	f.comment(t, "m2", "c1", "bob")
	f.comment(t, "m3", "c2", "alice")
	f.comment(t, "m4", "c3", "alice")
	require.NoError(t, f.shares.Upsert(context.Background(), &domain.BoardShare{
		ID: "s1", BoardID: "b1", UserID: "bob", Role: domain.RoleViewer, CreatedAt: testStamp,
	}))
}
