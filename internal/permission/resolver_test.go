package permission

import (
	"context"
	"errors"
	"testing"

	"github.com/Rrens/boardsync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockHierarchy mocks the Hierarchy interface
type MockHierarchy struct {
	mock.Mock
}

func (m *MockHierarchy) WorkspaceOwner(ctx context.Context, workspaceID string) (string, error) {
	args := m.Called(ctx, workspaceID)
	return args.String(0), args.Error(1)
}

func (m *MockHierarchy) BoardWorkspaceOwner(ctx context.Context, boardID string) (string, error) {
	args := m.Called(ctx, boardID)
	return args.String(0), args.Error(1)
}

func (m *MockHierarchy) ShareRole(ctx context.Context, boardID, userID string) (string, error) {
	args := m.Called(ctx, boardID, userID)
	return args.String(0), args.Error(1)
}

func (m *MockHierarchy) ListBoardID(ctx context.Context, listID string) (string, error) {
	args := m.Called(ctx, listID)
	return args.String(0), args.Error(1)
}

func (m *MockHierarchy) CardBoardID(ctx context.Context, cardID string) (string, error) {
	args := m.Called(ctx, cardID)
	return args.String(0), args.Error(1)
}

func TestResolver_Workspace(t *testing.T) {
	ctx := context.Background()

	t.Run("owner", func(t *testing.T) {
		h := new(MockHierarchy)
		h.On("WorkspaceOwner", ctx, "ws1").Return("alice", nil)

		role, err := NewResolver(h).ResolveRole(ctx, "alice", domain.EntityRef{Type: domain.EntityWorkspace, ID: "ws1"})
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleOwner, role)
	})

	t.Run("other user", func(t *testing.T) {
		h := new(MockHierarchy)
		h.On("WorkspaceOwner", ctx, "ws1").Return("alice", nil)

		role, err := NewResolver(h).ResolveRole(ctx, "bob", domain.EntityRef{Type: domain.EntityWorkspace, ID: "ws1"})
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleNone, role)
	})

	t.Run("missing workspace", func(t *testing.T) {
		h := new(MockHierarchy)
		h.On("WorkspaceOwner", ctx, "ghost").Return("", nil)

		role, err := NewResolver(h).ResolveRole(ctx, "alice", domain.EntityRef{Type: domain.EntityWorkspace, ID: "ghost"})
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleNone, role)
	})
}

func TestResolver_Board(t *testing.T) {
	ctx := context.Background()
	ref := domain.EntityRef{Type: domain.EntityBoard, ID: "b1"}

	t.Run("workspace owner wins over share", func(t *testing.T) {
		h := new(MockHierarchy)
		h.On("BoardWorkspaceOwner", ctx, "b1").Return("alice", nil)

		role, err := NewResolver(h).ResolveRole(ctx, "alice", ref)
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleOwner, role)
		h.AssertNotCalled(t, "ShareRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("shared role", func(t *testing.T) {
		h := new(MockHierarchy)
		h.On("BoardWorkspaceOwner", ctx, "b1").Return("alice", nil)
		h.On("ShareRole", ctx, "b1", "bob").Return("commenter", nil)

		role, err := NewResolver(h).ResolveRole(ctx, "bob", ref)
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleCommenter, role)
	})

	t.Run("unknown stored role", func(t *testing.T) {
		h := new(MockHierarchy)
		h.On("BoardWorkspaceOwner", ctx, "b1").Return("alice", nil)
		h.On("ShareRole", ctx, "b1", "bob").Return("admin", nil)

		role, err := NewResolver(h).ResolveRole(ctx, "bob", ref)
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleNone, role)
	})

	t.Run("store error", func(t *testing.T) {
		h := new(MockHierarchy)
		h.On("BoardWorkspaceOwner", ctx, "b1").Return("", errors.New("connection reset"))

		_, err := NewResolver(h).ResolveRole(ctx, "bob", ref)
		assert.Error(t, err)
	})
}

func TestResolver_ListAndCard(t *testing.T) {
	ctx := context.Background()

	t.Run("list delegates to board", func(t *testing.T) {
		h := new(MockHierarchy)
		h.On("ListBoardID", ctx, "l1").Return("b1", nil)
		h.On("BoardWorkspaceOwner", ctx, "b1").Return("alice", nil)
		h.On("ShareRole", ctx, "b1", "bob").Return("editor", nil)

		role, err := NewResolver(h).ResolveRole(ctx, "bob", domain.EntityRef{Type: domain.EntityList, ID: "l1"})
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleEditor, role)
	})

	t.Run("card delegates to board", func(t *testing.T) {
		h := new(MockHierarchy)
		h.On("CardBoardID", ctx, "c1").Return("b1", nil)
		h.On("BoardWorkspaceOwner", ctx, "b1").Return("alice", nil)

		role, err := NewResolver(h).ResolveRole(ctx, "alice", domain.EntityRef{Type: domain.EntityCard, ID: "c1"})
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleOwner, role)
	})

	t.Run("orphan card", func(t *testing.T) {
		h := new(MockHierarchy)
		h.On("CardBoardID", ctx, "c9").Return("", nil)

		role, err := NewResolver(h).ResolveRole(ctx, "alice", domain.EntityRef{Type: domain.EntityCard, ID: "c9"})
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleNone, role)
		h.AssertNotCalled(t, "BoardWorkspaceOwner", mock.Anything, mock.Anything)
	})
}

func TestCapabilities(t *testing.T) {
	tests := []struct {
		role                                       domain.Role
		view, manageBoard, manageLists, edit, note bool
	}{
		{domain.RoleOwner, true, true, true, true, true},
		{domain.RoleEditor, true, false, true, true, true},
		{domain.RoleCommenter, true, false, false, false, true},
		{domain.RoleViewer, true, false, false, false, false},
		{domain.RoleNone, false, false, false, false, false},
		{domain.Role("admin"), false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.view, CanView(tt.role))
			assert.Equal(t, tt.manageBoard, CanManageBoard(tt.role))
			assert.Equal(t, tt.manageLists, CanManageLists(tt.role))
			assert.Equal(t, tt.edit, CanEditCards(tt.role))
			assert.Equal(t, tt.note, CanComment(tt.role))
		})
	}
}
