package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/boardsync/internal/domain"
)

func TestCommentService(t *testing.T) {
	h := newHarness(t)
	h.seed(t)
	svc := NewCommentService(h.repos, h.resolver)
	ctx := context.Background()

	t.Run("commenter adds", func(t *testing.T) {
		comment, err := svc.Add(ctx, "carol", "c1", domain.CommentCreate{Content: "  nice  "})
		require.NoError(t, err)
		assert.Equal(t, "nice", comment.Content)
		assert.Equal(t, "carol", comment.UserID)
	})

	t.Run("viewer cannot add", func(t *testing.T) {
		_, err := svc.Add(ctx, "dan", "c1", domain.CommentCreate{Content: "hello"})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.Add(ctx, "carol", "c1", domain.CommentCreate{Content: "   "})
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("viewer lists", func(t *testing.T) {
		comments, err := svc.List(ctx, "dan", "c1")
		require.NoError(t, err)
		assert.Len(t, comments, 2)

		_, err = svc.List(ctx, "frank", "c1")
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("delete rules", func(t *testing.T) {
		// Another commenter cannot delete carol's comment.
		require.NoError(t, h.repos.Shares.Upsert(ctx, &domain.BoardShare{
			ID: "s9", BoardID: "b1", UserID: "frank", Role: domain.RoleCommenter, CreatedAt: seedStamp,
		}))
		assert.ErrorIs(t, svc.Delete(ctx, "frank", "m1"), domain.ErrPermissionDenied)

		// Editors moderate.
		other, err := svc.Add(ctx, "frank", "c1", domain.CommentCreate{Content: "spam"})
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, "bob", other.ID))

		// Authors remove their own.
		require.NoError(t, svc.Delete(ctx, "carol", "m1"))

		assert.ErrorIs(t, svc.Delete(ctx, "carol", "m1"), domain.ErrPermissionDenied)
	})
}
