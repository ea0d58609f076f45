package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rrens/boardsync/internal/domain"
	"github.com/Rrens/boardsync/internal/permission"
)

// CommentService handles card comments
type CommentService struct {
	repos    Repositories
	resolver RoleResolver
	now      func() time.Time
}

// NewCommentService creates a new comment service
func NewCommentService(repos Repositories, resolver RoleResolver) *CommentService {
	return &CommentService{repos: repos, resolver: resolver, now: time.Now}
}

func (s *CommentService) cardRole(ctx context.Context, userID, cardID string) (domain.Role, error) {
	role, err := s.resolver.ResolveRole(ctx, userID, domain.EntityRef{Type: domain.EntityCard, ID: cardID})
	if err != nil {
		return domain.RoleNone, fmt.Errorf("failed to resolve role: %w", err)
	}
	return role, nil
}

// Add posts a comment on a card. Viewers cannot comment.
func (s *CommentService) Add(ctx context.Context, userID, cardID string, input domain.CommentCreate) (*domain.Comment, error) {
	input.Content = strings.TrimSpace(input.Content)
	if err := validateStruct(&input); err != nil {
		return nil, err
	}

	role, err := s.cardRole(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	if !permission.CanComment(role) {
		return nil, domain.ErrPermissionDenied
	}

	now := timestamp(s.now)
	comment := &domain.Comment{
		ID:        uuid.NewString(),
		CardID:    cardID,
		UserID:    userID,
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repos.Comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// List returns a card's comments
func (s *CommentService) List(ctx context.Context, userID, cardID string) ([]domain.Comment, error) {
	role, err := s.cardRole(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	if !permission.CanView(role) {
		return nil, domain.ErrPermissionDenied
	}
	return s.repos.Comments.ListByCard(ctx, cardID)
}

// Delete removes a comment. Authors who can still see the card may delete
// their own comments; editors and owners may delete any.
func (s *CommentService) Delete(ctx context.Context, userID, commentID string) error {
	comment, err := s.repos.Comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return domain.ErrPermissionDenied
	}

	role, err := s.cardRole(ctx, userID, comment.CardID)
	if err != nil {
		return err
	}

	authorOK := comment.UserID == userID && permission.CanView(role)
	if !authorOK && !permission.CanEditCards(role) {
		return domain.ErrPermissionDenied
	}

	return s.repos.Comments.Delete(ctx, commentID)
}
