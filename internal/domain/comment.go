package domain

import "context"

// Comment is authored by one user on one card.
type Comment struct {
	ID        string `json:"id"`
	CardID    string `json:"cardId"`
	UserID    string `json:"userId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CommentCreate is the request body for a new comment.
type CommentCreate struct {
	Content string `json:"content" validate:"required,max=10000"`
}

// CommentRepository defines the interface for comment storage
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	ListByCard(ctx context.Context, cardID string) ([]Comment, error)
	Delete(ctx context.Context, id string) error
}
