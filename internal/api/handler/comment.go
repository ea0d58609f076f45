package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rrens/boardsync/internal/api/response"
	"github.com/Rrens/boardsync/internal/domain"
	"github.com/Rrens/boardsync/internal/service"
)

// CommentHandler handles card comment endpoints
type CommentHandler struct {
	commentService *service.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List returns a card's comments
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	comments, err := h.commentService.List(r.Context(), userID, chi.URLParam(r, "cardID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.OK(w, comments)
}

// Create posts a comment on a card
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	var input domain.CommentCreate
	if !decodeAndValidate(w, r, &input) {
		return
	}

	comment, err := h.commentService.Add(r.Context(), userID, chi.URLParam(r, "cardID"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.Created(w, comment)
}

// Delete removes a comment
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.commentService.Delete(r.Context(), userID, chi.URLParam(r, "commentID")); err != nil {
		writeError(w, r, err)
		return
	}

	response.NoContent(w)
}
