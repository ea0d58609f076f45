package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rrens/boardsync/internal/api/response"
	"github.com/Rrens/boardsync/internal/domain"
	"github.com/Rrens/boardsync/internal/service"
)

// ShareHandler handles board share endpoints
type ShareHandler struct {
	shareService *service.ShareService
}

// NewShareHandler creates a new share handler
func NewShareHandler(shareService *service.ShareService) *ShareHandler {
	return &ShareHandler{shareService: shareService}
}

// List returns the grants on a board
func (h *ShareHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	shares, err := h.shareService.List(r.Context(), userID, chi.URLParam(r, "boardID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.OK(w, shares)
}

// Grant shares a board with a user
func (h *ShareHandler) Grant(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	var input domain.ShareCreate
	if !decodeAndValidate(w, r, &input) {
		return
	}

	share, err := h.shareService.Grant(r.Context(), userID, chi.URLParam(r, "boardID"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.Created(w, share)
}

// Revoke removes a user's grant
func (h *ShareHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	err := h.shareService.Revoke(r.Context(), userID, chi.URLParam(r, "boardID"), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.NoContent(w)
}
