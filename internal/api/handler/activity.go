package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Rrens/boardsync/internal/api/response"
	"github.com/Rrens/boardsync/internal/domain"
	"github.com/Rrens/boardsync/internal/service"
)

// ActivityHandler serves the activity trail
type ActivityHandler struct {
	activity *service.ActivityLogger
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activity *service.ActivityLogger) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// ForCard returns a card's activity
func (h *ActivityHandler) ForCard(w http.ResponseWriter, r *http.Request) {
	h.history(w, r, domain.EntityRef{Type: domain.EntityCard, ID: chi.URLParam(r, "cardID")})
}

// ForList returns a list's activity
func (h *ActivityHandler) ForList(w http.ResponseWriter, r *http.Request) {
	h.history(w, r, domain.EntityRef{Type: domain.EntityList, ID: chi.URLParam(r, "listID")})
}

func (h *ActivityHandler) history(w http.ResponseWriter, r *http.Request, ref domain.EntityRef) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := h.activity.History(r.Context(), userID, ref, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.OK(w, entries)
}
