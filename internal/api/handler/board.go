package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rrens/boardsync/internal/api/response"
	"github.com/Rrens/boardsync/internal/service"
)

// BoardHandler serves workspace and board reads
type BoardHandler struct {
	boardService *service.BoardService
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(boardService *service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// Overview lists owned workspaces and shared boards
func (h *BoardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	overview, err := h.boardService.Overview(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.OK(w, overview)
}

// Get returns a board with its lists and cards
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	board, err := h.boardService.GetBoard(r.Context(), userID, chi.URLParam(r, "boardID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.OK(w, board)
}
