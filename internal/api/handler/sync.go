package handler

import (
	"fmt"
	"net/http"

	"github.com/Rrens/boardsync/internal/api/response"
	"github.com/Rrens/boardsync/internal/domain"
	"github.com/Rrens/boardsync/internal/service"
)

// SyncHandler handles change batches from clients
type SyncHandler struct {
	syncService  *service.SyncService
	maxBatchSize int
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncService *service.SyncService, maxBatchSize int) *SyncHandler {
	return &SyncHandler{syncService: syncService, maxBatchSize: maxBatchSize}
}

// Sync applies a batch. Item-level failures and conflicts are reported in the
// body with a 200; only a malformed batch is rejected.
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	var req domain.SyncRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if h.maxBatchSize > 0 && len(req.Changes) > h.maxBatchSize {
		response.BadRequest(w, fmt.Sprintf("batch exceeds %d changes", h.maxBatchSize))
		return
	}

	result := h.syncService.Apply(r.Context(), userID, req.Changes)
	response.Raw(w, http.StatusOK, result)
}
