package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"vocabox-backend/internal/middleware"
	"vocabox-backend/internal/models"
)

type progressStore interface {
	Counts(ctx context.Context, userID uuid.UUID, itemType string) (models.ProgressCounts, error)
}

type ProgressHandler struct {
	store progressStore
}

func NewProgressHandler(store progressStore) *ProgressHandler {
	return &ProgressHandler{store: store}
}

// GetCounts reports mastered vs in-progress totals for the dashboard ring.
func (h *ProgressHandler) GetCounts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	itemType := r.URL.Query().Get("item_type")
	if !models.ValidItemType(itemType) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "item_type must be word or sentence", r))
		return
	}

	counts, err := h.store.Counts(r.Context(), userID, itemType)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch progress", r))
		return
	}

	writeJSON(w, http.StatusOK, counts)
}
