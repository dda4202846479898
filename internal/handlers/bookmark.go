package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"vocabox-backend/internal/middleware"
	"vocabox-backend/internal/models"
)

type bookmarkStore interface {
	ToggleRemoved(ctx context.Context, userID, itemID uuid.UUID, itemType string, now time.Time) (bool, error)
	IsBookmarked(ctx context.Context, userID, itemID uuid.UUID, itemType string) (bool, error)
}

type BookmarkHandler struct {
	store bookmarkStore
}

func NewBookmarkHandler(store bookmarkStore) *BookmarkHandler {
	return &BookmarkHandler{store: store}
}

// Toggle adds or removes an item from the learner's review set. Removal is a
// soft flag; mastery progress survives a remove/restore round trip.
func (h *BookmarkHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.ToggleBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.ItemID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "item_id is required", r))
		return
	}
	if !models.ValidItemType(req.ItemType) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "item_type must be word or sentence", r))
		return
	}

	saved, err := h.store.ToggleRemoved(r.Context(), userID, req.ItemID, req.ItemType, time.Now().UTC())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to toggle bookmark", r))
		return
	}

	writeJSON(w, http.StatusOK, models.BookmarkStatusResponse{Saved: saved})
}

func (h *BookmarkHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	itemID, err := uuid.Parse(r.URL.Query().Get("item_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid item_id", r))
		return
	}
	itemType := r.URL.Query().Get("item_type")
	if !models.ValidItemType(itemType) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "item_type must be word or sentence", r))
		return
	}

	saved, err := h.store.IsBookmarked(r.Context(), userID, itemID, itemType)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to check bookmark", r))
		return
	}

	writeJSON(w, http.StatusOK, models.BookmarkStatusResponse{Saved: saved})
}
