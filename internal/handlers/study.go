package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"vocabox-backend/internal/middleware"
	"vocabox-backend/internal/models"
	"vocabox-backend/internal/srs"
)

type studyStatusStore interface {
	Get(ctx context.Context, userID, itemID uuid.UUID, itemType string) (*models.StudyStatus, error)
	Upsert(ctx context.Context, s *models.StudyStatus) error
	ListDue(ctx context.Context, userID uuid.UUID, itemType string, now time.Time, limit int) ([]models.StudyStatus, error)
}

type contentStore interface {
	WordsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Word, error)
	SentencesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Sentence, error)
}

type StudyHandler struct {
	statusStore  studyStatusStore
	contentStore contentStore
}

func NewStudyHandler(statusStore studyStatusStore, contentStore contentStore) *StudyHandler {
	return &StudyHandler{statusStore: statusStore, contentStore: contentStore}
}

// GetDueItems returns the next review batch: oldest-due rows first, capped at
// the limit, then shuffled so sessions don't replay the same order.
func (h *StudyHandler) GetDueItems(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	itemType := r.URL.Query().Get("item_type")
	if !models.ValidItemType(itemType) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "item_type must be word or sentence", r))
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	statuses, err := h.statusStore.ListDue(r.Context(), userID, itemType, time.Now().UTC(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch due items", r))
		return
	}

	items, err := h.joinContent(r.Context(), itemType, statuses)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load item content", r))
		return
	}

	srs.Shuffle(items)

	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *StudyHandler) joinContent(ctx context.Context, itemType string, statuses []models.StudyStatus) ([]models.DueItem, error) {
	ids := make([]uuid.UUID, 0, len(statuses))
	for _, s := range statuses {
		ids = append(ids, s.ItemID)
	}

	items := make([]models.DueItem, 0, len(statuses))
	switch itemType {
	case models.ItemTypeWord:
		words, err := h.contentStore.WordsByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, s := range statuses {
			item := models.DueItem{ItemID: s.ItemID, ItemType: s.ItemType, BoxLevel: s.BoxLevel, NextReviewDate: s.NextReviewDate}
			if w, ok := words[s.ItemID]; ok {
				item.Word = &w
			}
			items = append(items, item)
		}
	case models.ItemTypeSentence:
		sentences, err := h.contentStore.SentencesByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, s := range statuses {
			item := models.DueItem{ItemID: s.ItemID, ItemType: s.ItemType, BoxLevel: s.BoxLevel, NextReviewDate: s.NextReviewDate}
			if sent, ok := sentences[s.ItemID]; ok {
				item.Sentence = &sent
			}
			items = append(items, item)
		}
	}
	return items, nil
}

// SubmitOutcome applies one review result and persists the new study status.
func (h *StudyHandler) SubmitOutcome(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.SubmitOutcomeRequest
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
	if req.Correct == nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "correct is required", r))
		return
	}

	reviewedAt := req.ReviewedAt
	if reviewedAt.IsZero() {
		reviewedAt = time.Now()
	}
	reviewedAt = reviewedAt.UTC()

	current, err := h.statusStore.Get(r.Context(), userID, req.ItemID, req.ItemType)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load study status", r))
		return
	}

	updated := srs.Apply(current, *req.Correct, reviewedAt)
	updated.UserID = userID
	updated.ItemID = req.ItemID
	updated.ItemType = req.ItemType

	if err := h.statusStore.Upsert(r.Context(), &updated); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save study status", r))
		return
	}

	writeJSON(w, http.StatusOK, models.SubmitOutcomeResponse{
		NewBoxLevel:    updated.BoxLevel,
		NextReviewDate: updated.NextReviewDate,
		IsCompleted:    updated.IsCompleted,
	})
}
