package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"vocabox-backend/internal/middleware"
	"vocabox-backend/internal/models"
)

type stubStudyStore struct {
	current  *models.StudyStatus
	due      []models.StudyStatus
	upserted *models.StudyStatus
	lastUser uuid.UUID
	getErr   error
}

func (s *stubStudyStore) Get(ctx context.Context, userID, itemID uuid.UUID, itemType string) (*models.StudyStatus, error) {
	s.lastUser = userID
	return s.current, s.getErr
}

func (s *stubStudyStore) Upsert(ctx context.Context, status *models.StudyStatus) error {
	s.upserted = status
	return nil
}

func (s *stubStudyStore) ListDue(ctx context.Context, userID uuid.UUID, itemType string, now time.Time, limit int) ([]models.StudyStatus, error) {
	s.lastUser = userID
	if len(s.due) > limit {
		return s.due[:limit], nil
	}
	return s.due, nil
}

type stubContentStore struct {
	words     map[uuid.UUID]models.Word
	sentences map[uuid.UUID]models.Sentence
}

func (s *stubContentStore) WordsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Word, error) {
	return s.words, nil
}

func (s *stubContentStore) SentencesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Sentence, error) {
	return s.sentences, nil
}

func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
}

func TestStudyHandler_SubmitOutcome_FirstReview(t *testing.T) {
	userID := uuid.New()
	itemID := uuid.New()
	store := &stubStudyStore{}
	h := NewStudyHandler(store, &stubContentStore{})

	correct := true
	body, _ := json.Marshal(models.SubmitOutcomeRequest{
		ItemID:     itemID,
		ItemType:   models.ItemTypeWord,
		Correct:    &correct,
		ReviewedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	})

	rr := httptest.NewRecorder()
	h.SubmitOutcome(rr, authedRequest(http.MethodPost, "/api/v1/study/outcome", body, userID))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp models.SubmitOutcomeResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.NewBoxLevel != 1 {
		t.Fatalf("expected new box level 1, got %d", resp.NewBoxLevel)
	}

	if store.upserted == nil {
		t.Fatal("expected an upsert")
	}
	if store.upserted.UserID != userID || store.upserted.ItemID != itemID {
		t.Fatalf("upserted row keyed wrong: user=%s item=%s", store.upserted.UserID, store.upserted.ItemID)
	}
	if store.lastUser != userID {
		t.Fatalf("store queried for wrong user: %s", store.lastUser)
	}
}

func TestStudyHandler_SubmitOutcome_Validation(t *testing.T) {
	correct := true
	tests := []struct {
		name string
		body string
	}{
		{"missing item_id", fmt.Sprintf(`{"item_type":"word","correct":%v}`, correct)},
		{"bad item_type", fmt.Sprintf(`{"item_id":"%s","item_type":"paragraph","correct":true}`, uuid.New())},
		{"missing correct", fmt.Sprintf(`{"item_id":"%s","item_type":"word"}`, uuid.New())},
		{"malformed timestamp", fmt.Sprintf(`{"item_id":"%s","item_type":"word","correct":true,"reviewed_at":"yesterday"}`, uuid.New())},
		{"garbage body", `{"item_id":`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubStudyStore{}
			h := NewStudyHandler(store, &stubContentStore{})

			rr := httptest.NewRecorder()
			h.SubmitOutcome(rr, authedRequest(http.MethodPost, "/api/v1/study/outcome", []byte(tc.body), uuid.New()))

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rr.Code)
			}
			if store.upserted != nil {
				t.Fatal("store must not be written on invalid input")
			}
		})
	}
}

func TestStudyHandler_SubmitOutcome_CeilingStaysMastered(t *testing.T) {
	userID := uuid.New()
	itemID := uuid.New()
	studied := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	store := &stubStudyStore{
		current: &models.StudyStatus{
			UserID: userID, ItemID: itemID, ItemType: models.ItemTypeWord,
			BoxLevel: 6, IsCompleted: true, StudyDate: &studied,
		},
	}
	h := NewStudyHandler(store, &stubContentStore{})

	correct := true
	body, _ := json.Marshal(models.SubmitOutcomeRequest{
		ItemID:     itemID,
		ItemType:   models.ItemTypeWord,
		Correct:    &correct,
		ReviewedAt: studied.Add(48 * time.Hour),
	})

	rr := httptest.NewRecorder()
	h.SubmitOutcome(rr, authedRequest(http.MethodPost, "/api/v1/study/outcome", body, userID))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if store.upserted.BoxLevel != 6 || !store.upserted.IsCompleted {
		t.Fatalf("expected mastered item to stay at 6, got level %d", store.upserted.BoxLevel)
	}
	if !store.upserted.StudyDate.Equal(studied.Add(48 * time.Hour)) {
		t.Fatalf("expected study date to move, got %v", store.upserted.StudyDate)
	}
}

func TestStudyHandler_GetDueItems_ShuffleKeepsMembership(t *testing.T) {
	userID := uuid.New()
	store := &stubStudyStore{}
	content := &stubContentStore{words: map[uuid.UUID]models.Word{}}

	want := map[uuid.UUID]bool{}
	for i := 0; i < 10; i++ {
		itemID := uuid.New()
		due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour)
		store.due = append(store.due, models.StudyStatus{
			UserID: userID, ItemID: itemID, ItemType: models.ItemTypeWord,
			BoxLevel: i % 6, NextReviewDate: &due,
		})
		content.words[itemID] = models.Word{ID: itemID, Term: fmt.Sprintf("term-%d", i)}
		want[itemID] = true
	}

	h := NewStudyHandler(store, content)

	rr := httptest.NewRecorder()
	h.GetDueItems(rr, authedRequest(http.MethodGet, "/api/v1/study/due?item_type=word&limit=20", nil, userID))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Items []models.DueItem `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(resp.Items))
	}
	for _, item := range resp.Items {
		if !want[item.ItemID] {
			t.Fatalf("unexpected item %s in due page", item.ItemID)
		}
		if item.Word == nil || item.Word.Term == "" {
			t.Fatalf("expected content joined for item %s", item.ItemID)
		}
	}
	if store.lastUser != userID {
		t.Fatalf("due query scoped to wrong user: %s", store.lastUser)
	}
}

func TestStudyHandler_GetDueItems_LimitCapped(t *testing.T) {
	userID := uuid.New()
	store := &stubStudyStore{}
	for i := 0; i < 30; i++ {
		store.due = append(store.due, models.StudyStatus{
			UserID: userID, ItemID: uuid.New(), ItemType: models.ItemTypeWord,
		})
	}
	h := NewStudyHandler(store, &stubContentStore{words: map[uuid.UUID]models.Word{}})

	// limit=500 is out of range and falls back to the default of 20
	rr := httptest.NewRecorder()
	h.GetDueItems(rr, authedRequest(http.MethodGet, "/api/v1/study/due?item_type=word&limit=500", nil, userID))

	var resp struct {
		Items []models.DueItem `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Items) != 20 {
		t.Fatalf("expected default limit of 20 items, got %d", len(resp.Items))
	}
}

func TestStudyHandler_GetDueItems_InvalidType(t *testing.T) {
	h := NewStudyHandler(&stubStudyStore{}, &stubContentStore{})

	rr := httptest.NewRecorder()
	h.GetDueItems(rr, authedRequest(http.MethodGet, "/api/v1/study/due?item_type=phrase", nil, uuid.New()))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}
