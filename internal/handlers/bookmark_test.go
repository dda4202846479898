package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"vocabox-backend/internal/models"
)

type bookmarkKey struct {
	userID   uuid.UUID
	itemID   uuid.UUID
	itemType string
}

type bookmarkRow struct {
	boxLevel int
	removed  bool
}

// stubBookmarkStore mimics the single-statement toggle upsert: first call
// creates the row unremoved, later calls flip the flag and leave the level.
type stubBookmarkStore struct {
	rows map[bookmarkKey]*bookmarkRow
}

func newStubBookmarkStore() *stubBookmarkStore {
	return &stubBookmarkStore{rows: map[bookmarkKey]*bookmarkRow{}}
}

func (s *stubBookmarkStore) ToggleRemoved(ctx context.Context, userID, itemID uuid.UUID, itemType string, now time.Time) (bool, error) {
	key := bookmarkKey{userID, itemID, itemType}
	row, ok := s.rows[key]
	if !ok {
		s.rows[key] = &bookmarkRow{boxLevel: 0, removed: false}
		return true, nil
	}
	row.removed = !row.removed
	return !row.removed, nil
}

func (s *stubBookmarkStore) IsBookmarked(ctx context.Context, userID, itemID uuid.UUID, itemType string) (bool, error) {
	row, ok := s.rows[bookmarkKey{userID, itemID, itemType}]
	return ok && !row.removed, nil
}

func toggleOnce(t *testing.T, h *BookmarkHandler, userID, itemID uuid.UUID) bool {
	t.Helper()

	body, _ := json.Marshal(models.ToggleBookmarkRequest{ItemID: itemID, ItemType: models.ItemTypeWord})
	rr := httptest.NewRecorder()
	h.Toggle(rr, authedRequest(http.MethodPost, "/api/v1/study/bookmark", body, userID))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp models.BookmarkStatusResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.Saved
}

func TestBookmarkHandler_Toggle_RoundTrip(t *testing.T) {
	userID := uuid.New()
	itemID := uuid.New()
	store := newStubBookmarkStore()
	h := NewBookmarkHandler(store)

	// First toggle creates the row and saves it.
	if saved := toggleOnce(t, h, userID, itemID); !saved {
		t.Fatal("expected first toggle to report saved=true")
	}

	// Simulate mastery progress before the round trip.
	key := bookmarkKey{userID, itemID, models.ItemTypeWord}
	store.rows[key].boxLevel = 4

	if saved := toggleOnce(t, h, userID, itemID); saved {
		t.Fatal("expected second toggle to report saved=false")
	}
	if saved := toggleOnce(t, h, userID, itemID); !saved {
		t.Fatal("expected third toggle to report saved=true again")
	}

	// Two consecutive toggles returned removed to its original value and the
	// box level was never touched.
	if store.rows[key].removed {
		t.Fatal("expected row to end unremoved")
	}
	if store.rows[key].boxLevel != 4 {
		t.Fatalf("expected box level to survive toggling, got %d", store.rows[key].boxLevel)
	}
}

func TestBookmarkHandler_Toggle_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing item_id", `{"item_type":"word"}`},
		{"bad item_type", fmt.Sprintf(`{"item_id":"%s","item_type":"deck"}`, uuid.New())},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newStubBookmarkStore()
			h := NewBookmarkHandler(store)

			rr := httptest.NewRecorder()
			h.Toggle(rr, authedRequest(http.MethodPost, "/api/v1/study/bookmark", []byte(tc.body), uuid.New()))

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rr.Code)
			}
			if len(store.rows) != 0 {
				t.Fatal("store must not be written on invalid input")
			}
		})
	}
}

func TestBookmarkHandler_Status(t *testing.T) {
	userID := uuid.New()
	itemID := uuid.New()
	store := newStubBookmarkStore()
	h := NewBookmarkHandler(store)

	check := func(wantSaved bool) {
		t.Helper()
		target := fmt.Sprintf("/api/v1/study/bookmark?item_id=%s&item_type=word", itemID)
		rr := httptest.NewRecorder()
		h.Status(rr, authedRequest(http.MethodGet, target, nil, userID))

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}
		var resp models.BookmarkStatusResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Saved != wantSaved {
			t.Fatalf("expected saved=%v, got %v", wantSaved, resp.Saved)
		}
	}

	// Never-touched item reads as not saved.
	check(false)

	toggleOnce(t, h, userID, itemID)
	check(true)

	toggleOnce(t, h, userID, itemID)
	check(false)
}
