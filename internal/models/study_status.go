package models

import (
	"time"

	"github.com/google/uuid"
)

// Item types a study status row can point at. The item_id column refers to
// the words or sentences table depending on this discriminator.
const (
	ItemTypeWord     = "word"
	ItemTypeSentence = "sentence"
)

func ValidItemType(t string) bool {
	return t == ItemTypeWord || t == ItemTypeSentence
}

// StudyStatus is the per-user review state for one learning item. At most one
// row exists per (user_id, item_id, item_type); writes go through an upsert.
type StudyStatus struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	ItemID         uuid.UUID  `json:"item_id"`
	ItemType       string     `json:"item_type"`
	BoxLevel       int        `json:"box_level"`
	NextReviewDate *time.Time `json:"next_review_date"`
	StudyDate      *time.Time `json:"study_date"`
	IsCompleted    bool       `json:"is_completed"`
	Removed        bool       `json:"removed"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// DueItem is one entry of a review session: the scheduling fields plus the
// content joined from the words or sentences table.
type DueItem struct {
	ItemID         uuid.UUID  `json:"item_id"`
	ItemType       string     `json:"item_type"`
	BoxLevel       int        `json:"box_level"`
	NextReviewDate *time.Time `json:"next_review_date"`
	Word           *Word      `json:"word,omitempty"`
	Sentence       *Sentence  `json:"sentence,omitempty"`
}

type SubmitOutcomeRequest struct {
	ItemID   uuid.UUID `json:"item_id"`
	ItemType string    `json:"item_type"`
	// Pointer so a missing field is distinguishable from false.
	Correct    *bool     `json:"correct"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

type SubmitOutcomeResponse struct {
	NewBoxLevel    int        `json:"new_box_level"`
	NextReviewDate *time.Time `json:"next_review_date"`
	IsCompleted    bool       `json:"is_completed"`
}

type ToggleBookmarkRequest struct {
	ItemID   uuid.UUID `json:"item_id"`
	ItemType string    `json:"item_type"`
}

type BookmarkStatusResponse struct {
	Saved bool `json:"saved"`
}

type ProgressCounts struct {
	CompletedCount int `json:"completed_count"`
	LearningCount  int `json:"learning_count"`
}
