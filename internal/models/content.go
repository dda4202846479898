package models

import (
	"time"

	"github.com/google/uuid"
)

// Word and Sentence are the learning-content rows study statuses point at.
// Content is authored outside this service; these are read-only here.

type Word struct {
	ID           uuid.UUID `json:"id"`
	Term         string    `json:"term"`
	Translation  string    `json:"translation"`
	Definition   string    `json:"definition"`
	Phonetic     string    `json:"phonetic"`
	PartOfSpeech string    `json:"part_of_speech"`
	Example      string    `json:"example"`
	AudioURL     *string   `json:"audio_url"`
	CreatedAt    time.Time `json:"created_at"`
}

type Sentence struct {
	ID          uuid.UUID `json:"id"`
	Text        string    `json:"text"`
	Translation string    `json:"translation"`
	AudioURL    *string   `json:"audio_url"`
	CreatedAt   time.Time `json:"created_at"`
}
