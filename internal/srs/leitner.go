package srs

import (
	"math/rand"
	"time"

	"vocabox-backend/internal/models"
)

// Leitner-style box scheduling: seven boxes, 0 (new or just missed) through
// 6 (mastered). A correct answer moves an item one box up, a wrong answer one
// box down, and the box decides how far out the next review lands.

const (
	MaxBoxLevel = 6

	// Minimum spacing between two correct reviews before the box level is
	// allowed to advance again. Keeps a learner from inflating mastery by
	// hammering the same card in one sitting.
	CooldownWindow = 6 * time.Hour
)

// nextDueOffsets maps the box level reached by a correct answer to the offset
// of the next review. Level 6 has no entry on purpose: the lookup falls back
// to zero ("due now"), which is what the original schedule did for mastered
// items. Those rows never surface anyway because due selection filters on
// is_completed.
var nextDueOffsets = map[int]time.Duration{
	0: 0,
	1: 24 * time.Hour,
	2: 3 * 24 * time.Hour,
	3: 7 * 24 * time.Hour,
	4: 14 * 24 * time.Hour,
	5: 30 * 24 * time.Hour,
}

// Apply computes the study status after one review outcome. current may be
// nil when the learner reviews an item for the first time. The function is
// pure: it reads no clock and touches no store, so concurrent requests
// serialize entirely at the upsert that persists its result.
//
// Identity fields (UserID, ItemID, ItemType) of the returned record are
// copied from current when present; for a first review the caller fills them
// in before persisting.
func Apply(current *models.StudyStatus, correct bool, reviewedAt time.Time) models.StudyStatus {
	reviewedAt = reviewedAt.UTC()

	var out models.StudyStatus
	level := 0
	if current != nil {
		out = *current
		level = current.BoxLevel
	}

	newLevel := level
	if correct {
		if newLevel < MaxBoxLevel {
			newLevel++
		}
		// Cooldown: a correct answer inside the window keeps the level where
		// it is. Decrements are never suppressed; failures always count.
		if level >= 1 && current != nil && current.StudyDate != nil &&
			reviewedAt.Sub(current.StudyDate.UTC()) < CooldownWindow {
			newLevel = level
		}
	} else if newLevel > 0 {
		newLevel--
	}

	// Wrong answers make the item due again immediately, whatever the level.
	next := reviewedAt
	if correct {
		next = reviewedAt.Add(nextDueOffsets[newLevel])
	}

	studied := reviewedAt
	out.BoxLevel = newLevel
	out.NextReviewDate = &next
	out.StudyDate = &studied
	// Recomputed together with the level on every write, never mutated alone.
	out.IsCompleted = newLevel == MaxBoxLevel
	return out
}

// Shuffle randomizes the presentation order of a due page in place. Which
// items made the page is already fixed by the oldest-due-first query; this
// only permutes them so repeated sessions don't replay the same order.
func Shuffle(items []models.DueItem) {
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
