package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vocabox-backend/internal/models"
)

type StudyStatusRepo struct {
	pool *pgxpool.Pool
}

func NewStudyStatusRepo(pool *pgxpool.Pool) *StudyStatusRepo {
	return &StudyStatusRepo{pool: pool}
}

const studyStatusColumns = `id, user_id, item_id, item_type, box_level,
	next_review_date, study_date, is_completed, removed, created_at, updated_at`

// Get returns the row for the key, or nil when the learner has never touched
// the item.
func (r *StudyStatusRepo) Get(ctx context.Context, userID, itemID uuid.UUID, itemType string) (*models.StudyStatus, error) {
	s := &models.StudyStatus{}
	query := `SELECT ` + studyStatusColumns + `
		FROM study_statuses WHERE user_id = $1 AND item_id = $2 AND item_type = $3`

	err := r.pool.QueryRow(ctx, query, userID, itemID, itemType).Scan(
		&s.ID, &s.UserID, &s.ItemID, &s.ItemType, &s.BoxLevel,
		&s.NextReviewDate, &s.StudyDate, &s.IsCompleted, &s.Removed, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Upsert writes the record keyed on (user_id, item_id, item_type). An existing
// row is replaced in place; the last write wins, there is no version check.
func (r *StudyStatusRepo) Upsert(ctx context.Context, s *models.StudyStatus) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	query := `
		INSERT INTO study_statuses (id, user_id, item_id, item_type, box_level,
			next_review_date, study_date, is_completed, removed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, item_id, item_type) DO UPDATE SET
			box_level = EXCLUDED.box_level,
			next_review_date = EXCLUDED.next_review_date,
			study_date = EXCLUDED.study_date,
			is_completed = EXCLUDED.is_completed,
			removed = EXCLUDED.removed,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		s.ID, s.UserID, s.ItemID, s.ItemType, s.BoxLevel,
		s.NextReviewDate, s.StudyDate, s.IsCompleted, s.Removed,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// ListDue returns up to limit reviewable rows, oldest due first. Rows with no
// next_review_date are treated as most overdue. Due-ness is compared against
// the caller-supplied now so the query and the engine share one clock.
func (r *StudyStatusRepo) ListDue(ctx context.Context, userID uuid.UUID, itemType string, now time.Time, limit int) ([]models.StudyStatus, error) {
	query := `SELECT ` + studyStatusColumns + `
		FROM study_statuses
		WHERE user_id = $1 AND item_type = $2
			AND removed = FALSE AND is_completed = FALSE
			AND (next_review_date IS NULL OR next_review_date <= $3)
		ORDER BY next_review_date ASC NULLS FIRST
		LIMIT $4`

	rows, err := r.pool.Query(ctx, query, userID, itemType, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []models.StudyStatus
	for rows.Next() {
		s := models.StudyStatus{}
		err := rows.Scan(
			&s.ID, &s.UserID, &s.ItemID, &s.ItemType, &s.BoxLevel,
			&s.NextReviewDate, &s.StudyDate, &s.IsCompleted, &s.Removed, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

// ToggleRemoved bookmarks an item. A first toggle creates the row unremoved at
// box 0 and due now; later toggles flip the removed flag and nothing else.
// One statement, so concurrent first-toggles cannot race a read-then-write.
func (r *StudyStatusRepo) ToggleRemoved(ctx context.Context, userID, itemID uuid.UUID, itemType string, now time.Time) (bool, error) {
	query := `
		INSERT INTO study_statuses (id, user_id, item_id, item_type, box_level, next_review_date, removed)
		VALUES ($1, $2, $3, $4, 0, $5, FALSE)
		ON CONFLICT (user_id, item_id, item_type) DO UPDATE SET
			removed = NOT study_statuses.removed,
			updated_at = NOW()
		RETURNING removed`

	var removed bool
	err := r.pool.QueryRow(ctx, query, uuid.New(), userID, itemID, itemType, now).Scan(&removed)
	if err != nil {
		return false, err
	}
	return !removed, nil
}

// IsBookmarked reports whether a non-removed row exists for the key.
func (r *StudyStatusRepo) IsBookmarked(ctx context.Context, userID, itemID uuid.UUID, itemType string) (bool, error) {
	var removed bool
	err := r.pool.QueryRow(ctx,
		`SELECT removed FROM study_statuses WHERE user_id = $1 AND item_id = $2 AND item_type = $3`,
		userID, itemID, itemType,
	).Scan(&removed)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !removed, nil
}

// Counts returns mastered vs in-progress totals over non-removed rows.
func (r *StudyStatusRepo) Counts(ctx context.Context, userID uuid.UUID, itemType string) (models.ProgressCounts, error) {
	var counts models.ProgressCounts
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE is_completed),
			COUNT(*) FILTER (WHERE NOT is_completed)
		FROM study_statuses
		WHERE user_id = $1 AND item_type = $2 AND removed = FALSE`,
		userID, itemType,
	).Scan(&counts.CompletedCount, &counts.LearningCount)
	return counts, err
}
