package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"vocabox-backend/internal/models"
)

// WordRepo reads learning content (words and example sentences) for joining
// into due-item responses. Content is written by the import tooling, not here.
type WordRepo struct {
	pool *pgxpool.Pool
}

func NewWordRepo(pool *pgxpool.Pool) *WordRepo {
	return &WordRepo{pool: pool}
}

func (r *WordRepo) WordsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Word, error) {
	words := make(map[uuid.UUID]models.Word, len(ids))
	if len(ids) == 0 {
		return words, nil
	}

	query := `SELECT id, term, translation, definition, phonetic, part_of_speech, example, audio_url, created_at
		FROM words WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		w := models.Word{}
		err := rows.Scan(&w.ID, &w.Term, &w.Translation, &w.Definition, &w.Phonetic,
			&w.PartOfSpeech, &w.Example, &w.AudioURL, &w.CreatedAt)
		if err != nil {
			return nil, err
		}
		words[w.ID] = w
	}
	return words, rows.Err()
}

func (r *WordRepo) SentencesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Sentence, error) {
	sentences := make(map[uuid.UUID]models.Sentence, len(ids))
	if len(ids) == 0 {
		return sentences, nil
	}

	query := `SELECT id, text, translation, audio_url, created_at FROM sentences WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		s := models.Sentence{}
		if err := rows.Scan(&s.ID, &s.Text, &s.Translation, &s.AudioURL, &s.CreatedAt); err != nil {
			return nil, err
		}
		sentences[s.ID] = s
	}
	return sentences, rows.Err()
}
