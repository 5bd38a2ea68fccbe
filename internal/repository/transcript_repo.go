package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"edureach-backend/internal/models"
)

type TranscriptRepo struct {
	pool *pgxpool.Pool
}

func NewTranscriptRepo(pool *pgxpool.Pool) *TranscriptRepo {
	return &TranscriptRepo{pool: pool}
}

// Upsert stores a transcript for a (user, video) pair. A later save with a
// different source (e.g. manual over automatic) replaces the stored text.
func (r *TranscriptRepo) Upsert(ctx context.Context, t *models.StoredTranscript) error {
	query := `INSERT INTO video_transcripts (user_id, video_id, transcript, language, source)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, video_id)
		DO UPDATE SET transcript = EXCLUDED.transcript, language = EXCLUDED.language,
			source = EXCLUDED.source, updated_at = NOW()
		RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		t.UserID, t.VideoID, t.Transcript, t.Language, t.Source,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *TranscriptRepo) GetByVideo(ctx context.Context, userID uuid.UUID, videoID string) (*models.StoredTranscript, error) {
	t := &models.StoredTranscript{}
	query := `SELECT user_id, video_id, transcript, language, source, created_at, updated_at
		FROM video_transcripts WHERE user_id = $1 AND video_id = $2`

	err := r.pool.QueryRow(ctx, query, userID, videoID).Scan(
		&t.UserID, &t.VideoID, &t.Transcript, &t.Language, &t.Source, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}
