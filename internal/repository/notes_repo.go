package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"edureach-backend/internal/models"
)

type NotesRepo struct {
	pool *pgxpool.Pool
}

func NewNotesRepo(pool *pgxpool.Pool) *NotesRepo {
	return &NotesRepo{pool: pool}
}

// Upsert saves notes for a (user, video) pair, creating the row on first
// save and replacing notes and timestamps on subsequent ones.
func (r *NotesRepo) Upsert(ctx context.Context, req *models.SaveNotesRequest) (*models.VideoNotes, error) {
	tsBytes, _ := json.Marshal(req.Timestamps)
	if req.Timestamps == nil {
		tsBytes = []byte("[]")
	}

	n := &models.VideoNotes{
		UserID:     req.UserID,
		VideoID:    req.VideoID,
		Notes:      req.Notes,
		Timestamps: tsBytes,
	}

	query := `INSERT INTO video_notes (id, user_id, video_id, notes, timestamps)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, video_id)
		DO UPDATE SET notes = EXCLUDED.notes, timestamps = EXCLUDED.timestamps, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		uuid.New(), req.UserID, req.VideoID, req.Notes, tsBytes,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *NotesRepo) GetByVideo(ctx context.Context, userID uuid.UUID, videoID string) (*models.VideoNotes, error) {
	n := &models.VideoNotes{}
	query := `SELECT id, user_id, video_id, notes, timestamps, created_at, updated_at
		FROM video_notes WHERE user_id = $1 AND video_id = $2`

	err := r.pool.QueryRow(ctx, query, userID, videoID).Scan(
		&n.ID, &n.UserID, &n.VideoID, &n.Notes, &n.Timestamps, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// ListByUser returns summaries for all of a user's notes, most recently
// updated first.
func (r *NotesRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.NotesSummary, error) {
	query := `SELECT id, video_id, notes, timestamps, created_at, updated_at
		FROM video_notes WHERE user_id = $1 ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []models.NotesSummary{}
	for rows.Next() {
		var s models.NotesSummary
		var tsBytes []byte
		if err := rows.Scan(&s.ID, &s.VideoID, &s.Notes, &tsBytes, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}

		var timestamps []models.TimestampedNote
		if json.Unmarshal(tsBytes, &timestamps) == nil {
			s.TimestampsCount = len(timestamps)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *NotesRepo) Delete(ctx context.Context, userID uuid.UUID, videoID string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM video_notes WHERE user_id = $1 AND video_id = $2", userID, videoID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
