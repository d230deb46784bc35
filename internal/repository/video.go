package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/rahulm682/VideoAppBackend/internal/model"
)

type videoRepository struct {
	db *sqlx.DB
}

func NewVideoRepository(db *sqlx.DB) VideoRepository {
	return &videoRepository{db: db}
}

// Create inserts a new video row and fills in the generated fields.
func (r *videoRepository) Create(ctx context.Context, v *model.Video) error {
	query := `
		INSERT INTO videos (owner_id, title, description, video_url, thumbnail_url, duration, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, views, created_at, updated_at
	`
	row := r.db.QueryRowxContext(ctx, query,
		v.OwnerID, v.Title, v.Description, v.VideoURL, v.ThumbnailURL, v.Duration, v.IsPublished)

	err := row.Scan(&v.ID, &v.Views, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert video: %w", err)
	}
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	query := `
		SELECT id, owner_id, title, description, video_url, thumbnail_url, duration, views, is_published, created_at, updated_at
		FROM videos
		WHERE id = $1
	`
	var v model.Video
	err := r.db.GetContext(ctx, &v, query, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrVideoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return &v, nil
}

// GetByIDs fetches a batch of videos, re-ordered to match the input IDs.
func (r *videoRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Video, error) {
	if len(ids) == 0 {
		return []model.Video{}, nil
	}

	query := `
		SELECT id, owner_id, title, description, video_url, thumbnail_url, duration, views, is_published, created_at, updated_at
		FROM videos
		WHERE id = ANY($1)
	`
	var videos []model.Video
	err := r.db.SelectContext(ctx, &videos, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("get videos by ids: %w", err)
	}

	byID := make(map[int64]model.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	ordered := make([]model.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}

func (r *videoRepository) ListPublished(ctx context.Context) ([]model.Video, error) {
	query := `
		SELECT id, owner_id, title, description, video_url, thumbnail_url, duration, views, is_published, created_at, updated_at
		FROM videos
		WHERE is_published
		ORDER BY created_at DESC, id DESC
	`
	var videos []model.Video
	err := r.db.SelectContext(ctx, &videos, query)
	if err != nil {
		return nil, fmt.Errorf("list published videos: %w", err)
	}
	return videos, nil
}

// Update persists the editable fields of a video.
func (r *videoRepository) Update(ctx context.Context, v *model.Video) error {
	query := `
		UPDATE videos
		SET title = $1, description = $2, thumbnail_url = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`
	err := r.db.GetContext(ctx, &v.UpdatedAt, query, v.Title, v.Description, v.ThumbnailURL, v.ID)
	if err == sql.ErrNoRows {
		return model.ErrVideoNotFound
	}
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}
	return nil
}

func (r *videoRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE videos SET is_published = $1, updated_at = NOW() WHERE id = $2
	`, published, id)
	if err != nil {
		return fmt.Errorf("set published: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrVideoNotFound
	}
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrVideoNotFound
	}
	return nil
}

func (r *videoRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM videos WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("check video exists: %w", err)
	}
	return exists, nil
}
