package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rahulm682/VideoAppBackend/internal/model"
)

type playlistRepository struct {
	db *sqlx.DB
}

func NewPlaylistRepository(db *sqlx.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(ctx context.Context, p *model.Playlist) error {
	query := `
		INSERT INTO playlists (owner_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	row := r.db.QueryRowxContext(ctx, query, p.OwnerID, p.Name, p.Description)
	err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert playlist: %w", err)
	}
	return nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	query := `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM playlists
		WHERE id = $1
	`
	var p model.Playlist
	err := r.db.GetContext(ctx, &p, query, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return &p, nil
}

func (r *playlistRepository) GetByOwner(ctx context.Context, ownerID int64) ([]model.Playlist, error) {
	query := `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM playlists
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`
	var playlists []model.Playlist
	err := r.db.SelectContext(ctx, &playlists, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	return playlists, nil
}

func (r *playlistRepository) Update(ctx context.Context, p *model.Playlist) error {
	query := `
		UPDATE playlists SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`
	err := r.db.GetContext(ctx, &p.UpdatedAt, query, p.Name, p.Description, p.ID)
	if err == sql.ErrNoRows {
		return model.ErrPlaylistNotFound
	}
	if err != nil {
		return fmt.Errorf("update playlist: %w", err)
	}
	return nil
}

// Delete removes the playlist; membership rows go with it via the FK cascade.
func (r *playlistRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPlaylistNotFound
	}
	return nil
}

// AddVideo inserts a membership row; duplicate adds are absorbed by the
// composite primary key.
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO playlist_videos (playlist_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (playlist_id, video_id) DO NOTHING
	`, playlistID, videoID)
	if err != nil {
		return fmt.Errorf("add video to playlist: %w", err)
	}
	return nil
}

// RemoveVideo deletes a membership row. Removing a non-member is a no-op.
func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2
	`, playlistID, videoID)
	if err != nil {
		return fmt.Errorf("remove video from playlist: %w", err)
	}
	return nil
}

// MemberVideos returns every member video, newest first. The storage layer
// keeps no member order; presentation order is fixed here at read time.
func (r *playlistRepository) MemberVideos(ctx context.Context, playlistID int64) ([]model.Video, error) {
	query := `
		SELECT v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
		       v.duration, v.views, v.is_published, v.created_at, v.updated_at
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		WHERE pv.playlist_id = $1
		ORDER BY v.created_at DESC, v.id DESC
	`
	var videos []model.Video
	err := r.db.SelectContext(ctx, &videos, query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("get playlist videos: %w", err)
	}
	return videos, nil
}

func (r *playlistRepository) RemoveVideoFromAll(ctx context.Context, tx *sqlx.Tx, videoID int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM playlist_videos WHERE video_id = $1`, videoID)
	if err != nil {
		return fmt.Errorf("remove video from playlists: %w", err)
	}
	return nil
}
