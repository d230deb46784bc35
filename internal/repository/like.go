package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/rahulm682/VideoAppBackend/internal/model"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle performs the conditional upsert keyed on the uniqueness tuple.
// A first reaction inserts liked=true; any later call negates the stored
// flag. The unique constraint makes concurrent first reactions converge on
// a single row instead of creating duplicates.
func (r *likeRepository) Toggle(ctx context.Context, kind model.TargetKind, targetID, userID int64) (*model.Like, error) {
	query := `
		INSERT INTO likes (target_kind, target_id, user_id, liked)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (target_kind, target_id, user_id)
		DO UPDATE SET liked = NOT likes.liked, updated_at = NOW()
		RETURNING id, target_kind, target_id, user_id, liked, created_at, updated_at
	`
	var like model.Like
	err := r.db.GetContext(ctx, &like, query, kind, targetID, userID)
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}
	return &like, nil
}

// CountLiked counts active likes for a target.
func (r *likeRepository) CountLiked(ctx context.Context, kind model.TargetKind, targetID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM likes
		WHERE target_kind = $1 AND target_id = $2 AND liked
	`, kind, targetID)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

// LikersByTarget returns the active likers of each target in one query.
func (r *likeRepository) LikersByTarget(ctx context.Context, kind model.TargetKind, targetIDs []int64) (map[int64][]int64, error) {
	result := make(map[int64][]int64, len(targetIDs))
	if len(targetIDs) == 0 {
		return result, nil
	}

	type row struct {
		TargetID int64 `db:"target_id"`
		UserID   int64 `db:"user_id"`
	}
	var rows []row
	err := r.db.SelectContext(ctx, &rows, `
		SELECT target_id, user_id FROM likes
		WHERE target_kind = $1 AND target_id = ANY($2) AND liked
	`, kind, pq.Array(targetIDs))
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("get likers: %w", err)
	}

	for _, r := range rows {
		result[r.TargetID] = append(result[r.TargetID], r.UserID)
	}
	return result, nil
}

// DeleteAllFor removes every like referencing the target. Safe to repeat.
func (r *likeRepository) DeleteAllFor(ctx context.Context, tx *sqlx.Tx, kind model.TargetKind, targetID int64) error {
	_, err := tx.ExecContext(ctx, `
		DELETE FROM likes WHERE target_kind = $1 AND target_id = $2
	`, kind, targetID)
	if err != nil {
		return fmt.Errorf("delete likes for target: %w", err)
	}
	return nil
}

// DeleteForVideoComments purges likes of every comment under a video.
func (r *likeRepository) DeleteForVideoComments(ctx context.Context, tx *sqlx.Tx, videoID int64) error {
	_, err := tx.ExecContext(ctx, `
		DELETE FROM likes
		WHERE target_kind = $1
		  AND target_id IN (SELECT id FROM comments WHERE video_id = $2)
	`, model.TargetComment, videoID)
	if err != nil {
		return fmt.Errorf("delete comment likes for video: %w", err)
	}
	return nil
}

// LikedVideoIDs returns the videos a user currently likes, newest like first.
func (r *likeRepository) LikedVideoIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.SelectContext(ctx, &ids, `
		SELECT target_id FROM likes
		WHERE target_kind = $1 AND user_id = $2 AND liked
		ORDER BY updated_at DESC
	`, model.TargetVideo, userID)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("get liked video ids: %w", err)
	}
	return ids, nil
}
