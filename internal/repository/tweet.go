package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rahulm682/VideoAppBackend/internal/model"
)

type tweetRepository struct {
	db *sqlx.DB
}

func NewTweetRepository(db *sqlx.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, t *model.Tweet) error {
	query := `
		INSERT INTO tweets (owner_id, content)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	row := r.db.QueryRowxContext(ctx, query, t.OwnerID, t.Content)
	err := row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert tweet: %w", err)
	}
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id int64) (*model.Tweet, error) {
	query := `
		SELECT id, owner_id, content, created_at, updated_at
		FROM tweets
		WHERE id = $1
	`
	var t model.Tweet
	err := r.db.GetContext(ctx, &t, query, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrTweetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tweet: %w", err)
	}
	return &t, nil
}

// ListByOwner returns a user's tweets, newest first.
func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Tweet, error) {
	query := `
		SELECT id, owner_id, content, created_at, updated_at
		FROM tweets
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`
	var tweets []model.Tweet
	err := r.db.SelectContext(ctx, &tweets, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}
	return tweets, nil
}

func (r *tweetRepository) Update(ctx context.Context, t *model.Tweet) error {
	query := `
		UPDATE tweets SET content = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING updated_at
	`
	err := r.db.GetContext(ctx, &t.UpdatedAt, query, t.Content, t.ID)
	if err == sql.ErrNoRows {
		return model.ErrTweetNotFound
	}
	if err != nil {
		return fmt.Errorf("update tweet: %w", err)
	}
	return nil
}

func (r *tweetRepository) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrTweetNotFound
	}
	return nil
}

func (r *tweetRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM tweets WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("check tweet exists: %w", err)
	}
	return exists, nil
}
