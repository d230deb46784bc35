package model

import (
	"errors"
	"time"
)

// Tweet is a short text post.
type Tweet struct {
	ID        int64     `db:"id" json:"id"`
	OwnerID   int64     `db:"owner_id" json:"owner_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// TweetView is the assembled, viewer-relative projection of a tweet.
type TweetView struct {
	Tweet
	Owner      UserSummary `json:"owner"`
	LikesCount int         `json:"total_likes"`
	IsLiked    bool        `json:"is_liked"`
	IsOwner    bool        `json:"is_owner"`
}

// TweetContentRequest is the body for create and update.
type TweetContentRequest struct {
	Content string `json:"content"`
}

const MaxTweetLength = 500

var (
	ErrTweetNotFound        = errors.New("tweet not found")
	ErrNotTweetOwner        = errors.New("not the owner of this tweet")
	ErrTweetContentRequired = errors.New("tweet content is required")
	ErrTweetContentTooLong  = errors.New("tweet content too long")
)
