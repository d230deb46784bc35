package model

import (
	"errors"
	"time"
)

// Comment is a user comment on a video.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	VideoID   int64     `db:"video_id" json:"video_id"`
	OwnerID   int64     `db:"owner_id" json:"owner_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CommentView is the assembled, viewer-relative projection of a comment.
// IsLikedByVideoOwner marks comments the video's uploader has liked.
type CommentView struct {
	Comment
	Owner               UserSummary `json:"owner"`
	LikesCount          int         `json:"likes_count"`
	IsLiked             bool        `json:"is_liked"`
	IsOwner             bool        `json:"is_owner"`
	IsLikedByVideoOwner bool        `json:"is_liked_by_video_owner"`
}

// CommentContentRequest is the body for add and update.
type CommentContentRequest struct {
	Content string `json:"content"`
}

const MaxCommentLength = 1000

var (
	ErrCommentNotFound        = errors.New("comment not found")
	ErrNotCommentOwner        = errors.New("not the owner of this comment")
	ErrCommentContentRequired = errors.New("comment content is required")
	ErrCommentContentTooLong  = errors.New("comment content too long")
)
