package model

import (
	"errors"
	"time"
)

// Video is an uploaded video with its stored asset URLs.
type Video struct {
	ID           int64     `db:"id" json:"id"`
	OwnerID      int64     `db:"owner_id" json:"owner_id"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	VideoURL     string    `db:"video_url" json:"video_url"`
	ThumbnailURL string    `db:"thumbnail_url" json:"thumbnail_url"`
	Duration     float64   `db:"duration" json:"duration"`
	Views        int64     `db:"views" json:"views"`
	IsPublished  bool      `db:"is_published" json:"is_published"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// VideoView is the assembled, viewer-relative projection of a video.
// Never persisted.
type VideoView struct {
	Video
	Owner      UserSummary   `json:"owner"`
	LikesCount int           `json:"likes_count"`
	IsLiked    bool          `json:"is_liked"`
	IsOwner    bool          `json:"is_owner"`
	Comments   []CommentView `json:"comments,omitempty"`
}

// UpdateVideoRequest carries the editable metadata fields.
type UpdateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

const (
	MaxVideoTitleLength       = 200
	MaxVideoDescriptionLength = 5000
	MaxVideoFileSize          = 200 * 1024 * 1024
	MaxThumbnailSize          = 10 * 1024 * 1024
	VideoFolder               = "videos"
	ThumbnailFolder           = "thumbnails"
)

// IsAllowedImageType reports whether the content type is accepted for
// thumbnail uploads.
func IsAllowedImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
		return true
	}
	return false
}

var (
	ErrVideoNotFound     = errors.New("video not found")
	ErrNotVideoOwner     = errors.New("not the owner of this video")
	ErrVideoNotVisible   = errors.New("video is not published")
	ErrTitleRequired     = errors.New("title and description are required")
	ErrVideoFileRequired = errors.New("video file is required")
	ErrThumbnailRequired = errors.New("thumbnail is required")
	ErrFileTooLarge      = errors.New("file too large")
	ErrInvalidImageType  = errors.New("unsupported image type")
)
