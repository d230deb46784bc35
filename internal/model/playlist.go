package model

import (
	"errors"
	"time"
)

// Playlist is a user-owned, unordered set of videos.
type Playlist struct {
	ID          int64     `db:"id" json:"id"`
	OwnerID     int64     `db:"owner_id" json:"owner_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// PlaylistVideo is a member video projected for playlist views, with its
// owner's public profile attached.
type PlaylistVideo struct {
	ID           int64       `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	VideoURL     string      `json:"video_url"`
	ThumbnailURL string      `json:"thumbnail_url"`
	Duration     float64     `json:"duration"`
	Views        int64       `json:"views"`
	Owner        UserSummary `json:"owner"`
}

// PlaylistView is the assembled projection of a playlist. Thumbnail,
// VideosCount and TotalViews are computed over published members only.
type PlaylistView struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Owner       UserSummary     `json:"owner"`
	IsOwner     bool            `json:"is_owner"`
	Thumbnail   *string         `json:"thumbnail"`
	VideosCount int             `json:"videos_count"`
	TotalViews  int64           `json:"total_views"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Videos      []PlaylistVideo `json:"videos,omitempty"`
}

// PlaylistRequest is the body for create and update.
type PlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

const (
	MaxPlaylistNameLength        = 100
	MaxPlaylistDescriptionLength = 2000
)

var (
	ErrPlaylistNotFound     = errors.New("playlist not found")
	ErrNotPlaylistOwner     = errors.New("not the owner of this playlist")
	ErrPlaylistNameRequired = errors.New("playlist name and description are required")
)
