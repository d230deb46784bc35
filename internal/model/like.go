package model

import (
	"errors"
	"time"
)

// TargetKind is the discriminant of the polymorphic like target.
type TargetKind string

const (
	TargetComment TargetKind = "comment"
	TargetVideo   TargetKind = "video"
	TargetTweet   TargetKind = "tweet"
)

// Valid reports whether k is one of the known target kinds.
func (k TargetKind) Valid() bool {
	switch k {
	case TargetComment, TargetVideo, TargetTweet:
		return true
	}
	return false
}

// Like is one user's reaction to exactly one target. At most one row exists
// per (target_kind, target_id, user_id); repeated toggles flip Liked in place.
// Rows are only removed when the target itself is deleted.
type Like struct {
	ID         int64      `db:"id" json:"id"`
	TargetKind TargetKind `db:"target_kind" json:"target_kind"`
	TargetID   int64      `db:"target_id" json:"target_id"`
	UserID     int64      `db:"user_id" json:"user_id"`
	Liked      bool       `db:"liked" json:"liked"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// ToggleResult is returned by the toggle operation: the post-mutation record
// plus a fresh count of active likes on the target.
type ToggleResult struct {
	Like       Like `json:"like"`
	LikesCount int  `json:"likes_count"`
}

// Engagement carries the like-derived, viewer-relative fields merged into
// every read-model. Likers is the set of user IDs with an active like.
type Engagement struct {
	LikesCount int
	IsLiked    bool
	Likers     map[int64]bool
}

var (
	ErrInvalidTarget     = errors.New("like target does not exist")
	ErrUnknownTargetKind = errors.New("unknown like target kind")
)
