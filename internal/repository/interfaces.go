package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/rahulm682/VideoAppBackend/internal/model"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetSummaries returns public profiles for the given user IDs, keyed by ID.
	// Missing users are simply absent from the map.
	GetSummaries(ctx context.Context, ids []int64) (map[int64]model.UserSummary, error)
}

type LikeRepository interface {
	// Toggle atomically creates the like row (liked=true) or flips the
	// existing row's liked flag, keyed on (target_kind, target_id, user_id).
	// Returns the post-mutation row.
	Toggle(ctx context.Context, kind model.TargetKind, targetID, userID int64) (*model.Like, error)
	// CountLiked returns the number of active (liked=true) rows for a target.
	CountLiked(ctx context.Context, kind model.TargetKind, targetID int64) (int, error)
	// LikersByTarget returns, per target ID, the user IDs with an active like.
	LikersByTarget(ctx context.Context, kind model.TargetKind, targetIDs []int64) (map[int64][]int64, error)
	// DeleteAllFor removes every like row referencing the target. Idempotent.
	DeleteAllFor(ctx context.Context, tx *sqlx.Tx, kind model.TargetKind, targetID int64) error
	// DeleteForVideoComments purges likes of all comments under a video,
	// used when the video itself is deleted.
	DeleteForVideoComments(ctx context.Context, tx *sqlx.Tx, videoID int64) error
	// LikedVideoIDs returns IDs of videos the user has an active like on,
	// most recently liked first.
	LikedVideoIDs(ctx context.Context, userID int64) ([]int64, error)
}

type VideoRepository interface {
	Create(ctx context.Context, v *model.Video) error
	GetByID(ctx context.Context, id int64) (*model.Video, error)
	// GetByIDs fetches videos preserving the order of the input IDs.
	GetByIDs(ctx context.Context, ids []int64) ([]model.Video, error)
	ListPublished(ctx context.Context) ([]model.Video, error)
	Update(ctx context.Context, v *model.Video) error
	SetPublished(ctx context.Context, id int64, published bool) error
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type TweetRepository interface {
	Create(ctx context.Context, t *model.Tweet) error
	GetByID(ctx context.Context, id int64) (*model.Tweet, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Tweet, error)
	Update(ctx context.Context, t *model.Tweet) error
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	ListByVideo(ctx context.Context, videoID int64) ([]model.Comment, error)
	Update(ctx context.Context, c *model.Comment) error
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type PlaylistRepository interface {
	Create(ctx context.Context, p *model.Playlist) error
	GetByID(ctx context.Context, id int64) (*model.Playlist, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]model.Playlist, error)
	Update(ctx context.Context, p *model.Playlist) error
	Delete(ctx context.Context, id int64) error
	// AddVideo is set-union: adding an existing member is a no-op.
	AddVideo(ctx context.Context, playlistID, videoID int64) error
	// RemoveVideo is set-difference: removing a non-member is a no-op.
	RemoveVideo(ctx context.Context, playlistID, videoID int64) error
	// MemberVideos returns all member videos, newest first, unfiltered;
	// publish-state filtering happens at read-model assembly.
	MemberVideos(ctx context.Context, playlistID int64) ([]model.Video, error)
	// RemoveVideoFromAll drops a video from every playlist, used on video delete.
	RemoveVideoFromAll(ctx context.Context, tx *sqlx.Tx, videoID int64) error
}
