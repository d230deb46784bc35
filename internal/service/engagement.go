package service

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"github.com/rahulm682/VideoAppBackend/internal/cache"
	"github.com/rahulm682/VideoAppBackend/internal/model"
	"github.com/rahulm682/VideoAppBackend/internal/repository"
)

// EngagementService owns the like ledger: the toggle operation, count
// lookups, and the cascade purge used when a target is deleted.
type EngagementService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	tweetRepo   repository.TweetRepository
	commentRepo repository.CommentRepository
	countCache  cache.LikeCountCache
	assembler   *ViewAssembler
}

func NewEngagementService(
	likeRepo repository.LikeRepository,
	videoRepo repository.VideoRepository,
	tweetRepo repository.TweetRepository,
	commentRepo repository.CommentRepository,
	countCache cache.LikeCountCache,
	assembler *ViewAssembler,
) *EngagementService {
	return &EngagementService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		tweetRepo:   tweetRepo,
		commentRepo: commentRepo,
		countCache:  countCache,
		assembler:   assembler,
	}
}

// Toggle flips the viewer's reaction on a target, creating the record with
// liked=true on first contact. The repository performs the flip-or-create as
// one atomic upsert, so alternating calls mean like, unlike, like regardless
// of concurrent togglers. Returns the post-mutation record with a fresh count.
func (s *EngagementService) Toggle(ctx context.Context, viewerID int64, kind model.TargetKind, targetID int64) (*model.ToggleResult, error) {
	if !kind.Valid() {
		return nil, model.ErrUnknownTargetKind
	}

	exists, err := s.targetExists(ctx, kind, targetID)
	if err != nil {
		return nil, fmt.Errorf("check target exists: %w", err)
	}
	if !exists {
		return nil, model.ErrInvalidTarget
	}

	like, err := s.likeRepo.Toggle(ctx, kind, targetID, viewerID)
	if err != nil {
		return nil, err
	}

	count, err := s.likeRepo.CountLiked(ctx, kind, targetID)
	if err != nil {
		return nil, fmt.Errorf("count likes after toggle: %w", err)
	}

	if err := s.countCache.Set(ctx, kind, targetID, count); err != nil {
		log.Printf("[EngagementService] Failed to refresh like count cache: %s/%d err=%v", kind, targetID, err)
	}

	log.Printf("[EngagementService] User %d toggled %s %d to liked=%v", viewerID, kind, targetID, like.Liked)

	return &model.ToggleResult{Like: *like, LikesCount: count}, nil
}

// CountLiked returns the number of active likes on a target, read through
// the cache. The database stays authoritative on a miss.
func (s *EngagementService) CountLiked(ctx context.Context, kind model.TargetKind, targetID int64) (int, error) {
	if !kind.Valid() {
		return 0, model.ErrUnknownTargetKind
	}

	count, found, err := s.countCache.Get(ctx, kind, targetID)
	if err != nil {
		log.Printf("[EngagementService] Like count cache read failed: %s/%d err=%v", kind, targetID, err)
	} else if found {
		return count, nil
	}

	count, err = s.likeRepo.CountLiked(ctx, kind, targetID)
	if err != nil {
		return 0, err
	}

	if err := s.countCache.Set(ctx, kind, targetID, count); err != nil {
		log.Printf("[EngagementService] Failed to warm like count cache: %s/%d err=%v", kind, targetID, err)
	}
	return count, nil
}

// PurgeTarget removes every like for a deleted target inside the caller's
// transaction. Idempotent. The cached count must be dropped separately with
// InvalidateCount once the transaction has committed; invalidating here
// would let a concurrent read re-warm the cache with the pre-delete count.
func (s *EngagementService) PurgeTarget(ctx context.Context, tx *sqlx.Tx, kind model.TargetKind, targetID int64) error {
	return s.likeRepo.DeleteAllFor(ctx, tx, kind, targetID)
}

// InvalidateCount drops the cached like count for a target. Called after a
// purge's transaction commits. Best-effort: a missed drop heals via TTL.
func (s *EngagementService) InvalidateCount(ctx context.Context, kind model.TargetKind, targetID int64) {
	if err := s.countCache.Invalidate(ctx, kind, targetID); err != nil {
		log.Printf("[EngagementService] Failed to invalidate like count cache: %s/%d err=%v", kind, targetID, err)
	}
}

// PurgeVideoComments removes the likes of every comment under a video, used
// when the video (and with it the comments) is deleted. Stale cached counts
// for those comments age out via TTL.
func (s *EngagementService) PurgeVideoComments(ctx context.Context, tx *sqlx.Tx, videoID int64) error {
	return s.likeRepo.DeleteForVideoComments(ctx, tx, videoID)
}

// LikedVideos returns the published videos the viewer currently likes,
// most recently liked first, assembled with owner profiles.
func (s *EngagementService) LikedVideos(ctx context.Context, viewerID int64) ([]model.VideoView, error) {
	ids, err := s.likeRepo.LikedVideoIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	videos, err := s.videoRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	published := videos[:0]
	for _, v := range videos {
		if v.IsPublished {
			published = append(published, v)
		}
	}

	return assembleVideoViews(ctx, s.assembler, published, &viewerID)
}

func (s *EngagementService) targetExists(ctx context.Context, kind model.TargetKind, targetID int64) (bool, error) {
	switch kind {
	case model.TargetVideo:
		return s.videoRepo.Exists(ctx, targetID)
	case model.TargetTweet:
		return s.tweetRepo.Exists(ctx, targetID)
	case model.TargetComment:
		return s.commentRepo.Exists(ctx, targetID)
	}
	return false, model.ErrUnknownTargetKind
}
