package service

import (
	"context"
	"fmt"

	"github.com/rahulm682/VideoAppBackend/internal/model"
	"github.com/rahulm682/VideoAppBackend/internal/repository"
)

// ViewAssembler derives the fields shared by every read-model: per-target
// engagement (likes count, viewer's like state, liker set) and owner
// summaries. The four entity views differ only in the parent fields they
// merge these into, so the derivation lives here once instead of being
// copied per entity kind.
type ViewAssembler struct {
	likeRepo repository.LikeRepository
	userRepo repository.UserRepository
}

func NewViewAssembler(likeRepo repository.LikeRepository, userRepo repository.UserRepository) *ViewAssembler {
	return &ViewAssembler{
		likeRepo: likeRepo,
		userRepo: userRepo,
	}
}

// EngagementFor computes like-derived view fields for a batch of targets of
// one kind. Targets with no likes still get a zero-valued entry.
func (a *ViewAssembler) EngagementFor(ctx context.Context, kind model.TargetKind, targetIDs []int64, viewerID *int64) (map[int64]model.Engagement, error) {
	likers, err := a.likeRepo.LikersByTarget(ctx, kind, targetIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch likers: %w", err)
	}

	result := make(map[int64]model.Engagement, len(targetIDs))
	for _, id := range targetIDs {
		set := make(map[int64]bool, len(likers[id]))
		for _, userID := range likers[id] {
			set[userID] = true
		}
		result[id] = model.Engagement{
			LikesCount: len(set),
			IsLiked:    viewerID != nil && set[*viewerID],
			Likers:     set,
		}
	}
	return result, nil
}

// OwnerSummaries resolves public profiles for a set of owner IDs.
func (a *ViewAssembler) OwnerSummaries(ctx context.Context, ownerIDs []int64) (map[int64]model.UserSummary, error) {
	return a.userRepo.GetSummaries(ctx, dedupe(ownerIDs))
}

// OwnerSummary resolves a single owner. A missing owner means a dangling
// reference in the store, surfaced as ErrUserNotFound for the caller to
// report as an internal fault.
func (a *ViewAssembler) OwnerSummary(ctx context.Context, ownerID int64) (model.UserSummary, error) {
	summaries, err := a.userRepo.GetSummaries(ctx, []int64{ownerID})
	if err != nil {
		return model.UserSummary{}, err
	}
	summary, ok := summaries[ownerID]
	if !ok {
		return model.UserSummary{}, fmt.Errorf("owner %d: %w", ownerID, model.ErrUserNotFound)
	}
	return summary, nil
}

// isOwner reports whether the viewer owns the entity. Anonymous viewers own
// nothing.
func isOwner(viewerID *int64, ownerID int64) bool {
	return viewerID != nil && *viewerID == ownerID
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
