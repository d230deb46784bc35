package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/rahulm682/VideoAppBackend/internal/model"
	"github.com/rahulm682/VideoAppBackend/internal/repository"
)

type TweetService struct {
	tweetRepo  repository.TweetRepository
	engagement *EngagementService
	assembler  *ViewAssembler
	db         *sqlx.DB
}

func NewTweetService(
	tweetRepo repository.TweetRepository,
	engagement *EngagementService,
	assembler *ViewAssembler,
	db *sqlx.DB,
) *TweetService {
	return &TweetService{
		tweetRepo:  tweetRepo,
		engagement: engagement,
		assembler:  assembler,
		db:         db,
	}
}

// Create posts a new tweet and returns its assembled view with zero
// engagement.
func (s *TweetService) Create(ctx context.Context, viewerID int64, req model.TweetContentRequest) (*model.TweetView, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, model.ErrTweetContentRequired
	}
	if len(content) > model.MaxTweetLength {
		return nil, model.ErrTweetContentTooLong
	}

	tweet := &model.Tweet{
		OwnerID: viewerID,
		Content: content,
	}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}

	owner, err := s.assembler.OwnerSummary(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	log.Printf("[TweetService] User %d created tweet %d", viewerID, tweet.ID)

	return &model.TweetView{
		Tweet:   *tweet,
		Owner:   owner,
		IsOwner: true,
	}, nil
}

// ListByUser returns a user's tweets as assembled views, newest first.
func (s *TweetService) ListByUser(ctx context.Context, userID int64, viewerID *int64) ([]model.TweetView, error) {
	tweets, err := s.tweetRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	tweetIDs := make([]int64, len(tweets))
	for i, t := range tweets {
		tweetIDs[i] = t.ID
	}

	engagement, err := s.assembler.EngagementFor(ctx, model.TargetTweet, tweetIDs, viewerID)
	if err != nil {
		return nil, err
	}
	owner, err := s.assembler.OwnerSummary(ctx, userID)
	if err != nil {
		if len(tweets) == 0 {
			// No tweets and no such user is just an empty feed.
			return []model.TweetView{}, nil
		}
		return nil, err
	}

	views := make([]model.TweetView, 0, len(tweets))
	for _, t := range tweets {
		eng := engagement[t.ID]
		views = append(views, model.TweetView{
			Tweet:      t,
			Owner:      owner,
			LikesCount: eng.LikesCount,
			IsLiked:    eng.IsLiked,
			IsOwner:    isOwner(viewerID, t.OwnerID),
		})
	}
	return views, nil
}

// Update edits a tweet's content. Owner-only.
func (s *TweetService) Update(ctx context.Context, tweetID, viewerID int64, req model.TweetContentRequest) (*model.Tweet, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, model.ErrTweetContentRequired
	}
	if len(content) > model.MaxTweetLength {
		return nil, model.ErrTweetContentTooLong
	}

	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet.OwnerID != viewerID {
		return nil, model.ErrNotTweetOwner
	}

	tweet.Content = content
	if err := s.tweetRepo.Update(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

// Delete removes a tweet and purges its likes in one transaction. Owner-only.
func (s *TweetService) Delete(ctx context.Context, tweetID, viewerID int64) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet.OwnerID != viewerID {
		return model.ErrNotTweetOwner
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.tweetRepo.Delete(ctx, tx, tweetID); err != nil {
		return err
	}
	if err := s.engagement.PurgeTarget(ctx, tx, model.TargetTweet, tweetID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	s.engagement.InvalidateCount(ctx, model.TargetTweet, tweetID)

	log.Printf("[TweetService] User %d deleted tweet %d", viewerID, tweetID)
	return nil
}
