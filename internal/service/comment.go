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

type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	engagement  *EngagementService
	assembler   *ViewAssembler
	db          *sqlx.DB
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	videoRepo repository.VideoRepository,
	engagement *EngagementService,
	assembler *ViewAssembler,
	db *sqlx.DB,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		engagement:  engagement,
		assembler:   assembler,
		db:          db,
	}
}

// ListByVideo returns every comment on a video as assembled views, newest
// first. The video's visibility gates the whole listing: comments on an
// unpublished video are owner-only, like the video itself.
func (s *CommentService) ListByVideo(ctx context.Context, videoID int64, viewerID *int64) ([]model.CommentView, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && !isOwner(viewerID, video.OwnerID) {
		return nil, model.ErrVideoNotVisible
	}

	return s.listForVideo(ctx, video, viewerID)
}

// listForVideo assembles the comment feed for an already-fetched (and
// visibility-checked) video. Also used when embedding comments in the video
// detail view.
func (s *CommentService) listForVideo(ctx context.Context, video *model.Video, viewerID *int64) ([]model.CommentView, error) {
	comments, err := s.commentRepo.ListByVideo(ctx, video.ID)
	if err != nil {
		return nil, err
	}

	commentIDs := make([]int64, len(comments))
	ownerIDs := make([]int64, len(comments))
	for i, c := range comments {
		commentIDs[i] = c.ID
		ownerIDs[i] = c.OwnerID
	}

	engagement, err := s.assembler.EngagementFor(ctx, model.TargetComment, commentIDs, viewerID)
	if err != nil {
		return nil, err
	}
	owners, err := s.assembler.OwnerSummaries(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	views := make([]model.CommentView, 0, len(comments))
	for _, c := range comments {
		owner, ok := owners[c.OwnerID]
		if !ok {
			return nil, fmt.Errorf("comment %d owner %d: %w", c.ID, c.OwnerID, model.ErrUserNotFound)
		}
		eng := engagement[c.ID]
		views = append(views, model.CommentView{
			Comment:             c,
			Owner:               owner,
			LikesCount:          eng.LikesCount,
			IsLiked:             eng.IsLiked,
			IsOwner:             isOwner(viewerID, c.OwnerID),
			IsLikedByVideoOwner: eng.Likers[video.OwnerID],
		})
	}
	return views, nil
}

// Add creates a comment on a video and returns its assembled view fragment.
func (s *CommentService) Add(ctx context.Context, videoID, viewerID int64, req model.CommentContentRequest) (*model.CommentView, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, model.ErrCommentContentRequired
	}
	if len(content) > model.MaxCommentLength {
		return nil, model.ErrCommentContentTooLong
	}

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, model.ErrVideoNotVisible
	}

	comment := &model.Comment{
		VideoID: videoID,
		OwnerID: viewerID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	owner, err := s.assembler.OwnerSummary(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	log.Printf("[CommentService] User %d commented on video %d", viewerID, videoID)

	return &model.CommentView{
		Comment:    *comment,
		Owner:      owner,
		LikesCount: 0,
		IsOwner:    true,
	}, nil
}

// Update edits a comment's content. Owner-only.
func (s *CommentService) Update(ctx context.Context, commentID, viewerID int64, req model.CommentContentRequest) (*model.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, model.ErrCommentContentRequired
	}
	if len(content) > model.MaxCommentLength {
		return nil, model.ErrCommentContentTooLong
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != viewerID {
		return nil, model.ErrNotCommentOwner
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment and purges its likes in one transaction.
// Owner-only; ownership is checked against the fetched row, never the
// caller's claims.
func (s *CommentService) Delete(ctx context.Context, commentID, viewerID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.OwnerID != viewerID {
		return model.ErrNotCommentOwner
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.commentRepo.Delete(ctx, tx, commentID); err != nil {
		return err
	}
	if err := s.engagement.PurgeTarget(ctx, tx, model.TargetComment, commentID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	s.engagement.InvalidateCount(ctx, model.TargetComment, commentID)

	log.Printf("[CommentService] User %d deleted comment %d", viewerID, commentID)
	return nil
}
