package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/rahulm682/VideoAppBackend/internal/model"
	"github.com/rahulm682/VideoAppBackend/internal/repository"
)

type VideoService struct {
	videoRepo    repository.VideoRepository
	playlistRepo repository.PlaylistRepository
	engagement   *EngagementService
	comments     *CommentService
	assembler    *ViewAssembler
	assets       AssetStore
	db           *sqlx.DB
}

func NewVideoService(
	videoRepo repository.VideoRepository,
	playlistRepo repository.PlaylistRepository,
	engagement *EngagementService,
	comments *CommentService,
	assembler *ViewAssembler,
	assets AssetStore,
	db *sqlx.DB,
) *VideoService {
	return &VideoService{
		videoRepo:    videoRepo,
		playlistRepo: playlistRepo,
		engagement:   engagement,
		comments:     comments,
		assembler:    assembler,
		assets:       assets,
		db:           db,
	}
}

// PublishRequest carries the metadata and files for a video upload.
type PublishRequest struct {
	Title       string
	Description string
	IsPublished bool

	VideoFile       multipart.File
	VideoHeader     *multipart.FileHeader
	ThumbnailFile   multipart.File
	ThumbnailHeader *multipart.FileHeader
}

// Publish uploads the video and thumbnail to the asset store, probes the
// duration, and creates the video row.
func (s *VideoService) Publish(ctx context.Context, ownerID int64, req PublishRequest) (*model.VideoView, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, model.ErrTitleRequired
	}
	if len(title) > model.MaxVideoTitleLength || len(description) > model.MaxVideoDescriptionLength {
		return nil, model.ErrTitleRequired
	}
	if req.VideoFile == nil || req.VideoHeader == nil {
		return nil, model.ErrVideoFileRequired
	}
	if req.ThumbnailFile == nil || req.ThumbnailHeader == nil {
		return nil, model.ErrThumbnailRequired
	}

	videoURL, duration, err := s.assets.StoreVideoFile(ctx, req.VideoFile, req.VideoHeader)
	if err != nil {
		return nil, fmt.Errorf("store video file: %w", err)
	}
	thumbnailURL, err := s.assets.StoreImage(ctx, req.ThumbnailFile, req.ThumbnailHeader)
	if err != nil {
		return nil, fmt.Errorf("store thumbnail: %w", err)
	}

	video := &model.Video{
		OwnerID:      ownerID,
		Title:        title,
		Description:  description,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		Duration:     duration,
		IsPublished:  req.IsPublished,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}

	owner, err := s.assembler.OwnerSummary(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	log.Printf("[VideoService] User %d published video %d (%.1fs)", ownerID, video.ID, duration)

	return &model.VideoView{
		Video:   *video,
		Owner:   owner,
		IsOwner: true,
	}, nil
}

// GetByID returns the assembled detail view of a video, with its comment
// feed embedded. Unpublished videos are visible to their owner only.
func (s *VideoService) GetByID(ctx context.Context, videoID int64, viewerID *int64) (*model.VideoView, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && !isOwner(viewerID, video.OwnerID) {
		return nil, model.ErrVideoNotVisible
	}

	owner, err := s.assembler.OwnerSummary(ctx, video.OwnerID)
	if err != nil {
		return nil, err
	}
	engagement, err := s.assembler.EngagementFor(ctx, model.TargetVideo, []int64{videoID}, viewerID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.listForVideo(ctx, video, viewerID)
	if err != nil {
		return nil, err
	}

	eng := engagement[videoID]
	return &model.VideoView{
		Video:      *video,
		Owner:      owner,
		LikesCount: eng.LikesCount,
		IsLiked:    eng.IsLiked,
		IsOwner:    isOwner(viewerID, video.OwnerID),
		Comments:   comments,
	}, nil
}

// List returns all published videos as assembled views, newest first.
func (s *VideoService) List(ctx context.Context, viewerID *int64) ([]model.VideoView, error) {
	videos, err := s.videoRepo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	return assembleVideoViews(ctx, s.assembler, videos, viewerID)
}

// Update edits title, description, and optionally the thumbnail. Owner-only.
// A replaced thumbnail's old object is deleted best-effort after the row is
// updated.
func (s *VideoService) Update(ctx context.Context, videoID, viewerID int64, req model.UpdateVideoRequest, thumbFile multipart.File, thumbHeader *multipart.FileHeader) (*model.Video, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, model.ErrTitleRequired
	}

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != viewerID {
		return nil, model.ErrNotVideoOwner
	}

	oldThumbnail := ""
	if thumbFile != nil && thumbHeader != nil {
		newURL, err := s.assets.StoreImage(ctx, thumbFile, thumbHeader)
		if err != nil {
			return nil, fmt.Errorf("store thumbnail: %w", err)
		}
		oldThumbnail = video.ThumbnailURL
		video.ThumbnailURL = newURL
	}

	video.Title = title
	video.Description = description
	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}

	if oldThumbnail != "" {
		if err := s.assets.Remove(ctx, oldThumbnail); err != nil {
			log.Printf("[VideoService] Failed to delete replaced thumbnail for video %d: %v", videoID, err)
		}
	}

	return video, nil
}

// Delete removes a video, its comments' likes, its own likes, and its
// playlist memberships in one transaction, then deletes the stored assets
// best-effort. Owner-only.
func (s *VideoService) Delete(ctx context.Context, videoID, viewerID int64) error {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if video.OwnerID != viewerID {
		return model.ErrNotVideoOwner
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Likes of the video's comments must go before the comments themselves
	// disappear with the video row.
	if err := s.engagement.PurgeVideoComments(ctx, tx, videoID); err != nil {
		return err
	}
	if err := s.engagement.PurgeTarget(ctx, tx, model.TargetVideo, videoID); err != nil {
		return err
	}
	if err := s.playlistRepo.RemoveVideoFromAll(ctx, tx, videoID); err != nil {
		return err
	}
	if err := s.videoRepo.Delete(ctx, tx, videoID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	s.engagement.InvalidateCount(ctx, model.TargetVideo, videoID)

	if err := s.assets.Remove(ctx, video.VideoURL); err != nil {
		log.Printf("[VideoService] Failed to delete video asset for video %d: %v", videoID, err)
	}
	if err := s.assets.Remove(ctx, video.ThumbnailURL); err != nil {
		log.Printf("[VideoService] Failed to delete thumbnail asset for video %d: %v", videoID, err)
	}

	log.Printf("[VideoService] User %d deleted video %d", viewerID, videoID)
	return nil
}

// TogglePublish flips the publish flag. Owner-only.
func (s *VideoService) TogglePublish(ctx context.Context, videoID, viewerID int64) (*model.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != viewerID {
		return nil, model.ErrNotVideoOwner
	}

	if err := s.videoRepo.SetPublished(ctx, videoID, !video.IsPublished); err != nil {
		return nil, err
	}
	video.IsPublished = !video.IsPublished
	return video, nil
}

// assembleVideoViews merges a batch of videos with owner summaries and
// engagement fields. Comments are not embedded in collection views.
func assembleVideoViews(ctx context.Context, assembler *ViewAssembler, videos []model.Video, viewerID *int64) ([]model.VideoView, error) {
	videoIDs := make([]int64, len(videos))
	ownerIDs := make([]int64, len(videos))
	for i, v := range videos {
		videoIDs[i] = v.ID
		ownerIDs[i] = v.OwnerID
	}

	engagement, err := assembler.EngagementFor(ctx, model.TargetVideo, videoIDs, viewerID)
	if err != nil {
		return nil, err
	}
	owners, err := assembler.OwnerSummaries(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	views := make([]model.VideoView, 0, len(videos))
	for _, v := range videos {
		owner, ok := owners[v.OwnerID]
		if !ok {
			return nil, fmt.Errorf("video %d owner %d: %w", v.ID, v.OwnerID, model.ErrUserNotFound)
		}
		eng := engagement[v.ID]
		views = append(views, model.VideoView{
			Video:      v,
			Owner:      owner,
			LikesCount: eng.LikesCount,
			IsLiked:    eng.IsLiked,
			IsOwner:    isOwner(viewerID, v.OwnerID),
		})
	}
	return views, nil
}
