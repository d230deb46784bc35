package service

import (
	"context"
	"log"
	"strings"

	"github.com/rahulm682/VideoAppBackend/internal/model"
	"github.com/rahulm682/VideoAppBackend/internal/repository"
)

type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
	assembler    *ViewAssembler
}

func NewPlaylistService(
	playlistRepo repository.PlaylistRepository,
	videoRepo repository.VideoRepository,
	assembler *ViewAssembler,
) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
		assembler:    assembler,
	}
}

// Create makes a new, empty playlist.
func (s *PlaylistService) Create(ctx context.Context, viewerID int64, req model.PlaylistRequest) (*model.Playlist, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" || description == "" {
		return nil, model.ErrPlaylistNameRequired
	}
	if len(name) > model.MaxPlaylistNameLength || len(description) > model.MaxPlaylistDescriptionLength {
		return nil, model.ErrPlaylistNameRequired
	}

	playlist := &model.Playlist{
		OwnerID:     viewerID,
		Name:        name,
		Description: description,
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}

	log.Printf("[PlaylistService] User %d created playlist %d", viewerID, playlist.ID)
	return playlist, nil
}

// GetByID returns the assembled detail view: owner profile plus member
// videos filtered to published, each with its own owner profile. Thumbnail,
// count and total views are computed over the filtered members only.
func (s *PlaylistService) GetByID(ctx context.Context, playlistID int64, viewerID *int64) (*model.PlaylistView, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	view, err := s.assembleView(ctx, playlist, viewerID, true)
	if err != nil {
		return nil, err
	}
	return view, nil
}

// GetByUser returns summary views of a user's playlists, without the member
// list embedded but with the same derived fields.
func (s *PlaylistService) GetByUser(ctx context.Context, userID int64, viewerID *int64) ([]model.PlaylistView, error) {
	playlists, err := s.playlistRepo.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]model.PlaylistView, 0, len(playlists))
	for i := range playlists {
		view, err := s.assembleView(ctx, &playlists[i], viewerID, false)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// Update edits name and description. Owner-only; blank fields keep their
// current value, mirroring a partial update.
func (s *PlaylistService) Update(ctx context.Context, playlistID, viewerID int64, req model.PlaylistRequest) (*model.Playlist, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" && description == "" {
		return nil, model.ErrPlaylistNameRequired
	}

	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != viewerID {
		return nil, model.ErrNotPlaylistOwner
	}

	if name != "" {
		playlist.Name = name
	}
	if description != "" {
		playlist.Description = description
	}
	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// Delete removes a playlist and its membership rows. Owner-only.
func (s *PlaylistService) Delete(ctx context.Context, playlistID, viewerID int64) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.OwnerID != viewerID {
		return model.ErrNotPlaylistOwner
	}

	if err := s.playlistRepo.Delete(ctx, playlistID); err != nil {
		return err
	}

	log.Printf("[PlaylistService] User %d deleted playlist %d", viewerID, playlistID)
	return nil
}

// AddVideo puts a video into the playlist's member set. Duplicate adds are
// a no-op. Owner-only, and the video must exist.
func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, viewerID int64) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.OwnerID != viewerID {
		return model.ErrNotPlaylistOwner
	}

	exists, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrVideoNotFound
	}

	return s.playlistRepo.AddVideo(ctx, playlistID, videoID)
}

// RemoveVideo takes a video out of the member set. Removing a non-member is
// a no-op. Owner-only.
func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, viewerID int64) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.OwnerID != viewerID {
		return model.ErrNotPlaylistOwner
	}

	exists, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrVideoNotFound
	}

	return s.playlistRepo.RemoveVideo(ctx, playlistID, videoID)
}

// assembleView builds the playlist projection. Unpublished members are
// dropped before any derived field is computed, so counts and views never
// leak hidden content.
func (s *PlaylistService) assembleView(ctx context.Context, playlist *model.Playlist, viewerID *int64, embedVideos bool) (*model.PlaylistView, error) {
	owner, err := s.assembler.OwnerSummary(ctx, playlist.OwnerID)
	if err != nil {
		return nil, err
	}

	members, err := s.playlistRepo.MemberVideos(ctx, playlist.ID)
	if err != nil {
		return nil, err
	}

	published := make([]model.Video, 0, len(members))
	for _, v := range members {
		if v.IsPublished {
			published = append(published, v)
		}
	}

	view := &model.PlaylistView{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		Owner:       owner,
		IsOwner:     isOwner(viewerID, playlist.OwnerID),
		VideosCount: len(published),
		CreatedAt:   playlist.CreatedAt,
		UpdatedAt:   playlist.UpdatedAt,
	}

	for _, v := range published {
		view.TotalViews += v.Views
	}
	if len(published) > 0 {
		view.Thumbnail = &published[0].ThumbnailURL
	}

	if embedVideos {
		ownerIDs := make([]int64, len(published))
		for i, v := range published {
			ownerIDs[i] = v.OwnerID
		}
		owners, err := s.assembler.OwnerSummaries(ctx, ownerIDs)
		if err != nil {
			return nil, err
		}

		view.Videos = make([]model.PlaylistVideo, 0, len(published))
		for _, v := range published {
			view.Videos = append(view.Videos, model.PlaylistVideo{
				ID:           v.ID,
				Title:        v.Title,
				Description:  v.Description,
				VideoURL:     v.VideoURL,
				ThumbnailURL: v.ThumbnailURL,
				Duration:     v.Duration,
				Views:        v.Views,
				Owner:        owners[v.OwnerID],
			})
		}
	}

	return view, nil
}
