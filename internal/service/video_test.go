package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/rahulm682/VideoAppBackend/internal/model"
)

// mockAssetStore fakes the R2-backed store with canned URLs.
type mockAssetStore struct {
	storeVideoFn func(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, float64, error)
	storeImageFn func(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error)
	removeFn     func(ctx context.Context, url string) error

	removed []string
}

func (m *mockAssetStore) StoreVideoFile(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, float64, error) {
	if m.storeVideoFn != nil {
		return m.storeVideoFn(ctx, file, header)
	}
	return "https://cdn/videos/v.mp4", 12.5, nil
}

func (m *mockAssetStore) StoreImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	if m.storeImageFn != nil {
		return m.storeImageFn(ctx, file, header)
	}
	return "https://cdn/thumbnails/t.jpg", nil
}

func (m *mockAssetStore) Remove(ctx context.Context, url string) error {
	m.removed = append(m.removed, url)
	if m.removeFn != nil {
		return m.removeFn(ctx, url)
	}
	return nil
}

// fakeUpload satisfies multipart.File over an in-memory buffer.
type fakeUpload struct {
	*bytes.Reader
}

func (fakeUpload) Close() error { return nil }

func newUpload(name string, size int64) (multipart.File, *multipart.FileHeader) {
	return fakeUpload{bytes.NewReader(make([]byte, 4))}, &multipart.FileHeader{Filename: name, Size: size}
}

func newVideoService(videoRepo *mockVideoRepository, playlistRepo *mockPlaylistRepository, likeRepo *mockLikeRepository, userRepo *mockUserRepository, assets *mockAssetStore) *VideoService {
	if videoRepo == nil {
		videoRepo = &mockVideoRepository{}
	}
	if playlistRepo == nil {
		playlistRepo = &mockPlaylistRepository{}
	}
	if likeRepo == nil {
		likeRepo = &mockLikeRepository{}
	}
	if userRepo == nil {
		userRepo = &mockUserRepository{}
	}
	if assets == nil {
		assets = &mockAssetStore{}
	}
	commentRepo := &mockCommentRepository{}
	assembler := NewViewAssembler(likeRepo, userRepo)
	engagement := NewEngagementService(likeRepo, videoRepo, &mockTweetRepository{}, commentRepo, newMockLikeCountCache(), assembler)
	comments := NewCommentService(commentRepo, videoRepo, engagement, assembler, nil)
	return NewVideoService(videoRepo, playlistRepo, engagement, comments, assembler, assets, nil)
}

func TestVideoService_Publish_Success(t *testing.T) {
	videoRepo := &mockVideoRepository{
		createFn: func(ctx context.Context, v *model.Video) error {
			v.ID = 5
			return nil
		},
	}
	userRepo := &mockUserRepository{
		getSummariesFn: summariesFor(model.UserSummary{ID: 10, Username: "alice"}),
	}
	svc := newVideoService(videoRepo, nil, nil, userRepo, nil)

	videoFile, videoHeader := newUpload("clip.mp4", 1024)
	thumbFile, thumbHeader := newUpload("thumb.png", 256)

	view, err := svc.Publish(context.Background(), 10, PublishRequest{
		Title:           "My clip",
		Description:     "A description",
		IsPublished:     true,
		VideoFile:       videoFile,
		VideoHeader:     videoHeader,
		ThumbnailFile:   thumbFile,
		ThumbnailHeader: thumbHeader,
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if view.ID != 5 {
		t.Errorf("id = %d, want 5", view.ID)
	}
	if view.VideoURL != "https://cdn/videos/v.mp4" {
		t.Errorf("video_url = %q", view.VideoURL)
	}
	if view.Duration != 12.5 {
		t.Errorf("duration = %v, want 12.5 (probed)", view.Duration)
	}
	if !view.IsOwner {
		t.Error("is_owner = false, want true")
	}
}

func TestVideoService_Publish_Validation(t *testing.T) {
	svc := newVideoService(nil, nil, nil, nil, nil)
	ctx := context.Background()

	videoFile, videoHeader := newUpload("clip.mp4", 1024)
	thumbFile, thumbHeader := newUpload("thumb.png", 256)

	_, err := svc.Publish(ctx, 10, PublishRequest{Title: "", Description: "d"})
	if !errors.Is(err, model.ErrTitleRequired) {
		t.Errorf("blank title: err = %v, want ErrTitleRequired", err)
	}

	_, err = svc.Publish(ctx, 10, PublishRequest{
		Title: "t", Description: "d",
		ThumbnailFile: thumbFile, ThumbnailHeader: thumbHeader,
	})
	if !errors.Is(err, model.ErrVideoFileRequired) {
		t.Errorf("no video: err = %v, want ErrVideoFileRequired", err)
	}

	_, err = svc.Publish(ctx, 10, PublishRequest{
		Title: "t", Description: "d",
		VideoFile: videoFile, VideoHeader: videoHeader,
	})
	if !errors.Is(err, model.ErrThumbnailRequired) {
		t.Errorf("no thumbnail: err = %v, want ErrThumbnailRequired", err)
	}
}

func TestVideoService_GetByID_VisibilityGate(t *testing.T) {
	video := &model.Video{ID: 5, OwnerID: 10, IsPublished: false}
	videoRepo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Video, error) {
			if id == 5 {
				return video, nil
			}
			return nil, model.ErrVideoNotFound
		},
	}
	userRepo := &mockUserRepository{
		getSummariesFn: summariesFor(model.UserSummary{ID: 10, Username: "alice"}),
	}
	svc := newVideoService(videoRepo, nil, nil, userRepo, nil)

	ctx := context.Background()

	if _, err := svc.GetByID(ctx, 404, nil); !errors.Is(err, model.ErrVideoNotFound) {
		t.Errorf("missing: err = %v, want ErrVideoNotFound", err)
	}

	if _, err := svc.GetByID(ctx, 5, nil); !errors.Is(err, model.ErrVideoNotVisible) {
		t.Errorf("anonymous: err = %v, want ErrVideoNotVisible", err)
	}

	other := int64(99)
	if _, err := svc.GetByID(ctx, 5, &other); !errors.Is(err, model.ErrVideoNotVisible) {
		t.Errorf("non-owner: err = %v, want ErrVideoNotVisible", err)
	}

	owner := int64(10)
	view, err := svc.GetByID(ctx, 5, &owner)
	if err != nil {
		t.Fatalf("owner: %v", err)
	}
	if !view.IsOwner {
		t.Error("is_owner = false, want true")
	}
}

func TestVideoService_GetByID_EmbedsComments(t *testing.T) {
	video := &model.Video{ID: 5, OwnerID: 10, IsPublished: true}
	videoRepo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Video, error) { return video, nil },
	}
	commentRepo := &mockCommentRepository{
		listByVideoFn: func(ctx context.Context, videoID int64) ([]model.Comment, error) {
			return []model.Comment{{ID: 1, VideoID: 5, OwnerID: 20, Content: "first!"}}, nil
		},
	}
	likeRepo := &mockLikeRepository{
		likersByTargetFn: func(ctx context.Context, kind model.TargetKind, targetIDs []int64) (map[int64][]int64, error) {
			switch kind {
			case model.TargetVideo:
				return map[int64][]int64{5: {20, 21}}, nil
			case model.TargetComment:
				return map[int64][]int64{1: {10}}, nil
			}
			return nil, nil
		},
	}
	userRepo := &mockUserRepository{
		getSummariesFn: summariesFor(
			model.UserSummary{ID: 10, Username: "alice"},
			model.UserSummary{ID: 20, Username: "carol"},
		),
	}
	assembler := NewViewAssembler(likeRepo, userRepo)
	engagement := NewEngagementService(likeRepo, videoRepo, &mockTweetRepository{}, commentRepo, newMockLikeCountCache(), assembler)
	comments := NewCommentService(commentRepo, videoRepo, engagement, assembler, nil)
	svc := NewVideoService(videoRepo, &mockPlaylistRepository{}, engagement, comments, assembler, &mockAssetStore{}, nil)

	viewerID := int64(20)
	view, err := svc.GetByID(context.Background(), 5, &viewerID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if view.LikesCount != 2 {
		t.Errorf("likes_count = %d, want 2", view.LikesCount)
	}
	if !view.IsLiked {
		t.Error("is_liked = false, want true (viewer 20 liked the video)")
	}
	if len(view.Comments) != 1 {
		t.Fatalf("comments = %d, want 1", len(view.Comments))
	}
	if !view.Comments[0].IsLikedByVideoOwner {
		t.Error("comment: is_liked_by_video_owner = false, want true")
	}
}

func TestVideoService_List_AssemblesPublished(t *testing.T) {
	videoRepo := &mockVideoRepository{
		listPublishedFn: func(ctx context.Context) ([]model.Video, error) {
			return []model.Video{
				{ID: 2, OwnerID: 10, IsPublished: true},
				{ID: 1, OwnerID: 11, IsPublished: true},
			}, nil
		},
	}
	userRepo := &mockUserRepository{
		getSummariesFn: summariesFor(
			model.UserSummary{ID: 10, Username: "alice"},
			model.UserSummary{ID: 11, Username: "bob"},
		),
	}
	svc := newVideoService(videoRepo, nil, nil, userRepo, nil)

	views, err := svc.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("views = %d, want 2", len(views))
	}
	if views[0].ID != 2 || views[1].ID != 1 {
		t.Errorf("order = [%d %d], want [2 1]", views[0].ID, views[1].ID)
	}
	if views[0].Comments != nil {
		t.Error("collection views must not embed comments")
	}
}

func TestVideoService_Update_ReplacesThumbnail(t *testing.T) {
	video := &model.Video{ID: 5, OwnerID: 10, Title: "old", Description: "old", ThumbnailURL: "https://cdn/thumbnails/old.jpg"}
	videoRepo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Video, error) { return video, nil },
	}
	assets := &mockAssetStore{
		storeImageFn: func(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
			return "https://cdn/thumbnails/new.jpg", nil
		},
	}
	svc := newVideoService(videoRepo, nil, nil, nil, assets)

	thumbFile, thumbHeader := newUpload("new.png", 128)
	updated, err := svc.Update(context.Background(), 5, 10, model.UpdateVideoRequest{Title: "new", Description: "new"}, thumbFile, thumbHeader)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ThumbnailURL != "https://cdn/thumbnails/new.jpg" {
		t.Errorf("thumbnail_url = %q", updated.ThumbnailURL)
	}
	if len(assets.removed) != 1 || assets.removed[0] != "https://cdn/thumbnails/old.jpg" {
		t.Errorf("removed = %v, want the replaced thumbnail", assets.removed)
	}
}

func TestVideoService_Update_OwnerOnly(t *testing.T) {
	video := &model.Video{ID: 5, OwnerID: 10, Title: "old", Description: "old"}
	videoRepo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Video, error) { return video, nil },
	}
	svc := newVideoService(videoRepo, nil, nil, nil, nil)

	_, err := svc.Update(context.Background(), 5, 99, model.UpdateVideoRequest{Title: "t", Description: "d"}, nil, nil)
	if !errors.Is(err, model.ErrNotVideoOwner) {
		t.Errorf("err = %v, want ErrNotVideoOwner", err)
	}
}

func TestVideoService_TogglePublish(t *testing.T) {
	var setTo *bool
	video := &model.Video{ID: 5, OwnerID: 10, IsPublished: true}
	videoRepo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Video, error) {
			v := *video
			return &v, nil
		},
		setPublishedFn: func(ctx context.Context, id int64, published bool) error {
			setTo = &published
			return nil
		},
	}
	svc := newVideoService(videoRepo, nil, nil, nil, nil)

	ctx := context.Background()

	if _, err := svc.TogglePublish(ctx, 5, 99); !errors.Is(err, model.ErrNotVideoOwner) {
		t.Errorf("non-owner: err = %v, want ErrNotVideoOwner", err)
	}
	if setTo != nil {
		t.Fatal("publish flag must not change for a non-owner")
	}

	updated, err := svc.TogglePublish(ctx, 5, 10)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if setTo == nil || *setTo != false {
		t.Error("expected the flag to be flipped to false")
	}
	if updated.IsPublished {
		t.Error("returned video still reports is_published = true")
	}
}

func TestVideoService_Delete_OwnerOnly(t *testing.T) {
	video := &model.Video{ID: 5, OwnerID: 10}
	videoRepo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Video, error) {
			if id == 5 {
				return video, nil
			}
			return nil, model.ErrVideoNotFound
		},
	}
	svc := newVideoService(videoRepo, nil, nil, nil, nil)

	ctx := context.Background()

	if err := svc.Delete(ctx, 404, 10); !errors.Is(err, model.ErrVideoNotFound) {
		t.Errorf("missing: err = %v, want ErrVideoNotFound", err)
	}
	if err := svc.Delete(ctx, 5, 99); !errors.Is(err, model.ErrNotVideoOwner) {
		t.Errorf("non-owner: err = %v, want ErrNotVideoOwner", err)
	}
}
