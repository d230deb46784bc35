package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rahulm682/VideoAppBackend/internal/model"
)

func newCommentService(commentRepo *mockCommentRepository, videoRepo *mockVideoRepository, likeRepo *mockLikeRepository, userRepo *mockUserRepository) *CommentService {
	if commentRepo == nil {
		commentRepo = &mockCommentRepository{}
	}
	if videoRepo == nil {
		videoRepo = &mockVideoRepository{}
	}
	if likeRepo == nil {
		likeRepo = &mockLikeRepository{}
	}
	if userRepo == nil {
		userRepo = &mockUserRepository{}
	}
	assembler := NewViewAssembler(likeRepo, userRepo)
	engagement := NewEngagementService(likeRepo, videoRepo, &mockTweetRepository{}, commentRepo, newMockLikeCountCache(), assembler)
	return NewCommentService(commentRepo, videoRepo, engagement, assembler, nil)
}

func TestCommentService_ListByVideo_AssemblesViews(t *testing.T) {
	video := &model.Video{ID: 5, OwnerID: 10, IsPublished: true}
	videoRepo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Video, error) { return video, nil },
	}
	commentRepo := &mockCommentRepository{
		listByVideoFn: func(ctx context.Context, videoID int64) ([]model.Comment, error) {
			return []model.Comment{
				{ID: 2, VideoID: 5, OwnerID: 20, Content: "newer"},
				{ID: 1, VideoID: 5, OwnerID: 21, Content: "older"},
			}, nil
		},
	}
	likeRepo := &mockLikeRepository{
		likersByTargetFn: func(ctx context.Context, kind model.TargetKind, targetIDs []int64) (map[int64][]int64, error) {
			// Comment 1 is liked by the video's owner and by user 20;
			// comment 2 has no likes.
			return map[int64][]int64{1: {10, 20}}, nil
		},
	}
	userRepo := &mockUserRepository{
		getSummariesFn: summariesFor(
			model.UserSummary{ID: 20, Username: "carol"},
			model.UserSummary{ID: 21, Username: "dave"},
		),
	}
	svc := newCommentService(commentRepo, videoRepo, likeRepo, userRepo)

	viewerID := int64(20)
	views, err := svc.ListByVideo(context.Background(), 5, &viewerID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("views = %d, want 2", len(views))
	}

	// Newest first, as the repository returned them.
	if views[0].ID != 2 || views[1].ID != 1 {
		t.Errorf("order = [%d %d], want [2 1]", views[0].ID, views[1].ID)
	}

	newer, older := views[0], views[1]
	if newer.LikesCount != 0 || newer.IsLiked || newer.IsLikedByVideoOwner {
		t.Errorf("comment 2 engagement = {likes=%d is_liked=%v by_owner=%v}, want all zero",
			newer.LikesCount, newer.IsLiked, newer.IsLikedByVideoOwner)
	}
	if older.LikesCount != 2 {
		t.Errorf("comment 1 likes = %d, want 2", older.LikesCount)
	}
	if !older.IsLiked {
		t.Error("comment 1: is_liked = false, want true (viewer 20 liked it)")
	}
	if !older.IsLikedByVideoOwner {
		t.Error("comment 1: is_liked_by_video_owner = false, want true (user 10 owns the video)")
	}
	if !newer.IsOwner {
		t.Error("comment 2: is_owner = false, want true (viewer 20 wrote it)")
	}
	if older.Owner.Username != "dave" {
		t.Errorf("comment 1 owner = %q, want %q", older.Owner.Username, "dave")
	}
}

func TestCommentService_ListByVideo_UnpublishedGate(t *testing.T) {
	video := &model.Video{ID: 5, OwnerID: 10, IsPublished: false}
	videoRepo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Video, error) { return video, nil },
	}
	svc := newCommentService(nil, videoRepo, nil, &mockUserRepository{
		getSummariesFn: summariesFor(model.UserSummary{ID: 10, Username: "alice"}),
	})

	ctx := context.Background()

	// Anonymous viewer: blocked.
	if _, err := svc.ListByVideo(ctx, 5, nil); !errors.Is(err, model.ErrVideoNotVisible) {
		t.Errorf("anonymous: err = %v, want ErrVideoNotVisible", err)
	}

	// Some other user: blocked.
	other := int64(99)
	if _, err := svc.ListByVideo(ctx, 5, &other); !errors.Is(err, model.ErrVideoNotVisible) {
		t.Errorf("non-owner: err = %v, want ErrVideoNotVisible", err)
	}

	// The owner sees the feed.
	owner := int64(10)
	views, err := svc.ListByVideo(ctx, 5, &owner)
	if err != nil {
		t.Fatalf("owner: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("owner views = %d, want 0", len(views))
	}
}

func TestCommentService_Add_Success(t *testing.T) {
	video := &model.Video{ID: 5, OwnerID: 10, IsPublished: true}
	videoRepo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Video, error) { return video, nil },
	}
	commentRepo := &mockCommentRepository{
		createFn: func(ctx context.Context, c *model.Comment) error {
			c.ID = 77
			return nil
		},
	}
	userRepo := &mockUserRepository{
		getSummariesFn: summariesFor(model.UserSummary{ID: 20, Username: "carol"}),
	}
	svc := newCommentService(commentRepo, videoRepo, nil, userRepo)

	view, err := svc.Add(context.Background(), 5, 20, model.CommentContentRequest{Content: "  nice video  "})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if view.ID != 77 {
		t.Errorf("id = %d, want 77", view.ID)
	}
	if view.Content != "nice video" {
		t.Errorf("content = %q, want trimmed %q", view.Content, "nice video")
	}
	if view.LikesCount != 0 || view.IsLiked {
		t.Error("fresh comment must have zero engagement")
	}
	if !view.IsOwner {
		t.Error("is_owner = false, want true")
	}
}

func TestCommentService_Add_Validation(t *testing.T) {
	video := &model.Video{ID: 5, OwnerID: 10, IsPublished: true}
	videoRepo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Video, error) { return video, nil },
	}
	svc := newCommentService(nil, videoRepo, nil, nil)

	ctx := context.Background()

	if _, err := svc.Add(ctx, 5, 20, model.CommentContentRequest{Content: "   "}); !errors.Is(err, model.ErrCommentContentRequired) {
		t.Errorf("blank: err = %v, want ErrCommentContentRequired", err)
	}

	long := make([]byte, model.MaxCommentLength+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := svc.Add(ctx, 5, 20, model.CommentContentRequest{Content: string(long)}); !errors.Is(err, model.ErrCommentContentTooLong) {
		t.Errorf("too long: err = %v, want ErrCommentContentTooLong", err)
	}
}

func TestCommentService_Add_UnpublishedVideo(t *testing.T) {
	video := &model.Video{ID: 5, OwnerID: 10, IsPublished: false}
	videoRepo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Video, error) { return video, nil },
	}
	svc := newCommentService(nil, videoRepo, nil, nil)

	_, err := svc.Add(context.Background(), 5, 20, model.CommentContentRequest{Content: "hi"})
	if !errors.Is(err, model.ErrVideoNotVisible) {
		t.Errorf("err = %v, want ErrVideoNotVisible", err)
	}
}

func TestCommentService_Update_OwnerOnly(t *testing.T) {
	commentRepo := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Comment, error) {
			return &model.Comment{ID: 1, VideoID: 5, OwnerID: 20, Content: "old"}, nil
		},
	}
	svc := newCommentService(commentRepo, nil, nil, nil)

	ctx := context.Background()

	if _, err := svc.Update(ctx, 1, 99, model.CommentContentRequest{Content: "new"}); !errors.Is(err, model.ErrNotCommentOwner) {
		t.Errorf("non-owner: err = %v, want ErrNotCommentOwner", err)
	}

	comment, err := svc.Update(ctx, 1, 20, model.CommentContentRequest{Content: "new"})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if comment.Content != "new" {
		t.Errorf("content = %q, want %q", comment.Content, "new")
	}
}

func TestCommentService_Delete_NotFoundAndOwnership(t *testing.T) {
	commentRepo := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Comment, error) {
			if id == 1 {
				return &model.Comment{ID: 1, VideoID: 5, OwnerID: 20}, nil
			}
			return nil, model.ErrCommentNotFound
		},
	}
	svc := newCommentService(commentRepo, nil, nil, nil)

	ctx := context.Background()

	if err := svc.Delete(ctx, 404, 20); !errors.Is(err, model.ErrCommentNotFound) {
		t.Errorf("missing: err = %v, want ErrCommentNotFound", err)
	}
	if err := svc.Delete(ctx, 1, 99); !errors.Is(err, model.ErrNotCommentOwner) {
		t.Errorf("non-owner: err = %v, want ErrNotCommentOwner", err)
	}
}
