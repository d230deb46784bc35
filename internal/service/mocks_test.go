package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rahulm682/VideoAppBackend/internal/model"
)

// =============================================================================
// MOCK REPOSITORIES
// =============================================================================
//
// The services depend on repository interfaces, so tests swap in mocks with
// per-test behavior. Each mock exposes fn fields; unset fields fall back to
// an empty-store default (not found / zero rows).

type mockLikeRepository struct {
	toggleFn                 func(ctx context.Context, kind model.TargetKind, targetID, userID int64) (*model.Like, error)
	countLikedFn             func(ctx context.Context, kind model.TargetKind, targetID int64) (int, error)
	likersByTargetFn         func(ctx context.Context, kind model.TargetKind, targetIDs []int64) (map[int64][]int64, error)
	deleteAllForFn           func(ctx context.Context, tx *sqlx.Tx, kind model.TargetKind, targetID int64) error
	deleteForVideoCommentsFn func(ctx context.Context, tx *sqlx.Tx, videoID int64) error
	likedVideoIDsFn          func(ctx context.Context, userID int64) ([]int64, error)

	toggleCalls int
}

func (m *mockLikeRepository) Toggle(ctx context.Context, kind model.TargetKind, targetID, userID int64) (*model.Like, error) {
	m.toggleCalls++
	if m.toggleFn != nil {
		return m.toggleFn(ctx, kind, targetID, userID)
	}
	return &model.Like{TargetKind: kind, TargetID: targetID, UserID: userID, Liked: true}, nil
}

func (m *mockLikeRepository) CountLiked(ctx context.Context, kind model.TargetKind, targetID int64) (int, error) {
	if m.countLikedFn != nil {
		return m.countLikedFn(ctx, kind, targetID)
	}
	return 0, nil
}

func (m *mockLikeRepository) LikersByTarget(ctx context.Context, kind model.TargetKind, targetIDs []int64) (map[int64][]int64, error) {
	if m.likersByTargetFn != nil {
		return m.likersByTargetFn(ctx, kind, targetIDs)
	}
	return map[int64][]int64{}, nil
}

func (m *mockLikeRepository) DeleteAllFor(ctx context.Context, tx *sqlx.Tx, kind model.TargetKind, targetID int64) error {
	if m.deleteAllForFn != nil {
		return m.deleteAllForFn(ctx, tx, kind, targetID)
	}
	return nil
}

func (m *mockLikeRepository) DeleteForVideoComments(ctx context.Context, tx *sqlx.Tx, videoID int64) error {
	if m.deleteForVideoCommentsFn != nil {
		return m.deleteForVideoCommentsFn(ctx, tx, videoID)
	}
	return nil
}

func (m *mockLikeRepository) LikedVideoIDs(ctx context.Context, userID int64) ([]int64, error) {
	if m.likedVideoIDsFn != nil {
		return m.likedVideoIDsFn(ctx, userID)
	}
	return nil, nil
}

type mockUserRepository struct {
	getByIDFn      func(ctx context.Context, id int64) (*model.User, error)
	getSummariesFn func(ctx context.Context, ids []int64) (map[int64]model.UserSummary, error)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetSummaries(ctx context.Context, ids []int64) (map[int64]model.UserSummary, error) {
	if m.getSummariesFn != nil {
		return m.getSummariesFn(ctx, ids)
	}
	return map[int64]model.UserSummary{}, nil
}

// summariesFor builds a GetSummaries fn that knows the given users.
func summariesFor(users ...model.UserSummary) func(ctx context.Context, ids []int64) (map[int64]model.UserSummary, error) {
	byID := make(map[int64]model.UserSummary, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return func(ctx context.Context, ids []int64) (map[int64]model.UserSummary, error) {
		out := make(map[int64]model.UserSummary, len(ids))
		for _, id := range ids {
			if u, ok := byID[id]; ok {
				out[id] = u
			}
		}
		return out, nil
	}
}

type mockVideoRepository struct {
	createFn        func(ctx context.Context, v *model.Video) error
	getByIDFn       func(ctx context.Context, id int64) (*model.Video, error)
	getByIDsFn      func(ctx context.Context, ids []int64) ([]model.Video, error)
	listPublishedFn func(ctx context.Context) ([]model.Video, error)
	updateFn        func(ctx context.Context, v *model.Video) error
	setPublishedFn  func(ctx context.Context, id int64, published bool) error
	deleteFn        func(ctx context.Context, tx *sqlx.Tx, id int64) error
	existsFn        func(ctx context.Context, id int64) (bool, error)
}

func (m *mockVideoRepository) Create(ctx context.Context, v *model.Video) error {
	if m.createFn != nil {
		return m.createFn(ctx, v)
	}
	return nil
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrVideoNotFound
}

func (m *mockVideoRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Video, error) {
	if m.getByIDsFn != nil {
		return m.getByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockVideoRepository) ListPublished(ctx context.Context) ([]model.Video, error) {
	if m.listPublishedFn != nil {
		return m.listPublishedFn(ctx)
	}
	return nil, nil
}

func (m *mockVideoRepository) Update(ctx context.Context, v *model.Video) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, v)
	}
	return nil
}

func (m *mockVideoRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	if m.setPublishedFn != nil {
		return m.setPublishedFn(ctx, id, published)
	}
	return nil
}

func (m *mockVideoRepository) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tx, id)
	}
	return nil
}

func (m *mockVideoRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return false, nil
}

type mockTweetRepository struct {
	createFn      func(ctx context.Context, t *model.Tweet) error
	getByIDFn     func(ctx context.Context, id int64) (*model.Tweet, error)
	listByOwnerFn func(ctx context.Context, ownerID int64) ([]model.Tweet, error)
	updateFn      func(ctx context.Context, t *model.Tweet) error
	deleteFn      func(ctx context.Context, tx *sqlx.Tx, id int64) error
	existsFn      func(ctx context.Context, id int64) (bool, error)

	updateCalls int
}

func (m *mockTweetRepository) Create(ctx context.Context, t *model.Tweet) error {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	return nil
}

func (m *mockTweetRepository) GetByID(ctx context.Context, id int64) (*model.Tweet, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrTweetNotFound
}

func (m *mockTweetRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Tweet, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockTweetRepository) Update(ctx context.Context, t *model.Tweet) error {
	m.updateCalls++
	if m.updateFn != nil {
		return m.updateFn(ctx, t)
	}
	return nil
}

func (m *mockTweetRepository) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tx, id)
	}
	return nil
}

func (m *mockTweetRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return false, nil
}

type mockCommentRepository struct {
	createFn      func(ctx context.Context, c *model.Comment) error
	getByIDFn     func(ctx context.Context, id int64) (*model.Comment, error)
	listByVideoFn func(ctx context.Context, videoID int64) ([]model.Comment, error)
	updateFn      func(ctx context.Context, c *model.Comment) error
	deleteFn      func(ctx context.Context, tx *sqlx.Tx, id int64) error
	existsFn      func(ctx context.Context, id int64) (bool, error)
}

func (m *mockCommentRepository) Create(ctx context.Context, c *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) ListByVideo(ctx context.Context, videoID int64) ([]model.Comment, error) {
	if m.listByVideoFn != nil {
		return m.listByVideoFn(ctx, videoID)
	}
	return nil, nil
}

func (m *mockCommentRepository) Update(ctx context.Context, c *model.Comment) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, c)
	}
	return nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tx, id)
	}
	return nil
}

func (m *mockCommentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return false, nil
}

type mockPlaylistRepository struct {
	createFn             func(ctx context.Context, p *model.Playlist) error
	getByIDFn            func(ctx context.Context, id int64) (*model.Playlist, error)
	getByOwnerFn         func(ctx context.Context, ownerID int64) ([]model.Playlist, error)
	updateFn             func(ctx context.Context, p *model.Playlist) error
	deleteFn             func(ctx context.Context, id int64) error
	addVideoFn           func(ctx context.Context, playlistID, videoID int64) error
	removeVideoFn        func(ctx context.Context, playlistID, videoID int64) error
	memberVideosFn       func(ctx context.Context, playlistID int64) ([]model.Video, error)
	removeVideoFromAllFn func(ctx context.Context, tx *sqlx.Tx, videoID int64) error

	addVideoCalls    []int64
	removeVideoCalls []int64
}

func (m *mockPlaylistRepository) Create(ctx context.Context, p *model.Playlist) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}

func (m *mockPlaylistRepository) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrPlaylistNotFound
}

func (m *mockPlaylistRepository) GetByOwner(ctx context.Context, ownerID int64) ([]model.Playlist, error) {
	if m.getByOwnerFn != nil {
		return m.getByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockPlaylistRepository) Update(ctx context.Context, p *model.Playlist) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

func (m *mockPlaylistRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID int64) error {
	m.addVideoCalls = append(m.addVideoCalls, videoID)
	if m.addVideoFn != nil {
		return m.addVideoFn(ctx, playlistID, videoID)
	}
	return nil
}

func (m *mockPlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID int64) error {
	m.removeVideoCalls = append(m.removeVideoCalls, videoID)
	if m.removeVideoFn != nil {
		return m.removeVideoFn(ctx, playlistID, videoID)
	}
	return nil
}

func (m *mockPlaylistRepository) MemberVideos(ctx context.Context, playlistID int64) ([]model.Video, error) {
	if m.memberVideosFn != nil {
		return m.memberVideosFn(ctx, playlistID)
	}
	return nil, nil
}

func (m *mockPlaylistRepository) RemoveVideoFromAll(ctx context.Context, tx *sqlx.Tx, videoID int64) error {
	if m.removeVideoFromAllFn != nil {
		return m.removeVideoFromAllFn(ctx, tx, videoID)
	}
	return nil
}

// =============================================================================
// MOCK CACHE
// =============================================================================

// mockLikeCountCache is an in-memory LikeCountCache with call tracking.
type mockLikeCountCache struct {
	entries map[string]int

	getCalls        int
	setCalls        int
	invalidateCalls int
}

func newMockLikeCountCache() *mockLikeCountCache {
	return &mockLikeCountCache{entries: make(map[string]int)}
}

func cacheKey(kind model.TargetKind, targetID int64) string {
	return fmt.Sprintf("%s:%d", kind, targetID)
}

func (m *mockLikeCountCache) Get(ctx context.Context, kind model.TargetKind, targetID int64) (int, bool, error) {
	m.getCalls++
	count, found := m.entries[cacheKey(kind, targetID)]
	return count, found, nil
}

func (m *mockLikeCountCache) Set(ctx context.Context, kind model.TargetKind, targetID int64, count int) error {
	m.setCalls++
	m.entries[cacheKey(kind, targetID)] = count
	return nil
}

func (m *mockLikeCountCache) Invalidate(ctx context.Context, kind model.TargetKind, targetID int64) error {
	m.invalidateCalls++
	delete(m.entries, cacheKey(kind, targetID))
	return nil
}
