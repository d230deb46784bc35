package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rahulm682/VideoAppBackend/internal/handler"
	"github.com/rahulm682/VideoAppBackend/internal/httputil"
	authmw "github.com/rahulm682/VideoAppBackend/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	LikeHandler     *handler.LikeHandler
	VideoHandler    *handler.VideoHandler
	TweetHandler    *handler.TweetHandler
	CommentHandler  *handler.CommentHandler
	PlaylistHandler *handler.PlaylistHandler
	JWTSecret       string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	// Public read endpoints with optional authentication. The viewer, when
	// present, shapes is_liked / is_owner flags and visibility of
	// unpublished videos.
	r.Group(func(r chi.Router) {
		r.Use(authmw.OptionalAuthMiddleware(cfg.JWTSecret))

		r.Get("/videos", cfg.VideoHandler.List)
		r.Get("/videos/{id}", cfg.VideoHandler.GetByID)
		r.Get("/videos/{id}/comments", cfg.CommentHandler.ListByVideo)

		r.Get("/users/{id}/tweets", cfg.TweetHandler.ListByUser)
		r.Get("/users/{id}/playlists", cfg.PlaylistHandler.GetByUser)

		r.Get("/playlists/{id}", cfg.PlaylistHandler.GetByID)

		r.Get("/likes/{kind}/{id}/count", cfg.LikeHandler.Count)
	})

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.JWTSecret))

		// Like toggles and the viewer's liked-video feed
		r.Post("/likes/{kind}/{id}", cfg.LikeHandler.Toggle)
		r.Get("/likes/videos", cfg.LikeHandler.LikedVideos)

		// Video lifecycle
		r.Post("/videos", cfg.VideoHandler.Publish)
		r.Patch("/videos/{id}", cfg.VideoHandler.Update)
		r.Delete("/videos/{id}", cfg.VideoHandler.Delete)
		r.Patch("/videos/{id}/publish", cfg.VideoHandler.TogglePublish)

		// Comments
		r.Post("/videos/{id}/comments", cfg.CommentHandler.Add)
		r.Patch("/comments/{id}", cfg.CommentHandler.Update)
		r.Delete("/comments/{id}", cfg.CommentHandler.Delete)

		// Tweets
		r.Get("/tweets", cfg.TweetHandler.ListOwn)
		r.Post("/tweets", cfg.TweetHandler.Create)
		r.Patch("/tweets/{id}", cfg.TweetHandler.Update)
		r.Delete("/tweets/{id}", cfg.TweetHandler.Delete)

		// Playlists and membership
		r.Post("/playlists", cfg.PlaylistHandler.Create)
		r.Patch("/playlists/{id}", cfg.PlaylistHandler.Update)
		r.Delete("/playlists/{id}", cfg.PlaylistHandler.Delete)
		r.Post("/playlists/{id}/videos/{videoID}", cfg.PlaylistHandler.AddVideo)
		r.Delete("/playlists/{id}/videos/{videoID}", cfg.PlaylistHandler.RemoveVideo)
	})

	return r
}
