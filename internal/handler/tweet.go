package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rahulm682/VideoAppBackend/internal/httputil"
	"github.com/rahulm682/VideoAppBackend/internal/model"
	"github.com/rahulm682/VideoAppBackend/internal/service"
	"github.com/rahulm682/VideoAppBackend/internal/transport/http/middleware"
)

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// Create handles POST /tweets
func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetViewerIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.TweetContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	view, err := h.tweetService.Create(r.Context(), viewerID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTweetContentRequired):
			httputil.WriteBadRequest(w, "Tweet content is required")
		case errors.Is(err, model.ErrTweetContentTooLong):
			httputil.WriteBadRequest(w, "Tweet content too long")
		default:
			log.Printf("[ERROR] Create tweet handler: viewer=%d err=%v", viewerID, err)
			httputil.WriteInternalError(w, "Failed to create tweet")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, view)
}

// ListOwn handles GET /tweets
// Returns the viewer's own tweet feed.
func (h *TweetHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetViewerIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	views, err := h.tweetService.ListByUser(r.Context(), viewerID, &viewerID)
	if err != nil {
		log.Printf("[ERROR] List own tweets handler: viewer=%d err=%v", viewerID, err)
		httputil.WriteInternalError(w, "Failed to list tweets")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, views)
}

// ListByUser handles GET /users/{id}/tweets
func (h *TweetHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	var viewerID *int64
	if id, ok := middleware.GetViewerIDFromContext(r.Context()); ok {
		viewerID = &id
	}

	views, err := h.tweetService.ListByUser(r.Context(), userID, viewerID)
	if err != nil {
		log.Printf("[ERROR] List tweets handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to list tweets")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, views)
}

// Update handles PATCH /tweets/{id}
func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetViewerIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	tweetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid tweet ID")
		return
	}

	var req model.TweetContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	tweet, err := h.tweetService.Update(r.Context(), tweetID, viewerID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTweetContentRequired):
			httputil.WriteBadRequest(w, "Tweet content is required")
		case errors.Is(err, model.ErrTweetContentTooLong):
			httputil.WriteBadRequest(w, "Tweet content too long")
		case errors.Is(err, model.ErrTweetNotFound):
			httputil.WriteNotFound(w, "Tweet not found")
		case errors.Is(err, model.ErrNotTweetOwner):
			httputil.WriteForbidden(w, "You can only update your own tweets")
		default:
			log.Printf("[ERROR] Update tweet handler: viewer=%d tweet=%d err=%v", viewerID, tweetID, err)
			httputil.WriteInternalError(w, "Failed to update tweet")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, tweet)
}

// Delete handles DELETE /tweets/{id}
func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetViewerIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	tweetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid tweet ID")
		return
	}

	err = h.tweetService.Delete(r.Context(), tweetID, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTweetNotFound):
			httputil.WriteNotFound(w, "Tweet not found")
		case errors.Is(err, model.ErrNotTweetOwner):
			httputil.WriteForbidden(w, "You can only delete your own tweets")
		default:
			log.Printf("[ERROR] Delete tweet handler: viewer=%d tweet=%d err=%v", viewerID, tweetID, err)
			httputil.WriteInternalError(w, "Failed to delete tweet")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"is_deleted": true})
}
