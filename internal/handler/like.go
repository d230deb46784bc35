package handler

import (
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

type LikeHandler struct {
	engagement *service.EngagementService
}

func NewLikeHandler(engagement *service.EngagementService) *LikeHandler {
	return &LikeHandler{engagement: engagement}
}

// Toggle handles POST /likes/{kind}/{id}
// Flips the viewer's reaction on a comment, video, or tweet.
func (h *LikeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetViewerIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	kind := model.TargetKind(chi.URLParam(r, "kind"))
	targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid target ID")
		return
	}

	result, err := h.engagement.Toggle(r.Context(), viewerID, kind, targetID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUnknownTargetKind):
			httputil.WriteBadRequest(w, "Unknown target kind")
		case errors.Is(err, model.ErrInvalidTarget):
			httputil.WriteNotFound(w, "Target not found")
		default:
			log.Printf("[ERROR] Toggle like handler: viewer=%d %s=%d err=%v", viewerID, kind, targetID, err)
			httputil.WriteInternalError(w, "Failed to toggle like")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// Count handles GET /likes/{kind}/{id}/count
// Returns the number of active likes on a target.
func (h *LikeHandler) Count(w http.ResponseWriter, r *http.Request) {
	kind := model.TargetKind(chi.URLParam(r, "kind"))
	targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid target ID")
		return
	}

	count, err := h.engagement.CountLiked(r.Context(), kind, targetID)
	if err != nil {
		if errors.Is(err, model.ErrUnknownTargetKind) {
			httputil.WriteBadRequest(w, "Unknown target kind")
			return
		}
		log.Printf("[ERROR] Like count handler: %s=%d err=%v", kind, targetID, err)
		httputil.WriteInternalError(w, "Failed to get like count")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]int{"likes_count": count})
}

// LikedVideos handles GET /likes/videos
// Returns the published videos the viewer currently likes.
func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetViewerIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	videos, err := h.engagement.LikedVideos(r.Context(), viewerID)
	if err != nil {
		log.Printf("[ERROR] Liked videos handler: viewer=%d err=%v", viewerID, err)
		httputil.WriteInternalError(w, "Failed to get liked videos")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, videos)
}
