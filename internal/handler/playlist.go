package handler

import (
	"context"
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

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create handles POST /playlists
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetViewerIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	playlist, err := h.playlistService.Create(r.Context(), viewerID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPlaylistNameRequired):
			httputil.WriteBadRequest(w, "Playlist name and description are required")
		default:
			log.Printf("[ERROR] Create playlist handler: viewer=%d err=%v", viewerID, err)
			httputil.WriteInternalError(w, "Failed to create playlist")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, playlist)
}

// GetByID handles GET /playlists/{id}
func (h *PlaylistHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	playlistID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid playlist ID")
		return
	}

	var viewerID *int64
	if id, ok := middleware.GetViewerIDFromContext(r.Context()); ok {
		viewerID = &id
	}

	view, err := h.playlistService.GetByID(r.Context(), playlistID, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPlaylistNotFound):
			httputil.WriteNotFound(w, "Playlist not found")
		default:
			log.Printf("[ERROR] Get playlist handler: playlist=%d err=%v", playlistID, err)
			httputil.WriteInternalError(w, "Failed to get playlist")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, view)
}

// GetByUser handles GET /users/{id}/playlists
func (h *PlaylistHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	var viewerID *int64
	if id, ok := middleware.GetViewerIDFromContext(r.Context()); ok {
		viewerID = &id
	}

	views, err := h.playlistService.GetByUser(r.Context(), userID, viewerID)
	if err != nil {
		log.Printf("[ERROR] List playlists handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to list playlists")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, views)
}

// Update handles PATCH /playlists/{id}
func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetViewerIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	playlistID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid playlist ID")
		return
	}

	var req model.PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	playlist, err := h.playlistService.Update(r.Context(), playlistID, viewerID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPlaylistNotFound):
			httputil.WriteNotFound(w, "Playlist not found")
		case errors.Is(err, model.ErrNotPlaylistOwner):
			httputil.WriteForbidden(w, "You can only update your own playlists")
		default:
			log.Printf("[ERROR] Update playlist handler: viewer=%d playlist=%d err=%v", viewerID, playlistID, err)
			httputil.WriteInternalError(w, "Failed to update playlist")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, playlist)
}

// Delete handles DELETE /playlists/{id}
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetViewerIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	playlistID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid playlist ID")
		return
	}

	err = h.playlistService.Delete(r.Context(), playlistID, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPlaylistNotFound):
			httputil.WriteNotFound(w, "Playlist not found")
		case errors.Is(err, model.ErrNotPlaylistOwner):
			httputil.WriteForbidden(w, "You can only delete your own playlists")
		default:
			log.Printf("[ERROR] Delete playlist handler: viewer=%d playlist=%d err=%v", viewerID, playlistID, err)
			httputil.WriteInternalError(w, "Failed to delete playlist")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"is_deleted": true})
}

// AddVideo handles POST /playlists/{id}/videos/{videoID}
func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, h.playlistService.AddVideo, "add video to playlist")
}

// RemoveVideo handles DELETE /playlists/{id}/videos/{videoID}
func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, h.playlistService.RemoveVideo, "remove video from playlist")
}

func (h *PlaylistHandler) membership(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, playlistID, videoID, viewerID int64) error, action string) {
	viewerID, ok := middleware.GetViewerIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	playlistID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid playlist ID")
		return
	}
	videoID, err := strconv.ParseInt(chi.URLParam(r, "videoID"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid video ID")
		return
	}

	err = op(r.Context(), playlistID, videoID, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPlaylistNotFound):
			httputil.WriteNotFound(w, "Playlist not found")
		case errors.Is(err, model.ErrNotPlaylistOwner):
			httputil.WriteForbidden(w, "You can only modify your own playlists")
		case errors.Is(err, model.ErrVideoNotFound):
			httputil.WriteNotFound(w, "Video not found")
		default:
			log.Printf("[ERROR] Failed to %s: viewer=%d playlist=%d video=%d err=%v", action, viewerID, playlistID, videoID, err)
			httputil.WriteInternalError(w, "Failed to update playlist videos")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
