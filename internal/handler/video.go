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

const maxUploadMemory = 32 << 20 // multipart form parse buffer

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// Publish handles POST /videos
// Multipart upload: metadata fields plus "video" and "thumbnail" files.
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetViewerIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		httputil.WriteBadRequest(w, "Invalid multipart form")
		return
	}

	req := service.PublishRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		IsPublished: r.FormValue("is_published") != "false",
	}

	if file, header, err := r.FormFile("video"); err == nil {
		defer file.Close()
		req.VideoFile = file
		req.VideoHeader = header
	}
	if file, header, err := r.FormFile("thumbnail"); err == nil {
		defer file.Close()
		req.ThumbnailFile = file
		req.ThumbnailHeader = header
	}

	view, err := h.videoService.Publish(r.Context(), viewerID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTitleRequired):
			httputil.WriteBadRequest(w, "Title and description are required")
		case errors.Is(err, model.ErrVideoFileRequired):
			httputil.WriteBadRequest(w, "Video file is required")
		case errors.Is(err, model.ErrThumbnailRequired):
			httputil.WriteBadRequest(w, "Thumbnail is required")
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "File too large")
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequest(w, "Unsupported thumbnail image type")
		default:
			log.Printf("[ERROR] Publish video handler: viewer=%d err=%v", viewerID, err)
			httputil.WriteInternalError(w, "Failed to publish video")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, view)
}

// GetByID handles GET /videos/{id}
// Returns the assembled video detail view with embedded comments.
func (h *VideoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid video ID")
		return
	}

	var viewerID *int64
	if id, ok := middleware.GetViewerIDFromContext(r.Context()); ok {
		viewerID = &id
	}

	view, err := h.videoService.GetByID(r.Context(), videoID, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrVideoNotFound):
			httputil.WriteNotFound(w, "Video not found")
		case errors.Is(err, model.ErrVideoNotVisible):
			httputil.WriteForbidden(w, "Video is not published")
		default:
			log.Printf("[ERROR] Get video handler: video=%d err=%v", videoID, err)
			httputil.WriteInternalError(w, "Failed to get video")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, view)
}

// List handles GET /videos
// Returns all published videos, newest first.
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	var viewerID *int64
	if id, ok := middleware.GetViewerIDFromContext(r.Context()); ok {
		viewerID = &id
	}

	views, err := h.videoService.List(r.Context(), viewerID)
	if err != nil {
		log.Printf("[ERROR] List videos handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to list videos")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, views)
}

// Update handles PATCH /videos/{id}
// Multipart: title, description, and an optional replacement thumbnail.
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetViewerIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid video ID")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		httputil.WriteBadRequest(w, "Invalid multipart form")
		return
	}

	req := model.UpdateVideoRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}

	file, header, ferr := r.FormFile("thumbnail")
	if ferr == nil {
		defer file.Close()
	} else {
		file = nil
		header = nil
	}

	video, err := h.videoService.Update(r.Context(), videoID, viewerID, req, file, header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTitleRequired):
			httputil.WriteBadRequest(w, "Title and description are required")
		case errors.Is(err, model.ErrVideoNotFound):
			httputil.WriteNotFound(w, "Video not found")
		case errors.Is(err, model.ErrNotVideoOwner):
			httputil.WriteForbidden(w, "You can only update your own videos")
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "File too large")
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequest(w, "Unsupported thumbnail image type")
		default:
			log.Printf("[ERROR] Update video handler: viewer=%d video=%d err=%v", viewerID, videoID, err)
			httputil.WriteInternalError(w, "Failed to update video")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, video)
}

// Delete handles DELETE /videos/{id}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetViewerIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid video ID")
		return
	}

	err = h.videoService.Delete(r.Context(), videoID, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrVideoNotFound):
			httputil.WriteNotFound(w, "Video not found")
		case errors.Is(err, model.ErrNotVideoOwner):
			httputil.WriteForbidden(w, "You can only delete your own videos")
		default:
			log.Printf("[ERROR] Delete video handler: viewer=%d video=%d err=%v", viewerID, videoID, err)
			httputil.WriteInternalError(w, "Failed to delete video")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"is_deleted": true})
}

// TogglePublish handles PATCH /videos/{id}/publish
func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetViewerIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid video ID")
		return
	}

	video, err := h.videoService.TogglePublish(r.Context(), videoID, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrVideoNotFound):
			httputil.WriteNotFound(w, "Video not found")
		case errors.Is(err, model.ErrNotVideoOwner):
			httputil.WriteForbidden(w, "You can only publish your own videos")
		default:
			log.Printf("[ERROR] Toggle publish handler: viewer=%d video=%d err=%v", viewerID, videoID, err)
			httputil.WriteInternalError(w, "Failed to toggle publish status")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, video)
}
