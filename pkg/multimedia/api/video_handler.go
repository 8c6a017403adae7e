package api

import (
	"encoding/json"
	"net/http"

	"github.com/clipnote/multimedia/pkg/multimedia"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

// AnnotateVideoRequest is the request body for annotating a video. The
// author is identified explicitly; authentication is a concern of the
// deployment in front of this API.
type AnnotateVideoRequest struct {
	UserID string `json:"user_id"`
	multimedia.AnnotationInput
}

// ListVideos lists every video with its owner attached
func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.service.ListVideos(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, videos)
}

// GetVideo fetches one video by id
func (h *Handler) GetVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "videoID"), "video ID")
	if !ok {
		return
	}

	video, err := h.service.GetVideo(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, video)
}

// ListUserVideos lists the videos owned by one user
func (h *Handler) ListUserVideos(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, chi.URLParam(r, "userID"), "user ID")
	if !ok {
		return
	}

	videos, err := h.service.ListUserVideos(r.Context(), userID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, videos)
}

// CreateVideo creates a video owned by the path user
func (h *Handler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, chi.URLParam(r, "userID"), "user ID")
	if !ok {
		return
	}

	var in multimedia.VideoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	video, err := h.service.CreateVideo(r.Context(), userID, in)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, video)
}

// UpdateVideo updates a video's attributes. The owner never changes.
func (h *Handler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "videoID"), "video ID")
	if !ok {
		return
	}

	var in multimedia.VideoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	video, err := h.service.GetVideo(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	updated, err := h.service.UpdateVideo(r.Context(), video, in)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, updated)
}

// DeleteVideo removes a video and returns its last-known state
func (h *Handler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "videoID"), "video ID")
	if !ok {
		return
	}

	video, err := h.service.GetVideo(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	deleted, err := h.service.DeleteVideo(r.Context(), video)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, deleted)
}

// ChangeVideo returns a staged change description for an owned video, for
// pre-populating an edit form
func (h *Handler) ChangeVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, chi.URLParam(r, "userID"), "user ID")
	if !ok {
		return
	}
	id, ok := parseID(w, chi.URLParam(r, "videoID"), "video ID")
	if !ok {
		return
	}

	video, err := h.service.GetUserVideo(r.Context(), userID, id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, h.service.ChangeVideo(userID, video))
}

// AnnotateVideo creates an annotation on the path video
func (h *Handler) AnnotateVideo(w http.ResponseWriter, r *http.Request) {
	videoID, ok := parseID(w, chi.URLParam(r, "videoID"), "video ID")
	if !ok {
		return
	}

	var req AnnotateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	userID, ok := parseID(w, req.UserID, "user ID")
	if !ok {
		return
	}

	annotation, err := h.service.AnnotateVideo(r.Context(), userID, videoID, req.AnnotationInput)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, annotation)
}

// ListAnnotations lists a video's annotations in playback order
func (h *Handler) ListAnnotations(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "videoID"), "video ID")
	if !ok {
		return
	}

	video, err := h.service.GetVideo(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	annotations, err := h.service.ListAnnotations(r.Context(), video)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, annotations)
}

func parseID(w http.ResponseWriter, raw, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, "invalid "+what, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
