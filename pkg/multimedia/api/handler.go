// Package api exposes the multimedia service over HTTP. It is a thin
// boundary adapter: not-found errors map to 404, validation failures to 422
// with the field error map, anything else to 500.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/clipnote/multimedia/pkg/multimedia"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// Handler handles HTTP requests for multimedia resources
type Handler struct {
	service multimedia.Service
}

// NewHandler creates a new multimedia handler
func NewHandler(service multimedia.Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the routes for the multimedia API
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/categories", h.ListCategories)
	r.Post("/categories", h.CreateCategory)

	r.Get("/videos", h.ListVideos)
	r.Get("/videos/{videoID}", h.GetVideo)
	r.Put("/videos/{videoID}", h.UpdateVideo)
	r.Delete("/videos/{videoID}", h.DeleteVideo)

	r.Get("/videos/{videoID}/annotations", h.ListAnnotations)
	r.Post("/videos/{videoID}/annotations", h.AnnotateVideo)

	r.Get("/users/{userID}/videos", h.ListUserVideos)
	r.Post("/users/{userID}/videos", h.CreateVideo)
	r.Get("/users/{userID}/videos/{videoID}/change", h.ChangeVideo)

	return r
}

// ErrorResponse is the response body for a failed request
type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// renderError maps service errors onto HTTP status codes
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs multimedia.ValidationErrors
	if errors.As(err, &verrs) {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, ErrorResponse{Error: "validation failed", Fields: verrs.ByField()})
		return
	}

	switch {
	case errors.Is(err, multimedia.ErrVideoNotFound),
		errors.Is(err, multimedia.ErrCategoryNotFound),
		errors.Is(err, multimedia.ErrUserNotFound),
		errors.Is(err, multimedia.ErrAnnotationNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "not found"})
	default:
		slog.Error("request failed", "path", r.URL.Path, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "internal error"})
	}
}
