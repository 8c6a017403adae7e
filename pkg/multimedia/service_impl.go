package multimedia

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// annotationListLimit caps how many annotations a single listing returns.
const annotationListLimit = 500

// service implements the Service interface
type service struct {
	repository Repository
	validator  *Validator
	eventSink  EventSink
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithValidator sets the input validator for the service
func WithValidator(v *Validator) Option {
	return func(s *service) {
		s.validator = v
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.validator == nil {
		s.validator = NewValidator()
	}

	return s, nil
}

// Category operations

// CreateCategory returns the category with the given name, inserting it
// first if it does not exist yet. The lookup-then-insert is not atomic; two
// callers racing on the same name are arbitrated by the store's unique
// index, not here.
func (s *service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	existing, err := s.repository.GetCategoryByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrCategoryNotFound) {
		return nil, &CategoryError{Name: name, Op: "get", Err: err}
	}

	now := time.Now().UTC()
	category := &Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repository.CreateCategory(ctx, category); err != nil {
		return nil, &CategoryError{Name: name, Op: "create", Err: err}
	}

	if s.eventSink != nil {
		_ = s.eventSink.CategoryCreated(ctx, category)
	}

	return category, nil
}

func (s *service) ListAlphabeticalCategories(ctx context.Context) ([]*Category, error) {
	return s.repository.ListCategoriesByName(ctx)
}

// Video operations

func (s *service) ListVideos(ctx context.Context) ([]*Video, error) {
	return s.repository.ListVideos(ctx)
}

func (s *service) ListUserVideos(ctx context.Context, userID uuid.UUID) ([]*Video, error) {
	return s.repository.ListVideosByOwner(ctx, userID)
}

func (s *service) GetVideo(ctx context.Context, id uuid.UUID) (*Video, error) {
	return s.repository.GetVideo(ctx, id)
}

func (s *service) GetUserVideo(ctx context.Context, userID, id uuid.UUID) (*Video, error) {
	return s.repository.GetVideoOwned(ctx, userID, id)
}

// CreateVideo validates in, builds a video owned by userID and persists it.
// The owner always comes from userID; input carries no owner field at all.
func (s *service) CreateVideo(ctx context.Context, userID uuid.UUID, in VideoInput) (*Video, error) {
	if verrs := s.validator.Validate(in); verrs != nil {
		return nil, verrs
	}

	now := time.Now().UTC()
	video := &Video{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  in.CategoryID,
		URL:         in.URL,
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repository.CreateVideo(ctx, video); err != nil {
		return nil, &VideoError{VideoID: video.ID, Op: "create", Err: err}
	}

	if s.eventSink != nil {
		_ = s.eventSink.VideoCreated(ctx, video)
	}

	return video, nil
}

// UpdateVideo validates in merged onto video and persists the result. On
// validation failure the stored record is left untouched. The owner is
// never changed by an update.
func (s *service) UpdateVideo(ctx context.Context, video *Video, in VideoInput) (*Video, error) {
	if verrs := s.validator.Validate(in); verrs != nil {
		return nil, verrs
	}

	updated := *video
	updated.URL = in.URL
	updated.Title = in.Title
	updated.Description = in.Description
	updated.CategoryID = in.CategoryID
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateVideo(ctx, &updated); err != nil {
		return nil, &VideoError{VideoID: video.ID, Op: "update", Err: err}
	}

	if s.eventSink != nil {
		_ = s.eventSink.VideoUpdated(ctx, &updated)
	}

	return &updated, nil
}

// DeleteVideo removes the record and returns its last-known state. A store
// refusal (missing row, dependent annotations) propagates as a VideoError.
func (s *service) DeleteVideo(ctx context.Context, video *Video) (*Video, error) {
	if err := s.repository.DeleteVideo(ctx, video.ID); err != nil {
		return nil, &VideoError{VideoID: video.ID, Op: "delete", Err: err}
	}

	if s.eventSink != nil {
		_ = s.eventSink.VideoDeleted(ctx, video.ID)
	}

	return video, nil
}

// ChangeVideo produces a pending, unvalidated change description for video
// with the owner pinned to userID. Used to pre-populate edit forms; never
// touches storage.
func (s *service) ChangeVideo(userID uuid.UUID, video *Video) *Change {
	return newVideoChange(userID, video)
}

// Annotation operations

// AnnotateVideo validates in and persists an annotation on videoID authored
// by userID. Whether videoID references an existing video is not checked at
// this layer; a dangling reference surfaces as a store error when the store
// enforces the foreign key.
func (s *service) AnnotateVideo(ctx context.Context, userID, videoID uuid.UUID, in AnnotationInput) (*Annotation, error) {
	if verrs := s.validator.Validate(in); verrs != nil {
		return nil, verrs
	}

	annotation := &Annotation{
		VideoID:   videoID,
		UserID:    userID,
		At:        in.At,
		Body:      in.Body,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repository.CreateAnnotation(ctx, annotation); err != nil {
		return nil, &AnnotationError{VideoID: videoID, Op: "create", Err: err}
	}

	if s.eventSink != nil {
		_ = s.eventSink.AnnotationCreated(ctx, annotation)
	}

	return annotation, nil
}

// ListAnnotations returns the video's annotations ordered by (at, id)
// ascending, capped at 500 rows. The tie-break on id is part of the
// contract: playback depends on a stable order at identical timestamps.
func (s *service) ListAnnotations(ctx context.Context, video *Video) ([]*Annotation, error) {
	return s.repository.ListAnnotationsByVideo(ctx, video.ID, annotationListLimit)
}
