package multimedia

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for multimedia persistence. Video and
// annotation reads return their user association populated (Owner and
// Author respectively); implementations must resolve the join themselves
// rather than leaving it to callers.
type Repository interface {
	// Category operations
	CreateCategory(ctx context.Context, category *Category) error
	GetCategoryByName(ctx context.Context, name string) (*Category, error)
	ListCategoriesByName(ctx context.Context) ([]*Category, error)

	// User operations. Users are reference data owned by an external
	// accounts system; this package only reads them.
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)

	// Video operations. CreateVideo persists the video and populates its
	// Owner. GetVideoOwned returns ErrVideoNotFound both for a missing row
	// and for a row owned by a different user.
	CreateVideo(ctx context.Context, video *Video) error
	GetVideo(ctx context.Context, id uuid.UUID) (*Video, error)
	GetVideoOwned(ctx context.Context, userID, id uuid.UUID) (*Video, error)
	UpdateVideo(ctx context.Context, video *Video) error
	DeleteVideo(ctx context.Context, id uuid.UUID) error
	ListVideos(ctx context.Context) ([]*Video, error)
	ListVideosByOwner(ctx context.Context, userID uuid.UUID) ([]*Video, error)

	// Annotation operations. CreateAnnotation assigns the annotation's ID
	// from the store sequence and populates its Author.
	// ListAnnotationsByVideo returns at most limit rows ordered by
	// (at, id) ascending.
	CreateAnnotation(ctx context.Context, annotation *Annotation) error
	ListAnnotationsByVideo(ctx context.Context, videoID uuid.UUID, limit int) ([]*Annotation, error)
}

// EventSink defines the interface for event handling. Sink failures are
// logged by implementations and never fail the triggering operation.
type EventSink interface {
	// CategoryCreated is fired when a category is first created
	CategoryCreated(ctx context.Context, category *Category) error

	// VideoCreated is fired when a video is created
	VideoCreated(ctx context.Context, video *Video) error

	// VideoUpdated is fired when a video is updated
	VideoUpdated(ctx context.Context, video *Video) error

	// VideoDeleted is fired when a video is deleted
	VideoDeleted(ctx context.Context, videoID uuid.UUID) error

	// AnnotationCreated is fired when an annotation is created
	AnnotationCreated(ctx context.Context, annotation *Annotation) error
}
