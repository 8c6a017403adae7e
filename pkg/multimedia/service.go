package multimedia

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the main interface for the multimedia library
type Service interface {
	// Category operations
	CreateCategory(ctx context.Context, name string) (*Category, error)
	ListAlphabeticalCategories(ctx context.Context) ([]*Category, error)

	// Video operations
	ListVideos(ctx context.Context) ([]*Video, error)
	ListUserVideos(ctx context.Context, userID uuid.UUID) ([]*Video, error)
	GetVideo(ctx context.Context, id uuid.UUID) (*Video, error)
	GetUserVideo(ctx context.Context, userID, id uuid.UUID) (*Video, error)
	CreateVideo(ctx context.Context, userID uuid.UUID, in VideoInput) (*Video, error)
	UpdateVideo(ctx context.Context, video *Video, in VideoInput) (*Video, error)
	DeleteVideo(ctx context.Context, video *Video) (*Video, error)
	ChangeVideo(userID uuid.UUID, video *Video) *Change

	// Annotation operations
	AnnotateVideo(ctx context.Context, userID, videoID uuid.UUID, in AnnotationInput) (*Annotation, error)
	ListAnnotations(ctx context.Context, video *Video) ([]*Annotation, error)
}
