package multimedia

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// NoopEventSink is a no-operation implementation of EventSink
// Useful for production when you don't need event handling or for testing
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

// CategoryCreated does nothing and returns nil
func (n *NoopEventSink) CategoryCreated(ctx context.Context, category *Category) error {
	return nil
}

// VideoCreated does nothing and returns nil
func (n *NoopEventSink) VideoCreated(ctx context.Context, video *Video) error {
	return nil
}

// VideoUpdated does nothing and returns nil
func (n *NoopEventSink) VideoUpdated(ctx context.Context, video *Video) error {
	return nil
}

// VideoDeleted does nothing and returns nil
func (n *NoopEventSink) VideoDeleted(ctx context.Context, videoID uuid.UUID) error {
	return nil
}

// AnnotationCreated does nothing and returns nil
func (n *NoopEventSink) AnnotationCreated(ctx context.Context, annotation *Annotation) error {
	return nil
}

// LoggingEventSink is an event sink that logs events but takes no other
// action. Useful for development and debugging.
type LoggingEventSink struct {
	logger *slog.Logger
}

// NewLoggingEventSink creates a new logging event sink
func NewLoggingEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger}
}

// CategoryCreated logs the category creation event
func (l *LoggingEventSink) CategoryCreated(ctx context.Context, category *Category) error {
	l.logger.InfoContext(ctx, "category created", "category_id", category.ID, "name", category.Name)
	return nil
}

// VideoCreated logs the video creation event
func (l *LoggingEventSink) VideoCreated(ctx context.Context, video *Video) error {
	l.logger.InfoContext(ctx, "video created", "video_id", video.ID, "user_id", video.UserID, "title", video.Title)
	return nil
}

// VideoUpdated logs the video update event
func (l *LoggingEventSink) VideoUpdated(ctx context.Context, video *Video) error {
	l.logger.InfoContext(ctx, "video updated", "video_id", video.ID, "title", video.Title)
	return nil
}

// VideoDeleted logs the video deletion event
func (l *LoggingEventSink) VideoDeleted(ctx context.Context, videoID uuid.UUID) error {
	l.logger.InfoContext(ctx, "video deleted", "video_id", videoID)
	return nil
}

// AnnotationCreated logs the annotation creation event
func (l *LoggingEventSink) AnnotationCreated(ctx context.Context, annotation *Annotation) error {
	l.logger.InfoContext(ctx, "annotation created", "annotation_id", annotation.ID, "video_id", annotation.VideoID, "at", annotation.At)
	return nil
}
