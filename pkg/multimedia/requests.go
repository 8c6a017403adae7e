package multimedia

import "github.com/google/uuid"

// Input DTOs. Callers supply these instead of raw attribute maps; the owner
// of a record is never taken from input, it is pinned from the operation's
// user argument.

// VideoInput contains caller-supplied attributes for creating or updating a
// video.
type VideoInput struct {
	URL         string     `json:"url" validate:"required,url"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// AnnotationInput contains caller-supplied attributes for annotating a
// video. At is the offset into the video in seconds.
type AnnotationInput struct {
	At   int    `json:"at" validate:"min=0"`
	Body string `json:"body" validate:"required"`
}
