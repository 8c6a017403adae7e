package multimedia

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrCategoryNotFound indicates a category was not found
	ErrCategoryNotFound = errors.New("category not found")

	// ErrUserNotFound indicates a referenced user was not found
	ErrUserNotFound = errors.New("user not found")

	// ErrVideoNotFound indicates a video was not found. Owner-scoped lookups
	// return it both when the row is absent and when it belongs to a
	// different user; the two cases are indistinguishable to the caller.
	ErrVideoNotFound = errors.New("video not found")

	// ErrAnnotationNotFound indicates an annotation was not found
	ErrAnnotationNotFound = errors.New("annotation not found")
)

// VideoError represents an error related to video operations
type VideoError struct {
	VideoID uuid.UUID
	Op      string
	Err     error
}

func (e *VideoError) Error() string {
	return fmt.Sprintf("video operation %s failed for video %s: %v", e.Op, e.VideoID, e.Err)
}

func (e *VideoError) Unwrap() error {
	return e.Err
}

// CategoryError represents an error related to category operations
type CategoryError struct {
	Name string
	Op   string
	Err  error
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("category operation %s failed for %q: %v", e.Op, e.Name, e.Err)
}

func (e *CategoryError) Unwrap() error {
	return e.Err
}

// AnnotationError represents an error related to annotation operations
type AnnotationError struct {
	VideoID uuid.UUID
	Op      string
	Err     error
}

func (e *AnnotationError) Error() string {
	return fmt.Sprintf("annotation operation %s failed for video %s: %v", e.Op, e.VideoID, e.Err)
}

func (e *AnnotationError) Unwrap() error {
	return e.Err
}
