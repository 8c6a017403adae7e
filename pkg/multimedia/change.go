package multimedia

import "github.com/google/uuid"

// Change is a staged description of proposed field changes to a video,
// distinct from the stored record. It tracks the proposed values, any field
// errors accumulated by validation, and whether validation has run at all.
//
// An unvalidated Change (as produced by Service.ChangeVideo) carries the
// video's current attributes for pre-populating an edit form; it is pure
// computation and never touches storage.
type Change struct {
	// VideoID is zero for a change describing a new video.
	VideoID uuid.UUID `json:"video_id,omitempty"`

	// UserID is the pinned owner. It always comes from the operation's user
	// argument, never from input.
	UserID uuid.UUID `json:"user_id"`

	// Input holds the proposed field values.
	Input VideoInput `json:"input"`

	// Errors holds field errors from validation, empty until validated.
	Errors ValidationErrors `json:"errors,omitempty"`

	// Validated reports whether validation has run on Input.
	Validated bool `json:"validated"`
}

// Valid reports whether the change has been validated and carries no field
// errors.
func (c *Change) Valid() bool {
	return c.Validated && len(c.Errors) == 0
}

// newVideoChange stages the video's current attributes with the owner
// pinned to userID.
func newVideoChange(userID uuid.UUID, video *Video) *Change {
	c := &Change{
		UserID: userID,
	}
	if video != nil {
		c.VideoID = video.ID
		c.Input = VideoInput{
			URL:         video.URL,
			Title:       video.Title,
			Description: video.Description,
			CategoryID:  video.CategoryID,
		}
	}
	return c
}
