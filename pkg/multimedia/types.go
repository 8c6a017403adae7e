package multimedia

import (
	"time"

	"github.com/google/uuid"
)

// Category groups videos under a shared label. Categories are created on
// first reference to a name and are never updated or deleted through this
// package.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User is a read-only reference to an account owned by a separate accounts
// system. This package only ever reads users to populate associations; it
// never creates or mutates them.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name,omitempty"`
}

// Video represents a registered video. Every video has exactly one owning
// user, set at creation and immutable through this API, and optionally
// belongs to one category.
type Video struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Owner is populated on every read (preload contract). Not a stored
	// column; the stored reference is UserID.
	Owner *User `json:"owner,omitempty"`
}

// Annotation is a time-stamped note attached to a video. Annotations are
// append-only within this API: created once, never updated or deleted.
//
// ID is a store-assigned sequence value. Listing orders by (At, ID)
// ascending, so annotations sharing a timestamp display in insertion order.
type Annotation struct {
	ID      int64     `json:"id"`
	VideoID uuid.UUID `json:"video_id"`
	UserID  uuid.UUID `json:"user_id"`
	At      int       `json:"at"`
	Body    string    `json:"body"`

	CreatedAt time.Time `json:"created_at"`

	// Author is populated on every read, like Video.Owner.
	Author *User `json:"author,omitempty"`
}
