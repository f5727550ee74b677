package entity

import "time"

// Product is a listing owned by exactly one user. Only the owner may update
// or delete it.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Read-side composition: User is loaded on list and detail reads,
	// Comments only on detail reads (newest first, each with its author).
	// Comments is kept non-nil by the repository so it serializes as [].
	User     *User     `json:"user,omitempty"`
	Comments []Comment `json:"comments"`
}
