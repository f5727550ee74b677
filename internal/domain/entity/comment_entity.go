package entity

import "time"

// Comment belongs to a product and is owned by the user who wrote it.
// Comments are created and deleted, never updated.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`

	User *User `json:"user,omitempty"`
}
