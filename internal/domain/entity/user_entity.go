package entity

import "time"

// User mirrors a subject at the external identity provider. The ID is the
// provider's stable subject identifier, not a locally generated key; rows are
// written through an upsert the first time a subject is seen.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
