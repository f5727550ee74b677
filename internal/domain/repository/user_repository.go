package repository

import (
	"context"

	"github.com/andrisatya/marketplace-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Upsert creates the user or, when the subject id is already known,
	// replaces the mutable profile fields. Idempotent.
	Upsert(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
