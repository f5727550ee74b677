package repository

import (
	"context"

	"github.com/andrisatya/marketplace-api/internal/domain/entity"
)

// CommentRepository defines the interface for comment-related database operations.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	// GetByID eager-loads the comment author.
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	// Delete removes the comment when ownerID matches the stored owner.
	// Returns ErrNotFound when the row is absent and ErrNotOwner on an
	// owner mismatch.
	Delete(ctx context.Context, id, ownerID string) error
}
