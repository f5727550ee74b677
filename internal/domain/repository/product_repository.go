package repository

import (
	"context"

	"github.com/andrisatya/marketplace-api/internal/domain/entity"
)

// ProductPatch carries a partial update; nil fields keep their stored value.
type ProductPatch struct {
	Title       *string
	Description *string
	ImageURL    *string
}

// ProductRepository defines the interface for product-related database operations.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	// GetByID eager-loads the owner and the comments (with their authors),
	// comments ordered by creation time descending.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetAll and GetByUserID eager-load the owner per product and order by
	// creation time descending.
	GetAll(ctx context.Context) ([]entity.Product, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Product, error)
	// Update applies the patch only when ownerID matches the stored owner.
	// The ownership condition is part of the UPDATE statement itself so a
	// concurrent delete cannot slip between check and write. Returns
	// ErrNotFound when the row is absent and ErrNotOwner on an owner
	// mismatch.
	Update(ctx context.Context, id, ownerID string, patch ProductPatch) (*entity.Product, error)
	// Delete removes the product when ownerID matches, cascading to its
	// comments. Same error contract as Update.
	Delete(ctx context.Context, id, ownerID string) error
}
