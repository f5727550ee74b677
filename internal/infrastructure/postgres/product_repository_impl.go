package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andrisatya/marketplace-api/internal/domain/entity"
	"github.com/andrisatya/marketplace-api/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// validUUID guards uuid-typed key lookups: a malformed id would otherwise
// fail with a cast error instead of scanning zero rows.
func validUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (title, description, image_url, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Description, p.ImageURL, p.UserID)

	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}
	if p.Comments == nil {
		p.Comments = []entity.Comment{}
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validUUID(id) {
		return nil, repository.ErrNotFound
	}

	p := &entity.Product{User: &entity.User{}, Comments: []entity.Comment{}}
	row := r.pool.QueryRow(ctx, `
		SELECT p.id, p.title, p.description, p.image_url, p.user_id, p.created_at, p.updated_at,
		       u.id, u.email, u.name, u.avatar_url, u.created_at, u.updated_at
		FROM products p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`, id)

	if err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.UserID, &p.CreatedAt, &p.UpdatedAt,
		&p.User.ID, &p.User.Email, &p.User.Name, &p.User.AvatarURL, &p.User.CreatedAt, &p.User.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	comments, err := r.commentsForProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Comments = comments
	return p, nil
}

func (r *ProductRepository) commentsForProduct(ctx context.Context, productID string) ([]entity.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.content, c.user_id, c.product_id, c.created_at,
		       u.id, u.email, u.name, u.avatar_url, u.created_at, u.updated_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.product_id = $1
		ORDER BY c.created_at DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []entity.Comment{}
	for rows.Next() {
		c := entity.Comment{User: &entity.User{}}
		if err := rows.Scan(
			&c.ID, &c.Content, &c.UserID, &c.ProductID, &c.CreatedAt,
			&c.User.ID, &c.User.Email, &c.User.Name, &c.User.AvatarURL, &c.User.CreatedAt, &c.User.UpdatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	return r.list(ctx, `
		SELECT p.id, p.title, p.description, p.image_url, p.user_id, p.created_at, p.updated_at,
		       u.id, u.email, u.name, u.avatar_url, u.created_at, u.updated_at
		FROM products p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
	`)
}

func (r *ProductRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Product, error) {
	return r.list(ctx, `
		SELECT p.id, p.title, p.description, p.image_url, p.user_id, p.created_at, p.updated_at,
		       u.id, u.email, u.name, u.avatar_url, u.created_at, u.updated_at
		FROM products p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC
	`, userID)
}

func (r *ProductRepository) list(ctx context.Context, sql string, args ...any) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []entity.Product{}
	for rows.Next() {
		p := entity.Product{User: &entity.User{}, Comments: []entity.Comment{}}
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.UserID, &p.CreatedAt, &p.UpdatedAt,
			&p.User.ID, &p.User.Email, &p.User.Name, &p.User.AvatarURL, &p.User.CreatedAt, &p.User.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Update applies the patch in a single conditional statement so the ownership
// check and the write cannot be separated by a concurrent mutation. A miss is
// disambiguated afterwards into not-found vs not-owner.
func (r *ProductRepository) Update(ctx context.Context, id, ownerID string, patch repository.ProductPatch) (*entity.Product, error) {
	if !validUUID(id) {
		return nil, repository.ErrNotFound
	}

	p := &entity.Product{Comments: []entity.Comment{}}
	row := r.pool.QueryRow(ctx, `
		UPDATE products
		SET title = COALESCE($3, title),
		    description = COALESCE($4, description),
		    image_url = COALESCE($5, image_url),
		    updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, title, description, image_url, user_id, created_at, updated_at
	`, id, ownerID, patch.Title, patch.Description, patch.ImageURL)

	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.missReason(ctx, id)
		}
		return nil, err
	}
	return p, nil
}

// Delete removes the product owned by ownerID; comments go with it via the
// ON DELETE CASCADE constraint.
func (r *ProductRepository) Delete(ctx context.Context, id, ownerID string) error {
	if !validUUID(id) {
		return repository.ErrNotFound
	}

	tag, err := r.pool.Exec(ctx, `
		DELETE FROM products
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.missReason(ctx, id)
	}
	return nil
}

// missReason decides whether a zero-row conditional mutation was caused by an
// absent row or by an owner mismatch.
func (r *ProductRepository) missReason(ctx context.Context, id string) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return repository.ErrNotOwner
	}
	return repository.ErrNotFound
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
