package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andrisatya/marketplace-api/internal/domain/entity"
	"github.com/andrisatya/marketplace-api/internal/domain/repository"
)

// foreign_key_violation: the referenced product row vanished before insert
const fkViolationCode = "23503"

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (content, user_id, product_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, c.Content, c.UserID, c.ProductID)

	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolationCode {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	if !validUUID(id) {
		return nil, repository.ErrNotFound
	}

	c := &entity.Comment{User: &entity.User{}}
	row := r.pool.QueryRow(ctx, `
		SELECT c.id, c.content, c.user_id, c.product_id, c.created_at,
		       u.id, u.email, u.name, u.avatar_url, u.created_at, u.updated_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`, id)

	if err := row.Scan(
		&c.ID, &c.Content, &c.UserID, &c.ProductID, &c.CreatedAt,
		&c.User.ID, &c.User.Email, &c.User.Name, &c.User.AvatarURL, &c.User.CreatedAt, &c.User.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// Delete removes the comment only when ownerID matches; the ownership check
// rides in the DELETE statement itself.
func (r *CommentRepository) Delete(ctx context.Context, id, ownerID string) error {
	if !validUUID(id) {
		return repository.ErrNotFound
	}

	tag, err := r.pool.Exec(ctx, `
		DELETE FROM comments
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM comments WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return repository.ErrNotOwner
		}
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
