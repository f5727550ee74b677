package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/andrisatya/marketplace-api/internal/domain/entity"
	repo "github.com/andrisatya/marketplace-api/internal/domain/repository"
	"github.com/andrisatya/marketplace-api/pkg/mailer"
)

// Publisher pushes a JSON message onto the notification queue. Satisfied by
// helpers.RabbitPublisher; nil disables notifications.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// CommentService handles comment creation and owner-guarded deletion.
type CommentService struct {
	Comments repo.CommentRepository
	Products repo.ProductRepository
	Users    repo.UserRepository
	Notify   Publisher
	Logger   *logrus.Logger
}

func NewCommentService(comments repo.CommentRepository, products repo.ProductRepository, users repo.UserRepository, notify Publisher, logger *logrus.Logger) *CommentService {
	return &CommentService{
		Comments: comments,
		Products: products,
		Users:    users,
		Notify:   notify,
		Logger:   logger,
	}
}

// Create persists a comment on the given product for the caller. The product
// must exist. The product owner gets a best-effort notification job unless
// they commented on their own listing.
func (s *CommentService) Create(ctx context.Context, subjectID, productID, content string) (*entity.Comment, error) {
	product, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	c := &entity.Comment{
		Content:   content,
		UserID:    subjectID,
		ProductID: product.ID,
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		// product deleted between the existence check and the insert
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	s.notifyOwner(ctx, product, c)
	return c, nil
}

// Delete removes the comment when the caller owns it.
func (s *CommentService) Delete(ctx context.Context, subjectID, commentID string) error {
	if err := s.Comments.Delete(ctx, commentID, subjectID); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return ErrCommentNotFound
		case errors.Is(err, repo.ErrNotOwner):
			return ErrNotOwner
		}
		return err
	}
	return nil
}

// notifyOwner publishes a comment notification job. Failures are logged and
// never fail the request.
func (s *CommentService) notifyOwner(ctx context.Context, product *entity.Product, c *entity.Comment) {
	if s.Notify == nil || product.User == nil || product.User.Email == "" {
		return
	}
	if product.UserID == c.UserID {
		return
	}

	commenterName := c.UserID
	if s.Users != nil {
		if u, err := s.Users.GetByID(ctx, c.UserID); err == nil && u.Name != "" {
			commenterName = u.Name
		}
	}

	job := mailer.CommentNotification(product.User.Email, commenterName, product.Title, c.Content)

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.Notify.PublishJSON(pubCtx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"product_id": product.ID,
			"comment_id": c.ID,
		}).Warn("publish comment notification failed")
	}
}
