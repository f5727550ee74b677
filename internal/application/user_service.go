package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/andrisatya/marketplace-api/internal/domain/entity"
	repo "github.com/andrisatya/marketplace-api/internal/domain/repository"
)

// UserService keeps the local users table in sync with the external identity
// provider.
type UserService struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
}

func NewUserService(r repo.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, Logger: logger}
}

type SyncInput struct {
	Email     string
	Name      string
	AvatarURL string
}

// Sync upserts the user row keyed on the provider subject id. Calling it
// twice with the same subject leaves exactly one row reflecting the latest
// profile fields.
func (s *UserService) Sync(ctx context.Context, subjectID string, in SyncInput) (*entity.User, error) {
	u := &entity.User{
		ID:        subjectID,
		Email:     in.Email,
		Name:      in.Name,
		AvatarURL: in.AvatarURL,
	}
	if err := s.Repo.Upsert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
