package service

import (
	"context"

	"nutrihub/internal/models"
	"nutrihub/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns public user profiles for discovery.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.PublicUser, error) {
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return sanitizeUsers(users), nil
}

// GetUser returns a single public profile.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}
