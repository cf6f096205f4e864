package service

import (
	"context"

	"nutrihub/internal/cache"
	"nutrihub/internal/middleware"
	"nutrihub/internal/models"
	"nutrihub/internal/repository"
)

type FollowService struct {
	relationRepo repository.RelationRepository
	userRepo     repository.UserRepository
}

// ToggleFollowResult reports the state after a follow toggle.
type ToggleFollowResult struct {
	Following bool `json:"following"`
}

func NewFollowService(relationRepo repository.RelationRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{relationRepo: relationRepo, userRepo: userRepo}
}

// ToggleFollow flips whether followerID follows targetID and returns the new
// state. Following yourself is rejected outright.
func (s *FollowService) ToggleFollow(ctx context.Context, followerID, targetID uint) (*ToggleFollowResult, error) {
	if followerID == targetID {
		return nil, models.NewInvalidOperationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	exists, err := s.relationRepo.FollowExists(ctx, followerID, targetID)
	if err != nil {
		return nil, err
	}

	var following bool
	if exists {
		if _, err := s.relationRepo.RemoveFollow(ctx, followerID, targetID); err != nil {
			return nil, err
		}
		following = false
	} else {
		if _, err := s.relationRepo.AddFollow(ctx, followerID, targetID); err != nil {
			return nil, err
		}
		following = true
	}

	middleware.ObserveToggle("follow", following)
	cache.InvalidateFollows(ctx, followerID, targetID)

	return &ToggleFollowResult{Following: following}, nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	return s.relationRepo.FollowExists(ctx, followerID, targetID)
}

func (s *FollowService) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.PublicUser, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.relationRepo.Followers(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return sanitizeUsers(users), nil
}

func (s *FollowService) Following(ctx context.Context, userID uint, limit, offset int) ([]models.PublicUser, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.relationRepo.Following(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return sanitizeUsers(users), nil
}

func sanitizeUsers(users []*models.User) []models.PublicUser {
	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}
