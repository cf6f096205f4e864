package service

import (
	"context"
	"strings"
	"time"

	"nutrihub/internal/cache"
	"nutrihub/internal/models"
	"nutrihub/internal/repository"
)

type ChallengeService struct {
	challengeRepo repository.ChallengeRepository
	isAdmin       func(ctx context.Context, userID uint) (bool, error)
}

type CreateChallengeInput struct {
	UserID      uint
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Goal        string
	GoalType    string
	GoalValue   int
	Rewards     string
}

// JoinChallengeResult reports whether the join created a new participation
// or found an existing one.
type JoinChallengeResult struct {
	Participant *models.ChallengeParticipant `json:"participant"`
	Joined      bool                         `json:"joined"`
}

type UpdateProgressInput struct {
	UserID      uint
	ChallengeID uint
	Progress    int
}

func NewChallengeService(
	challengeRepo repository.ChallengeRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *ChallengeService {
	return &ChallengeService{challengeRepo: challengeRepo, isAdmin: isAdmin}
}

func (s *ChallengeService) CreateChallenge(ctx context.Context, in CreateChallengeInput) (*models.Challenge, error) {
	if s.isAdmin != nil {
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, models.NewUnauthorizedError("Only admins can create challenges")
		}
	}

	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	goalType := in.GoalType
	if goalType == "" {
		goalType = models.GoalTypeCustom
	}
	if !models.ValidGoalType(goalType) {
		return nil, models.NewValidationError("Invalid goal type")
	}
	if in.GoalValue <= 0 {
		return nil, models.NewValidationError("Goal value must be positive")
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, models.NewValidationError("End date must be after start date")
	}

	challenge := &models.Challenge{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Goal:        in.Goal,
		GoalType:    goalType,
		GoalValue:   in.GoalValue,
		Rewards:     in.Rewards,
		IsActive:    true,
	}
	if err := s.challengeRepo.Create(ctx, challenge); err != nil {
		return nil, err
	}
	cache.InvalidateChallenges(ctx)
	return challenge, nil
}

func (s *ChallengeService) ListChallenges(ctx context.Context, limit, offset int, activeOnly bool) ([]*models.Challenge, error) {
	if activeOnly {
		// The active list is shared across users, cache the first page.
		if offset == 0 && limit <= 20 {
			var challenges []*models.Challenge
			err := cache.Aside(ctx, cache.ActiveChallengesKey(limit), &challenges, cache.ChallengesTTL, func() error {
				var fetchErr error
				challenges, fetchErr = s.challengeRepo.ListActive(ctx, limit, offset)
				return fetchErr
			})
			return challenges, err
		}
		return s.challengeRepo.ListActive(ctx, limit, offset)
	}
	return s.challengeRepo.List(ctx, limit, offset)
}

func (s *ChallengeService) GetChallenge(ctx context.Context, id uint) (*models.Challenge, error) {
	return s.challengeRepo.GetByID(ctx, id)
}

// JoinChallenge adds the user to a challenge. Joining twice is not an error:
// the existing participation is returned with Joined set to false.
func (s *ChallengeService) JoinChallenge(ctx context.Context, challengeID, userID uint) (*JoinChallengeResult, error) {
	challenge, err := s.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if !challenge.IsActive || time.Now().After(challenge.EndDate) {
		return nil, models.NewInvalidOperationError("Challenge is no longer active")
	}

	participant := &models.ChallengeParticipant{
		ChallengeID: challengeID,
		UserID:      userID,
		JoinDate:    time.Now(),
	}
	created, err := s.challengeRepo.CreateParticipant(ctx, participant)
	if err != nil {
		return nil, err
	}
	if !created {
		existing, err := s.challengeRepo.GetParticipant(ctx, challengeID, userID)
		if err != nil {
			return nil, err
		}
		return &JoinChallengeResult{Participant: existing, Joined: false}, nil
	}

	return &JoinChallengeResult{Participant: participant, Joined: true}, nil
}

// UpdateProgress sets the participant's progress value. Crossing the goal
// flips Completed and stamps CompletedDate in the same write; a later update
// below the goal does not un-complete.
func (s *ChallengeService) UpdateProgress(ctx context.Context, in UpdateProgressInput) (*models.ChallengeParticipant, error) {
	if in.Progress < 0 {
		return nil, models.NewValidationError("Progress cannot be negative")
	}

	challenge, err := s.challengeRepo.GetByID(ctx, in.ChallengeID)
	if err != nil {
		return nil, err
	}
	participant, err := s.challengeRepo.GetParticipant(ctx, in.ChallengeID, in.UserID)
	if err != nil {
		return nil, err
	}

	participant.Progress = in.Progress
	if !participant.Completed && in.Progress >= challenge.GoalValue {
		now := time.Now()
		participant.Completed = true
		participant.CompletedDate = &now
	}

	if err := s.challengeRepo.SaveParticipant(ctx, participant); err != nil {
		return nil, err
	}
	cache.Invalidate(ctx, cache.LeaderboardKey(in.ChallengeID))
	return participant, nil
}

// CompleteChallenge force-marks the participation completed regardless of the
// recorded progress value.
func (s *ChallengeService) CompleteChallenge(ctx context.Context, challengeID, userID uint) (*models.ChallengeParticipant, error) {
	challenge, err := s.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	participant, err := s.challengeRepo.GetParticipant(ctx, challengeID, userID)
	if err != nil {
		return nil, err
	}
	if participant.Completed && participant.Progress >= challenge.GoalValue {
		return participant, nil
	}

	participant.Progress = challenge.GoalValue
	if !participant.Completed {
		now := time.Now()
		participant.Completed = true
		participant.CompletedDate = &now
	}
	if err := s.challengeRepo.SaveParticipant(ctx, participant); err != nil {
		return nil, err
	}
	cache.Invalidate(ctx, cache.LeaderboardKey(challengeID))
	return participant, nil
}

// Leaderboard lists participants ordered by progress.
func (s *ChallengeService) Leaderboard(ctx context.Context, challengeID uint, limit, offset int) ([]*models.ChallengeParticipant, error) {
	if _, err := s.challengeRepo.GetByID(ctx, challengeID); err != nil {
		return nil, err
	}
	return s.challengeRepo.ListParticipants(ctx, challengeID, limit, offset)
}

// UserChallenges lists every challenge the user has joined.
func (s *ChallengeService) UserChallenges(ctx context.Context, userID uint, limit, offset int) ([]*models.ChallengeParticipant, error) {
	return s.challengeRepo.ListUserParticipations(ctx, userID, limit, offset)
}
