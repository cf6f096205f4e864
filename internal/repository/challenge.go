package repository

import (
	"context"
	"errors"
	"time"

	"nutrihub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChallengeRepository defines the interface for challenge data operations
type ChallengeRepository interface {
	Create(ctx context.Context, challenge *models.Challenge) error
	GetByID(ctx context.Context, id uint) (*models.Challenge, error)
	List(ctx context.Context, limit, offset int) ([]*models.Challenge, error)
	ListActive(ctx context.Context, limit, offset int) ([]*models.Challenge, error)
	GetParticipant(ctx context.Context, challengeID, userID uint) (*models.ChallengeParticipant, error)
	CreateParticipant(ctx context.Context, participant *models.ChallengeParticipant) (bool, error)
	SaveParticipant(ctx context.Context, participant *models.ChallengeParticipant) error
	ListParticipants(ctx context.Context, challengeID uint, limit, offset int) ([]*models.ChallengeParticipant, error)
	ListUserParticipations(ctx context.Context, userID uint, limit, offset int) ([]*models.ChallengeParticipant, error)
}

type challengeRepository struct {
	db *gorm.DB
}

// NewChallengeRepository creates a new challenge repository
func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) Create(ctx context.Context, challenge *models.Challenge) error {
	return r.db.WithContext(ctx).Create(challenge).Error
}

func (r *challengeRepository) GetByID(ctx context.Context, id uint) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := r.db.WithContext(ctx).First(&challenge, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Challenge", id)
		}
		return nil, err
	}
	return &challenge, nil
}

func (r *challengeRepository) List(ctx context.Context, limit, offset int) ([]*models.Challenge, error) {
	var challenges []*models.Challenge
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&challenges).Error
	return challenges, err
}

func (r *challengeRepository) ListActive(ctx context.Context, limit, offset int) ([]*models.Challenge, error) {
	var challenges []*models.Challenge
	now := time.Now()
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("start_date <= ? AND end_date >= ?", now, now).
		Order("start_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&challenges).Error
	return challenges, err
}

func (r *challengeRepository) GetParticipant(ctx context.Context, challengeID, userID uint) (*models.ChallengeParticipant, error) {
	var participant models.ChallengeParticipant
	err := r.db.WithContext(ctx).
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Challenge participation", challengeID)
		}
		return nil, err
	}
	return &participant, nil
}

// CreateParticipant inserts the join row, reporting whether this call created
// it. A concurrent or repeated join hits the unique pair index and is a no-op.
func (r *challengeRepository) CreateParticipant(ctx context.Context, participant *models.ChallengeParticipant) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(participant)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *challengeRepository) SaveParticipant(ctx context.Context, participant *models.ChallengeParticipant) error {
	return r.db.WithContext(ctx).Save(participant).Error
}

func (r *challengeRepository) ListParticipants(ctx context.Context, challengeID uint, limit, offset int) ([]*models.ChallengeParticipant, error) {
	var participants []*models.ChallengeParticipant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("challenge_id = ?", challengeID).
		Order("progress DESC, join_date ASC").
		Limit(limit).
		Offset(offset).
		Find(&participants).Error
	return participants, err
}

func (r *challengeRepository) ListUserParticipations(ctx context.Context, userID uint, limit, offset int) ([]*models.ChallengeParticipant, error) {
	var participants []*models.ChallengeParticipant
	err := r.db.WithContext(ctx).
		Preload("Challenge").
		Where("user_id = ?", userID).
		Order("join_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&participants).Error
	return participants, err
}
