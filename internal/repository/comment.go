package repository

import (
	"context"
	"errors"

	"nutrihub/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Comment, error)
	GetByPostID(ctx context.Context, postID uint, limit, offset int, currentUserID uint) ([]*models.Comment, error)
	Delete(ctx context.Context, id uint) error
	IncrementLikes(ctx context.Context, id uint) error
	DecrementLikes(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) applyCommentDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select("comments.*, EXISTS(SELECT 1 FROM comment_likes WHERE comment_likes.comment_id = comments.id AND comment_likes.user_id = ?) as liked", currentUserID)
	}
	return db.Select("comments.*, false as liked")
}

func (r *commentRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.applyCommentDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) GetByPostID(ctx context.Context, postID uint, limit, offset int, currentUserID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.applyCommentDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

// Delete removes the comment row for good. Comments are not soft deleted,
// the post counter is decremented by the service instead.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}

func (r *commentRepository) IncrementLikes(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
}

func (r *commentRepository) DecrementLikes(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ? AND likes_count > 0", id).
		UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error
}
