package repository

import (
	"context"
	"errors"

	"nutrihub/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error)
	SoftDelete(ctx context.Context, id uint) error
	IncrementLikes(ctx context.Context, id uint) error
	DecrementLikes(ctx context.Context, id uint) error
	IncrementComments(ctx context.Context, id uint) error
	DecrementComments(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// applyPostDetails adds a subquery resolving the current user's liked status
// in the same query as the post row itself.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select("posts.*, EXISTS(SELECT 1 FROM post_likes WHERE post_likes.post_id = posts.id AND post_likes.user_id = ?) as liked", currentUserID)
	}
	return db.Select("posts.*, false as liked")
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("is_visible = ?", true).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("user_id = ? AND is_visible = ?", userID, true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("is_visible = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// SoftDelete hides a post from feeds without removing the row. Comments and
// likes under it stay intact.
func (r *postRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND is_visible = ?", id, true).
		UpdateColumn("is_visible", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}

func (r *postRepository) IncrementLikes(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
}

// DecrementLikes clamps at zero. The WHERE guard keeps the counter from
// going negative if state ever drifts from the relation rows.
func (r *postRepository) DecrementLikes(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND likes_count > 0", id).
		UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error
}

func (r *postRepository) IncrementComments(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
}

func (r *postRepository) DecrementComments(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND comments_count > 0", id).
		UpdateColumn("comments_count", gorm.Expr("comments_count - 1")).Error
}
