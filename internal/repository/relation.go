package repository

import (
	"context"

	"nutrihub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RelationRepository manages the toggleable user-to-entity relations: post
// likes, comment likes, follows and recipe favorites. Add methods report
// whether a row was actually inserted so callers can gate counter updates on
// the outcome under concurrent toggles.
type RelationRepository interface {
	PostLikeExists(ctx context.Context, userID, postID uint) (bool, error)
	AddPostLike(ctx context.Context, userID, postID uint) (bool, error)
	RemovePostLike(ctx context.Context, userID, postID uint) (bool, error)

	CommentLikeExists(ctx context.Context, userID, commentID uint) (bool, error)
	AddCommentLike(ctx context.Context, userID, commentID uint) (bool, error)
	RemoveCommentLike(ctx context.Context, userID, commentID uint) (bool, error)
	RemoveLikesForComment(ctx context.Context, commentID uint) error

	FollowExists(ctx context.Context, followerID, followingID uint) (bool, error)
	AddFollow(ctx context.Context, followerID, followingID uint) (bool, error)
	RemoveFollow(ctx context.Context, followerID, followingID uint) (bool, error)
	Followers(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error)
	Following(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error)

	FavoriteExists(ctx context.Context, userID, recipeID uint) (bool, error)
	AddFavorite(ctx context.Context, userID, recipeID uint) (bool, error)
	RemoveFavorite(ctx context.Context, userID, recipeID uint) (bool, error)
	FavoriteRecipes(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Recipe, error)
}

type relationRepository struct {
	db *gorm.DB
}

// NewRelationRepository creates a new relation repository
func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

func (r *relationRepository) exists(ctx context.Context, model any, query string, args ...any) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(model).
		Where(query, args...).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// add inserts a relation row with ON CONFLICT DO NOTHING so concurrent
// toggles cannot produce duplicate key errors. Returns true only when this
// call created the row.
func (r *relationRepository) add(ctx context.Context, row any) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *relationRepository) remove(ctx context.Context, model any, query string, args ...any) (bool, error) {
	result := r.db.WithContext(ctx).
		Where(query, args...).
		Delete(model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *relationRepository) PostLikeExists(ctx context.Context, userID, postID uint) (bool, error) {
	return r.exists(ctx, &models.PostLike{}, "user_id = ? AND post_id = ?", userID, postID)
}

func (r *relationRepository) AddPostLike(ctx context.Context, userID, postID uint) (bool, error) {
	return r.add(ctx, &models.PostLike{UserID: userID, PostID: postID})
}

func (r *relationRepository) RemovePostLike(ctx context.Context, userID, postID uint) (bool, error) {
	return r.remove(ctx, &models.PostLike{}, "user_id = ? AND post_id = ?", userID, postID)
}

func (r *relationRepository) CommentLikeExists(ctx context.Context, userID, commentID uint) (bool, error) {
	return r.exists(ctx, &models.CommentLike{}, "user_id = ? AND comment_id = ?", userID, commentID)
}

func (r *relationRepository) AddCommentLike(ctx context.Context, userID, commentID uint) (bool, error) {
	return r.add(ctx, &models.CommentLike{UserID: userID, CommentID: commentID})
}

func (r *relationRepository) RemoveCommentLike(ctx context.Context, userID, commentID uint) (bool, error) {
	return r.remove(ctx, &models.CommentLike{}, "user_id = ? AND comment_id = ?", userID, commentID)
}

// RemoveLikesForComment clears every like row referencing a comment, used
// when the comment itself is deleted.
func (r *relationRepository) RemoveLikesForComment(ctx context.Context, commentID uint) error {
	return r.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Delete(&models.CommentLike{}).Error
}

func (r *relationRepository) FollowExists(ctx context.Context, followerID, followingID uint) (bool, error) {
	return r.exists(ctx, &models.UserFollower{}, "follower_id = ? AND following_id = ?", followerID, followingID)
}

func (r *relationRepository) AddFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	return r.add(ctx, &models.UserFollower{FollowerID: followerID, FollowingID: followingID})
}

func (r *relationRepository) RemoveFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	return r.remove(ctx, &models.UserFollower{}, "follower_id = ? AND following_id = ?", followerID, followingID)
}

func (r *relationRepository) Followers(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN user_followers ON user_followers.follower_id = users.id").
		Where("user_followers.following_id = ?", userID).
		Order("user_followers.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, err
}

func (r *relationRepository) Following(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN user_followers ON user_followers.following_id = users.id").
		Where("user_followers.follower_id = ?", userID).
		Order("user_followers.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, err
}

func (r *relationRepository) FavoriteExists(ctx context.Context, userID, recipeID uint) (bool, error) {
	return r.exists(ctx, &models.RecipeFavorite{}, "user_id = ? AND recipe_id = ?", userID, recipeID)
}

func (r *relationRepository) AddFavorite(ctx context.Context, userID, recipeID uint) (bool, error) {
	return r.add(ctx, &models.RecipeFavorite{UserID: userID, RecipeID: recipeID})
}

func (r *relationRepository) RemoveFavorite(ctx context.Context, userID, recipeID uint) (bool, error) {
	return r.remove(ctx, &models.RecipeFavorite{}, "user_id = ? AND recipe_id = ?", userID, recipeID)
}

// FavoriteRecipes only surfaces recipes that are still public. A favorite
// row pointing at a recipe made private stays in place but is filtered out.
// Rows carry the same rating and favorited annotations as other recipe reads,
// resolved against currentUserID (the viewer, not necessarily userID).
func (r *relationRepository) FavoriteRecipes(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	err := applyRecipeDetails(r.db.WithContext(ctx), currentUserID).
		Model(&models.Recipe{}).
		Joins("JOIN recipe_favorites ON recipe_favorites.recipe_id = recipes.id").
		Where("recipe_favorites.user_id = ? AND recipes.is_public = ?", userID, true).
		Order("recipe_favorites.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error
	return recipes, err
}
