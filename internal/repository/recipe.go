package repository

import (
	"context"
	"errors"

	"nutrihub/internal/models"

	"gorm.io/gorm"
)

// RecipeRepository defines the interface for recipe data operations
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Recipe, error)
	GetRating(ctx context.Context, recipeID, userID uint) (*models.RecipeRating, error)
	SaveRating(ctx context.Context, rating *models.RecipeRating) error
	ListRatings(ctx context.Context, recipeID uint, limit, offset int) ([]*models.RecipeRating, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

// applyRecipeDetails resolves the rating aggregate and the requesting user's
// favorited flag in the same query as the recipe row. Shared with the
// favorites listing so every recipe read carries the same annotations.
func applyRecipeDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "recipes.*, " +
		"COALESCE((SELECT AVG(rating) FROM recipe_ratings WHERE recipe_ratings.recipe_id = recipes.id), 0) as avg_rating, " +
		"(SELECT COUNT(*) FROM recipe_ratings WHERE recipe_ratings.recipe_id = recipes.id) as ratings_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM recipe_favorites WHERE recipe_favorites.recipe_id = recipes.id AND recipe_favorites.user_id = ?) as favorited", currentUserID)
	}
	return db.Select(selectQuery + ", false as favorited")
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := applyRecipeDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("is_public = ?", true).
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", id)
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	err := applyRecipeDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("is_public = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) GetRating(ctx context.Context, recipeID, userID uint) (*models.RecipeRating, error) {
	var rating models.RecipeRating
	err := r.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Rating", recipeID)
		}
		return nil, err
	}
	return &rating, nil
}

// SaveRating inserts a new rating or updates an existing row in place.
func (r *recipeRepository) SaveRating(ctx context.Context, rating *models.RecipeRating) error {
	return r.db.WithContext(ctx).Save(rating).Error
}

func (r *recipeRepository) ListRatings(ctx context.Context, recipeID uint, limit, offset int) ([]*models.RecipeRating, error) {
	var ratings []*models.RecipeRating
	err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ratings).Error
	return ratings, err
}
