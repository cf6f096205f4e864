package service

import (
	"context"
	"strings"
	"time"

	"nutrihub/internal/cache"
	"nutrihub/internal/middleware"
	"nutrihub/internal/models"
	"nutrihub/internal/repository"
)

type RecipeService struct {
	recipeRepo   repository.RecipeRepository
	relationRepo repository.RelationRepository
	userRepo     repository.UserRepository
}

type CreateRecipeInput struct {
	UserID       uint
	Title        string
	Description  string
	Ingredients  []string
	Instructions []string
	PrepTime     int
	CookTime     int
	Servings     int
	Macros       *models.Macros
	Tags         []string
	DietType     string
	IsPublic     *bool
}

// ToggleFavoriteResult reports the state after a favorite toggle.
type ToggleFavoriteResult struct {
	Favorited bool `json:"favorited"`
}

type RateRecipeInput struct {
	UserID   uint
	RecipeID uint
	Rating   int
	Comment  string
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	relationRepo repository.RelationRepository,
	userRepo repository.UserRepository,
) *RecipeService {
	return &RecipeService{recipeRepo: recipeRepo, relationRepo: relationRepo, userRepo: userRepo}
}

func (s *RecipeService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*models.Recipe, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Ingredients) == 0 {
		return nil, models.NewValidationError("At least one ingredient is required")
	}
	if len(in.Instructions) == 0 {
		return nil, models.NewValidationError("At least one instruction step is required")
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	recipe := &models.Recipe{
		UserID:       in.UserID,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		PrepTime:     in.PrepTime,
		CookTime:     in.CookTime,
		Servings:     in.Servings,
		Macros:       in.Macros,
		Tags:         in.Tags,
		DietType:     in.DietType,
		IsPublic:     isPublic,
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *RecipeService) ListRecipes(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Recipe, error) {
	return s.recipeRepo.List(ctx, limit, offset, currentUserID)
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(ctx, id, currentUserID)
}

// ToggleFavorite flips the user's favorite on a recipe and returns the new state.
func (s *RecipeService) ToggleFavorite(ctx context.Context, userID, recipeID uint) (*ToggleFavoriteResult, error) {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, 0); err != nil {
		return nil, err
	}

	exists, err := s.relationRepo.FavoriteExists(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	var favorited bool
	if exists {
		if _, err := s.relationRepo.RemoveFavorite(ctx, userID, recipeID); err != nil {
			return nil, err
		}
		favorited = false
	} else {
		if _, err := s.relationRepo.AddFavorite(ctx, userID, recipeID); err != nil {
			return nil, err
		}
		favorited = true
	}

	middleware.ObserveToggle("recipe_favorite", favorited)
	cache.InvalidateRecipe(ctx, recipeID)

	return &ToggleFavoriteResult{Favorited: favorited}, nil
}

// RateRecipe records the user's 1-5 rating. Re-rating updates the existing
// row rather than adding a second one.
func (s *RecipeService) RateRecipe(ctx context.Context, in RateRecipeInput) (*models.RecipeRating, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, models.NewValidationError("Rating must be between 1 and 5")
	}

	if _, err := s.recipeRepo.GetByID(ctx, in.RecipeID, 0); err != nil {
		return nil, err
	}

	rating, err := s.recipeRepo.GetRating(ctx, in.RecipeID, in.UserID)
	if err != nil {
		if appErr, ok := err.(*models.AppError); !ok || appErr.Code != "NOT_FOUND" {
			return nil, err
		}
		rating = &models.RecipeRating{RecipeID: in.RecipeID, UserID: in.UserID}
	}

	rating.Rating = in.Rating
	rating.Comment = in.Comment
	rating.UpdatedAt = time.Now()
	if err := s.recipeRepo.SaveRating(ctx, rating); err != nil {
		return nil, err
	}
	cache.InvalidateRecipe(ctx, in.RecipeID)

	return rating, nil
}

func (s *RecipeService) ListRatings(ctx context.Context, recipeID uint, limit, offset int) ([]*models.RecipeRating, error) {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, 0); err != nil {
		return nil, err
	}
	return s.recipeRepo.ListRatings(ctx, recipeID, limit, offset)
}

// FavoriteRecipes lists the public recipes a user has favorited, annotated
// for the viewing user.
func (s *RecipeService) FavoriteRecipes(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Recipe, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.relationRepo.FavoriteRecipes(ctx, userID, limit, offset, currentUserID)
}
