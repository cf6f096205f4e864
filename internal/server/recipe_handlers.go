package server

import (
	"nutrihub/internal/models"
	"nutrihub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetRecipes handles GET /api/social/recipes
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	recipes, err := s.recipeService.ListRecipes(ctx, page.Limit, page.Offset, userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(recipes)
}

// GetRecipe handles GET /api/social/recipes/:id
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	recipe, getErr := s.recipeService.GetRecipe(ctx, id, userID)
	if getErr != nil {
		return mapServiceError(c, getErr)
	}

	return c.JSON(recipe)
}

// CreateRecipe handles POST /api/social/recipes
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title        string         `json:"title"`
		Description  string         `json:"description,omitempty"`
		Ingredients  []string       `json:"ingredients"`
		Instructions []string       `json:"instructions"`
		PrepTime     int            `json:"prep_time,omitempty"`
		CookTime     int            `json:"cook_time,omitempty"`
		Servings     int            `json:"servings,omitempty"`
		Macros       *models.Macros `json:"macros,omitempty"`
		Tags         []string       `json:"tags,omitempty"`
		DietType     string         `json:"diet_type,omitempty"`
		IsPublic     *bool          `json:"is_public,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.CreateRecipe(ctx, service.CreateRecipeInput{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Macros:       req.Macros,
		Tags:         req.Tags,
		DietType:     req.DietType,
		IsPublic:     req.IsPublic,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// ToggleRecipeFavorite handles POST /api/social/recipes/:id/favorite
func (s *Server) ToggleRecipeFavorite(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	res, toggleErr := s.recipeService.ToggleFavorite(ctx, userID, id)
	if toggleErr != nil {
		return mapServiceError(c, toggleErr)
	}

	return c.JSON(res)
}

// RateRecipe handles POST /api/social/recipes/:id/rate
func (s *Server) RateRecipe(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	rating, rateErr := s.recipeService.RateRecipe(ctx, service.RateRecipeInput{
		UserID:   userID,
		RecipeID: id,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if rateErr != nil {
		return mapServiceError(c, rateErr)
	}

	return c.JSON(rating)
}

// GetRecipeRatings handles GET /api/social/recipes/:id/ratings
func (s *Server) GetRecipeRatings(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	ratings, listErr := s.recipeService.ListRatings(ctx, id, page.Limit, page.Offset)
	if listErr != nil {
		return mapServiceError(c, listErr)
	}

	return c.JSON(ratings)
}
