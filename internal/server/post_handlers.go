// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"nutrihub/internal/models"
	"nutrihub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/social/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Content     string `json:"content"`
		ImageURL    string `json:"image_url,omitempty"`
		Type        string `json:"type,omitempty"`
		MealID      *uint  `json:"meal_id,omitempty"`
		ChallengeID *uint  `json:"challenge_id,omitempty"`
		RecipeID    *uint  `json:"recipe_id,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:      userID,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		Type:        req.Type,
		MealID:      req.MealID,
		ChallengeID: req.ChallengeID,
		RecipeID:    req.RecipeID,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/social/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	posts, err := s.postService.ListPosts(ctx, service.ListPostsInput{
		Limit:         page.Limit,
		Offset:        page.Offset,
		CurrentUserID: userID,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/social/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	post, err := s.postService.GetPost(ctx, id, userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(post)
}

// GetUserPosts handles GET /api/social/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	posts, listErr := s.postService.ListPosts(ctx, service.ListPostsInput{
		Limit:         page.Limit,
		Offset:        page.Offset,
		CurrentUserID: userID,
		AuthorID:      &authorID,
	})
	if listErr != nil {
		return mapServiceError(c, listErr)
	}

	return c.JSON(posts)
}

// DeletePost handles DELETE /api/social/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	if err := s.postService.DeletePost(ctx, service.DeletePostInput{UserID: userID, PostID: id}); err != nil {
		return mapServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// TogglePostLike handles POST /api/social/posts/:id/like
func (s *Server) TogglePostLike(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	post, toggleErr := s.postService.ToggleLike(ctx, userID, id)
	if toggleErr != nil {
		return mapServiceError(c, toggleErr)
	}

	return c.JSON(fiber.Map{
		"liked":       post.Liked,
		"likes_count": post.LikesCount,
		"post":        post,
	})
}
