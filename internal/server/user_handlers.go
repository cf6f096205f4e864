package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/social/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	users, err := s.userService.ListUsers(ctx, page.Limit, page.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(users)
}

// GetUser handles GET /api/social/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, getErr := s.userService.GetUser(ctx, id)
	if getErr != nil {
		return mapServiceError(c, getErr)
	}

	return c.JSON(user)
}

// ToggleFollow handles POST /api/social/users/:id/follow
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	ctx := c.Context()
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	res, toggleErr := s.followService.ToggleFollow(ctx, userID, targetID)
	if toggleErr != nil {
		return mapServiceError(c, toggleErr)
	}

	return c.JSON(res)
}

// IsFollowing handles GET /api/social/users/:id/is-following
func (s *Server) IsFollowing(c *fiber.Ctx) error {
	ctx := c.Context()
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	following, checkErr := s.followService.IsFollowing(ctx, userID, targetID)
	if checkErr != nil {
		return mapServiceError(c, checkErr)
	}

	return c.JSON(fiber.Map{"following": following})
}

// GetFollowers handles GET /api/social/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	followers, listErr := s.followService.Followers(ctx, id, page.Limit, page.Offset)
	if listErr != nil {
		return mapServiceError(c, listErr)
	}

	return c.JSON(followers)
}

// GetFollowing handles GET /api/social/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	following, listErr := s.followService.Following(ctx, id, page.Limit, page.Offset)
	if listErr != nil {
		return mapServiceError(c, listErr)
	}

	return c.JSON(following)
}

// GetUserFavorites handles GET /api/social/users/:id/favorites
func (s *Server) GetUserFavorites(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)
	userID := c.Locals("userID").(uint)

	recipes, listErr := s.recipeService.FavoriteRecipes(ctx, id, page.Limit, page.Offset, userID)
	if listErr != nil {
		return mapServiceError(c, listErr)
	}

	return c.JSON(recipes)
}

// GetUserChallenges handles GET /api/social/users/:id/challenges
func (s *Server) GetUserChallenges(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	participations, listErr := s.challengeService.UserChallenges(ctx, id, page.Limit, page.Offset)
	if listErr != nil {
		return mapServiceError(c, listErr)
	}

	return c.JSON(participations)
}
