package server

import (
	"time"

	"nutrihub/internal/models"
	"nutrihub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetChallenges handles GET /api/social/challenges?active=true
func (s *Server) GetChallenges(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)
	activeOnly := c.QueryBool("active", false)

	challenges, err := s.challengeService.ListChallenges(ctx, page.Limit, page.Offset, activeOnly)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(challenges)
}

// GetActiveChallenges handles GET /api/social/challenges/active
func (s *Server) GetActiveChallenges(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	challenges, err := s.challengeService.ListChallenges(ctx, page.Limit, page.Offset, true)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(challenges)
}

// GetChallenge handles GET /api/social/challenges/:id
func (s *Server) GetChallenge(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	challenge, getErr := s.challengeService.GetChallenge(ctx, id)
	if getErr != nil {
		return mapServiceError(c, getErr)
	}

	return c.JSON(challenge)
}

// CreateChallenge handles POST /api/social/challenges (admin only)
func (s *Server) CreateChallenge(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string    `json:"title"`
		Description string    `json:"description,omitempty"`
		StartDate   time.Time `json:"start_date"`
		EndDate     time.Time `json:"end_date"`
		Goal        string    `json:"goal,omitempty"`
		GoalType    string    `json:"goal_type,omitempty"`
		GoalValue   int       `json:"goal_value"`
		Rewards     string    `json:"rewards,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	challenge, err := s.challengeService.CreateChallenge(ctx, service.CreateChallengeInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Goal:        req.Goal,
		GoalType:    req.GoalType,
		GoalValue:   req.GoalValue,
		Rewards:     req.Rewards,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(challenge)
}

// JoinChallenge handles POST /api/social/challenges/:id/join
func (s *Server) JoinChallenge(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	res, joinErr := s.challengeService.JoinChallenge(ctx, id, userID)
	if joinErr != nil {
		return mapServiceError(c, joinErr)
	}

	// 201 for a fresh join, 200 when already participating
	status := fiber.StatusOK
	if res.Joined {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(res)
}

// UpdateChallengeProgress handles PUT /api/social/challenges/:id/progress
func (s *Server) UpdateChallengeProgress(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req struct {
		Progress int `json:"progress"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	participant, updErr := s.challengeService.UpdateProgress(ctx, service.UpdateProgressInput{
		UserID:      userID,
		ChallengeID: id,
		Progress:    req.Progress,
	})
	if updErr != nil {
		return mapServiceError(c, updErr)
	}

	return c.JSON(participant)
}

// CompleteChallenge handles POST /api/social/challenges/:id/complete
func (s *Server) CompleteChallenge(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	participant, compErr := s.challengeService.CompleteChallenge(ctx, id, userID)
	if compErr != nil {
		return mapServiceError(c, compErr)
	}

	return c.JSON(participant)
}

// GetChallengeLeaderboard handles GET /api/social/challenges/:id/leaderboard
func (s *Server) GetChallengeLeaderboard(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	board, listErr := s.challengeService.Leaderboard(ctx, id, page.Limit, page.Offset)
	if listErr != nil {
		return mapServiceError(c, listErr)
	}

	return c.JSON(board)
}
