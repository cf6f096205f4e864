package server

import (
	"nutrihub/internal/models"
	"nutrihub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/social/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, createErr := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		UserID:  userID,
		PostID:  postID,
		Content: req.Content,
	})
	if createErr != nil {
		return mapServiceError(c, createErr)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/social/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	comments, listErr := s.commentService.ListComments(ctx, postID, page.Limit, page.Offset, userID)
	if listErr != nil {
		return mapServiceError(c, listErr)
	}

	return c.JSON(comments)
}

// DeleteComment handles DELETE /api/social/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	if err := s.commentService.DeleteComment(ctx, service.DeleteCommentInput{
		UserID:    userID,
		CommentID: commentID,
	}); err != nil {
		return mapServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleCommentLike handles POST /api/social/comments/:id/like
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	ctx := c.Context()
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	comment, toggleErr := s.commentService.ToggleCommentLike(ctx, userID, commentID)
	if toggleErr != nil {
		return mapServiceError(c, toggleErr)
	}

	return c.JSON(fiber.Map{
		"liked":       comment.Liked,
		"likes_count": comment.LikesCount,
		"comment":     comment,
	})
}
