package service

import (
	"context"
	"strings"

	"nutrihub/internal/cache"
	"nutrihub/internal/middleware"
	"nutrihub/internal/models"
	"nutrihub/internal/repository"

	"gorm.io/gorm"
)

const maxCommentContentLen = 2000

type CommentService struct {
	db          *gorm.DB
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(
	db *gorm.DB,
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		db:          db,
		commentRepo: commentRepo,
		postRepo:    postRepo,
		isAdmin:     isAdmin,
	}
}

// CreateComment inserts the comment and bumps the post's comment counter in
// the same transaction.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentContentLen {
		return nil, models.NewValidationError("Content too long (max 2000 characters)")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID, 0); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  in.PostID,
		UserID:  in.UserID,
		Content: content,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comments := repository.NewCommentRepository(tx)
		posts := repository.NewPostRepository(tx)

		if err := comments.Create(ctx, comment); err != nil {
			return err
		}
		return posts.IncrementComments(ctx, in.PostID)
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidatePost(ctx, in.PostID)

	return s.commentRepo.GetByID(ctx, comment.ID, in.UserID)
}

func (s *CommentService) ListComments(ctx context.Context, postID uint, limit, offset int, currentUserID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByPostID(ctx, postID, limit, offset, currentUserID)
}

// DeleteComment removes the comment row, its like rows and decrements the
// post's comment counter, all in one transaction. Unlike posts, comments are
// hard deleted.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID, 0)
	if err != nil {
		return err
	}

	if comment.UserID != in.UserID {
		if s.isAdmin == nil {
			return models.NewUnauthorizedError("You can only delete your own comments")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own comments")
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comments := repository.NewCommentRepository(tx)
		relations := repository.NewRelationRepository(tx)
		posts := repository.NewPostRepository(tx)

		if err := relations.RemoveLikesForComment(ctx, in.CommentID); err != nil {
			return err
		}
		if err := comments.Delete(ctx, in.CommentID); err != nil {
			return err
		}
		return posts.DecrementComments(ctx, comment.PostID)
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}

// ToggleCommentLike mirrors PostService.ToggleLike for comment likes.
func (s *CommentService) ToggleCommentLike(ctx context.Context, userID, commentID uint) (*models.Comment, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID, 0); err != nil {
		return nil, err
	}

	var nowLiked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		relations := repository.NewRelationRepository(tx)
		comments := repository.NewCommentRepository(tx)

		liked, err := relations.CommentLikeExists(ctx, userID, commentID)
		if err != nil {
			return err
		}

		if liked {
			removed, err := relations.RemoveCommentLike(ctx, userID, commentID)
			if err != nil {
				return err
			}
			if removed {
				if err := comments.DecrementLikes(ctx, commentID); err != nil {
					return err
				}
			}
			nowLiked = false
		} else {
			inserted, err := relations.AddCommentLike(ctx, userID, commentID)
			if err != nil {
				return err
			}
			if inserted {
				if err := comments.IncrementLikes(ctx, commentID); err != nil {
					return err
				}
			}
			nowLiked = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	middleware.ObserveToggle("comment_like", nowLiked)

	return s.commentRepo.GetByID(ctx, commentID, userID)
}
