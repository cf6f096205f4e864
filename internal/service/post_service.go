// Package service implements the business logic of the social subsystem.
// Services validate input, run multi-step writes inside transactions and
// return models annotated for the requesting user.
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

const (
	maxPostContentLen = 5000
)

type PostService struct {
	db           *gorm.DB
	postRepo     repository.PostRepository
	relationRepo repository.RelationRepository
	isAdmin      func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID      uint
	Content     string
	ImageURL    string
	Type        string
	MealID      *uint
	ChallengeID *uint
	RecipeID    *uint
}

type ListPostsInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
	AuthorID      *uint
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	db *gorm.DB,
	postRepo repository.PostRepository,
	relationRepo repository.RelationRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		db:           db,
		postRepo:     postRepo,
		relationRepo: relationRepo,
		isAdmin:      isAdmin,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	postType := in.Type
	if postType == "" {
		postType = models.PostTypeGeneral
	}
	if !models.ValidPostType(postType) {
		return nil, models.NewValidationError("Invalid post type")
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxPostContentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}

	switch postType {
	case models.PostTypeChallengeUpdate:
		if in.ChallengeID == nil {
			return nil, models.NewValidationError("challenge_id is required for challenge update posts")
		}
	case models.PostTypeRecipeShare:
		if in.RecipeID == nil {
			return nil, models.NewValidationError("recipe_id is required for recipe share posts")
		}
	}

	post := &models.Post{
		UserID:      in.UserID,
		Content:     content,
		ImageURL:    in.ImageURL,
		Type:        postType,
		MealID:      in.MealID,
		ChallengeID: in.ChallengeID,
		RecipeID:    in.RecipeID,
		IsVisible:   true,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	cache.InvalidatePost(ctx, post.ID)

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	if in.AuthorID != nil {
		return s.postRepo.GetByUserID(ctx, *in.AuthorID, in.Limit, in.Offset, in.CurrentUserID)
	}

	// First feed page is hot enough to cache; liked flags are re-resolved per
	// user on top of the shared page.
	if in.Offset == 0 && in.Limit <= 20 {
		var posts []*models.Post
		key := cache.PostsPageKey(1, in.Limit)
		err := cache.Aside(ctx, key, &posts, cache.PostsPageTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.List(ctx, in.Limit, in.Offset, 0)
			return fetchErr
		})
		if err != nil {
			return nil, err
		}

		if in.CurrentUserID != 0 {
			for _, p := range posts {
				liked, likedErr := s.relationRepo.PostLikeExists(ctx, in.CurrentUserID, p.ID)
				if likedErr != nil {
					return nil, likedErr
				}
				p.Liked = liked
			}
		}
		return posts, nil
	}

	return s.postRepo.List(ctx, in.Limit, in.Offset, in.CurrentUserID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

// DeletePost hides a post. Only the author or an admin may do this. Comments
// and like rows under the post stay in place.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}

	if post.UserID != in.UserID {
		if s.isAdmin == nil {
			return models.NewUnauthorizedError("You can only delete your own posts")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own posts")
		}
	}

	if err := s.postRepo.SoftDelete(ctx, in.PostID); err != nil {
		return err
	}
	cache.InvalidatePost(ctx, in.PostID)
	return nil
}

// ToggleLike flips the user's like on a post. The relation row and the
// denormalized counter move together inside one transaction; the counter only
// changes when this call actually inserted or deleted the row, so concurrent
// toggles of the same pair settle on a consistent count.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	// Existence check outside the transaction surfaces NOT_FOUND early.
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}

	var nowLiked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		relations := repository.NewRelationRepository(tx)
		posts := repository.NewPostRepository(tx)

		liked, err := relations.PostLikeExists(ctx, userID, postID)
		if err != nil {
			return err
		}

		if liked {
			removed, err := relations.RemovePostLike(ctx, userID, postID)
			if err != nil {
				return err
			}
			if removed {
				if err := posts.DecrementLikes(ctx, postID); err != nil {
					return err
				}
			}
			nowLiked = false
		} else {
			inserted, err := relations.AddPostLike(ctx, userID, postID)
			if err != nil {
				return err
			}
			if inserted {
				if err := posts.IncrementLikes(ctx, postID); err != nil {
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

	middleware.ObserveToggle("post_like", nowLiked)
	cache.InvalidatePost(ctx, postID)

	return s.postRepo.GetByID(ctx, postID, userID)
}
