package models

import "time"

// Toggle relations: each row's presence is the entire state. The composite
// unique index makes the (subject, object) pair the real key; the surrogate ID
// only exists to keep GORM ergonomic.

// PostLike records that a user liked a post.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_like_pair" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_like_pair;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentLike records that a user liked a comment.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_like_pair" json:"user_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_like_pair;index" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFollower records that FollowerID follows FollowingID.
// Rows with FollowerID == FollowingID are never created.
type UserFollower struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecipeFavorite records that a user favorited a community recipe.
type RecipeFavorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_recipe_favorite_pair;index" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_recipe_favorite_pair;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}
