package models

import "time"

// Post types distinguish what a community post is sharing.
const (
	PostTypeGeneral         = "general"
	PostTypeMealShare       = "meal_share"
	PostTypeChallengeUpdate = "challenge_update"
	PostTypeRecipeShare     = "recipe_share"
)

// Post represents a community feed post. LikesCount and CommentsCount are
// denormalized counters kept in lockstep with the post_likes and comments
// tables by the service layer; they must never be written outside a
// transaction that also mutates the underlying rows.
//
// Posts are soft-deleted: IsVisible flips to false and the row is retained.
type Post struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	User        User   `gorm:"foreignKey:UserID" json:"user"`
	Content     string `gorm:"type:text;not null" json:"content"`
	ImageURL    string `json:"image_url,omitempty"`
	MealID      *uint  `json:"meal_id,omitempty"`
	ChallengeID *uint  `gorm:"index" json:"challenge_id,omitempty"`
	RecipeID    *uint  `gorm:"index" json:"recipe_id,omitempty"`
	Type        string `gorm:"type:varchar(32);not null;default:'general'" json:"type"`

	LikesCount    int  `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int  `gorm:"not null;default:0" json:"comments_count"`
	IsVisible     bool `gorm:"not null;default:true;index" json:"is_visible"`

	// Liked indicates whether the requesting user liked this post (computed at query time)
	Liked bool `gorm:"->" json:"liked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidPostType reports whether t is one of the recognized post types.
func ValidPostType(t string) bool {
	switch t {
	case PostTypeGeneral, PostTypeMealShare, PostTypeChallengeUpdate, PostTypeRecipeShare:
		return true
	}
	return false
}
