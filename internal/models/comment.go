package models

import "time"

// Comment represents a comment on a post. LikesCount mirrors the number of
// comment_likes rows for this comment.
//
// Unlike posts, comments are hard-deleted: the row is removed, its likes are
// cascaded away, and the parent post's comments_count is decremented in the
// same transaction.
type Comment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	PostID  uint   `gorm:"not null;index" json:"post_id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	Content string `gorm:"type:text;not null" json:"content"`

	LikesCount int `gorm:"not null;default:0" json:"likes_count"`

	// Liked indicates whether the requesting user liked this comment (computed at query time)
	Liked bool `gorm:"->" json:"liked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
