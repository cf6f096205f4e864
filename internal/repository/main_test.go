package repository

import (
	"fmt"
	"testing"
	"time"

	"nutrihub/internal/database"
	"nutrihub/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory sqlite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username: fmt.Sprintf("%s_%d", username, time.Now().UnixNano()),
		Email:    fmt.Sprintf("%s_%d@example.com", username, time.Now().UnixNano()),
		Password: "pw",
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, content string) *models.Post {
	t.Helper()
	p := &models.Post{UserID: userID, Content: content, Type: models.PostTypeGeneral, IsVisible: true}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}
