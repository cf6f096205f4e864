package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"nutrihub/internal/database"
	"nutrihub/internal/models"
	"nutrihub/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fixture bundles a fresh in-memory database with every repository wired up.
type fixture struct {
	db         *gorm.DB
	users      repository.UserRepository
	posts      repository.PostRepository
	comments   repository.CommentRepository
	relations  repository.RelationRepository
	challenges repository.ChallengeRepository
	recipes    repository.RecipeRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return &fixture{
		db:         db,
		users:      repository.NewUserRepository(db),
		posts:      repository.NewPostRepository(db),
		comments:   repository.NewCommentRepository(db),
		relations:  repository.NewRelationRepository(db),
		challenges: repository.NewChallengeRepository(db),
		recipes:    repository.NewRecipeRepository(db),
	}
}

func (f *fixture) isAdmin() func(ctx context.Context, userID uint) (bool, error) {
	return func(ctx context.Context, userID uint) (bool, error) {
		return f.users.IsAdmin(ctx, userID)
	}
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{
		Username: fmt.Sprintf("%s_%d", name, time.Now().UnixNano()),
		Email:    fmt.Sprintf("%s_%d@example.com", name, time.Now().UnixNano()),
		Password: "pw",
	}
	if err := f.db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (f *fixture) admin(t *testing.T, name string) *models.User {
	t.Helper()
	u := f.user(t, name)
	if err := f.db.Model(u).Update("is_admin", true).Error; err != nil {
		t.Fatalf("promote admin: %v", err)
	}
	u.IsAdmin = true
	return u
}

func (f *fixture) post(t *testing.T, userID uint, content string) *models.Post {
	t.Helper()
	p := &models.Post{UserID: userID, Content: content, Type: models.PostTypeGeneral, IsVisible: true}
	if err := f.db.Create(p).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}

func (f *fixture) challenge(t *testing.T, goalValue int) *models.Challenge {
	t.Helper()
	c := &models.Challenge{
		Title:     "Hydration week",
		StartDate: time.Now().Add(-time.Hour),
		EndDate:   time.Now().Add(7 * 24 * time.Hour),
		GoalType:  models.GoalTypeWater,
		GoalValue: goalValue,
		IsActive:  true,
	}
	if err := f.db.Create(c).Error; err != nil {
		t.Fatalf("create challenge: %v", err)
	}
	return c
}

func (f *fixture) recipe(t *testing.T, userID uint, title string, public bool) *models.Recipe {
	t.Helper()
	r := &models.Recipe{
		UserID:       userID,
		Title:        title,
		Ingredients:  []string{"a", "b"},
		Instructions: []string{"mix"},
		IsPublic:     public,
	}
	if err := f.db.Create(r).Error; err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	return r
}

func appErrCode(err error) string {
	if appErr, ok := err.(*models.AppError); ok {
		return appErr.Code
	}
	return ""
}
