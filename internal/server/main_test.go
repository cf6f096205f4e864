package server

import (
	"strconv"
	"testing"

	"nutrihub/internal/config"
	"nutrihub/internal/database"
	"nutrihub/internal/models"
	"nutrihub/internal/repository"
	"nutrihub/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
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

// newTestServer wires a Server onto an in-memory database without Redis
// or Prometheus, so handler tests exercise the real service stack.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	db := setupHandlerTestDB(t)

	s := &Server{
		config:        &config.Config{JWTSecret: "handler-test-secret-0123456789abcdef", Port: "8080"},
		db:            db,
		userRepo:      repository.NewUserRepository(db),
		postRepo:      repository.NewPostRepository(db),
		commentRepo:   repository.NewCommentRepository(db),
		relationRepo:  repository.NewRelationRepository(db),
		challengeRepo: repository.NewChallengeRepository(db),
		recipeRepo:    repository.NewRecipeRepository(db),
	}

	s.postService = service.NewPostService(db, s.postRepo, s.relationRepo, s.isAdminByUserID)
	s.commentService = service.NewCommentService(db, s.commentRepo, s.postRepo, s.isAdminByUserID)
	s.followService = service.NewFollowService(s.relationRepo, s.userRepo)
	s.challengeService = service.NewChallengeService(s.challengeRepo, s.isAdminByUserID)
	s.recipeService = service.NewRecipeService(s.recipeRepo, s.relationRepo, s.userRepo)
	s.userService = service.NewUserService(s.userRepo)

	return s
}

// appWithUser returns a Fiber app whose requests act as the given user,
// bypassing JWT validation the way AuthRequired would populate locals.
func appWithUser(userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	return app
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func mustCreateUser(t *testing.T, db *gorm.DB, username string, admin bool) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed-pw",
		IsAdmin:  admin,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func mustCreatePost(t *testing.T, db *gorm.DB, userID uint, content string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: userID, Content: content, Type: models.PostTypeGeneral, IsVisible: true}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}
