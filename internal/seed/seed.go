// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"nutrihub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	NumRecipes  int
	ShouldClean bool
}

var (
	mealLines = []string{
		"Meal prepped five days of lunches in one afternoon",
		"Finally nailed my protein target three days in a row",
		"Post-workout smoothie experiments are paying off",
		"Swapped the afternoon snack for greek yogurt and berries",
		"Hit a new PR on water intake this week",
		"Batch cooked lentil curry and it actually tastes great",
		"Logging every meal for thirty days straight now",
		"Discovered that adding spinach to everything is the move",
	}

	challengeTemplates = []struct {
		title     string
		goalType  string
		goalValue int
		days      int
	}{
		{"30 Day Hydration Challenge", models.GoalTypeWater, 30, 30},
		{"10k Steps a Day", models.GoalTypeSteps, 300000, 30},
		{"Calorie Logging Streak", models.GoalTypeStreak, 21, 21},
		{"Weekly Deficit Challenge", models.GoalTypeCalories, 3500, 7},
		{"Mindful Eating Sprint", models.GoalTypeCustom, 14, 14},
	}

	dietTypes = []string{"", "vegan", "vegetarian", "keto", "paleo", "mediterranean"}
)

// Seed populates the database with demo data.
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	log.Printf("Starting database seeding with %d users, %d posts, %d recipes...",
		opts.NumUsers, opts.NumPosts, opts.NumRecipes)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	recipes, err := createRecipes(db, users, opts.NumRecipes)
	if err != nil {
		return fmt.Errorf("failed to create recipes: %w", err)
	}
	log.Printf("created %d recipes", len(recipes))

	challenges, err := createChallenges(db)
	if err != nil {
		return fmt.Errorf("failed to create challenges: %w", err)
	}
	log.Printf("created %d challenges", len(challenges))

	posts, err := createPosts(db, users, recipes, challenges, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	comments, err := createComments(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("created %d comments", comments)

	likes, err := addPostLikes(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to add likes: %w", err)
	}
	log.Printf("added %d likes", likes)

	follows, err := addFollows(db, users)
	if err != nil {
		return fmt.Errorf("failed to add follows: %w", err)
	}
	log.Printf("added %d follows", follows)

	if err := addRecipeInteractions(db, users, recipes); err != nil {
		return fmt.Errorf("failed to add recipe interactions: %w", err)
	}

	if err := addParticipants(db, users, challenges); err != nil {
		return fmt.Errorf("failed to add challenge participants: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	// Relation rows first, then the entities they reference.
	tables := []interface{}{
		&models.ChallengeParticipant{},
		&models.RecipeRating{},
		&models.RecipeFavorite{},
		&models.CommentLike{},
		&models.PostLike{},
		&models.UserFollower{},
		&models.Comment{},
		&models.Post{},
		&models.Challenge{},
		&models.Recipe{},
		&models.User{},
	}
	for _, table := range tables {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	if count <= 0 {
		count = 25
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count+1)
	users = append(users, models.User{
		Username:    "admin",
		DisplayName: "NutriHub Admin",
		Email:       "admin@nutrihub.dev",
		Password:    string(hashed),
		IsAdmin:     true,
		Bio:         "Keeping the community healthy.",
	})

	for i := 0; i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		users = append(users, models.User{
			Username:    fmt.Sprintf("%s%s%d", first, last, gofakeit.Number(1, 999)),
			DisplayName: first + " " + last,
			Email:       gofakeit.Email(),
			Password:    string(hashed),
			Bio:         gofakeit.Sentence(8),
			Avatar:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		})
	}

	if err := db.CreateInBatches(&users, 50).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func createRecipes(db *gorm.DB, users []models.User, count int) ([]models.Recipe, error) {
	if count <= 0 {
		count = 40
	}

	recipes := make([]models.Recipe, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]

		ingredients := make([]string, 0, 6)
		for j := 0; j < 4+rand.Intn(3); j++ {
			ingredients = append(ingredients, gofakeit.Lunch())
		}
		instructions := make([]string, 0, 4)
		for j := 0; j < 3+rand.Intn(3); j++ {
			instructions = append(instructions, gofakeit.Sentence(10))
		}

		recipes = append(recipes, models.Recipe{
			UserID:       author.ID,
			Title:        gofakeit.Dinner(),
			Description:  gofakeit.Sentence(12),
			Ingredients:  ingredients,
			Instructions: instructions,
			PrepTime:     5 + rand.Intn(25),
			CookTime:     10 + rand.Intn(50),
			Servings:     1 + rand.Intn(6),
			Macros: &models.Macros{
				Calories: 250 + rand.Intn(600),
				Protein:  10 + rand.Intn(50),
				Carbs:    20 + rand.Intn(80),
				Fat:      5 + rand.Intn(40),
			},
			Tags:     []string{"meal-prep", "quick"},
			DietType: dietTypes[rand.Intn(len(dietTypes))],
			// keep roughly one in five recipes private
			IsPublic: rand.Intn(5) != 0,
		})
	}

	if err := db.CreateInBatches(&recipes, 50).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func createChallenges(db *gorm.DB) ([]models.Challenge, error) {
	challenges := make([]models.Challenge, 0, len(challengeTemplates))
	for i, tpl := range challengeTemplates {
		start := time.Now().AddDate(0, 0, -rand.Intn(10))
		challenges = append(challenges, models.Challenge{
			Title:       tpl.title,
			Description: gofakeit.Sentence(14),
			StartDate:   start,
			EndDate:     start.AddDate(0, 0, tpl.days),
			Goal:        fmt.Sprintf("Reach %d total", tpl.goalValue),
			GoalType:    tpl.goalType,
			GoalValue:   tpl.goalValue,
			Rewards:     "Community badge",
			// leave the last template inactive to exercise filters
			IsActive: i != len(challengeTemplates)-1,
		})
	}

	if err := db.Create(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func createPosts(db *gorm.DB, users []models.User, recipes []models.Recipe, challenges []models.Challenge, count int) ([]models.Post, error) {
	if count <= 0 {
		count = 150
	}

	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		post := models.Post{
			UserID:    author.ID,
			Content:   mealLines[rand.Intn(len(mealLines))] + " " + gofakeit.Sentence(6),
			Type:      models.PostTypeGeneral,
			IsVisible: true,
			CreatedAt: time.Now().Add(-time.Duration(rand.Intn(90*24)) * time.Hour),
		}

		switch rand.Intn(4) {
		case 0:
			post.Type = models.PostTypeMealShare
			post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())
		case 1:
			if len(recipes) > 0 {
				recipe := recipes[rand.Intn(len(recipes))]
				post.Type = models.PostTypeRecipeShare
				post.RecipeID = &recipe.ID
			}
		case 2:
			if len(challenges) > 0 {
				challenge := challenges[rand.Intn(len(challenges))]
				post.Type = models.PostTypeChallengeUpdate
				post.ChallengeID = &challenge.ID
			}
		}

		posts = append(posts, post)
	}

	if err := db.CreateInBatches(&posts, 50).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func createComments(db *gorm.DB, users []models.User, posts []models.Post) (int, error) {
	total := 0
	for _, post := range posts {
		n := rand.Intn(5)
		for i := 0; i < n; i++ {
			commenter := users[rand.Intn(len(users))]
			comment := models.Comment{
				PostID:  post.ID,
				UserID:  commenter.ID,
				Content: gofakeit.Sentence(8),
			}
			if err := db.Create(&comment).Error; err != nil {
				return total, err
			}
			total++
		}
		if n > 0 {
			if err := db.Model(&models.Post{}).Where("id = ?", post.ID).
				UpdateColumn("comments_count", n).Error; err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

func addPostLikes(db *gorm.DB, users []models.User, posts []models.Post) (int, error) {
	total := 0
	for _, post := range posts {
		n := rand.Intn(len(users)/3 + 1)
		seen := map[uint]bool{}
		likes := 0
		for i := 0; i < n; i++ {
			liker := users[rand.Intn(len(users))]
			if seen[liker.ID] {
				continue
			}
			seen[liker.ID] = true
			if err := db.Create(&models.PostLike{UserID: liker.ID, PostID: post.ID}).Error; err != nil {
				return total, err
			}
			likes++
		}
		if likes > 0 {
			if err := db.Model(&models.Post{}).Where("id = ?", post.ID).
				UpdateColumn("likes_count", likes).Error; err != nil {
				return total, err
			}
			total += likes
		}
	}
	return total, nil
}

func addFollows(db *gorm.DB, users []models.User) (int, error) {
	total := 0
	for _, follower := range users {
		n := rand.Intn(8)
		seen := map[uint]bool{}
		for i := 0; i < n; i++ {
			target := users[rand.Intn(len(users))]
			if target.ID == follower.ID || seen[target.ID] {
				continue
			}
			seen[target.ID] = true
			if err := db.Create(&models.UserFollower{
				FollowerID:  follower.ID,
				FollowingID: target.ID,
			}).Error; err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}

func addRecipeInteractions(db *gorm.DB, users []models.User, recipes []models.Recipe) error {
	for _, recipe := range recipes {
		if !recipe.IsPublic {
			continue
		}
		n := rand.Intn(len(users)/4 + 1)
		seen := map[uint]bool{}
		for i := 0; i < n; i++ {
			user := users[rand.Intn(len(users))]
			if seen[user.ID] {
				continue
			}
			seen[user.ID] = true

			if rand.Intn(2) == 0 {
				if err := db.Create(&models.RecipeFavorite{UserID: user.ID, RecipeID: recipe.ID}).Error; err != nil {
					return err
				}
			}
			if err := db.Create(&models.RecipeRating{
				UserID:   user.ID,
				RecipeID: recipe.ID,
				Rating:   2 + rand.Intn(4),
				Comment:  gofakeit.Sentence(6),
			}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func addParticipants(db *gorm.DB, users []models.User, challenges []models.Challenge) error {
	for _, challenge := range challenges {
		if !challenge.IsActive {
			continue
		}
		n := rand.Intn(len(users)/2 + 1)
		seen := map[uint]bool{}
		for i := 0; i < n; i++ {
			user := users[rand.Intn(len(users))]
			if seen[user.ID] {
				continue
			}
			seen[user.ID] = true

			progress := rand.Intn(challenge.GoalValue + challenge.GoalValue/4 + 1)
			participant := models.ChallengeParticipant{
				ChallengeID: challenge.ID,
				UserID:      user.ID,
				JoinDate:    challenge.StartDate.Add(time.Duration(rand.Intn(72)) * time.Hour),
				Progress:    progress,
			}
			if progress >= challenge.GoalValue {
				now := time.Now()
				participant.Completed = true
				participant.CompletedDate = &now
			}
			if err := db.Create(&participant).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
