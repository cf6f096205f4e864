// Command main runs the database seeder for NutriHub.
package main

import (
	"flag"
	"log"

	"nutrihub/internal/config"
	"nutrihub/internal/database"
	"nutrihub/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 25, "Number of users to create")
	numPosts := flag.Int("posts", 150, "Number of posts to create")
	numRecipes := flag.Int("recipes", 40, "Number of recipes to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d posts, %d recipes, clean=%v\n",
		*numUsers, *numPosts, *numRecipes, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		NumRecipes:  *numRecipes,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
