package models

import "time"

// Macros holds the per-serving macronutrient breakdown of a recipe.
type Macros struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// Recipe represents a community-shared recipe. Ingredient, instruction and tag
// lists are stored as JSON columns via the GORM serializer.
type Recipe struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	UserID       uint     `gorm:"not null;index" json:"user_id"`
	User         User     `gorm:"foreignKey:UserID" json:"user"`
	Title        string   `gorm:"not null" json:"title"`
	Description  string   `gorm:"type:text" json:"description"`
	Ingredients  []string `gorm:"serializer:json;type:text" json:"ingredients"`
	Instructions []string `gorm:"serializer:json;type:text" json:"instructions"`
	PrepTime     int      `json:"prep_time"`
	CookTime     int      `json:"cook_time"`
	Servings     int      `json:"servings"`
	Macros       *Macros  `gorm:"serializer:json;type:text" json:"macros,omitempty"`
	Tags         []string `gorm:"serializer:json;type:text" json:"tags,omitempty"`
	DietType     string   `gorm:"type:varchar(32)" json:"diet_type,omitempty"`
	IsPublic     bool     `gorm:"not null;default:true;index" json:"is_public"`

	// Computed at query time for the requesting user
	Favorited    bool    `gorm:"->" json:"favorited"`
	AvgRating    float64 `gorm:"->" json:"avg_rating"`
	RatingsCount int     `gorm:"->" json:"ratings_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecipeRating is a user's 1-5 star rating of a recipe, optionally with a
// comment. At most one row exists per (RecipeID, UserID); re-rating updates
// the existing row in place.
type RecipeRating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_recipe_rating_pair;index" json:"recipe_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_recipe_rating_pair" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
