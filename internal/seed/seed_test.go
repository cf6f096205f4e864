package seed

import (
	"testing"

	"nutrihub/internal/database"
	"nutrihub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func TestSeedPopulatesGraph(t *testing.T) {
	db := setupSeedTestDB(t)

	require.NoError(t, Seed(db, Options{
		NumUsers:    8,
		NumPosts:    20,
		NumRecipes:  10,
		ShouldClean: false,
	}))

	var userCount, postCount, recipeCount, challengeCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipeCount).Error)
	require.NoError(t, db.Model(&models.Challenge{}).Count(&challengeCount).Error)

	// admin plus requested users
	assert.EqualValues(t, 9, userCount)
	assert.EqualValues(t, 20, postCount)
	assert.EqualValues(t, 10, recipeCount)
	assert.Greater(t, challengeCount, int64(0))

	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.True(t, admin.IsAdmin)
}

func TestSeedCountersMatchRelations(t *testing.T) {
	db := setupSeedTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 6, NumPosts: 15, NumRecipes: 5}))

	var posts []models.Post
	require.NoError(t, db.Find(&posts).Error)
	for _, post := range posts {
		var likes, comments int64
		require.NoError(t, db.Model(&models.PostLike{}).Where("post_id = ?", post.ID).Count(&likes).Error)
		require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error)
		assert.EqualValues(t, likes, post.LikesCount, "post %d likes", post.ID)
		assert.EqualValues(t, comments, post.CommentsCount, "post %d comments", post.ID)
	}
}

func TestSeedNeverCreatesSelfFollows(t *testing.T) {
	db := setupSeedTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 10, NumPosts: 5, NumRecipes: 3}))

	var selfFollows int64
	require.NoError(t, db.Model(&models.UserFollower{}).
		Where("follower_id = following_id").Count(&selfFollows).Error)
	assert.Zero(t, selfFollows)
}

func TestSeedCleanRemovesExistingData(t *testing.T) {
	db := setupSeedTestDB(t)

	stale := models.User{Username: "stale", Email: "stale@example.com", Password: "pw"}
	require.NoError(t, db.Create(&stale).Error)

	require.NoError(t, Seed(db, Options{NumUsers: 3, NumPosts: 5, NumRecipes: 2, ShouldClean: true}))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "stale").Count(&count).Error)
	assert.Zero(t, count)
}

func TestSeedParticipantCompletionConsistent(t *testing.T) {
	db := setupSeedTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 12, NumPosts: 5, NumRecipes: 3}))

	var participants []models.ChallengeParticipant
	require.NoError(t, db.Preload("Challenge").Find(&participants).Error)
	for _, p := range participants {
		require.NotNil(t, p.Challenge)
		if p.Completed {
			assert.NotNil(t, p.CompletedDate)
			assert.GreaterOrEqual(t, p.Progress, p.Challenge.GoalValue)
		} else {
			assert.Nil(t, p.CompletedDate)
		}
	}
}
