package repository

import (
	"context"
	"testing"

	"nutrihub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationRepository_PostLikeToggleCycle(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewRelationRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "liker")
	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author.ID, "like me")

	exists, err := repo.PostLikeExists(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	inserted, err := repo.AddPostLike(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, inserted)

	exists, err = repo.PostLikeExists(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Duplicate add reports no insert
	inserted, err = repo.AddPostLike(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, inserted)

	removed, err := repo.RemovePostLike(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	// Removing again reports nothing to remove
	removed, err = repo.RemovePostLike(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRelationRepository_CommentLikes(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewRelationRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	u1 := createTestUser(t, db, "u1")
	u2 := createTestUser(t, db, "u2")
	post := createTestPost(t, db, author.ID, "commented")
	comment := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "nice"}
	require.NoError(t, db.Create(comment).Error)

	inserted, err := repo.AddCommentLike(ctx, u1.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, inserted)
	inserted, err = repo.AddCommentLike(ctx, u2.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, inserted)

	require.NoError(t, repo.RemoveLikesForComment(ctx, comment.ID))

	exists, err := repo.CommentLikeExists(ctx, u1.ID, comment.ID)
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = repo.CommentLikeExists(ctx, u2.ID, comment.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRelationRepository_FollowLists(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewRelationRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	// alice and carol both follow bob; alice also follows carol
	for _, pair := range [][2]uint{{alice.ID, bob.ID}, {carol.ID, bob.ID}, {alice.ID, carol.ID}} {
		inserted, err := repo.AddFollow(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, inserted)
	}

	followers, err := repo.Followers(ctx, bob.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, followers, 2)

	following, err := repo.Following(ctx, alice.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, following, 2)

	// Follow lists are directional
	following, err = repo.Following(ctx, bob.ID, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, following)

	removed, err := repo.RemoveFollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	followers, err = repo.Followers(ctx, bob.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, carol.ID, followers[0].ID)
}

func TestRelationRepository_FavoriteRecipesFiltersPrivate(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewRelationRepository(db)
	ctx := context.Background()

	chef := createTestUser(t, db, "chef")
	fan := createTestUser(t, db, "fan")

	public := &models.Recipe{UserID: chef.ID, Title: "Overnight oats", IsPublic: true}
	private := &models.Recipe{UserID: chef.ID, Title: "Secret sauce", IsPublic: false}
	require.NoError(t, db.Create(public).Error)
	require.NoError(t, db.Create(private).Error)

	for _, id := range []uint{public.ID, private.ID} {
		inserted, err := repo.AddFavorite(ctx, fan.ID, id)
		require.NoError(t, err)
		assert.True(t, inserted)
	}

	recipes, err := repo.FavoriteRecipes(ctx, fan.ID, 20, 0, fan.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, public.ID, recipes[0].ID)
}

func TestRelationRepository_FavoriteRecipesAnnotations(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewRelationRepository(db)
	ctx := context.Background()

	chef := createTestUser(t, db, "chef")
	fan := createTestUser(t, db, "fan")
	stranger := createTestUser(t, db, "stranger")

	recipe := &models.Recipe{UserID: chef.ID, Title: "Protein pancakes", IsPublic: true}
	require.NoError(t, db.Create(recipe).Error)

	inserted, err := repo.AddFavorite(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	require.True(t, inserted)
	require.NoError(t, db.Create(&models.RecipeRating{RecipeID: recipe.ID, UserID: chef.ID, Rating: 5}).Error)
	require.NoError(t, db.Create(&models.RecipeRating{RecipeID: recipe.ID, UserID: fan.ID, Rating: 3}).Error)

	recipes, err := repo.FavoriteRecipes(ctx, fan.ID, 20, 0, fan.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.True(t, recipes[0].Favorited)
	assert.InDelta(t, 4.0, recipes[0].AvgRating, 0.001)
	assert.Equal(t, 2, recipes[0].RatingsCount)

	// Annotations follow the viewer, not the list owner.
	recipes, err = repo.FavoriteRecipes(ctx, fan.ID, 20, 0, stranger.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.False(t, recipes[0].Favorited)
}
