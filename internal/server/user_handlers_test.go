package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nutrihub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFollowHandler(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	follower := mustCreateUser(t, s.db, "flwfollower", false)
	target := mustCreateUser(t, s.db, "flwtarget", false)

	app := appWithUser(follower.ID)
	app.Post("/users/:id/follow", s.ToggleFollow)

	toggle := func(t *testing.T, id uint) (*http.Response, map[string]any) {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/users/"+itoa(id)+"/follow", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		var out map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&out)
		return resp, out
	}

	t.Run("Follow then unfollow", func(t *testing.T) {
		resp, out := toggle(t, target.ID)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, out["following"])

		var count int64
		require.NoError(t, s.db.Model(&models.UserFollower{}).
			Where("follower_id = ? AND following_id = ?", follower.ID, target.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)

		resp, out = toggle(t, target.ID)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, false, out["following"])
	})

	t.Run("Self follow rejected", func(t *testing.T) {
		resp, _ := toggle(t, follower.ID)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing target", func(t *testing.T) {
		resp, _ := toggle(t, 9999)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestFollowerListHandlers(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	alice := mustCreateUser(t, s.db, "fla", false)
	bob := mustCreateUser(t, s.db, "flb", false)
	carol := mustCreateUser(t, s.db, "flc", false)

	// bob and carol follow alice; alice follows carol
	require.NoError(t, s.db.Create(&models.UserFollower{FollowerID: bob.ID, FollowingID: alice.ID}).Error)
	require.NoError(t, s.db.Create(&models.UserFollower{FollowerID: carol.ID, FollowingID: alice.ID}).Error)
	require.NoError(t, s.db.Create(&models.UserFollower{FollowerID: alice.ID, FollowingID: carol.ID}).Error)

	app := appWithUser(alice.ID)
	app.Get("/users/:id/followers", s.GetFollowers)
	app.Get("/users/:id/following", s.GetFollowing)

	t.Run("Followers", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/"+itoa(alice.ID)+"/followers", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var users []models.PublicUser
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
		require.Len(t, users, 2)
		names := []string{users[0].Username, users[1].Username}
		assert.Contains(t, names, "flb")
		assert.Contains(t, names, "flc")
	})

	t.Run("Following", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/"+itoa(alice.ID)+"/following", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var users []models.PublicUser
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
		require.Len(t, users, 1)
		assert.Equal(t, "flc", users[0].Username)
	})

	t.Run("Missing user", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/9999/followers", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestIsFollowingHandler(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	alice := mustCreateUser(t, s.db, "isfa", false)
	bob := mustCreateUser(t, s.db, "isfb", false)
	require.NoError(t, s.db.Create(&models.UserFollower{FollowerID: alice.ID, FollowingID: bob.ID}).Error)

	app := appWithUser(alice.ID)
	app.Get("/users/:id/is-following", s.IsFollowing)

	check := func(t *testing.T, id uint) map[string]any {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/"+itoa(id)+"/is-following", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return out
	}

	assert.Equal(t, true, check(t, bob.ID)["following"])
	assert.Equal(t, false, check(t, alice.ID)["following"])
}

func TestGetUserHandler(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	user := mustCreateUser(t, s.db, "profileuser", false)
	user.DisplayName = "Profile User"
	require.NoError(t, s.db.Save(user).Error)

	app := appWithUser(user.ID)
	app.Get("/users/:id", s.GetUser)
	app.Get("/users", s.GetUsers)

	t.Run("Public shape only", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/"+itoa(user.ID), nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var raw map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
		assert.Equal(t, "profileuser", raw["username"])
		assert.NotContains(t, raw, "email")
		assert.NotContains(t, raw, "password")
	})

	t.Run("List", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var users []models.PublicUser
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
		assert.Len(t, users, 1)
	})
}

func TestGetUserFavoritesHandler(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	chef := mustCreateUser(t, s.db, "favchef", false)
	fan := mustCreateUser(t, s.db, "favfan", false)

	public := &models.Recipe{UserID: chef.ID, Title: "Overnight Oats",
		Ingredients: []string{"oats"}, Instructions: []string{"soak"}, IsPublic: true}
	private := &models.Recipe{UserID: chef.ID, Title: "Secret Sauce",
		Ingredients: []string{"ssh"}, Instructions: []string{"hide"}, IsPublic: false}
	require.NoError(t, s.db.Create(public).Error)
	require.NoError(t, s.db.Create(private).Error)
	require.NoError(t, s.db.Create(&models.RecipeFavorite{UserID: fan.ID, RecipeID: public.ID}).Error)
	require.NoError(t, s.db.Create(&models.RecipeFavorite{UserID: fan.ID, RecipeID: private.ID}).Error)

	app := appWithUser(fan.ID)
	app.Get("/users/:id/favorites", s.GetUserFavorites)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/"+itoa(fan.ID)+"/favorites", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var recipes []models.Recipe
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&recipes))
	require.Len(t, recipes, 1)
	assert.Equal(t, "Overnight Oats", recipes[0].Title)
	assert.True(t, recipes[0].Favorited, "viewer's own favorites carry the annotation")
}
