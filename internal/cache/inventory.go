package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix             = "user:%d"
	PostKeyPrefix             = "post:%d"
	PostsPageKeyPrefix        = "posts:page:%d:limit:%d"
	RecipeKeyPrefix           = "recipe:%d"
	ActiveChallengesKeyPrefix = "challenges:active:limit:%d"
	FollowersKeyPrefix        = "user:%d:followers"
	FollowingKeyPrefix        = "user:%d:following"
	LeaderboardKeyPrefix      = "challenge:%d:leaderboard"
)

const (
	UserTTL        = 5 * time.Minute
	PostTTL        = 30 * time.Minute
	PostsPageTTL   = 1 * time.Minute
	RecipeTTL      = 30 * time.Minute
	ChallengesTTL  = 5 * time.Minute
	FollowListTTL  = 2 * time.Minute
	LeaderboardTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func PostsPageKey(page, limit int) string {
	return fmt.Sprintf(PostsPageKeyPrefix, page, limit)
}

func RecipeKey(recipeID uint) string {
	return fmt.Sprintf(RecipeKeyPrefix, recipeID)
}

// ActiveChallengesKey is scoped by limit so differently sized pages never
// serve each other's rows.
func ActiveChallengesKey(limit int) string {
	return fmt.Sprintf(ActiveChallengesKeyPrefix, limit)
}

func FollowersKey(userID uint) string {
	return fmt.Sprintf(FollowersKeyPrefix, userID)
}

func FollowingKey(userID uint) string {
	return fmt.Sprintf(FollowingKeyPrefix, userID)
}

func LeaderboardKey(challengeID uint) string {
	return fmt.Sprintf(LeaderboardKeyPrefix, challengeID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidatePost drops the cached post along with the first feed page,
// which embeds its counters.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	if client != nil {
		// Feed pages embed denormalized counters, so sweep them all.
		iter := client.Scan(ctx, 0, "posts:page:*", 0).Iterator()
		for iter.Next(ctx) {
			client.Del(ctx, iter.Val())
		}
	}
}

func InvalidateRecipe(ctx context.Context, recipeID uint) {
	Invalidate(ctx, RecipeKey(recipeID))
}

func InvalidateChallenges(ctx context.Context) {
	if client != nil {
		iter := client.Scan(ctx, 0, "challenges:active:*", 0).Iterator()
		for iter.Next(ctx) {
			client.Del(ctx, iter.Val())
		}
	}
}

func InvalidateFollows(ctx context.Context, followerID, followingID uint) {
	Invalidate(ctx, FollowingKey(followerID))
	Invalidate(ctx, FollowersKey(followingID))
}
