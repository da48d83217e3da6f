package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix = "user:%d"
	PostKeyPrefix = "post:%d"
	NewestFeedKey = "feed:newest"
)

// NewestFeedLimit is the page size stored under NewestFeedKey. Requests for
// any other limit must bypass the cache: the key carries no limit, so a
// smaller cached page would otherwise be served to every anonymous caller.
const NewestFeedLimit = 20

const (
	UserTTL       = 5 * time.Minute
	PostTTL       = 30 * time.Minute
	NewestFeedTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateNewestFeed(ctx context.Context) {
	Invalidate(ctx, NewestFeedKey)
}
