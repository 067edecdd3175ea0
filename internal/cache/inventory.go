package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	GroupKeyPrefix = "group:%s"
	UserKeyPrefix  = "user:%s"
)

const (
	GroupTTL = 10 * time.Minute
	UserTTL  = 5 * time.Minute
)

// GroupKey is the cache key for a group looked up by slug.
func GroupKey(slug string) string {
	return fmt.Sprintf(GroupKeyPrefix, slug)
}

// UserKey is the cache key for a user looked up by username.
func UserKey(username string) string {
	return fmt.Sprintf(UserKeyPrefix, username)
}

// Invalidate drops key from the cache. It is a no-op without Redis.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateGroup(ctx context.Context, slug string) {
	Invalidate(ctx, GroupKey(slug))
}

func InvalidateUser(ctx context.Context, username string) {
	Invalidate(ctx, UserKey(username))
}
