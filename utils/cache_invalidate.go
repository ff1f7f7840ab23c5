package utils

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// CacheInvalidator purges cached read responses after mutations. Keys
// embed the raw resource id (see middlewares.CacheKeyFrom), so single
// items can be deleted precisely; only the list uses a scan.
type CacheInvalidator struct{ rdb *redis.Client }

func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator { return &CacheInvalidator{rdb} }

func (ci *CacheInvalidator) PurgeEventsList(ctx context.Context) {
	iter := ci.rdb.Scan(ctx, 0, "cache:events:list:*", 0).Iterator()
	for iter.Next(ctx) {
		_ = ci.rdb.Del(ctx, iter.Val()).Err()
	}
}

func (ci *CacheInvalidator) PurgeEventItem(ctx context.Context, id string) {
	_ = ci.rdb.Del(ctx, "cache:events:item:"+id).Err()
}

func (ci *CacheInvalidator) PurgeAttendees(ctx context.Context, eventID string) {
	_ = ci.rdb.Del(ctx, "cache:rsvp:attendees:"+eventID).Err()
}
