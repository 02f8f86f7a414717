package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for cached free-bed lists: beds:free:<date>:<slot>
	availabilityKeyPrefix = "beds:free:"

	// Short TTL: the cache only has to absorb the repeated polling the
	// scheduling board does, staleness beyond this window is not acceptable
	availabilityTTL = 2 * time.Minute
)

// AvailabilityCache is a redis read-through cache for per-(date, slot)
// free-bed lists. Postgres stays the source of truth; every write that can
// change occupancy must call Invalidate. Cache failures are logged and treated
// as misses so the request path never depends on redis being up.
type AvailabilityCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewAvailabilityCache(redisClient *redis.Client, log *logrus.Logger) *AvailabilityCache {
	return &AvailabilityCache{
		redisClient: redisClient,
		log:         log,
	}
}

func availabilityKey(date string, slotID int) string {
	return fmt.Sprintf("%s%s:%d", availabilityKeyPrefix, date, slotID)
}

// GetFreeBeds returns the cached free-bed list and whether it was present
func (c *AvailabilityCache) GetFreeBeds(ctx context.Context, date string, slotID int) ([]int, bool) {
	raw, err := c.redisClient.Get(ctx, availabilityKey(date, slotID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warnf("Availability cache read failed for %s slot %d: %+v", date, slotID, err)
		}
		return nil, false
	}

	var beds []int
	if err := json.Unmarshal(raw, &beds); err != nil {
		c.log.Warnf("Availability cache entry corrupt for %s slot %d: %+v", date, slotID, err)
		return nil, false
	}
	return beds, true
}

// SetFreeBeds stores the free-bed list with a short TTL
func (c *AvailabilityCache) SetFreeBeds(ctx context.Context, date string, slotID int, beds []int) {
	raw, err := json.Marshal(beds)
	if err != nil {
		c.log.Warnf("Failed to marshal free beds for %s slot %d: %+v", date, slotID, err)
		return
	}

	if err := c.redisClient.Set(ctx, availabilityKey(date, slotID), raw, availabilityTTL).Err(); err != nil {
		c.log.Warnf("Availability cache write failed for %s slot %d: %+v", date, slotID, err)
	}
}

// Invalidate drops the cached list after an occupancy-changing write
func (c *AvailabilityCache) Invalidate(ctx context.Context, date string, slotID int) {
	if err := c.redisClient.Del(ctx, availabilityKey(date, slotID)).Err(); err != nil {
		c.log.Warnf("Availability cache invalidation failed for %s slot %d: %+v", date, slotID, err)
	}
}
