package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
)

const keyPrefix = "reports"

// ReportCache stores computed reports in Redis. Every key embeds a per-user
// version number; invalidation bumps the version so older entries are never
// read again and simply expire.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache instantiates the cache. A non-positive ttl keeps entries until
// they are evicted.
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	if ttl < 0 {
		ttl = 0
	}
	return &ReportCache{client: client, ttl: ttl}
}

var _ portssvc.ReportCache = (*ReportCache)(nil)

func versionKey(userID string) string {
	return strings.Join([]string{keyPrefix, userID, "version"}, ":")
}

func reportKey(userID, name, params string, version int64) string {
	return fmt.Sprintf("%s:%s:%s:%s:%d", keyPrefix, userID, name, params, version)
}

// version returns the user's current cache version. A missing version reads as zero.
func (c *ReportCache) version(ctx context.Context, userID string) (int64, error) {
	ver, err := c.client.Get(ctx, versionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read cache version: %w", err)
	}
	return ver, nil
}

// Get decodes the cached report into dest and reports whether it was found.
func (c *ReportCache) Get(ctx context.Context, userID, name, params string, dest any) (bool, error) {
	ver, err := c.version(ctx, userID)
	if err != nil {
		return false, err
	}
	payload, err := c.client.Get(ctx, reportKey(userID, name, params, ver)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read cached %s: %w", name, err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", name, err)
	}
	return true, nil
}

// Set stores value under the user's current version.
func (c *ReportCache) Set(ctx context.Context, userID, name, params string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	ver, err := c.version(ctx, userID)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, reportKey(userID, name, params, ver), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("write cached %s: %w", name, err)
	}
	return nil
}

// Invalidate drops every cached report of the user.
func (c *ReportCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Incr(ctx, versionKey(userID)).Err(); err != nil {
		return fmt.Errorf("bump cache version: %w", err)
	}
	return nil
}
