package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"branch-visit-planner/internal/ports"
)

// Redis-backed cache for matrix cells. Values are stored as
// "<meters>:<seconds>" strings under a namespaced key, with a TTL so stale
// traffic-dependent durations eventually refresh.
type RedisMatrixCache struct {
	Client *redis.Client
	TTL    time.Duration
}

const redisKeyPrefix = "matrix:"

func NewRedisMatrixCache(client *redis.Client, ttl time.Duration) *RedisMatrixCache {
	return &RedisMatrixCache{Client: client, TTL: ttl}
}

// Fetch cached cells for the given pair keys in a single MGET.
func (r *RedisMatrixCache) GetMany(ctx context.Context, keys []string) (map[string]ports.MatrixCell, error) {
	if r.Client == nil {
		return nil, errors.New("matrix cache: redis client is nil")
	}

	if len(keys) == 0 {
		return map[string]ports.MatrixCell{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(keys))
	namespaced := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
		namespaced = append(namespaced, redisKeyPrefix+k)
	}

	if len(uniq) == 0 {
		return map[string]ports.MatrixCell{}, nil
	}

	values, err := r.Client.MGet(ctx, namespaced...).Result()
	if err != nil {
		return nil, fmt.Errorf("get matrix cache: redis mget: %w", err)
	}

	out := make(map[string]ports.MatrixCell, len(uniq))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		cell, err := decodeCell(raw)
		if err != nil {
			// A malformed value is treated as a miss and overwritten on
			// the next PutMany.
			continue
		}
		out[uniq[i]] = cell
	}

	return out, nil
}

// Store many cells with the configured TTL using a single pipeline.
func (r *RedisMatrixCache) PutMany(ctx context.Context, cells map[string]ports.MatrixCell) error {
	if r.Client == nil {
		return errors.New("matrix cache: redis client is nil")
	}

	if len(cells) == 0 {
		return nil
	}

	pipe := r.Client.Pipeline()
	for key, c := range cells {
		if strings.TrimSpace(key) == "" {
			return errors.New("insert matrix cache: empty pair key")
		}
		pipe.Set(ctx, redisKeyPrefix+key, encodeCell(c), r.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert matrix cache: redis pipeline: %w", err)
	}

	return nil
}

func encodeCell(c ports.MatrixCell) string {
	return strconv.Itoa(c.Meters) + ":" + strconv.Itoa(c.Seconds)
}

func decodeCell(raw string) (ports.MatrixCell, error) {
	meters, seconds, ok := strings.Cut(raw, ":")
	if !ok {
		return ports.MatrixCell{}, fmt.Errorf("malformed cell %q", raw)
	}

	m, err := strconv.Atoi(meters)
	if err != nil {
		return ports.MatrixCell{}, fmt.Errorf("malformed meters in %q: %w", raw, err)
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return ports.MatrixCell{}, fmt.Errorf("malformed seconds in %q: %w", raw, err)
	}

	return ports.MatrixCell{Meters: m, Seconds: s}, nil
}
