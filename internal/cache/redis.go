// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Rdb is the global Redis client. Connect it once at application
// startup; all helpers degrade to a miss/no-op when it is nil.
var Rdb *redis.Client

// standingsKey caches the aggregated leaderboard between writes.
const standingsKey = "spades_standings"

// DefaultStandingsTTL bounds staleness if an invalidation is ever missed.
var DefaultStandingsTTL = 5 * time.Minute

// ConnectRedis initializes the global Redis client with environment
// variables:
//   - REDIS_ADDR (default "localhost:6379")
//   - REDIS_DB (optional, default 0)
func ConnectRedis() error {
	addr := getEnv("REDIS_ADDR", "localhost:6379")
	dbIdx := getEnvInt("REDIS_DB", 0)

	Rdb = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		Rdb = nil
		return fmt.Errorf("connect to Redis at %s: %w", addr, err)
	}
	return nil
}

// GetStandings loads the cached leaderboard into dst. The first return
// is false on a miss (or when Redis is not connected).
func GetStandings(ctx context.Context, dst interface{}) (bool, error) {
	if Rdb == nil {
		return false, nil
	}
	data, err := Rdb.Get(ctx, standingsKey).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get cached standings: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode cached standings: %w", err)
	}
	return true, nil
}

// SetStandings stores the leaderboard with the default TTL.
func SetStandings(ctx context.Context, standings interface{}) error {
	if Rdb == nil {
		return nil
	}
	data, err := json.Marshal(standings)
	if err != nil {
		return fmt.Errorf("encode standings: %w", err)
	}
	if err := Rdb.Set(ctx, standingsKey, data, DefaultStandingsTTL).Err(); err != nil {
		return fmt.Errorf("set cached standings: %w", err)
	}
	return nil
}

// InvalidateStandings drops the cached leaderboard after a new result
// is recorded.
func InvalidateStandings(ctx context.Context) error {
	if Rdb == nil {
		return nil
	}
	if err := Rdb.Del(ctx, standingsKey).Err(); err != nil {
		return fmt.Errorf("invalidate cached standings: %w", err)
	}
	return nil
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
