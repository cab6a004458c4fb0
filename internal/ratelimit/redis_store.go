package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps token buckets in Redis so every replica enforces the
// same limits. Refill and consume run as one Lua script, so concurrent
// replicas cannot both spend the last token.
type RedisStore struct {
	client     *redis.Client
	takeScript *redis.Script
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	takeScript := redis.NewScript(`
		-- KEYS[1]: bucket hash {tokens, last}
		-- ARGV[1]: capacity (policy points)
		-- ARGV[2]: refill window in milliseconds (policy duration)
		-- ARGV[3]: current time in milliseconds

		local capacity = tonumber(ARGV[1])
		local window = tonumber(ARGV[2])
		local now = tonumber(ARGV[3])

		local state = redis.call('HMGET', KEYS[1], 'tokens', 'last')
		local tokens = tonumber(state[1])
		local last = tonumber(state[2])

		if not tokens then
			tokens = capacity
			last = now
		else
			tokens = tokens + (now - last) * capacity / window
			if tokens > capacity then
				tokens = capacity
			end
			last = now
		end

		local allowed = 0
		if tokens >= 1 then
			tokens = tokens - 1
			allowed = 1
		end

		redis.call('HSET', KEYS[1], 'tokens', tokens, 'last', last)
		redis.call('PEXPIRE', KEYS[1], window * 2)
		return allowed
	`)

	return &RedisStore{
		client:     rdb,
		takeScript: takeScript,
	}, nil
}

// Take executes the bucket script atomically on the Redis server
func (s *RedisStore) Take(ctx context.Context, bucketKey string, policy Policy) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s", bucketKey)
	result, err := s.takeScript.Run(ctx, s.client, []string{key},
		policy.Points,
		policy.Duration.Milliseconds(),
		time.Now().UnixMilli(),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit script: %w", err)
	}
	return result == 1, nil
}

// Close releases the underlying Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
