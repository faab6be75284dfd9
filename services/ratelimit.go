package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"main/utils"

	"github.com/redis/go-redis/v9"
)

// Action names one rate-limited operation. Buckets are keyed by
// (action, user id).
type Action string

const (
	ActionCreateTodo        Action = "create_todo"
	ActionUpdateTodo        Action = "update_todo"
	ActionDeleteTodo        Action = "delete_todo"
	ActionSendMessage       Action = "send_message"
	ActionCreateThread      Action = "create_thread"
	ActionUpdatePreferences Action = "update_preferences"
)

// Limit is a token bucket: Capacity tokens available immediately, refilling
// continuously at Rate per Period.
type Limit struct {
	Rate     int
	Period   time.Duration
	Capacity int
}

// DefaultLimits is the per-action rate table.
var DefaultLimits = map[Action]Limit{
	ActionCreateTodo:        {Rate: 30, Period: time.Minute, Capacity: 5},
	ActionUpdateTodo:        {Rate: 60, Period: time.Minute, Capacity: 10},
	ActionDeleteTodo:        {Rate: 30, Period: time.Minute, Capacity: 5},
	ActionSendMessage:       {Rate: 10, Period: time.Minute, Capacity: 2},
	ActionCreateThread:      {Rate: 5, Period: time.Minute, Capacity: 2},
	ActionUpdatePreferences: {Rate: 10, Period: time.Minute, Capacity: 3},
}

// Result is the admit/reject decision for one attempt. RetryAfter is the wait
// until one token is available; zero when OK.
type Result struct {
	OK         bool
	RetryAfter time.Duration
}

// tokenBucketScript performs refill and consume in one atomic step. It is the
// Redis rendition of bucketState.take.
//
// KEYS[1] bucket hash; ARGV: capacity, refill tokens/ms, now ms, ttl ms.
var tokenBucketScript = redis.NewScript(`
local bucket = redis.call('HMGET', KEYS[1], 'tokens', 'ts')
local capacity = tonumber(ARGV[1])
local refill = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local tokens = tonumber(bucket[1])
local ts = tonumber(bucket[2])
if tokens == nil or ts == nil then
  tokens = capacity
  ts = now
end
tokens = math.min(capacity, tokens + (now - ts) * refill)
local allowed = 0
local wait = 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
else
  wait = math.ceil((1 - tokens) / refill)
end
redis.call('HSET', KEYS[1], 'tokens', tokens, 'ts', now)
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return {allowed, wait}
`)

// RateLimiter admits or rejects actions against per-user token buckets stored
// in Redis.
type RateLimiter struct {
	client *redis.Client
	limits map[Action]Limit
}

// NewRateLimiter connects to Redis at redisURL and returns a limiter using
// the given per-action table (DefaultLimits when nil).
func NewRateLimiter(redisURL string, limits map[Action]Limit) (*RateLimiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	if size := utils.GetEnvAsInt("REDIS_POOL_SIZE", 0); size > 0 {
		opts.PoolSize = size
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(),
		utils.GetEnvAsDuration("REDIS_DIAL_TIMEOUT", 5*time.Second))
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	if limits == nil {
		limits = DefaultLimits
	}
	return &RateLimiter{client: client, limits: limits}, nil
}

// Limit consumes one token from the (action, key) bucket. Unknown actions are
// admitted; the table is the single place limits are declared.
func (rl *RateLimiter) Limit(ctx context.Context, action Action, key string) (Result, error) {
	lim, ok := rl.limits[action]
	if !ok {
		return Result{OK: true}, nil
	}

	bucketKey := fmt.Sprintf("ratelimit:%s:%s", action, key)
	refillPerMs := float64(lim.Rate) / float64(lim.Period.Milliseconds())
	nowMs := time.Now().UnixMilli()
	// Expire once a full bucket could have refilled
	ttlMs := int64(math.Ceil(float64(lim.Capacity)/refillPerMs)) + lim.Period.Milliseconds()

	values, err := tokenBucketScript.Run(ctx, rl.client,
		[]string{bucketKey},
		lim.Capacity, refillPerMs, nowMs, ttlMs,
	).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("rate limit check failed: %v", err)
	}
	if len(values) != 2 {
		return Result{}, fmt.Errorf("unexpected rate limit script reply: %v", values)
	}

	if values[0] == 1 {
		return Result{OK: true}, nil
	}
	return Result{OK: false, RetryAfter: time.Duration(values[1]) * time.Millisecond}, nil
}

// Close releases the Redis connection.
func (rl *RateLimiter) Close() error {
	return rl.client.Close()
}

// bucketState is the pure token-bucket arithmetic the Lua script mirrors.
// Kept in Go so the refill and wait math is testable without Redis.
type bucketState struct {
	tokens float64
	ts     time.Time
}

func newBucketState(lim Limit, now time.Time) bucketState {
	return bucketState{tokens: float64(lim.Capacity), ts: now}
}

// take refills the bucket up to now, then consumes one token if available.
// When rejected it reports the wait until one token is available.
func (b *bucketState) take(lim Limit, now time.Time) (bool, time.Duration) {
	refillPerMs := float64(lim.Rate) / float64(lim.Period.Milliseconds())
	elapsedMs := float64(now.Sub(b.ts).Milliseconds())
	b.tokens = math.Min(float64(lim.Capacity), b.tokens+elapsedMs*refillPerMs)
	b.ts = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	waitMs := math.Ceil((1 - b.tokens) / refillPerMs)
	return false, time.Duration(waitMs) * time.Millisecond
}
