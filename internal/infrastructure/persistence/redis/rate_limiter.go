// Package redis 提供 Redis 限流器实现
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"

	"dr-sheets-api/internal/application/formula"
)

// checkScript 滑动窗口判定脚本。
// 清理窗口外的成员、计数、判定并记录本次请求在同一脚本内完成，
// 保证并发突发下“读数-判定-递增”的原子性，避免少计导致的超额放行。
// 返回 {allowed, count, oldest_score}，oldest_score 为窗口内最早请求
// 的时间戳（毫秒），不存在时为 0。
var checkScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
local count = redis.call('ZCARD', key)

local allowed = 0
if count < limit then
    redis.call('ZADD', key, now, member)
    redis.call('PEXPIRE', key, window)
    count = count + 1
    allowed = 1
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local score = 0
if oldest[2] then
    score = tonumber(oldest[2])
end

return {allowed, count, score}
`)

// RateLimiter 滑动窗口限流器
type RateLimiter struct {
	client    *Client
	limit     int
	window    time.Duration
	keyPrefix string
	now       func() time.Time
}

// NewRateLimiter 创建限流器
func NewRateLimiter(client *Client, limit int, window time.Duration, keyPrefix string) *RateLimiter {
	if keyPrefix == "" {
		keyPrefix = "ratelimit"
	}
	return &RateLimiter{
		client:    client,
		limit:     limit,
		window:    window,
		keyPrefix: keyPrefix,
		now:       time.Now,
	}
}

// Check 检查并记录一次请求（滑动窗口算法）。
// 存储不可达时返回错误，由调用方决定拒绝策略。
func (l *RateLimiter) Check(ctx context.Context, clientID string) (formula.Decision, error) {
	ctx, span := tracer.Start(ctx, "ratelimit.Check")
	span.SetAttributes(
		attribute.String("ratelimit.client_id", clientID),
		attribute.Int("ratelimit.limit", l.limit),
		attribute.Int64("ratelimit.window_ms", l.window.Milliseconds()),
	)
	defer span.End()

	now := l.now().UnixMilli()
	key := buildKey(l.keyPrefix, clientID)
	// 同一毫秒内的并发请求必须是不同成员，否则 ZADD 覆盖导致少计
	member := fmt.Sprintf("%d-%s", now, uuid.NewString())

	res, err := checkScript.Run(ctx, l.client.rdb, []string{key},
		now, l.window.Milliseconds(), l.limit, member).Int64Slice()
	if err != nil {
		span.RecordError(err)
		return formula.Decision{}, fmt.Errorf("rate limit script failed: %w", err)
	}
	if len(res) != 3 {
		return formula.Decision{}, fmt.Errorf("unexpected rate limit script result: %v", res)
	}

	allowed := res[0] == 1
	count := res[1]
	oldest := res[2]

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	// 窗口内最早的请求滑出后配额恢复
	resetAt := now + l.window.Milliseconds()
	if oldest > 0 {
		resetAt = oldest + l.window.Milliseconds()
	}

	span.SetAttributes(
		attribute.Bool("ratelimit.allowed", allowed),
		attribute.Int("ratelimit.remaining", remaining),
	)

	return formula.Decision{
		Allowed:   allowed,
		Limit:     l.limit,
		Remaining: remaining,
		ResetAt:   resetAt / 1000,
	}, nil
}

// buildKey 构建限流键
func buildKey(prefix, clientID string) string {
	return fmt.Sprintf("%s:%s", prefix, clientID)
}
