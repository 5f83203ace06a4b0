// Package memory 提供进程内的限流计数实现。
// 计数不落盘、进程重启即清零，也无法在多实例间共享，
// 仅用于本地开发或测试，生产部署应使用 Redis 实现。
package memory

import (
	"context"
	"sync"
	"time"

	"dr-sheets-api/internal/application/formula"
)

// RateLimiter 进程内滑动窗口限流器
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string][]int64

	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter 创建进程内限流器
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		entries: make(map[string][]int64),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// WithClock 替换时钟，用于测试
func (l *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	l.now = now
	return l
}

// Check 检查并记录一次请求（滑动窗口算法）
func (l *RateLimiter) Check(_ context.Context, clientID string) (formula.Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now().UnixMilli()
	windowStart := now - l.window.Milliseconds()

	// 剔除已滑出窗口的请求
	kept := l.entries[clientID][:0]
	for _, ts := range l.entries[clientID] {
		if ts > windowStart {
			kept = append(kept, ts)
		}
	}

	allowed := len(kept) < l.limit
	if allowed {
		kept = append(kept, now)
	}
	if len(kept) > 0 {
		l.entries[clientID] = kept
	} else {
		delete(l.entries, clientID)
	}

	remaining := l.limit - len(kept)
	if remaining < 0 {
		remaining = 0
	}

	resetAt := now + l.window.Milliseconds()
	if len(kept) > 0 {
		resetAt = kept[0] + l.window.Milliseconds()
	}

	return formula.Decision{
		Allowed:   allowed,
		Limit:     l.limit,
		Remaining: remaining,
		ResetAt:   resetAt / 1000,
	}, nil
}
