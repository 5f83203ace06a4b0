// Package formula 提供公式生成的编排逻辑
package formula

import (
	"context"
	"fmt"
)

// Decision 单次限流判定结果
type Decision struct {
	// Allowed 本次请求是否放行
	Allowed bool
	// Limit 窗口内允许的请求总数
	Limit int
	// Remaining 剩余配额
	Remaining int
	// ResetAt 配额恢复时间（Unix 秒）
	ResetAt int64
}

// RateLimiter 滑动窗口限流器端口。
// 实现方负责计数状态的持久化与并发下的原子判定。
type RateLimiter interface {
	Check(ctx context.Context, clientID string) (Decision, error)
}

// QuotaExceededError 表示客户端的窗口配额已耗尽
type QuotaExceededError struct {
	ClientID string
	Decision Decision
}

func (e QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded: client=%s limit=%d reset_at=%d", e.ClientID, e.Decision.Limit, e.Decision.ResetAt)
}
