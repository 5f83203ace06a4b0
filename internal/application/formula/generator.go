package formula

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	apperrors "dr-sheets-api/pkg/errors"
	"dr-sheets-api/pkg/logger"
	"dr-sheets-api/pkg/metrics"
)

var tracer = otel.Tracer("formula")

// ErrNotConfigured 生成服务缺少凭证等必要配置
var ErrNotConfigured = errors.New("generation service not configured")

// TextGenerator 文本生成服务端口。
// 实现方接收系统提示词与用户提示词，返回模型生成的原始文本。
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// GenerationRequest 单次生成请求
type GenerationRequest struct {
	// ClientID 限流归属的客户端标识
	ClientID string
	// UserRequest 用户的自然语言诉求（调用方约定软上限约 200 词，服务端不强制）
	UserRequest string
	// BrokenFormula 用户粘贴的现有公式，可为空
	BrokenFormula string
}

// Result 生成结果：模型原始文本 + 本次限流判定
type Result struct {
	Text     string
	Decision Decision
}

// Generator 生成网关：限流 -> 组装提示词 -> 调用生成服务。
// 每个放行请求恰好产生一次限流计数变更与一次模型调用，网关内不重试。
type Generator struct {
	limiter RateLimiter
	model   TextGenerator
}

// NewGenerator 创建生成网关
func NewGenerator(limiter RateLimiter, model TextGenerator) *Generator {
	return &Generator{
		limiter: limiter,
		model:   model,
	}
}

// Generate 执行一次完整的生成流程。
// 配额耗尽返回 QuotaExceededError（携带限流判定供响应头使用）；
// 计数存储故障时拒绝请求（fail-closed）；
// 生成服务的错误细节只记日志，对调用方统一为通用文案。
func (g *Generator) Generate(ctx context.Context, req GenerationRequest) (*Result, error) {
	ctx, span := tracer.Start(ctx, "formula.Generate")
	span.SetAttributes(attribute.String("formula.client_id", req.ClientID))
	defer span.End()

	decision, err := g.limiter.Check(ctx, req.ClientID)
	if err != nil {
		span.RecordError(err)
		metrics.RateLimitStoreErrors.Inc()
		logger.Error(ctx, "rate limit check failed", err, "client_id", req.ClientID)
		return nil, apperrors.Wrap(err, apperrors.CodeCounterStoreError,
			"Failed to get a solution from the AI model.")
	}

	span.SetAttributes(
		attribute.Bool("ratelimit.allowed", decision.Allowed),
		attribute.Int("ratelimit.remaining", decision.Remaining),
	)

	if !decision.Allowed {
		metrics.RateLimitDeniedTotal.Inc()
		metrics.GenerationTotal.WithLabelValues("rate_denied").Inc()
		return nil, QuotaExceededError{ClientID: req.ClientID, Decision: decision}
	}

	prompt := BuildUserPrompt(req.UserRequest, req.BrokenFormula)

	start := time.Now()
	text, err := g.model.GenerateText(ctx, SystemPrompt(), prompt)
	duration := time.Since(start).Seconds()
	if err != nil {
		span.RecordError(err)
		metrics.GenerationTotal.WithLabelValues("failed").Inc()
		metrics.GenerationDuration.WithLabelValues("failed").Observe(duration)
		logger.Error(ctx, "generation call failed", err, "client_id", req.ClientID)

		if errors.Is(err, ErrNotConfigured) {
			return nil, apperrors.Wrap(err, apperrors.CodeMisconfigured,
				"Failed to get a solution from the AI model.")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeLLMProviderError,
			"Failed to get a solution from the AI model.")
	}

	metrics.GenerationTotal.WithLabelValues("succeeded").Inc()
	metrics.GenerationDuration.WithLabelValues("succeeded").Observe(duration)

	return &Result{
		Text:     text,
		Decision: decision,
	}, nil
}
