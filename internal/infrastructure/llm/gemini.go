// Package llm 提供生成服务客户端实现
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/option"

	"dr-sheets-api/internal/application/formula"
	"dr-sheets-api/internal/config"
	"dr-sheets-api/pkg/metrics"
)

var tracer = otel.Tracer("llm")

// GeminiClient Gemini 文本生成客户端，实现 formula.TextGenerator
type GeminiClient struct {
	apiKey  string
	model   string
	timeout time.Duration
}

// NewGeminiClient 创建 Gemini 客户端。
// 凭证缺失不在此处报错：按请求返回 formula.ErrNotConfigured，
// 由网关统一映射为对外的通用失败。
func NewGeminiClient(cfg *config.GeminiConfig) *GeminiClient {
	return &GeminiClient{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		model:   strings.TrimSpace(cfg.Model),
		timeout: cfg.Timeout,
	}
}

// GenerateText 单次阻塞调用：系统指令 + 用户提示词 -> 模型原始文本。
// 不在客户端内重试；超时由配置的调用时限兜底，防止请求无限挂起。
func (c *GeminiClient) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "llm.GenerateText")
	span.SetAttributes(attribute.String("llm.model", c.model))
	defer span.End()

	if c.apiKey == "" {
		return "", fmt.Errorf("gemini api key is empty: %w", formula.ErrNotConfigured)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := c.generate(ctx, systemPrompt, userPrompt)
	metrics.LLMCallDuration.WithLabelValues(c.model).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		metrics.LLMCallTotal.WithLabelValues(c.model, "error").Inc()
		return "", err
	}

	metrics.LLMCallTotal.WithLabelValues(c.model, "ok").Inc()
	return text, nil
}

func (c *GeminiClient) generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	cl, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(c.model)
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := m.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := firstText(resp)
	if text == "" {
		return "", fmt.Errorf("gemini generate: empty response")
	}
	return text, nil
}

// firstText 取第一个文本候选
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}
