// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"dr-sheets-api/internal/application/formula"
	"dr-sheets-api/internal/application/solution"
)

// GenerateRequest 公式生成请求
type GenerateRequest struct {
	UserRequest   string `json:"userRequest" binding:"required"`
	BrokenFormula string `json:"brokenFormula,omitempty"`
}

// GenerateResponse 公式生成响应，text 为模型原始输出
type GenerateResponse struct {
	Text string `json:"text"`
}

// ErrorResponse 错误响应，只携带面向用户的简短文案
type ErrorResponse struct {
	Error string `json:"error"`
}

// ParseSolutionRequest 解析请求
type ParseSolutionRequest struct {
	Text string `json:"text" binding:"required"`
}

// ParseSolutionResponse 结构化解析结果
type ParseSolutionResponse struct {
	Formula string                  `json:"formula"`
	Blocks  []solution.ContentBlock `json:"blocks"`
}

// SetRateLimitHeaders 写入限流状态响应头
func SetRateLimitHeaders(c *gin.Context, d formula.Decision) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt, 10))
}
