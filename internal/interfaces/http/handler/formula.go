// Package handler 提供 HTTP 请求处理器
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dr-sheets-api/internal/application/formula"
	"dr-sheets-api/internal/interfaces/http/dto"
	apperrors "dr-sheets-api/pkg/errors"
	"dr-sheets-api/pkg/logger"
)

// quotaExceededMessage 配额耗尽时的用户文案
const quotaExceededMessage = "You have reached your daily limit. Please try again tomorrow."

// FormulaHandler 公式生成处理器
type FormulaHandler struct {
	generator        *formula.Generator
	fallbackClientID string
}

// NewFormulaHandler 创建公式生成处理器
func NewFormulaHandler(generator *formula.Generator, fallbackClientID string) *FormulaHandler {
	return &FormulaHandler{
		generator:        generator,
		fallbackClientID: fallbackClientID,
	}
}

// Generate 生成公式
// @Summary 生成公式
// @Description 根据用户的自然语言诉求调用模型生成公式，按客户端 IP 限流
// @Tags Formula
// @Accept json
// @Produce json
// @Param body body dto.GenerateRequest true "生成请求"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/generate [post]
func (h *FormulaHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "userRequest is required"})
		return
	}

	clientID := h.clientID(c)
	ctx := logger.WithContext(c.Request.Context(), logger.ClientIDKey, clientID)

	result, err := h.generator.Generate(ctx, formula.GenerationRequest{
		ClientID:      clientID,
		UserRequest:   req.UserRequest,
		BrokenFormula: req.BrokenFormula,
	})
	if err != nil {
		var quotaErr formula.QuotaExceededError
		if errors.As(err, &quotaErr) {
			dto.SetRateLimitHeaders(c, quotaErr.Decision)
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: quotaExceededMessage})
			return
		}
		// 错误细节已在网关侧记录日志，对外只返回通用文案
		appErr := apperrors.AsAppError(err)
		c.JSON(appErr.HTTPStatus, dto.ErrorResponse{Error: appErr.Message})
		return
	}

	dto.SetRateLimitHeaders(c, result.Decision)
	c.JSON(http.StatusOK, dto.GenerateResponse{Text: result.Text})
}

// clientID 推导限流归属的客户端标识。
// 取转发头中的第一个地址；没有转发头时退回固定的兜底标识，
// 此时所有匿名客户端共享同一配额桶。
func (h *FormulaHandler) clientID(c *gin.Context) string {
	forwarded := c.GetHeader("X-Forwarded-For")
	if forwarded == "" {
		return h.fallbackClientID
	}
	if idx := strings.Index(forwarded, ","); idx >= 0 {
		forwarded = forwarded[:idx]
	}
	return strings.TrimSpace(forwarded)
}
