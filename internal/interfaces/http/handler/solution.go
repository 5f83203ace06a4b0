// Package handler 提供 HTTP 请求处理器
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dr-sheets-api/internal/application/solution"
	"dr-sheets-api/internal/interfaces/http/dto"
)

// SolutionHandler 模型输出解析处理器
type SolutionHandler struct{}

// NewSolutionHandler 创建解析处理器
func NewSolutionHandler() *SolutionHandler {
	return &SolutionHandler{}
}

// Parse 解析模型原始输出
// @Summary 解析模型原始输出
// @Description 切分公式与解释，并将解释渲染为结构化内容块
// @Tags Solution
// @Accept json
// @Produce json
// @Param body body dto.ParseSolutionRequest true "解析请求"
// @Success 200 {object} dto.ParseSolutionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/solution/parse [post]
func (h *SolutionHandler) Parse(c *gin.Context) {
	var req dto.ParseSolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "text is required"})
		return
	}

	parsed := solution.ParseSolution(req.Text)
	blocks := solution.RenderExplanation(parsed.Explanation)

	c.JSON(http.StatusOK, dto.ParseSolutionResponse{
		Formula: parsed.Formula,
		Blocks:  blocks,
	})
}
