package formula

import (
	_ "embed"
	"fmt"
	"strings"
)

// 系统提示词：Dr. Sheets 人设与输出格式约定。
// 其中规定的 markdown 结构（首个代码块为公式、CTA 结尾句等）
// 是 solution 包解析逻辑所依赖的格式契约。
//
//go:embed prompts/dr_sheets_v1.txt
var systemPrompt string

// noFormulaPlaceholder 用户未提供既有公式时的占位文本
const noFormulaPlaceholder = "None provided."

// userPromptTemplate 用户请求模板。
// 用户输入原样插值，不做转义——此处信任边界在生成服务一侧。
const userPromptTemplate = `Here is the user's request:
**Goal/Problem:**
%s
**Existing (broken) Formula (if any):**
%s`

// SystemPrompt 返回固定的系统提示词
func SystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt 组装发送给生成服务的用户提示词。
// 纯函数：固定模板插值，brokenFormula 为空时填入占位文本。
func BuildUserPrompt(userRequest, brokenFormula string) string {
	existing := strings.TrimSpace(brokenFormula)
	if existing == "" {
		existing = noFormulaPlaceholder
	}
	return fmt.Sprintf(userPromptTemplate, userRequest, existing)
}
