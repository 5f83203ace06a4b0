package formula

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemPrompt(t *testing.T) {
	prompt := SystemPrompt()

	assert.NotEmpty(t, prompt)
	// 输出格式契约的关键要素必须存在
	assert.Contains(t, prompt, "Dr. Sheets")
	assert.Contains(t, prompt, "Click the [Book a Consultation] button to learn more.")
}

func TestBuildUserPrompt_WithBrokenFormula(t *testing.T) {
	got := BuildUserPrompt("Sum column A when B is positive", "=SUM(A:A B:B)")

	assert.True(t, strings.HasPrefix(got, "Here is the user's request:"))
	assert.Contains(t, got, "**Goal/Problem:**\nSum column A when B is positive")
	assert.Contains(t, got, "**Existing (broken) Formula (if any):**\n=SUM(A:A B:B)")
	assert.NotContains(t, got, "None provided.")
}

func TestBuildUserPrompt_WithoutBrokenFormula(t *testing.T) {
	got := BuildUserPrompt("Count non-empty cells", "")

	assert.Contains(t, got, "**Existing (broken) Formula (if any):**\nNone provided.")
}

func TestBuildUserPrompt_WhitespaceFormulaTreatedAsMissing(t *testing.T) {
	got := BuildUserPrompt("Count non-empty cells", "   \n\t")

	assert.Contains(t, got, "None provided.")
}
