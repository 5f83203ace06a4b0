package formula

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "dr-sheets-api/pkg/errors"
)

type stubLimiter struct {
	decision Decision
	err      error
	calls    int
}

func (s *stubLimiter) Check(_ context.Context, _ string) (Decision, error) {
	s.calls++
	return s.decision, s.err
}

type stubModel struct {
	text         string
	err          error
	calls        int
	systemPrompt string
	userPrompt   string
}

func (s *stubModel) GenerateText(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	s.systemPrompt = systemPrompt
	s.userPrompt = userPrompt
	return s.text, s.err
}

func allowedDecision() Decision {
	return Decision{
		Allowed:   true,
		Limit:     10,
		Remaining: 9,
		ResetAt:   time.Now().Add(24 * time.Hour).Unix(),
	}
}

func TestGenerate_Success(t *testing.T) {
	limiter := &stubLimiter{decision: allowedDecision()}
	model := &stubModel{text: "```\n=SUM(A:A)\n```\nIt sums."}
	g := NewGenerator(limiter, model)

	result, err := g.Generate(context.Background(), GenerationRequest{
		ClientID:    "203.0.113.7",
		UserRequest: "sum column A",
	})

	require.NoError(t, err)
	assert.Equal(t, model.text, result.Text)
	assert.Equal(t, limiter.decision, result.Decision)
	assert.Equal(t, 1, limiter.calls)
	assert.Equal(t, 1, model.calls)
	assert.Equal(t, SystemPrompt(), model.systemPrompt)
	assert.Contains(t, model.userPrompt, "sum column A")
}

func TestGenerate_QuotaExceeded(t *testing.T) {
	limiter := &stubLimiter{decision: Decision{Allowed: false, Limit: 10, Remaining: 0, ResetAt: 1700000000}}
	model := &stubModel{}
	g := NewGenerator(limiter, model)

	_, err := g.Generate(context.Background(), GenerationRequest{ClientID: "203.0.113.7", UserRequest: "x"})

	var quotaErr QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, "203.0.113.7", quotaErr.ClientID)
	assert.Equal(t, limiter.decision, quotaErr.Decision)
	// 配额耗尽时不得触发模型调用
	assert.Equal(t, 0, model.calls)
}

func TestGenerate_StoreFailureIsFailClosed(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis: connection refused")}
	model := &stubModel{}
	g := NewGenerator(limiter, model)

	_, err := g.Generate(context.Background(), GenerationRequest{ClientID: "203.0.113.7", UserRequest: "x"})

	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeCounterStoreError, appErr.Code)
	assert.Equal(t, "Failed to get a solution from the AI model.", appErr.Message)
	assert.Equal(t, 0, model.calls)
}

func TestGenerate_ModelFailureReturnsGenericMessage(t *testing.T) {
	limiter := &stubLimiter{decision: allowedDecision()}
	model := &stubModel{err: errors.New("upstream 503: model overloaded")}
	g := NewGenerator(limiter, model)

	_, err := g.Generate(context.Background(), GenerationRequest{ClientID: "203.0.113.7", UserRequest: "x"})

	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeLLMProviderError, appErr.Code)
	// 上游错误细节不暴露给调用方
	assert.Equal(t, "Failed to get a solution from the AI model.", appErr.Message)
	assert.NotContains(t, appErr.Message, "503")
}

func TestGenerate_MissingCredentials(t *testing.T) {
	limiter := &stubLimiter{decision: allowedDecision()}
	model := &stubModel{err: fmt.Errorf("gemini api key is empty: %w", ErrNotConfigured)}
	g := NewGenerator(limiter, model)

	_, err := g.Generate(context.Background(), GenerationRequest{ClientID: "203.0.113.7", UserRequest: "x"})

	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeMisconfigured, appErr.Code)
	assert.Equal(t, "Failed to get a solution from the AI model.", appErr.Message)
}
