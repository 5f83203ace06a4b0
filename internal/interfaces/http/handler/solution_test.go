package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dr-sheets-api/internal/interfaces/http/dto"
)

func newSolutionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/solution/parse", NewSolutionHandler().Parse)
	return r
}

func doParse(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/solution/parse", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestParse_OK(t *testing.T) {
	r := newSolutionRouter()

	body, err := json.Marshal(gin.H{
		"text": "```\n=SUM(A:A)\n```\n# Your Solution\nIt sums **column A**.",
	})
	require.NoError(t, err)

	w := doParse(t, r, string(body))

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ParseSolutionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "=SUM(A:A)", resp.Formula)
	require.Len(t, resp.Blocks, 1)
	assert.Equal(t, "paragraph", string(resp.Blocks[0].Kind))
}

func TestParse_MissingText(t *testing.T) {
	r := newSolutionRouter()

	w := doParse(t, r, `{}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"text is required"}`, w.Body.String())
}
