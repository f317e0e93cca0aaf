package rfpassistant

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rfp-dashboard/internal/common/logger"
)

func newTestRouter(t *testing.T, llm Completer, repo *mockRepo) *mux.Router {
	t.Helper()
	svc := NewService(ServiceDependencies{LLM: llm, Repo: repo, Logger: logger.NewTestLogger(t)})
	h, err := NewHandler(HandlerOptions{Service: svc, Logger: logger.NewTestLogger(t), MaxBodyBytes: 1 << 20})
	require.NoError(t, err)

	router := mux.NewRouter()
	h.RegisterRoutes(router.PathPrefix("/api").Subrouter())
	return router
}

func post(t *testing.T, router http.Handler, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var out map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

// ==========================================
// End to end with a fake LLM
// ==========================================

func TestHandler_QualityCheckFlattensScores(t *testing.T) {
	llm := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completion(`{"qualityScore":85,"completeness":90,"relevance":85,"clarity":88,"competitiveDiff":80,"alignment":87,"improvementSuggestion":"Tighten pricing"}`))
	})
	repo := &mockRepo{}
	repo.On("UpdateProposal", mock.Anything, "p1", mock.Anything).Return(nil)

	rec, out := post(t, newTestRouter(t, llm, repo), "/api/ai/quality-check", `{"proposalId":"p1","content":"text"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, 85.0, out["qualityScore"])
	assert.Equal(t, "Tighten pricing", out["improvementSuggestion"])
	assert.NotContains(t, out, "error")
}

func TestHandler_FailureIsResultValue(t *testing.T) {
	llm := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	rec, out := post(t, newTestRouter(t, llm, &mockRepo{}), "/api/ai/extract-questions", `{"rfpId":"r1","rfpContent":"doc"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Failed to extract questions", out["error"])
	assert.Equal(t, []interface{}{}, out["questions"])
}

func TestHandler_AnalyzeDocument(t *testing.T) {
	llm := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completion("Key requirements: reach"))
	})

	_, out := post(t, newTestRouter(t, llm, &mockRepo{}), "/api/ai/analyze-document", `{"rfpId":"r1","content":"doc"}`)

	assert.Equal(t, map[string]interface{}{"success": true, "analysis": "Key requirements: reach"}, out)
}

// ==========================================
// Input validation
// ==========================================

func TestHandler_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"missing content", "/api/ai/analyze-document", `{"rfpId":"r1"}`},
		{"extra field", "/api/ai/extract-questions", `{"rfpId":"r1","rfpContent":"x","foo":1}`},
		{"question missing text", "/api/ai/generate-responses", `{"rfpId":"r1","questions":[{"id":"q1","category":"other"}]}`},
		{"questions not array", "/api/ai/generate-responses", `{"rfpId":"r1","questions":"q1"}`},
		{"requirements not string", "/api/ai/quality-check", `{"proposalId":"p1","content":"c","rfpRequirements":5}`},
		{"not json", "/api/ai/quality-check", `nope`},
	}

	llm := &mockLLM{}
	router := newTestRouter(t, llm, &mockRepo{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := post(t, router, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}
