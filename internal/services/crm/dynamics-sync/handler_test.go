package dynamicssync

import (
	"context"
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

	"rfp-dashboard/internal/common/dynamics"
	"rfp-dashboard/internal/common/logger"
)

type mockSyncer struct{ mock.Mock }

func (m *mockSyncer) IsEnabled() bool { return m.Called().Bool(0) }

func (m *mockSyncer) TestConnection(ctx context.Context) *dynamics.Response {
	return m.Called(ctx).Get(0).(*dynamics.Response)
}

func (m *mockSyncer) CreateLeadFromRFP(ctx context.Context, rfpID string) *dynamics.Response {
	return m.Called(ctx, rfpID).Get(0).(*dynamics.Response)
}

func (m *mockSyncer) CreateOpportunityFromRFP(ctx context.Context, rfpID string) *dynamics.Response {
	return m.Called(ctx, rfpID).Get(0).(*dynamics.Response)
}

func (m *mockSyncer) SyncRFP(ctx context.Context, rfpID string, mode Mode) *dynamics.Response {
	return m.Called(ctx, rfpID, mode).Get(0).(*dynamics.Response)
}

func (m *mockSyncer) BulkSync(ctx context.Context, rfpIDs []string, mode Mode) *BulkSyncResult {
	return m.Called(ctx, rfpIDs, mode).Get(0).(*BulkSyncResult)
}

func (m *mockSyncer) SyncStatus(ctx context.Context, rfpID string) (*SyncStatus, error) {
	args := m.Called(ctx, rfpID)
	status, _ := args.Get(0).(*SyncStatus)
	return status, args.Error(1)
}

func newTestRouter(t *testing.T, svc Syncer, cfg *Config) *mux.Router {
	t.Helper()
	h, err := NewHandler(HandlerOptions{Config: cfg, Service: svc, Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)

	router := mux.NewRouter()
	h.RegisterRoutes(router.PathPrefix("/api").Subrouter())
	return router
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ==========================================
// Construction
// ==========================================

func TestNewHandler_Validation(t *testing.T) {
	_, err := NewHandler(HandlerOptions{Service: &mockSyncer{}, Config: &Config{}})
	assert.Error(t, err)

	_, err = NewHandler(HandlerOptions{})
	assert.Error(t, err)
}

// ==========================================
// Endpoints
// ==========================================

func TestHandler_IsEnabled(t *testing.T) {
	svc := &mockSyncer{}
	svc.On("IsEnabled").Return(true)

	rec := serve(newTestRouter(t, svc, nil), http.MethodGet, "/api/dynamics365/enabled", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"enabled":true}`, rec.Body.String())
}

func TestHandler_TestConnectionFailureIsStill200(t *testing.T) {
	svc := &mockSyncer{}
	svc.On("TestConnection", mock.Anything).Return(dynamics.Failure("Dynamics 365 integration is not enabled"))

	rec := serve(newTestRouter(t, svc, nil), http.MethodPost, "/api/dynamics365/test-connection", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Dynamics 365 integration is not enabled"}`, rec.Body.String())
}

func TestHandler_CreateLeadAndOpportunity(t *testing.T) {
	svc := &mockSyncer{}
	svc.On("CreateLeadFromRFP", mock.Anything, "rfp-001").Return(&dynamics.Response{Success: true, ID: "lead-1"})
	svc.On("CreateOpportunityFromRFP", mock.Anything, "rfp-001").Return(&dynamics.Response{Success: true, ID: "opp-1"})
	router := newTestRouter(t, svc, nil)

	rec := serve(router, http.MethodPost, "/api/dynamics365/leads", `{"rfpId":"rfp-001"}`)
	assert.JSONEq(t, `{"success":true,"id":"lead-1"}`, rec.Body.String())

	rec = serve(router, http.MethodPost, "/api/dynamics365/opportunities", `{"rfpId":"rfp-001"}`)
	assert.JSONEq(t, `{"success":true,"id":"opp-1"}`, rec.Body.String())
}

func TestHandler_SyncDefaultsToAuto(t *testing.T) {
	svc := &mockSyncer{}
	svc.On("SyncRFP", mock.Anything, "rfp-003", ModeAuto).Return(&dynamics.Response{Success: true, ID: "lead-3"})

	rec := serve(newTestRouter(t, svc, nil), http.MethodPost, "/api/dynamics365/sync", `{"rfpId":"rfp-003"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_SyncRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"missing rfpId", `{}`, http.StatusBadRequest},
		{"unknown mode", `{"rfpId":"x","createAs":"account"}`, http.StatusBadRequest},
		{"wrong type", `{"rfpId":42}`, http.StatusBadRequest},
		{"not json", `nope`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockSyncer{}
			rec := serve(newTestRouter(t, svc, nil), http.MethodPost, "/api/dynamics365/sync", tt.body)

			assert.Equal(t, tt.code, rec.Code)
			var body map[string]map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"]["code"])
			svc.AssertNotCalled(t, "SyncRFP", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_BulkSync(t *testing.T) {
	svc := &mockSyncer{}
	result := &BulkSyncResult{
		Total: 2, Successful: 1, Failed: 1,
		Results: []BulkSyncItem{
			{RFPID: "a", Response: &dynamics.Response{Success: true, ID: "opp-a"}},
			{RFPID: "b", Response: dynamics.Failure("RFP not found")},
		},
	}
	svc.On("BulkSync", mock.Anything, []string{"a", "b"}, ModeOpportunity).Return(result)

	rec := serve(newTestRouter(t, svc, nil), http.MethodPost, "/api/dynamics365/bulk-sync",
		`{"rfpIds":["a","b"],"createAs":"opportunity"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"total": 2, "successful": 1, "failed": 1,
		"results": [
			{"rfpId":"a","success":true,"id":"opp-a"},
			{"rfpId":"b","success":false,"error":"RFP not found"}
		]
	}`, rec.Body.String())
}

func TestHandler_BulkSyncEmptyIDIsPerItemFailure(t *testing.T) {
	svc := &mockSyncer{}
	result := &BulkSyncResult{
		Total: 3, Successful: 2, Failed: 1,
		Results: []BulkSyncItem{
			{RFPID: "a", Response: &dynamics.Response{Success: true, ID: "lead-a"}},
			{RFPID: "", Response: dynamics.Failure("RFP not found")},
			{RFPID: "c", Response: &dynamics.Response{Success: true, ID: "lead-c"}},
		},
	}
	svc.On("BulkSync", mock.Anything, []string{"a", "", "c"}, ModeAuto).Return(result)

	rec := serve(newTestRouter(t, svc, nil), http.MethodPost, "/api/dynamics365/bulk-sync", `{"rfpIds":["a","","c"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"RFP not found"`)
	svc.AssertExpectations(t)
}

func TestHandler_SyncEmptyIDReachesService(t *testing.T) {
	svc := &mockSyncer{}
	svc.On("SyncRFP", mock.Anything, "", ModeAuto).Return(dynamics.Failure("RFP not found"))

	rec := serve(newTestRouter(t, svc, nil), http.MethodPost, "/api/dynamics365/sync", `{"rfpId":""}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"RFP not found"}`, rec.Body.String())
}

func TestHandler_SyncStatus(t *testing.T) {
	svc := &mockSyncer{}
	svc.On("SyncStatus", mock.Anything, "rfp-001").Return(&SyncStatus{RFPID: "rfp-001", Links: []SyncLink{}}, nil)
	svc.On("SyncStatus", mock.Anything, "rfp-002").Return(nil, fmt.Errorf("redis down"))
	router := newTestRouter(t, svc, nil)

	rec := serve(router, http.MethodGet, "/api/dynamics365/sync-status/rfp-001", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"rfpId":"rfp-001","synced":false,"links":[]}`, rec.Body.String())

	rec = serve(router, http.MethodGet, "/api/dynamics365/sync-status/rfp-002", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
