package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	messages []string
	fields   []map[string]interface{}
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.messages = append(l.messages, msg)
	l.fields = append(l.fields, fields)
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeValidationFailed, http.StatusBadRequest},
		{ErrCodeRFPNotFound, http.StatusNotFound},
		{ErrCodeCRMNotConfigured, http.StatusServiceUnavailable},
		{ErrCodeCRMAuthFailed, http.StatusBadGateway},
		{ErrCodeLLMTimeout, http.StatusGatewayTimeout},
		{ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestCRMAuthFailedMessage(t *testing.T) {
	err := NewCRMAuthFailedError(fmt.Errorf("invalid_client"))
	assert.Equal(t, "Failed to authenticate with Dynamics 365: invalid_client", err.Message)
	assert.Equal(t, "CRM", GetErrorCategory(err.Code))
}

func TestAsStandardError(t *testing.T) {
	wrapped := fmt.Errorf("loading rfp: %w", NewRFPNotFoundError("rfp-1"))
	assert.Equal(t, ErrCodeRFPNotFound, AsStandardError(wrapped).Code)
	assert.True(t, HasCode(wrapped, ErrCodeRFPNotFound))

	plain := AsStandardError(fmt.Errorf("boom"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "boom", plain.Details)
}

func TestErrorHandler_Write(t *testing.T) {
	log := &recordingLogger{}
	h := NewErrorHandler(log)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rfps/missing", nil)
	h.Write(rec, req, NewRFPNotFoundError("missing"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Error StandardError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeRFPNotFound, body.Error.Code)
	assert.Equal(t, "RFP not found", body.Error.Message)

	require.Len(t, log.messages, 1)
	assert.Equal(t, "/api/rfps/missing", log.fields[0]["path"])
}
