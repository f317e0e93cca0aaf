// Package errors provides standardized error handling for the RFP dashboard API.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"

	ErrCodeRFPNotFound      ErrorCode = "RFP_NOT_FOUND"
	ErrCodeProposalNotFound ErrorCode = "PROPOSAL_NOT_FOUND"
	ErrCodeResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"

	ErrCodeCRMNotConfigured ErrorCode = "CRM_NOT_CONFIGURED"
	ErrCodeCRMAuthFailed    ErrorCode = "CRM_AUTH_FAILED"
	ErrCodeCRMAPIError      ErrorCode = "CRM_API_ERROR"

	ErrCodeLLMTimeout        ErrorCode = "LLM_TIMEOUT"
	ErrCodeLLMRequestFailed  ErrorCode = "LLM_REQUEST_FAILED"
	ErrCodeLLMInvalidOutput  ErrorCode = "LLM_INVALID_OUTPUT"
	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"

	ErrCodeStorageNotConfigured ErrorCode = "STORAGE_NOT_CONFIGURED"
	ErrCodeStorageUploadFailed  ErrorCode = "STORAGE_UPLOAD_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError creates a non-retryable request validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError is returned when a body cannot be decoded at all.
func NewInvalidRequestError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Malformed request body",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewRFPNotFoundError(rfpID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRFPNotFound,
		Message:   "RFP not found",
		Details:   fmt.Sprintf("rfpId: %s", rfpID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewProposalNotFoundError(proposalID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProposalNotFound,
		Message:   "Proposal not found",
		Details:   fmt.Sprintf("proposalId: %s", proposalID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewResourceNotFoundError creates a generic non-retryable not found error.
func NewResourceNotFoundError(resource, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeResourceNotFound,
		Message:   fmt.Sprintf("%s not found", resource),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryName string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("query: %s, error: %s", queryName, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable insert error.
func NewDatabaseInsertFailedError(table string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert error",
		Details:   fmt.Sprintf("table: %s, error: %s", table, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCRMNotConfiguredError is returned when the CRM credentials are incomplete.
func NewCRMNotConfiguredError() *StandardError {
	return &StandardError{
		Code:      ErrCodeCRMNotConfigured,
		Message:   "Dynamics 365 configuration is not available",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCRMAuthFailedError wraps an identity provider failure.
func NewCRMAuthFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCRMAuthFailed,
		Message:   fmt.Sprintf("Failed to authenticate with Dynamics 365: %s", err.Error()),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewLLMTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMTimeout,
		Message:   "LLM request timed out",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewLLMRequestFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMRequestFailed,
		Message:   "LLM request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMInvalidOutputError is returned when a completion does not match its schema.
func NewLLMInvalidOutputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMInvalidOutput,
		Message:   "LLM returned output that does not match the expected schema",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewSearchQueryFailedError(index string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Search query failed",
		Details:   fmt.Sprintf("index: %s, error: %s", index, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewStorageNotConfiguredError() *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageNotConfigured,
		Message:   "Object storage is not configured",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewStorageUploadFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageUploadFailed,
		Message:   "Failed to upload file",
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   fmt.Sprintf("Failed to send %s notification", channel),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps any unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError unwraps err to a *StandardError, wrapping it as an
// internal error when it is not one already.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// HasCode reports whether err is a StandardError carrying code.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == code
}

// GetHTTPStatus maps an error code onto the response status used by the API.
func GetHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeRFPNotFound, ErrCodeProposalNotFound, ErrCodeResourceNotFound:
		return http.StatusNotFound
	case ErrCodeCRMNotConfigured, ErrCodeStorageNotConfigured:
		return http.StatusServiceUnavailable
	case ErrCodeCRMAuthFailed, ErrCodeCRMAPIError,
		ErrCodeLLMRequestFailed, ErrCodeLLMInvalidOutput,
		ErrCodeSearchQueryFailed, ErrCodeStorageUploadFailed,
		ErrCodeNotificationSendFailed:
		return http.StatusBadGateway
	case ErrCodeLLMTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "CRM"):
		return "CRM"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "LLM"):
		return "AI"
	case strings.Contains(codeStr, "STORAGE"):
		return "STORAGE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "NOT_FOUND"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
