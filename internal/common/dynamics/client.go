package dynamics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rfp-dashboard/internal/common/config"
	"rfp-dashboard/internal/common/errors"
	"rfp-dashboard/internal/common/logger"
	"rfp-dashboard/internal/common/metrics"
)

const (
	notEnabledMessage = "Dynamics 365 integration is not enabled"
	unknownError      = "Unknown error occurred"
)

// TokenSource supplies bearer tokens for Web API calls.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Client talks to the Dynamics 365 Web API. Every method returns a Response;
// transport, auth and API failures are folded into it.
type Client struct {
	cfg        Config
	tokens     TokenSource
	httpClient *http.Client
	logger     logger.Logger
	tracer     trace.Tracer
}

func NewClient(cfg Config, tokens TokenSource, httpClient *http.Client, log logger.Logger) *Client {
	cfg = cfg.withDefaults()
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Client{
		cfg:        cfg,
		tokens:     tokens,
		httpClient: httpClient,
		logger:     log,
		tracer:     otel.Tracer("rfp-dashboard/dynamics"),
	}
}

// IsEnabled reports whether calls will reach the network.
func (c *Client) IsEnabled() bool {
	return c.cfg.IsEnabled()
}

func (c *Client) CreateLead(ctx context.Context, lead *Lead) *Response {
	resp := c.do(ctx, "create_lead", http.MethodPost, "/leads", lead)
	if resp.Success {
		resp.ID = stringField(resp.Details, "leadid")
		c.logger.Info("Created lead in Dynamics 365", map[string]interface{}{"leadId": resp.ID})
	}
	return resp
}

func (c *Client) CreateOpportunity(ctx context.Context, opp *Opportunity) *Response {
	resp := c.do(ctx, "create_opportunity", http.MethodPost, "/opportunities", opp)
	if resp.Success {
		resp.ID = stringField(resp.Details, "opportunityid")
		c.logger.Info("Created opportunity in Dynamics 365", map[string]interface{}{"opportunityId": resp.ID})
	}
	return resp
}

// UpdateLead applies a partial update. Only the echoed id is returned on success.
func (c *Client) UpdateLead(ctx context.Context, leadID string, updates *Lead) *Response {
	resp := c.do(ctx, "update_lead", http.MethodPatch, fmt.Sprintf("/leads(%s)", leadID), updates)
	if resp.Success {
		c.logger.Info("Updated lead in Dynamics 365", map[string]interface{}{"leadId": leadID})
		return &Response{Success: true, ID: leadID}
	}
	return resp
}

func (c *Client) UpdateOpportunity(ctx context.Context, opportunityID string, updates *Opportunity) *Response {
	resp := c.do(ctx, "update_opportunity", http.MethodPatch, fmt.Sprintf("/opportunities(%s)", opportunityID), updates)
	if resp.Success {
		c.logger.Info("Updated opportunity in Dynamics 365", map[string]interface{}{"opportunityId": opportunityID})
		return &Response{Success: true, ID: opportunityID}
	}
	return resp
}

// TestConnection calls the WhoAmI function.
func (c *Client) TestConnection(ctx context.Context) *Response {
	resp := c.do(ctx, "who_am_i", http.MethodGet, "/WhoAmI", nil)
	if resp.Success {
		c.logger.Info("Dynamics 365 connection test successful", map[string]interface{}{
			"userId": stringField(resp.Details, "UserId"),
		})
	}
	return resp
}

func (c *Client) do(ctx context.Context, operation, method, path string, payload interface{}) (result *Response) {
	if !c.cfg.IsEnabled() {
		return Failure(notEnabledMessage)
	}

	ctx, span := c.tracer.Start(ctx, "dynamics."+operation, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.CRMRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
		metrics.CRMRequests.WithLabelValues(operation, metrics.Outcome(result.Success)).Inc()
		if !result.Success {
			span.SetStatus(codes.Error, result.Error)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		c.logger.Error("Dynamics 365 authentication failed", map[string]interface{}{
			"operation": operation,
			"error":     err.Error(),
		})
		return Failure(errors.AsStandardError(err).Message)
	}

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return Failure(fmt.Sprintf("failed to marshal payload: %s", err.Error()))
		}
		body = bytes.NewReader(jsonData)
	}

	url := c.cfg.APIURL() + path
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.url", url),
	)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return c.transportFailure(operation, err)
	}
	setHeaders(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportFailure(operation, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportFailure(operation, err)
	}
	data := decodeBody(raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiFailure(operation, resp.StatusCode, raw, data)
	}

	return &Response{Success: true, Details: data}
}

func setHeaders(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("OData-MaxVersion", "4.0")
	req.Header.Set("OData-Version", "4.0")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Prefer", "return=representation")
}

// apiFailure prefers the provider's error.message over a generic status message.
func (c *Client) apiFailure(operation string, status int, raw []byte, data interface{}) *Response {
	message := fmt.Sprintf("Request failed with status code %d", status)

	var apiErr apiErrorBody
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
		message = apiErr.Error.Message
	}

	c.logger.Error("Dynamics 365 API error", map[string]interface{}{
		"operation": operation,
		"status":    status,
		"message":   message,
	})

	return &Response{
		Success: false,
		Error:   message,
		Details: ErrorDetails{Status: status, Data: data},
	}
}

func (c *Client) transportFailure(operation string, err error) *Response {
	message := errorMessage(err)
	c.logger.Error("Dynamics 365 request failed", map[string]interface{}{
		"operation": operation,
		"error":     message,
	})
	return &Response{
		Success: false,
		Error:   message,
		Details: ErrorDetails{},
	}
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return unknownError
	}
	return err.Error()
}

// decodeBody returns the JSON value of raw, the raw text when it is not
// JSON, or nil when empty.
func decodeBody(raw []byte) interface{} {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return string(raw)
	}
	return data
}

func stringField(data interface{}, key string) string {
	m, ok := data.(map[string]interface{})
	if !ok {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// NewFromApp wires a Client with a client-credentials token provider backed
// by a fresh cache.
func NewFromApp(c config.Dynamics365Config, log logger.Logger) *Client {
	cfg := ConfigFromApp(c)
	httpClient := &http.Client{Timeout: cfg.Timeout}
	tokens := NewTokenProvider(cfg, NewTokenCache(), NewClientCredentialsAcquirer(httpClient), log)
	return NewClient(cfg, tokens, httpClient, log)
}
