// internal/services/ai/rfp-assistant/llm.go
package rfpassistant

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"rfp-dashboard/internal/common/errors"
	"rfp-dashboard/internal/common/logger"
	"rfp-dashboard/internal/common/metrics"
)

const completionsPath = "/v1/chat/completions"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OutputSchema constrains a completion to a named JSON schema.
type OutputSchema struct {
	Name   string
	Schema map[string]interface{}
}

type CompletionRequest struct {
	Messages []Message
	Output   *OutputSchema
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type       string         `json:"type"`
	JSONSchema jsonSchemaFormat `json:"json_schema"`
}

type jsonSchemaFormat struct {
	Name   string                 `json:"name"`
	Strict bool                   `json:"strict"`
	Schema map[string]interface{} `json:"schema"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content interface{} `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// LLMClient calls an OpenAI-compatible chat completions endpoint.
type LLMClient struct {
	config     *Config
	httpClient *http.Client
	logger     logger.Logger
}

// NewLLMClient builds a client. The per-call deadline comes from the context
// created in Complete, so httpClient should not carry its own timeout.
func NewLLMClient(config *Config, httpClient *http.Client, log logger.Logger) *LLMClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &LLMClient{config: config, httpClient: httpClient, logger: log}
}

// Complete returns the message content of the first choice. When req.Output
// is set the content is validated against its schema before returning.
func (c *LLMClient) Complete(ctx context.Context, operation string, req CompletionRequest) (content string, err error) {
	defer func() {
		metrics.LLMRequests.WithLabelValues(operation, metrics.Outcome(err == nil)).Inc()
	}()

	if !c.config.IsConfigured() {
		return "", errors.NewLLMRequestFailedError(fmt.Errorf("llm base url or api key not configured"))
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	payload := chatRequest{
		Model:       c.config.Model,
		Messages:    req.Messages,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}
	if req.Output != nil {
		payload.ResponseFormat = &responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchemaFormat{
				Name:   req.Output.Name,
				Strict: true,
				Schema: req.Output.Schema,
			},
		}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.NewLLMRequestFailedError(err)
	}

	raw, err := c.post(ctx, body)
	if err != nil {
		c.logger.Error("LLM request failed", map[string]interface{}{
			"operation": operation,
			"error":     err.Error(),
		})
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", errors.NewLLMInvalidOutputError(fmt.Sprintf("decode response: %v", err))
	}
	if len(parsed.Choices) == 0 {
		return "", errors.NewLLMInvalidOutputError("response has no choices")
	}
	text, ok := parsed.Choices[0].Message.Content.(string)
	if !ok {
		return "", errors.NewLLMInvalidOutputError("message content is not text")
	}

	if req.Output != nil {
		if err := validateOutput(req.Output.Schema, text); err != nil {
			c.logger.Warn("LLM output failed schema validation", map[string]interface{}{
				"operation": operation,
				"schema":    req.Output.Name,
				"error":     err.Error(),
			})
			return "", err
		}
	}

	c.logger.Info("LLM completion received", map[string]interface{}{
		"operation": operation,
		"length":    len(text),
	})
	return text, nil
}

// post sends body with exponential backoff between attempts. Transport
// errors, 429 and 5xx are retried; other statuses fail immediately.
func (c *LLMClient) post(ctx context.Context, body []byte) ([]byte, error) {
	url := strings.TrimRight(c.config.BaseURL, "/") + completionsPath
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, errors.NewLLMTimeoutError()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, errors.NewLLMRequestFailedError(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.NewLLMTimeoutError()
			}
			lastErr = err
			continue
		}

		raw, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			if ctx.Err() != nil {
				return nil, errors.NewLLMTimeoutError()
			}
			lastErr = readErr
			continue
		}

		if resp.StatusCode == http.StatusOK {
			return raw, nil
		}

		lastErr = fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(raw), 200))
		if !retryableStatus(resp.StatusCode) {
			break
		}
	}

	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, errors.NewLLMTimeoutError()
	}
	return nil, errors.NewLLMRequestFailedError(lastErr)
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func validateOutput(schema map[string]interface{}, content string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewStringLoader(content),
	)
	if err != nil {
		return errors.NewLLMInvalidOutputError(err.Error())
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return errors.NewLLMInvalidOutputError(strings.Join(msgs, "; "))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
