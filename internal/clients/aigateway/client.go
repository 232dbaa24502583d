package aigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/folio-backend/internal/platform/logger"
)

// Client is the LLM gateway used for categorization and layout generation.
// Every call is a single-shot, schema-constrained JSON completion: one
// attempt, no retries. Failures are absorbed by the calling service, which
// substitutes a deterministic fallback.
type Client interface {
	GenerateJSON(ctx context.Context, system, user string, schemaName string, schema map[string]any) ([]byte, error)
}

type client struct {
	log         *logger.Logger
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	apiKey := strings.TrimSpace(os.Getenv("AI_GATEWAY_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing AI_GATEWAY_API_KEY")
	}

	baseURL := strings.TrimSpace(os.Getenv("AI_GATEWAY_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	model := strings.TrimSpace(os.Getenv("AI_GATEWAY_MODEL"))
	if model == "" {
		model = "gpt-4o-mini"
	}

	timeoutSec := 60
	if v := strings.TrimSpace(os.Getenv("AI_GATEWAY_TIMEOUT_SECONDS")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	temperature := 0.7
	if v := strings.TrimSpace(os.Getenv("AI_GATEWAY_TEMPERATURE")); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			temperature = parsed
		}
	}

	maxTokens := 4096
	if v := strings.TrimSpace(os.Getenv("AI_GATEWAY_MAX_TOKENS")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxTokens = parsed
		}
	}

	return &client{
		log:         log.With("service", "AIGatewayClient"),
		httpClient:  &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

type gatewayMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type       string         `json:"type"`
	JSONSchema map[string]any `json:"json_schema,omitempty"`
}

type chatRequest struct {
	Model          string           `json:"model"`
	Messages       []gatewayMessage `json:"messages"`
	Temperature    float64          `json:"temperature"`
	MaxTokens      int              `json:"max_tokens"`
	ResponseFormat *responseFormat  `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type gatewayHTTPError struct {
	StatusCode int
	Body       string
}

func (e *gatewayHTTPError) Error() string {
	return fmt.Sprintf("ai gateway http %d: %s", e.StatusCode, e.Body)
}

func (c *client) GenerateJSON(ctx context.Context, system, user string, schemaName string, schema map[string]any) ([]byte, error) {
	if schemaName == "" {
		return nil, fmt.Errorf("schemaName required")
	}
	if schema == nil {
		return nil, fmt.Errorf("schema required")
	}

	req := chatRequest{
		Model: c.model,
		Messages: []gatewayMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		ResponseFormat: &responseFormat{
			Type: "json_schema",
			JSONSchema: map[string]any{
				"name":   schemaName,
				"schema": schema,
				"strict": true,
			},
		},
	}

	var resp chatResponse
	if err := c.doOnce(ctx, "POST", "/chat/completions", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("ai gateway: empty choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("ai gateway: empty content")
	}
	return []byte(content), nil
}

func (c *client) doOnce(ctx context.Context, method, path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &gatewayHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("ai gateway decode error: %w", err)
	}
	return nil
}
