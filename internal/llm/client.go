package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shaz1409/maturity-auto/internal/config"
	"github.com/shaz1409/maturity-auto/internal/utils/httputils"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.SugaredLogger
	cfg        *config.LlmConfig
	rawBodyLog bool
}

func NewClient(cfg *config.Config, logger *zap.SugaredLogger) (*Client, error) {
	if cfg.Llm.URL == "" || cfg.Llm.Token == "" {
		return nil, fmt.Errorf("LLM_URL and LLM_TOKEN are required")
	}

	return &Client{
		baseURL: cfg.Llm.URL,
		token:   cfg.Llm.Token,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.App.HttpTimeoutSeconds) * time.Second,
		},
		logger:     logger,
		cfg:        &cfg.Llm,
		rawBodyLog: cfg.App.RawBodyLog,
	}, nil
}

// Complete sends one chat-completion request and returns the raw reply text.
// Temperature and output length come from configuration; no retries.
func (c *Client) Complete(systemPrompt, userPrompt string) (string, error) {
	reqBody := ChatRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Stream:      false,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	c.logger.Debugf("Sending LLM request: %s", string(jsonBody))

	req, err := http.NewRequest("POST", c.baseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	c.setAuthHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	_, err = httputils.LogResponseBody(resp, c.logger, c.rawBodyLog)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.handleAPIError(resp)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debugf("LLM usage - prompt_tokens: %d, completion_tokens: %d, total_tokens: %d",
		chatResp.Usage.PromptTokens,
		chatResp.Usage.CompletionTokens,
		chatResp.Usage.TotalTokens)

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from LLM")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
}

func (c *Client) handleAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
		Body:       string(body),
	}
}
