package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// CompletionMessage one message of a chat-completion request
type CompletionMessage struct {
	Role    string `json:"role"` // system | user | assistant
	Content string `json:"content"`
}

// CompletionRequest chat-completion call parameters
type CompletionRequest struct {
	Messages    []CompletionMessage
	MaxTokens   int
	Temperature float64
	JSONObject  bool // request a JSON-object response (sentiment analysis)
}

type chatCompletionBody struct {
	Model          string              `json:"model"`
	Messages       []CompletionMessage `json:"messages"`
	MaxTokens      int                 `json:"max_tokens,omitempty"`
	Temperature    float64             `json:"temperature,omitempty"`
	ResponseFormat *responseFormat     `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// OpenAIClient chat-completion API client
type OpenAIClient struct {
	httpClient *resty.Client
	model      string
	logger     *zap.Logger
}

// NewOpenAIClient creates an OpenAI API client. No retries: a failed call
// falls through to the deterministic fallback responder.
func NewOpenAIClient(baseURL, apiKey, model string, logger *zap.Logger) *OpenAIClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(60 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &OpenAIClient{
		httpClient: client,
		model:      model,
		logger:     logger,
	}
}

// Complete runs one chat completion and returns the first choice's content.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	body := chatCompletionBody{
		Model:       c.model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if req.JSONObject {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	var response chatCompletionResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&response).
		SetError(&response).
		Post("/chat/completions")

	if err != nil {
		c.logger.Error("OpenAI API call failed", zap.Error(err))
		return "", fmt.Errorf("failed to call OpenAI API: %w", err)
	}

	if resp.IsError() {
		msg := "unknown error"
		if response.Error != nil {
			msg = response.Error.Message
		}
		c.logger.Error("OpenAI API returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("msg", msg),
		)
		return "", fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode(), msg)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("OpenAI API returned no choices")
	}
	return response.Choices[0].Message.Content, nil
}
