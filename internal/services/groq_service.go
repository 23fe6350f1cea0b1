package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"deployhub/internal/apperror"
	"deployhub/internal/config"
)

// GroqService is a thin client for the Groq chat-completion API. One request,
// no retries; callers decide how to degrade when the call fails.
type GroqService struct {
	cfg    config.GroqConfig
	client *http.Client
}

func NewGroqService(cfg config.GroqConfig) *GroqService {
	return &GroqService{
		cfg: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one system+user prompt pair and returns the first choice's
// content with surrounding whitespace trimmed.
func (s *GroqService) Complete(systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	body := chatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", apperror.Upstream(0, fmt.Sprintf("chat completion request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return "", apperror.Upstream(resp.StatusCode, "chat completion request rejected")
	}

	var parsed chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", apperror.Upstream(resp.StatusCode, fmt.Sprintf("failed to decode chat completion response: %v", err))
	}

	if len(parsed.Choices) == 0 {
		return "", apperror.EmptyResponse()
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", apperror.EmptyResponse()
	}

	return content, nil
}
