// Package openrouter implements generation.Client against the OpenRouter
// chat completions API.
package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	retry "github.com/avast/retry-go/v4"
	"resty.dev/v3"

	"github.com/mzalewski/cardlearn/internal/generation"
)

const systemPrompt = `You are a flashcard generator. Generate educational flashcards from the provided text.
Each flashcard should have a clear question (front) and concise answer (back).
Return ONLY a valid JSON array of objects with "front" and "back" fields.
Generate 5-15 flashcards depending on content richness.
Make questions specific and answers concise but complete.
Example format: [{"front": "What is X?", "back": "X is..."}]`

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(timeout)

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// isRetryableError determines if an error should trigger a retry.
// Rate limiting is deliberately not retried: backing off against a quota
// rejection just burns more quota.
func isRetryableError(err error) bool {
	return errors.Is(err, generation.ErrUnavailable) || errors.Is(err, generation.ErrParse)
}

// GenerateFlashcards implements the generation.Client interface.
func (client *Client) GenerateFlashcards(ctx context.Context, sourceText string) ([]generation.Proposal, error) {
	var result []generation.Proposal
	if err := retry.Do(
		func() error {
			proposals, err := client.generateFlashcards(ctx, sourceText)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = proposals
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Info("Retrying OpenRouter API call",
				"attempt", n,
				"error", err)
		}),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return nil, err
	}
	return result, nil
}

func (client *Client) generateFlashcards(ctx context.Context, sourceText string) ([]generation.Proposal, error) {
	request := ChatCompletionRequest{
		Model: client.model,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: sourceText},
		},
		Temperature: 0.7,
		MaxTokens:   4000,
	}

	var response ChatCompletionResponse
	resp, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode() == 429:
		return nil, generation.ErrRateLimited
	case resp.StatusCode() >= 500:
		return nil, fmt.Errorf("%w: response error %d", generation.ErrUnavailable, resp.StatusCode())
	case resp.IsError():
		return nil, retryUnrecoverableStatus(resp.StatusCode())
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", generation.ErrParse)
	}

	return parseProposals(response.Choices[0].Message.Content)
}

// Non-retryable 4xx responses mean the request itself is wrong.
func retryUnrecoverableStatus(status int) error {
	return fmt.Errorf("openrouter response error %d", status)
}

// parseProposals extracts the proposal array from the model output.
// Models occasionally wrap the JSON in a markdown code fence or prose;
// everything outside the outermost brackets is discarded.
func parseProposals(content string) ([]generation.Proposal, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON array in model output", generation.ErrParse)
	}

	var raw []generation.Proposal
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("%w: json.Unmarshal() failed: %v", generation.ErrParse, err)
	}

	proposals := make([]generation.Proposal, 0, len(raw))
	for _, proposal := range raw {
		front := strings.TrimSpace(proposal.Front)
		back := strings.TrimSpace(proposal.Back)
		if front == "" || back == "" {
			continue
		}
		proposals = append(proposals, generation.Proposal{Front: front, Back: back})
	}
	if len(proposals) == 0 {
		return nil, fmt.Errorf("%w: no usable proposals in model output", generation.ErrParse)
	}
	return proposals, nil
}
