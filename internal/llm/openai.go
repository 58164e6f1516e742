// Package llm provides domain.Generator implementations: an
// OpenAI-compatible chat-completions client and an offline extractive
// generator for running without an API key.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// historyLimit caps the number of retained chat turns so long sessions do
// not grow the request without bound.
const historyLimit = 20

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAI is an OpenAI-compatible chat-completions client with a persona
// (system prompt) and a bounded conversation history.
type OpenAI struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	client      *http.Client

	persona string
	history []chatMessage
	calls   int
}

// OpenAIConfig configures the chat client. The API key is read from the
// environment variable named by APIKeyEnv. Low temperatures keep answers
// close to the provided context.
type OpenAIConfig struct {
	BaseURL     string
	APIKeyEnv   string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// NewOpenAI creates a chat client using the provided configuration.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 60 * time.Second
	}
	return &OpenAI{
		baseURL:     cfg.BaseURL,
		apiKey:      key,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: t},
	}, nil
}

// Name returns the identifier of this generator implementation.
func (c *OpenAI) Name() string { return "openai" }

// SetPersona sets the system prompt sent with every request.
func (c *OpenAI) SetPersona(persona string) { c.persona = persona }

// ClearHistory drops the accumulated conversation turns.
func (c *OpenAI) ClearHistory() { c.history = nil }

// Calls reports how many completion requests have been made.
func (c *OpenAI) Calls() int { return c.calls }

// Generate produces a one-shot completion for prompt. Conversation history
// is not consulted or extended.
func (c *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, c.withPersona([]chatMessage{{Role: "user", Content: prompt}}))
}

// Chat sends message with the conversation so far and records both sides
// in the history, trimming the oldest turns past the limit.
func (c *OpenAI) Chat(ctx context.Context, message string) (string, error) {
	messages := append(append([]chatMessage(nil), c.history...), chatMessage{Role: "user", Content: message})
	reply, err := c.complete(ctx, c.withPersona(messages))
	if err != nil {
		return "", err
	}
	c.history = append(c.history,
		chatMessage{Role: "user", Content: message},
		chatMessage{Role: "assistant", Content: reply},
	)
	if len(c.history) > historyLimit {
		c.history = c.history[len(c.history)-historyLimit:]
	}
	return reply, nil
}

func (c *OpenAI) withPersona(messages []chatMessage) []chatMessage {
	if c.persona == "" {
		return messages
	}
	return append([]chatMessage{{Role: "system", Content: c.persona}}, messages...)
}

func (c *OpenAI) complete(ctx context.Context, messages []chatMessage) (string, error) {
	body := map[string]any{
		"model":       c.model,
		"messages":    messages,
		"temperature": c.temperature,
	}
	data, _ := json.Marshal(body)
	url := fmt.Sprintf("%s/chat/completions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("chat completion failed: %s", resp.Status)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	var out struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return "", fmt.Errorf("decode chat completion: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no completion returned")
	}
	c.calls++
	return out.Choices[0].Message.Content, nil
}
