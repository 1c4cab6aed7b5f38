package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.openai.com/v1"

const systemPrompt = `You translate a player's free-form text into exactly one command
from a fixed list for a text adventure. Respond with JSON: {"command": "..."}.
Fill bracketed placeholders with names visible in the provided context.
If no command fits, echo the player's input unchanged as the command.`

// chatMessage is one message in a chat completion request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the body for the chat completions endpoint.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// chatResponse is the subset of the completion response the oracle reads.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// OpenAI maps commands through an OpenAI-compatible chat completions
// endpoint.
type OpenAI struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewOpenAI creates a mapper for the given API key and model. A zero timeout
// in cfg defaults to ten seconds.
func NewOpenAI(cfg Config, log *slog.Logger) *OpenAI {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &OpenAI{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// MapCommand asks the model for one canonical command. Every transport,
// decoding, or content problem collapses to ErrNoMapping after a debug log,
// so a flaky endpoint degrades to the parser's normal failure message.
func (o *OpenAI) MapCommand(ctx context.Context, req Request) (string, error) {
	cmd, err := o.mapCommand(ctx, req)
	if err != nil {
		o.log.Debug("oracle request failed", "error", err)
		return "", ErrNoMapping
	}
	return cmd, nil
}

func (o *OpenAI) mapCommand(ctx context.Context, req Request) (string, error) {
	body := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(req)},
		},
		Temperature:    0,
		MaxTokens:      60,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	reqBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}

	var cr chatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("api error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	var answer struct {
		Command string `json:"command"`
	}
	if err := json.Unmarshal([]byte(cr.Choices[0].Message.Content), &answer); err != nil {
		return "", fmt.Errorf("decoding answer: %w", err)
	}
	cmd := strings.TrimSpace(answer.Command)
	if cmd == "" {
		return "", fmt.Errorf("empty command in answer")
	}
	return cmd, nil
}

// buildPrompt renders the user message: templates, surroundings, recent
// history, and the player's input.
func buildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("Valid commands:\n")
	for _, c := range req.Commands {
		b.WriteString("  " + c + "\n")
	}
	if len(req.Context) > 0 {
		b.WriteString("\nCurrent situation:\n")
		for _, line := range req.Context {
			b.WriteString("  " + line + "\n")
		}
	}
	if len(req.History) > 0 {
		b.WriteString("\nRecent exchange:\n")
		for _, line := range req.History {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\nPlayer input: " + req.Input + "\n")
	return b.String()
}
