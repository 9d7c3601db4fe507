// Package llm is a client for the hosted generative AI endpoint.
// It accepts both the toolkit response shape ({"completion": "..."}) and the
// OpenAI-compatible chat shape ({"choices": [{"message": {"content": "..."}}]}).
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
	"github.com/rs/zerolog/log"
)

const maxResponseBytes = 2 << 20

type contentPart struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
}

type message struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type request struct {
	Model    string    `json:"model,omitempty"`
	Messages []message `json:"messages"`
}

type response struct {
	Completion string `json:"completion"`
	Choices    []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client sends conversations to the generative AI endpoint
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	model      string
	debug      bool
}

// NewClient creates a new AI client. An empty endpoint yields a client whose
// calls fail with domain.ErrAIUnavailable.
func NewClient(endpoint, apiKey, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   strings.TrimSpace(endpoint),
		apiKey:     apiKey,
		model:      model,
	}
}

// SetDebug enables logging of raw completions
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Configured reports whether an endpoint is set
func (c *Client) Configured() bool {
	return c.endpoint != ""
}

// Complete sends messages and returns the model's text completion
func (c *Client) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("%w: no endpoint configured", domain.ErrAIUnavailable)
	}

	payload, err := json.Marshal(request{Model: c.model, Messages: encodeMessages(messages)})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "HealthSnap/1.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAIUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", domain.ErrAIUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrAIUnavailable, resp.StatusCode, truncate(string(body), 200))
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", domain.ErrAIResponseInvalid, err)
	}

	completion := parsed.Completion
	if completion == "" && len(parsed.Choices) > 0 {
		completion = parsed.Choices[0].Message.Content
	}
	if strings.TrimSpace(completion) == "" {
		return "", fmt.Errorf("%w: empty completion", domain.ErrAIResponseInvalid)
	}

	if c.debug {
		log.Debug().
			Str("component", "llm").
			Dur("elapsed", time.Since(start)).
			Str("completion", truncate(completion, 500)).
			Msg("completion received")
	}

	return completion, nil
}

// encodeMessages uses plain string content for text-only turns and a parts array otherwise
func encodeMessages(messages []domain.ChatMessage) []message {
	out := make([]message, 0, len(messages))
	for _, m := range messages {
		if len(m.Parts) == 1 && m.Parts[0].Image == "" {
			out = append(out, message{Role: m.Role, Content: m.Parts[0].Text})
			continue
		}
		parts := make([]contentPart, 0, len(m.Parts))
		for _, p := range m.Parts {
			if p.Image != "" {
				parts = append(parts, contentPart{Type: "image", Image: p.Image})
			} else {
				parts = append(parts, contentPart{Type: "text", Text: p.Text})
			}
		}
		out = append(out, message{Role: m.Role, Content: parts})
	}
	return out
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

var _ domain.TextGenerator = (*Client)(nil)
