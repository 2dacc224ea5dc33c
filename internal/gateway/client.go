// Package gateway provides the OpenAI-compatible chat completions client for
// the OpenClaw gateway.
package gateway

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxErrorBody bounds how much of an upstream error body is echoed to callers.
const maxErrorBody = 500

// Client is the OpenClaw gateway client.
type Client struct {
	baseURL string
	token   string
	agentID string

	// httpClient bounds non-streaming calls with a total timeout. Streaming
	// calls go through streamClient, which has no timeout: the stream stays
	// open until the gateway sends [DONE] or closes the connection.
	httpClient   *http.Client
	streamClient *http.Client
}

// NewClient creates a new gateway client. The timeout applies to
// non-streaming calls only.
func NewClient(baseURL, token, agentID string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		agentID: agentID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		streamClient: &http.Client{},
	}
}

// ChatMessage represents a chat message.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionRequest is the gateway request body.
type chatCompletionRequest struct {
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

// chatCompletionResponse extracts the first choice's message content.
// Pointers distinguish absent fields from empty ones.
type chatCompletionResponse struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// streamChunk extracts the first choice's incremental delta content.
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// CreateChatCompletion sends a non-streaming chat completion request and
// returns the reply text.
func (c *Client) CreateChatCompletion(ctx context.Context, userText, senderID string) (string, error) {
	resp, err := c.post(ctx, userText, senderID, false, c.httpClient)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("Gateway error: %v", err)
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("Bad gateway response: %v", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("Bad gateway response: missing choices")
	}
	msg := result.Choices[0].Message
	if msg == nil || msg.Content == nil {
		return "", fmt.Errorf("Bad gateway response: missing message content")
	}
	return *msg.Content, nil
}

// OpenStream sends a streaming chat completion request and returns the open
// stream once the gateway has accepted it. An error here means no stream was
// established.
func (c *Client) OpenStream(ctx context.Context, userText, senderID string) (*Stream, error) {
	resp, err := c.post(ctx, userText, senderID, true, c.streamClient)
	if err != nil {
		return nil, err
	}
	return &Stream{
		body:   resp.Body,
		reader: bufio.NewReader(resp.Body),
	}, nil
}

// post issues the chat completions request and folds connection failures and
// non-2xx statuses into gateway errors. On success the caller owns the body.
func (c *Client) post(ctx context.Context, userText, senderID string, stream bool, client *http.Client) (*http.Response, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Messages: []ChatMessage{{Role: "user", Content: userText}},
		Stream:   stream,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(httpReq, senderID)

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("Gateway error: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("Gateway error: %s", truncate(string(respBody), maxErrorBody))
	}
	return resp, nil
}

// setHeaders sets common request headers, including the optional agent and
// sender identity headers the gateway uses for session pinning.
func (c *Client) setHeaders(req *http.Request, senderID string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	if c.agentID != "" {
		req.Header.Set("x-openclaw-agent-id", c.agentID)
	}
	if senderID != "" {
		req.Header.Set("x-openclaw-user", senderID)
	}
}

// Stream is an open streaming chat completion.
type Stream struct {
	body   io.ReadCloser
	reader *bufio.Reader
}

// Recv returns the next non-empty delta fragment. Lines without the SSE data
// prefix, malformed chunks, and chunks without delta content are skipped.
// io.EOF signals the end of the stream, via the [DONE] sentinel or the
// gateway closing the connection.
func (s *Stream) Recv() (string, error) {
	for {
		line, err := s.reader.ReadString('\n')
		if len(line) == 0 && err != nil {
			return "", err
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "data: ") {
			data := strings.TrimPrefix(trimmed, "data: ")
			if data == "[DONE]" {
				return "", io.EOF
			}
			var chunk streamChunk
			// Skip malformed chunks
			if jsonErr := json.Unmarshal([]byte(data), &chunk); jsonErr == nil && len(chunk.Choices) > 0 {
				if content := chunk.Choices[0].Delta.Content; content != "" {
					return content, nil
				}
			}
		}

		if err != nil {
			return "", err
		}
	}
}

// Close releases the underlying gateway connection.
func (s *Stream) Close() error {
	return s.body.Close()
}

// truncate keeps at most n characters, never splitting a multibyte rune.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
