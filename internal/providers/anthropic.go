package providers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const (
	anthropicDefaultBaseURL = "https://api.anthropic.com"
	anthropicVersion        = "2023-06-01"
)

type anthropicClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type anthropicContent struct {
	Type      string         `json:"type"`
	Text      string         `json:"text,omitempty"`
	ID        string         `json:"id,omitempty"`
	Name      string         `json:"name,omitempty"`
	Input     map[string]any `json:"input,omitempty"`
	ToolUseID string         `json:"tool_use_id,omitempty"`
	Content   string         `json:"content,omitempty"`
}

type anthropicTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"input_schema"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	Messages    []anthropicMessage `json:"messages"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature,omitempty"`
	Stream      bool               `json:"stream,omitempty"`
	System      string             `json:"system,omitempty"`
	Tools       []anthropicTool    `json:"tools,omitempty"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type anthropicStreamEvent struct {
	Type  string `json:"type"`
	Delta *struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
}

func (c *anthropicClient) Kind() Kind {
	return KindAnthropic
}

func (c *anthropicClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	body, key, err := c.prepare(req, false)
	if err != nil {
		return nil, err
	}

	data, err := c.post(ctx, req, key, body)
	if err != nil {
		return nil, err
	}
	defer data.Close()

	var resp anthropicResponse
	if err := json.NewDecoder(data).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode anthropic response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("anthropic API error: %s", resp.Error.Message)
	}

	completion := &Completion{}
	for _, content := range resp.Content {
		switch content.Type {
		case "text":
			completion.Content += content.Text
		case "tool_use":
			completion.ToolCalls = append(completion.ToolCalls, ToolCall{
				ID:        content.ID,
				Name:      content.Name,
				Arguments: content.Input,
			})
		}
	}
	return completion, nil
}

func (c *anthropicClient) Stream(ctx context.Context, req Request) (<-chan StreamChunk, error) {
	body, key, err := c.prepare(req, true)
	if err != nil {
		return nil, err
	}

	data, err := c.post(ctx, req, key, body)
	if err != nil {
		return nil, err
	}

	out := make(chan StreamChunk, 64)
	go func() {
		defer close(out)
		defer data.Close()

		scanner := bufio.NewScanner(data)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data:") {
				continue
			}
			payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))

			var event anthropicStreamEvent
			if err := json.Unmarshal([]byte(payload), &event); err != nil {
				continue
			}

			switch event.Type {
			case "content_block_delta":
				if event.Delta != nil && event.Delta.Text != "" {
					select {
					case out <- StreamChunk{Content: event.Delta.Text}:
					case <-ctx.Done():
						return
					}
				}
			case "message_stop":
				out <- StreamChunk{Done: true}
				return
			}
		}

		if err := scanner.Err(); err != nil {
			out <- StreamChunk{Err: err}
			return
		}
		out <- StreamChunk{Done: true}
	}()

	return out, nil
}

// prepare builds the Anthropic payload. Instructions go in the dedicated
// system field; tool results travel as user messages with tool_result blocks.
func (c *anthropicClient) prepare(req Request, stream bool) (*anthropicRequest, string, error) {
	key := req.APIKey
	if key == "" {
		key = c.apiKey
	}
	if key == "" {
		return nil, "", missingKey(KindAnthropic)
	}

	messages := make([]anthropicMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		switch {
		case msg.Role == "system":
			continue
		case msg.Role == "tool":
			messages = append(messages, anthropicMessage{
				Role: "user",
				Content: []anthropicContent{{
					Type:      "tool_result",
					ToolUseID: msg.ToolCallID,
					Content:   msg.Content,
				}},
			})
		case msg.Role == "assistant" && len(msg.ToolCalls) > 0:
			contents := []anthropicContent{}
			if msg.Content != "" {
				contents = append(contents, anthropicContent{Type: "text", Text: msg.Content})
			}
			for _, call := range msg.ToolCalls {
				contents = append(contents, anthropicContent{
					Type:  "tool_use",
					ID:    call.ID,
					Name:  call.Name,
					Input: call.Arguments,
				})
			}
			messages = append(messages, anthropicMessage{Role: "assistant", Content: contents})
		default:
			messages = append(messages, anthropicMessage{Role: msg.Role, Content: msg.Content})
		}
	}

	body := &anthropicRequest{
		Model:       req.Settings.Model,
		Messages:    messages,
		MaxTokens:   req.Settings.MaxTokens,
		Temperature: req.Settings.Temperature,
		Stream:      stream,
		System:      req.Instructions,
	}

	for _, tool := range req.Tools {
		body.Tools = append(body.Tools, anthropicTool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.Parameters,
		})
	}

	return body, key, nil
}

func (c *anthropicClient) post(ctx context.Context, req Request, key string, body *anthropicRequest) (io.ReadCloser, error) {
	baseURL := req.BaseURL
	if baseURL == "" {
		baseURL = c.baseURL
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimSuffix(baseURL, "/")+"/v1/messages", bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", key)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &APIError{Vendor: KindAnthropic, Status: resp.StatusCode, Body: string(raw)}
	}

	return resp.Body, nil
}
