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

const openAIDefaultBaseURL = "https://api.openai.com"

type openAIClient struct {
	kind        Kind
	apiKey      string
	baseURL     string
	optionalKey bool
	http        *http.Client
	logger      *slog.Logger
}

type chatMessage struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	ToolCalls []chatToolCall `json:"tool_calls,omitempty"`
}

type chatToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function chatCallFunction `json:"function"`
}

type chatCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type chatTool struct {
	Type     string       `json:"type"`
	Function chatFunction `json:"function"`
}

type chatFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream,omitempty"`
	Tools       []chatTool    `json:"tools,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string         `json:"content"`
			ToolCalls []chatToolCall `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

type chatStreamResponse struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

func (c *openAIClient) Kind() Kind {
	return c.kind
}

func (c *openAIClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	body, key, err := c.prepare(req, false)
	if err != nil {
		return nil, err
	}

	data, err := c.post(ctx, req, key, body)
	if err != nil {
		return nil, err
	}
	defer data.Close()

	var resp chatResponse
	if err := json.NewDecoder(data).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", c.kind, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s response contained no choices", c.kind)
	}

	choice := resp.Choices[0].Message
	completion := &Completion{Content: choice.Content}
	for _, call := range choice.ToolCalls {
		var args map[string]any
		if call.Function.Arguments != "" {
			json.Unmarshal([]byte(call.Function.Arguments), &args)
		}
		completion.ToolCalls = append(completion.ToolCalls, ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: args,
		})
	}
	return completion, nil
}

func (c *openAIClient) Stream(ctx context.Context, req Request) (<-chan StreamChunk, error) {
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
			if payload == "[DONE]" {
				out <- StreamChunk{Done: true}
				return
			}

			var chunk chatStreamResponse
			if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
				continue
			}
			if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
				select {
				case out <- StreamChunk{Content: chunk.Choices[0].Delta.Content}:
				case <-ctx.Done():
					return
				}
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

func (c *openAIClient) prepare(req Request, stream bool) (*chatRequest, string, error) {
	key := req.APIKey
	if key == "" {
		key = c.apiKey
	}
	if key == "" && !c.optionalKey {
		return nil, "", missingKey(c.kind)
	}

	messages := make([]chatMessage, 0, len(req.Messages)+1)
	if req.Instructions != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.Instructions})
	}

	for _, msg := range req.Messages {
		switch {
		case msg.Role == "tool":
			// Tool results become assistant messages carrying the call id.
			messages = append(messages, chatMessage{
				Role:    "assistant",
				Content: fmt.Sprintf("[tool result %s] %s", msg.ToolCallID, msg.Content),
			})
		case msg.Role == "assistant" && len(msg.ToolCalls) > 0:
			calls := make([]chatToolCall, len(msg.ToolCalls))
			for i, call := range msg.ToolCalls {
				args, _ := json.Marshal(call.Arguments)
				calls[i] = chatToolCall{
					ID:   call.ID,
					Type: "function",
					Function: chatCallFunction{
						Name:      call.Name,
						Arguments: string(args),
					},
				}
			}
			messages = append(messages, chatMessage{
				Role:      "assistant",
				Content:   msg.Content,
				ToolCalls: calls,
			})
		default:
			messages = append(messages, chatMessage{Role: msg.Role, Content: msg.Content})
		}
	}

	body := &chatRequest{
		Model:       req.Settings.Model,
		Messages:    messages,
		Temperature: req.Settings.Temperature,
		MaxTokens:   req.Settings.MaxTokens,
		Stream:      stream,
	}

	for _, tool := range req.Tools {
		body.Tools = append(body.Tools, chatTool{
			Type: "function",
			Function: chatFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}

	return body, key, nil
}

func (c *openAIClient) post(ctx context.Context, req Request, key string, body *chatRequest) (io.ReadCloser, error) {
	baseURL := req.BaseURL
	if baseURL == "" {
		baseURL = c.baseURL
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimSuffix(baseURL, "/")+"/v1/chat/completions", bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if key != "" {
		httpReq.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", c.kind, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &APIError{Vendor: c.kind, Status: resp.StatusCode, Body: string(raw)}
	}

	return resp.Body, nil
}
