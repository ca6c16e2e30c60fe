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

const googleDefaultBaseURL = "https://generativelanguage.googleapis.com"

type googleClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

type googlePart struct {
	Text         string `json:"text,omitempty"`
	FunctionCall *struct {
		Name string         `json:"name"`
		Args map[string]any `json:"args"`
	} `json:"functionCall,omitempty"`
}

type googleContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []googlePart `json:"parts"`
}

type googleFunctionDecl struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters"`
}

type googleRequest struct {
	Contents          []googleContent `json:"contents"`
	SystemInstruction *googleContent  `json:"systemInstruction,omitempty"`
	GenerationConfig  struct {
		Temperature     float64 `json:"temperature,omitempty"`
		MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	} `json:"generationConfig"`
	Tools []struct {
		FunctionDeclarations []googleFunctionDecl `json:"functionDeclarations"`
	} `json:"tools,omitempty"`
}

type googleResponse struct {
	Candidates []struct {
		Content googleContent `json:"content"`
	} `json:"candidates"`
}

func (c *googleClient) Kind() Kind {
	return KindGoogle
}

func (c *googleClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	body, key, err := c.prepare(req)
	if err != nil {
		return nil, err
	}

	data, err := c.post(ctx, req, key, body, "generateContent", "")
	if err != nil {
		return nil, err
	}
	defer data.Close()

	var resp googleResponse
	if err := json.NewDecoder(data).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode google response: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("google response contained no candidates")
	}

	completion := &Completion{}
	for i, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			completion.Content += part.Text
		}
		if part.FunctionCall != nil {
			completion.ToolCalls = append(completion.ToolCalls, ToolCall{
				ID:        fmt.Sprintf("call_%d", i),
				Name:      part.FunctionCall.Name,
				Arguments: part.FunctionCall.Args,
			})
		}
	}
	return completion, nil
}

func (c *googleClient) Stream(ctx context.Context, req Request) (<-chan StreamChunk, error) {
	body, key, err := c.prepare(req)
	if err != nil {
		return nil, err
	}

	data, err := c.post(ctx, req, key, body, "streamGenerateContent", "alt=sse")
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

			var chunk googleResponse
			if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
				continue
			}
			if len(chunk.Candidates) == 0 {
				continue
			}
			for _, part := range chunk.Candidates[0].Content.Parts {
				if part.Text == "" {
					continue
				}
				select {
				case out <- StreamChunk{Content: part.Text}:
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

// prepare builds the Gemini payload. Instructions ride in the dedicated
// systemInstruction block and assistant history remaps to the "model" role.
func (c *googleClient) prepare(req Request) (*googleRequest, string, error) {
	key := req.APIKey
	if key == "" {
		key = c.apiKey
	}
	if key == "" {
		return nil, "", missingKey(KindGoogle)
	}

	body := &googleRequest{}
	body.GenerationConfig.Temperature = req.Settings.Temperature
	body.GenerationConfig.MaxOutputTokens = req.Settings.MaxTokens

	if req.Instructions != "" {
		body.SystemInstruction = &googleContent{
			Parts: []googlePart{{Text: req.Instructions}},
		}
	}

	for _, msg := range req.Messages {
		role := "user"
		text := msg.Content
		switch msg.Role {
		case "system":
			continue
		case "assistant":
			role = "model"
		case "tool":
			text = fmt.Sprintf("[tool result %s] %s", msg.ToolCallID, msg.Content)
		}
		body.Contents = append(body.Contents, googleContent{
			Role:  role,
			Parts: []googlePart{{Text: text}},
		})
	}

	if len(req.Tools) > 0 {
		decls := make([]googleFunctionDecl, len(req.Tools))
		for i, tool := range req.Tools {
			decls[i] = googleFunctionDecl{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			}
		}
		body.Tools = []struct {
			FunctionDeclarations []googleFunctionDecl `json:"functionDeclarations"`
		}{{FunctionDeclarations: decls}}
	}

	return body, key, nil
}

func (c *googleClient) post(ctx context.Context, req Request, key string, body *googleRequest, method, query string) (io.ReadCloser, error) {
	baseURL := req.BaseURL
	if baseURL == "" {
		baseURL = c.baseURL
	}

	// Vendor-prefixed names such as gemini/gemini-pro reach this adapter only
	// through configuration overrides; strip the prefix for the URL path.
	model := strings.TrimPrefix(req.Settings.Model, "gemini/")

	url := fmt.Sprintf("%s/v1beta/models/%s:%s?key=%s",
		strings.TrimSuffix(baseURL, "/"), model, method, key)
	if query != "" {
		url += "&" + query
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("google request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &APIError{Vendor: KindGoogle, Status: resp.StatusCode, Body: string(raw)}
	}

	return resp.Body, nil
}
