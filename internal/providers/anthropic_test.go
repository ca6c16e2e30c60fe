package providers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/config"
	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/providers"
)

func anthropicClient(t *testing.T, baseURL, key string) providers.Client {
	t.Helper()
	cfg := &config.ProvidersConfig{
		Anthropic: config.VendorConfig{APIKey: key, BaseURL: baseURL},
		Timeout:   "5s",
	}
	return providers.New(providers.KindAnthropic, cfg, testLogger())
}

func TestAnthropicComplete(t *testing.T) {
	var captured struct {
		path    string
		key     string
		version string
		body    map[string]any
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.key = r.Header.Get("x-api-key")
		captured.version = r.Header.Get("anthropic-version")
		json.NewDecoder(r.Body).Decode(&captured.body)

		fmt.Fprint(w, `{
			"content": [
				{"type": "text", "text": "Paris"},
				{"type": "tool_use", "id": "toolu_1", "name": "lookup", "input": {"q": "capital"}}
			]
		}`)
	}))
	defer server.Close()

	client := anthropicClient(t, server.URL, "sk-ant")

	completion, err := client.Complete(context.Background(), providers.Request{
		Instructions: "Answer concisely.",
		Messages: []providers.Message{
			{Role: "system", Content: "history system, dropped"},
			{Role: "user", Content: "Capital of France?"},
		},
		Settings: providers.Settings{Model: "claude-3-5-sonnet-latest", MaxTokens: 100},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if captured.path != "/v1/messages" {
		t.Errorf("path = %q, want /v1/messages", captured.path)
	}
	if captured.key != "sk-ant" {
		t.Errorf("x-api-key = %q, want sk-ant", captured.key)
	}
	if captured.version == "" {
		t.Error("anthropic-version header missing")
	}

	if captured.body["system"] != "Answer concisely." {
		t.Errorf("system = %v, want dedicated system field", captured.body["system"])
	}
	messages, _ := captured.body["messages"].([]any)
	if len(messages) != 1 {
		t.Errorf("sent %d messages, want 1 (system history dropped)", len(messages))
	}

	if completion.Content != "Paris" {
		t.Errorf("content = %q, want Paris", completion.Content)
	}
	if len(completion.ToolCalls) != 1 || completion.ToolCalls[0].Name != "lookup" {
		t.Errorf("tool calls = %v, want one lookup call", completion.ToolCalls)
	}
}

func TestAnthropicStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event: content_block_delta\n")
		fmt.Fprint(w, "data: {\"type\":\"content_block_delta\",\"delta\":{\"type\":\"text_delta\",\"text\":\"Par\"}}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"content_block_delta\",\"delta\":{\"type\":\"text_delta\",\"text\":\"is\"}}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"message_stop\"}\n\n")
	}))
	defer server.Close()

	client := anthropicClient(t, server.URL, "sk-ant")

	chunks, err := client.Stream(context.Background(), providers.Request{
		Messages: []providers.Message{{Role: "user", Content: "hi"}},
		Settings: providers.Settings{Model: "claude-3-5-sonnet-latest", MaxTokens: 50},
	})
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	var content string
	var done bool
	for chunk := range chunks {
		if chunk.Err != nil {
			t.Fatalf("chunk error = %v", chunk.Err)
		}
		if chunk.Done {
			done = true
			continue
		}
		content += chunk.Content
	}

	if content != "Paris" {
		t.Errorf("accumulated content = %q, want Paris", content)
	}
	if !done {
		t.Error("stream never signalled done")
	}
}

func TestAnthropicMissingKey(t *testing.T) {
	client := anthropicClient(t, "http://localhost:1", "")

	_, err := client.Complete(context.Background(), providers.Request{
		Messages: []providers.Message{{Role: "user", Content: "hi"}},
		Settings: providers.Settings{Model: "claude-3-5-sonnet-latest"},
	})
	if !errors.Is(err, providers.ErrMissingAPIKey) {
		t.Errorf("error = %v, want ErrMissingAPIKey", err)
	}
}

func TestGoogleComplete(t *testing.T) {
	var captured struct {
		path  string
		query string
		body  map[string]any
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.query = r.URL.RawQuery
		json.NewDecoder(r.Body).Decode(&captured.body)

		fmt.Fprint(w, `{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "Blue"}]}
			}]
		}`)
	}))
	defer server.Close()

	cfg := &config.ProvidersConfig{
		Google:  config.VendorConfig{APIKey: "g-key", BaseURL: server.URL},
		Timeout: "5s",
	}
	client := providers.New(providers.KindGoogle, cfg, testLogger())

	completion, err := client.Complete(context.Background(), providers.Request{
		Instructions: "Answer with one word.",
		Messages: []providers.Message{
			{Role: "user", Content: "Color of the sky?"},
			{Role: "assistant", Content: "Asking about daytime?"},
			{Role: "user", Content: "Yes"},
		},
		Settings: providers.Settings{Model: "gemini-1.5-pro", MaxTokens: 10},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if captured.path != "/v1beta/models/gemini-1.5-pro:generateContent" {
		t.Errorf("path = %q, want generateContent for gemini-1.5-pro", captured.path)
	}
	if captured.query != "key=g-key" {
		t.Errorf("query = %q, want key=g-key", captured.query)
	}

	if _, ok := captured.body["systemInstruction"]; !ok {
		t.Error("systemInstruction missing")
	}
	contents, _ := captured.body["contents"].([]any)
	if len(contents) != 3 {
		t.Fatalf("sent %d contents, want 3", len(contents))
	}
	second, _ := contents[1].(map[string]any)
	if second["role"] != "model" {
		t.Errorf("assistant remapped to role %v, want model", second["role"])
	}

	if completion.Content != "Blue" {
		t.Errorf("content = %q, want Blue", completion.Content)
	}
}

func TestGoogleMissingKey(t *testing.T) {
	cfg := &config.ProvidersConfig{Timeout: "5s"}
	client := providers.New(providers.KindGoogle, cfg, testLogger())

	_, err := client.Complete(context.Background(), providers.Request{
		Messages: []providers.Message{{Role: "user", Content: "hi"}},
		Settings: providers.Settings{Model: "gemini-1.5-pro"},
	})
	if !errors.Is(err, providers.ErrMissingAPIKey) {
		t.Errorf("error = %v, want ErrMissingAPIKey", err)
	}
}
