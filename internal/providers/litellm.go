package providers

const litellmDefaultBaseURL = "http://localhost:4000"

// litellmClient delegates wholesale to the unified gateway, which speaks the
// OpenAI chat-completions wire format for every underlying vendor. It
// performs no message-shape translation of its own and does not require an
// API key unless the gateway is configured with one.
type litellmClient struct {
	openAIClient
}

func newLiteLLM(base openAIClient) *litellmClient {
	base.optionalKey = true
	return &litellmClient{openAIClient: base}
}
