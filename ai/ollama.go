package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOllamaURL is where a local Ollama listens by default
const DefaultOllamaURL = "http://localhost:11434"

// DefaultModel is the model requested when none is configured
const DefaultModel = "llama3.1:8b"

// OllamaRuntime talks to Ollama through its OpenAI-compatible API under /v1.
type OllamaRuntime struct {
	client  *openai.Client
	baseURL string
}

// NewOllamaRuntime builds a runtime for the Ollama instance at baseURL.
// A nil httpClient uses http.DefaultClient; per-call deadlines come from the context.
func NewOllamaRuntime(baseURL string, httpClient *http.Client) *OllamaRuntime {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}

	// Ollama ignores the key but go-openai always sends one.
	config := openai.DefaultConfig("ollama")
	config.BaseURL = baseURL + "/v1"
	if httpClient != nil {
		config.HTTPClient = httpClient
	}

	return &OllamaRuntime{
		client:  openai.NewClientWithConfig(config),
		baseURL: baseURL,
	}
}

// BaseURL returns the runtime endpoint without the /v1 suffix.
func (r *OllamaRuntime) BaseURL() string {
	return r.baseURL
}

// ListModels returns the models Ollama has installed
func (r *OllamaRuntime) ListModels(ctx context.Context) ([]string, error) {
	list, err := r.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("ollama list models: %w", err)
	}

	names := make([]string, 0, len(list.Models))
	for _, model := range list.Models {
		name := strings.TrimSpace(model.ID)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// Chat sends the messages as a single chat completion request
func (r *OllamaRuntime) Chat(ctx context.Context, model string, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    toOpenAIRole(m.Role),
			Content: m.Content,
		})
	}

	resp, err := r.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("ollama chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIRole(role string) string {
	switch role {
	case RoleSystem:
		return openai.ChatMessageRoleSystem
	case RoleUser:
		return openai.ChatMessageRoleUser
	default:
		return role
	}
}
