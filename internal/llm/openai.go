package llm

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// Generation parameters are fixed: the chatbot is a support surface, not a
// tunable playground.
const (
	maxTokens   = 1024
	temperature = 0.7
)

// OpenAIClient talks to the OpenAI chat completion API, or to any
// OpenAI-compatible endpoint when a base URL is supplied.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds a completion client for the given model. baseURL may
// be empty to use the default OpenAI endpoint.
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, messages []Message) (string, error) {
	if c.client == nil {
		return "", errors.New("llm: client not initialized")
	}

	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		if role != openai.ChatMessageRoleSystem && role != openai.ChatMessageRoleUser && role != openai.ChatMessageRoleAssistant {
			role = openai.ChatMessageRoleUser
		}
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    oaMsgs,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm: empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
