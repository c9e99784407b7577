package llm

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a role-tagged chat message sent to the completion API.
type Message struct {
	Role    string
	Content string
}

// Client is the completion-API collaborator. Complete submits the full
// ordered prompt (system + prior turns + latest user message) and returns
// the generated text. Implementations make a single attempt; retry policy
// belongs to the caller.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
