package ai

import (
	"context"
	"errors"
)

// Chat roles understood by the runtime
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ErrEmptyCompletion is returned when the runtime answers without any content.
var ErrEmptyCompletion = errors.New("runtime returned no completion")

// Message is one entry of a chat completion request
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Runtime is the external model runtime the service delegates to.
// Implementations must be safe for concurrent use.
type Runtime interface {
	// ListModels returns the names of the installed models.
	ListModels(ctx context.Context) ([]string, error)
	// Chat runs a single non-streaming completion and returns the reply text.
	Chat(ctx context.Context, model string, messages []Message) (string, error)
}
