package itinera

import "context"

// ChatProvider defines the interface for AI chat providers.
// Implementations are expected to be safe for concurrent use.
type ChatProvider interface {
	// Chat sends a conversation and returns a complete response.
	Chat(ctx context.Context, messages []Message, opts ...Option) (*Response, error)
}
