// File path: internal/llm/providers/provider.go
package providers

import "context"

// Message is one chat turn sent to a provider.
type Message struct {
	Role    string
	Content string
}

// Provider abstracts a text-generation backend. Implementations return the
// raw completion text and surface provider errors unwrapped so callers can
// classify them.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	Name() string
	Model() string
}
