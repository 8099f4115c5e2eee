// File path: internal/llm/providers/local.go
package providers

import (
	"context"
	"fmt"
	"strings"
)

// LocalProvider is an offline stub used in development and tests when no API
// credential is configured but the feature is explicitly enabled.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (l *LocalProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}
	last := messages[len(messages)-1].Content
	summary := last
	if idx := strings.IndexByte(summary, '\n'); idx > 0 {
		summary = summary[:idx]
	}
	return "Solid session overall; keep the easy days easy. (" + strings.TrimSpace(summary) + ") [CONFIDENCE: 0.50]", nil
}

func (l *LocalProvider) Name() string {
	return "local"
}

func (l *LocalProvider) Model() string {
	return "local-stub"
}
