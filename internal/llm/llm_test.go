// File path: internal/llm/llm_test.go
package llm

import "testing"

func TestNormalizeMessages(t *testing.T) {
	messages, err := NormalizeMessages([]Message{
		{Role: "System", Content: "be brief"},
		{Role: "USER", Content: "hello"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if messages[0].Role != "system" || messages[1].Role != "user" {
		t.Fatalf("roles not lower-cased: %q, %q", messages[0].Role, messages[1].Role)
	}
	if messages[1].Content != "hello" {
		t.Fatalf("content altered: %q", messages[1].Content)
	}
}

func TestNormalizeMessagesRejectsEmpty(t *testing.T) {
	if _, err := NormalizeMessages(nil); err == nil {
		t.Fatalf("expected an error for an empty request")
	}
}
