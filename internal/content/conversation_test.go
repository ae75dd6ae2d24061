package content

import (
	"errors"
	"strings"
	"testing"

	"github.com/founderpath/founderpath/internal/llm"
)

func collect(t *testing.T, seq func(func(string, error) bool)) (string, error) {
	t.Helper()
	var b strings.Builder
	var streamErr error
	for chunk, err := range seq {
		if err != nil {
			streamErr = err
			break
		}
		b.WriteString(chunk)
	}
	return b.String(), streamErr
}

func TestConversationKeepsHistory(t *testing.T) {
	c, mock := newTestClient(
		llm.MockResponse{Chunks: []string{"Talk ", "to ", "users."}},
		llm.MockResponse{Chunks: []string{"Then ship."}},
	)
	conv := c.CreateConversation()

	got, err := collect(t, conv.SendStreaming(t.Context(), "How do I start?"))
	if err != nil {
		t.Fatalf("first send: %v", err)
	}
	if got != "Talk to users." {
		t.Errorf("reply = %q", got)
	}

	if _, err := collect(t, conv.SendStreaming(t.Context(), "And then?")); err != nil {
		t.Fatalf("second send: %v", err)
	}

	req := mock.LastCall()
	if req.System != MentorPersona {
		t.Error("conversation should carry the mentor persona")
	}
	if len(req.Messages) != 3 {
		t.Fatalf("second request carries %d messages, want 3", len(req.Messages))
	}
	if req.Messages[1].Role != llm.RoleAssistant || req.Messages[1].Content != "Talk to users." {
		t.Errorf("history turn = %+v", req.Messages[1])
	}
	if len(conv.History()) != 4 {
		t.Errorf("history length = %d, want 4", len(conv.History()))
	}
}

func TestConversationStreamErrorSkipsHistory(t *testing.T) {
	c, _ := newTestClient(llm.MockResponse{Chunks: []string{"partial"}, Err: errors.New("reset")})
	conv := c.CreateConversation()

	got, err := collect(t, conv.SendStreaming(t.Context(), "Hi"))
	var streamErr *StreamError
	if !errors.As(err, &streamErr) {
		t.Fatalf("expected *StreamError, got %T: %v", err, err)
	}
	if got != "partial" {
		t.Errorf("delivered = %q, want partial", got)
	}
	if len(conv.History()) != 0 {
		t.Error("failed turn should not join the history")
	}
}

func TestConversationPreStreamFailure(t *testing.T) {
	c, _ := newTestClient(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})

	got, err := collect(t, c.CreateConversation().SendStreaming(t.Context(), "Hi"))
	var streamErr *StreamError
	if !errors.As(err, &streamErr) {
		t.Fatalf("expected *StreamError, got %v", err)
	}
	if got != "" {
		t.Errorf("no text expected, got %q", got)
	}
}

func TestConversationStreamNotRestartable(t *testing.T) {
	c, mock := newTestClient(llm.MockResponse{Chunks: []string{"once"}})
	seq := c.CreateConversation().SendStreaming(t.Context(), "Hi")

	if _, err := collect(t, seq); err != nil {
		t.Fatal(err)
	}
	_, err := collect(t, seq)
	if !errors.Is(err, ErrStreamConsumed) {
		t.Fatalf("second iteration err = %v, want ErrStreamConsumed", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider called %d times, want 1", mock.CallCount())
	}
}
