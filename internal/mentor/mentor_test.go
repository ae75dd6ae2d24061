package mentor

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/founderpath/founderpath/internal/content"
	"github.com/founderpath/founderpath/internal/llm"
)

func newController(responses ...llm.MockResponse) (*Controller, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	client := content.NewClient(mock, content.DefaultConfig(), nil)
	c := NewController(func() Chat { return client.CreateConversation() }, nil, nil)
	return c, mock
}

func TestGreeting(t *testing.T) {
	c, _ := newController()
	s := c.Snapshot()
	if len(s.Messages) != 1 || s.Messages[0].Text != Greeting || s.Messages[0].Role != RoleModel {
		t.Fatalf("initial transcript = %+v", s.Messages)
	}
}

func TestSendUserMessageStreams(t *testing.T) {
	c, mock := newController(llm.MockResponse{Chunks: []string{"Start ", "small."}})

	if !c.SendUserMessage(t.Context(), "How do I start?") {
		t.Fatal("send should start")
	}
	c.Wait()

	s := c.Snapshot()
	if s.Typing {
		t.Error("typing should clear after the stream")
	}
	if len(s.Messages) != 3 {
		t.Fatalf("messages = %d, want 3", len(s.Messages))
	}
	if s.Messages[1].Role != RoleUser || s.Messages[1].Text != "How do I start?" {
		t.Errorf("user turn = %+v", s.Messages[1])
	}
	if s.Messages[2].Role != RoleModel || s.Messages[2].Text != "Start small." {
		t.Errorf("reply = %+v", s.Messages[2])
	}
	if mock.LastCall().System != content.MentorPersona {
		t.Error("reply should use the mentor persona")
	}
}

func TestSendBlankIsNoop(t *testing.T) {
	c, mock := newController()
	for _, text := range []string{"", "   ", "\n\t"} {
		if c.SendUserMessage(t.Context(), text) {
			t.Errorf("SendUserMessage(%q) should be a no-op", text)
		}
	}
	if len(c.Snapshot().Messages) != 1 || mock.CallCount() != 0 {
		t.Error("blank input must not change state")
	}
}

func TestSendWhileTypingIsNoop(t *testing.T) {
	block := make(chan struct{})
	c, _ := newController(llm.MockResponse{Chunks: []string{"ok"}, Block: block})

	if !c.SendUserMessage(context.Background(), "first") {
		t.Fatal("first send should start")
	}
	if c.SendUserMessage(t.Context(), "second") {
		t.Error("second send should be rejected while typing")
	}
	if c.TriggerFlashback(t.Context()) {
		t.Error("flashback should be rejected while typing")
	}
	close(block)
	c.Wait()
	if n := len(c.Snapshot().Messages); n != 3 {
		t.Errorf("messages = %d, want 3", n)
	}
}

func TestStreamFailureShowsFallback(t *testing.T) {
	c, _ := newController(
		llm.MockResponse{Chunks: []string{"par"}, Err: errors.New("connection reset")},
		llm.MockResponse{Chunks: []string{"Back online."}},
	)

	c.SendUserMessage(t.Context(), "Hi")
	c.Wait()
	s := c.Snapshot()
	if got := s.Messages[len(s.Messages)-1].Text; got != ConnectionFallback {
		t.Errorf("reply = %q, want fallback", got)
	}

	if !c.SendUserMessage(t.Context(), "Again") {
		t.Fatal("conversation should stay usable after a failure")
	}
	c.Wait()
	s = c.Snapshot()
	if got := s.Messages[len(s.Messages)-1].Text; got != "Back online." {
		t.Errorf("reply = %q", got)
	}
}

func TestFlashbackFailsSilently(t *testing.T) {
	c, mock := newController(llm.MockResponse{Chunks: []string{"In 2008, Airbnb"}, Err: errors.New("reset")})

	if !c.TriggerFlashback(t.Context()) {
		t.Fatal("flashback should start")
	}
	c.Wait()

	s := c.Snapshot()
	if s.Messages[1].Text != FlashbackDisplay {
		t.Errorf("display turn = %q", s.Messages[1].Text)
	}
	if got := s.Messages[2].Text; got != "In 2008, Airbnb" {
		t.Errorf("partial reply should be kept, got %q", got)
	}
	if !strings.Contains(mock.LastCall().Messages[0].Content, "'Flashback' story") {
		t.Error("the flashback instruction should be sent to the model")
	}
}

func TestConversationReused(t *testing.T) {
	created := 0
	mock := llm.NewMockProvider(llm.MockResponse{Chunks: []string{"a"}}, llm.MockResponse{Chunks: []string{"b"}})
	client := content.NewClient(mock, content.DefaultConfig(), nil)
	c := NewController(func() Chat {
		created++
		return client.CreateConversation()
	}, nil, nil)

	c.SendUserMessage(t.Context(), "one")
	c.Wait()
	c.SendUserMessage(t.Context(), "two")
	c.Wait()

	if created != 1 {
		t.Errorf("conversations created = %d, want 1", created)
	}
	if n := len(mock.LastCall().Messages); n != 3 {
		t.Errorf("second request carries %d messages, want 3", n)
	}
}

func TestUpdatesSignal(t *testing.T) {
	c, _ := newController(llm.MockResponse{Chunks: []string{"x"}})
	c.SendUserMessage(t.Context(), "Hi")
	c.Wait()
	select {
	case <-c.Updates():
	default:
		t.Error("expected an update signal")
	}
}

type fakePictures struct {
	got string
	err error
}

func (f *fakePictures) SetPicture(_ context.Context, dataURL string) error {
	f.got = dataURL
	return f.err
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestUploadProfilePicture(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{"png", pngHeader, false},
		{"3 MiB image", append(bytes.Clone(pngHeader), make([]byte, 3*1024*1024)...), true},
		{"text file", []byte("just some notes"), true},
		{"empty", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pics := &fakePictures{}
			c := NewController(nil, pics, nil)

			url, err := c.UploadProfilePicture(t.Context(), tt.data)
			if tt.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected *ValidationError, got %v", err)
				}
				if pics.got != "" {
					t.Error("rejected upload must not be stored")
				}
				return
			}
			if err != nil {
				t.Fatalf("upload: %v", err)
			}
			if !strings.HasPrefix(url, "data:image/png;base64,") {
				t.Errorf("data url = %.40q", url)
			}
			if pics.got != url {
				t.Error("stored url should match the returned one")
			}
		})
	}
}

func TestUploadStoreFailure(t *testing.T) {
	c := NewController(nil, &fakePictures{err: errors.New("disk full")}, nil)
	_, err := c.UploadProfilePicture(t.Context(), pngHeader)
	var verr *ValidationError
	if err == nil || errors.As(err, &verr) {
		t.Fatalf("expected a store error, got %v", err)
	}
}
