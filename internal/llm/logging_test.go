package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/founderpath/founderpath/internal/store"
)

type recordingRepo struct {
	store.EventRepo
	mu     sync.Mutex
	events []store.LLMRequestEventData
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return nil
}

func TestLoggingProvider_Generate(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: []byte(`{"title":"Fundraising"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 34},
	})
	p := WithLogging(mock, "gemini", repo, nil)

	ctx := WithPurpose(context.Background(), PurposeLesson)
	_, err := p.Generate(ctx, Request{
		System:   "You are FounderBot.",
		Messages: []Message{{Role: RoleUser, Content: "Teach me fundraising"}},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Provider != "gemini" || e.Purpose != PurposeLesson || !e.Success {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.InputTokens != 12 || e.OutputTokens != 34 {
		t.Errorf("tokens = %d/%d, want 12/34", e.InputTokens, e.OutputTokens)
	}
	if !strings.Contains(e.RequestBody, "[system]\nYou are FounderBot.") {
		t.Errorf("request body missing system prompt: %q", e.RequestBody)
	}
	if e.ResponseBody != `{"title":"Fundraising"}` {
		t.Errorf("response body = %q", e.ResponseBody)
	}
}

func TestLoggingProvider_GenerateError(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	p := WithLogging(mock, "openai", repo, nil)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Fatalf("expected failed event, got %+v", repo.events)
	}
	if repo.events[0].Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown", repo.events[0].Purpose)
	}
}

func TestLoggingProvider_StreamRecordsOnce(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Chunks: []string{"Ship ", "early."}})
	p := WithLogging(mock, "gemini", repo, nil)

	var got strings.Builder
	for chunk, err := range p.GenerateStream(WithPurpose(context.Background(), PurposeMentor), Request{}) {
		if err != nil {
			t.Fatalf("stream: %v", err)
		}
		got.WriteString(chunk)
	}

	if got.String() != "Ship early." {
		t.Errorf("stream = %q", got.String())
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	if repo.events[0].ResponseBody != "Ship early." || repo.events[0].Purpose != PurposeMentor {
		t.Errorf("unexpected event: %+v", repo.events[0])
	}
}

func TestLoggingProvider_StreamFailure(t *testing.T) {
	repo := &recordingRepo{}
	boom := errors.New("connection reset")
	mock := NewMockProvider(MockResponse{Chunks: []string{"partial"}, Err: boom})
	p := WithLogging(mock, "gemini", repo, nil)

	var streamErr error
	for _, err := range p.GenerateStream(context.Background(), Request{}) {
		if err != nil {
			streamErr = err
		}
	}
	if !errors.Is(streamErr, boom) {
		t.Fatalf("stream error = %v, want %v", streamErr, boom)
	}
	e := repo.events[0]
	if e.Success || e.ResponseBody != "partial" {
		t.Errorf("unexpected event: %+v", e)
	}
}

func TestLoggingProvider_StreamEarlyStop(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Chunks: []string{"a", "b", "c"}})
	p := WithLogging(mock, "gemini", repo, nil)

	for range p.GenerateStream(context.Background(), Request{}) {
		break
	}
	if len(repo.events) != 1 || repo.events[0].ResponseBody != "a" {
		t.Fatalf("expected one event with the delivered chunk, got %+v", repo.events)
	}
}

func TestNewProviderFromEnv_NoKey(t *testing.T) {
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"FOUNDERPATH_LLM_PROVIDER", "FOUNDERPATH_GEMINI_API_KEY",
	} {
		t.Setenv(k, "")
	}
	_, _, err := NewProviderFromEnv(context.Background(), DefaultConfig(), nil, nil)
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("err = %v, want ErrNoAPIKey", err)
	}
}

func TestNewProviderFromEnv_Mock(t *testing.T) {
	t.Setenv("FOUNDERPATH_LLM_PROVIDER", "mock")
	p, cfg, err := NewProviderFromEnv(context.Background(), DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("NewProviderFromEnv: %v", err)
	}
	if cfg.Provider != "mock" || p.ModelID() != "mock" {
		t.Fatalf("provider = %s/%s, want mock", cfg.Provider, p.ModelID())
	}
}
