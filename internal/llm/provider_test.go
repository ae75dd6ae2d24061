package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
	)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 0}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, PurposeLesson)
	if p := PurposeFrom(ctx); p != "lesson" {
		t.Fatalf("expected 'lesson', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "gemini without key",
			cfg:     Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:    "gemini with key",
			cfg:     Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g-test"}},
			wantErr: false,
		},
		{
			name:    "openrouter without key",
			cfg:     Config{Provider: "openrouter"},
			wantErr: true,
		},
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMockProvider_StreamsChunksInOrder(t *testing.T) {
	mock := NewMockProvider(MockResponse{Chunks: []string{"one ", "two ", "three"}})

	var got []string
	for chunk, err := range mock.GenerateStream(context.Background(), Request{}) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, chunk)
	}
	if len(got) != 3 || got[0] != "one " || got[2] != "three" {
		t.Fatalf("chunks = %q", got)
	}
}

func TestMockProvider_StreamErrorAfterChunks(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Chunks: []string{"half"},
		Err:    &ErrProviderUnavailable{Err: errors.New("reset")},
	})

	var text string
	var streamErr error
	for chunk, err := range mock.GenerateStream(context.Background(), Request{}) {
		if err != nil {
			streamErr = err
			break
		}
		text += chunk
	}
	if text != "half" {
		t.Fatalf("text = %q, want %q", text, "half")
	}
	if streamErr == nil {
		t.Fatal("expected trailing error")
	}
}

func TestMockProvider_StreamStopsWhenConsumerBreaks(t *testing.T) {
	mock := NewMockProvider(MockResponse{Chunks: []string{"a", "b", "c"}})

	n := 0
	for range mock.GenerateStream(context.Background(), Request{}) {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("consumed %d chunks, want 1", n)
	}
}

func TestResponseText(t *testing.T) {
	var nilResp *Response
	if nilResp.Text() != "" {
		t.Fatal("nil response should have empty text")
	}
	r := &Response{Content: json.RawMessage("hello")}
	if r.Text() != "hello" {
		t.Fatalf("Text() = %q", r.Text())
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limit", &ErrRateLimit{Err: errors.New("429")}, true},
		{"unavailable", &ErrProviderUnavailable{}, true},
		{"max tokens", &ErrMaxTokensExceeded{}, false},
		{"empty", ErrEmptyResponse, false},
		{"plain", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Fatalf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("FOUNDERPATH_LLM_PROVIDER", "anthropic")
	t.Setenv("FOUNDERPATH_ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("FOUNDERPATH_ANTHROPIC_MODEL", "claude-sonnet")
	t.Setenv("FOUNDERPATH_LLM_TIMEOUT", "15s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "anthropic" {
		t.Errorf("provider = %q, want anthropic", cfg.Provider)
	}
	if cfg.Anthropic.APIKey != "sk-ant" || cfg.Anthropic.Model != "claude-sonnet" {
		t.Errorf("anthropic config = %+v", cfg.Anthropic)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("timeout = %v, want 15s", cfg.Timeout)
	}
	if cfg.Gemini.Model != "gemini-flash" {
		t.Errorf("gemini default model lost: %q", cfg.Gemini.Model)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	if _, ok := DiscoverConfig(DefaultConfig()); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("OPENAI_API_KEY", "sk-oa")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	cfg, ok := DiscoverConfig(DefaultConfig())
	if !ok {
		t.Fatal("expected provider discovery")
	}
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-oa" {
		t.Fatalf("discovered %q with key %q, want openai", cfg.Provider, cfg.OpenAI.APIKey)
	}
	if !cfg.HasKey() {
		t.Fatal("HasKey() should be true after discovery")
	}
}

func TestLookupCost(t *testing.T) {
	if c := LookupCost("gemini-2.5-flash"); c == nil || c.InputPerMTok != 0.3 {
		t.Fatalf("gemini-2.5-flash cost = %+v", c)
	}
	if c := LookupCost("google/gemini-2.5-flash"); c == nil {
		t.Fatal("expected OpenRouter ID to resolve by suffix")
	}
	if c := LookupCost("unknown-model"); c != nil {
		t.Fatalf("unexpected cost for unknown model: %+v", c)
	}
	got := ModelCost{InputPerMTok: 1, OutputPerMTok: 5}.Cost(1_000_000, 200_000)
	if got != 2 {
		t.Fatalf("Cost() = %v, want 2", got)
	}
}
