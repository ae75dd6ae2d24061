package llm

import (
	"context"
	"encoding/json"
	"iter"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error

	// Chunks are yielded in order by GenerateStream. When empty, Content
	// is yielded as one chunk. A non-nil Err is yielded after the chunks,
	// simulating a mid-stream failure.
	Chunks []string

	// Block, when set, delays the response until the channel is closed
	// or receives a value.
	Block <-chan struct{}
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// next records the request and pops the next canned response.
func (m *MockProvider) next(req Request) (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.responses) == 0 {
		return MockResponse{}, false
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, true
}

func wait(ctx context.Context, block <-chan struct{}) error {
	if block == nil {
		return nil
	}
	select {
	case <-block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, ok := m.next(req)
	if !ok {
		return nil, &ErrProviderUnavailable{Err: nil}
	}
	if err := wait(ctx, resp.Block); err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, resp.Err
	}

	content := resp.Content
	if content == nil && len(resp.Chunks) > 0 {
		var joined string
		for _, c := range resp.Chunks {
			joined += c
		}
		content = json.RawMessage(joined)
	}

	return &Response{
		Content:    content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// GenerateStream yields the next canned response's chunks.
func (m *MockProvider) GenerateStream(ctx context.Context, req Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		resp, ok := m.next(req)
		if !ok {
			yield("", &ErrProviderUnavailable{Err: nil})
			return
		}
		if err := wait(ctx, resp.Block); err != nil {
			yield("", err)
			return
		}

		chunks := resp.Chunks
		if len(chunks) == 0 && len(resp.Content) > 0 {
			chunks = []string{string(resp.Content)}
		}
		for _, c := range chunks {
			if !yield(c, nil) {
				return
			}
		}
		if resp.Err != nil {
			yield("", resp.Err)
		}
	}
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate and GenerateStream calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request, or a zero Request.
func (m *MockProvider) LastCall() Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Request{}
	}
	return m.Calls[len(m.Calls)-1]
}
