package content

import (
	"context"
	"iter"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/founderpath/founderpath/internal/llm"
)

// Conversation is a stateful chat with the mentor persona. Completed
// turns are kept as history and resent with every message.
type Conversation struct {
	client *Client

	mu      sync.Mutex
	history []llm.Message
}

// CreateConversation starts an empty conversation.
func (c *Client) CreateConversation() *Conversation {
	return &Conversation{client: c}
}

// History returns a copy of the completed turns.
func (cv *Conversation) History() []llm.Message {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return slices.Clone(cv.history)
}

// SendStreaming sends msg and returns the reply as an ordered, finite
// sequence of text increments. The sequence can be ranged over once; a
// transport failure is yielded as a final *StreamError. The turn joins
// the history only when the stream ran to completion.
func (cv *Conversation) SendStreaming(ctx context.Context, msg string) iter.Seq2[string, error] {
	var consumed atomic.Bool
	return func(yield func(string, error) bool) {
		if !consumed.CompareAndSwap(false, true) {
			yield("", &StreamError{Err: ErrStreamConsumed})
			return
		}

		user := llm.Message{Role: llm.RoleUser, Content: msg}
		cv.mu.Lock()
		messages := append(slices.Clone(cv.history), user)
		cv.mu.Unlock()

		req := llm.Request{
			System:      MentorPersona,
			Messages:    messages,
			MaxTokens:   cv.client.cfg.ChatMaxTokens,
			Temperature: cv.client.cfg.Temperature,
		}

		var reply strings.Builder
		ctx := llm.WithPurpose(ctx, llm.PurposeMentor)
		for chunk, err := range cv.client.provider.GenerateStream(ctx, req) {
			if err != nil {
				yield("", &StreamError{Err: err})
				return
			}
			reply.WriteString(chunk)
			if !yield(chunk, nil) {
				return
			}
		}

		cv.mu.Lock()
		cv.history = append(cv.history, user, llm.Message{Role: llm.RoleAssistant, Content: reply.String()})
		cv.mu.Unlock()
	}
}
