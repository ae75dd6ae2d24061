// Package mentor runs the chat with the AI mentor persona and handles the
// profile picture upload offered on the mentor screen.
package mentor

import (
	"context"
	"iter"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/founderpath/founderpath/internal/logger"
)

const (
	// Greeting opens every transcript.
	Greeting = "Hello. I'm your AI Mentor. What can I help you with today?"
	// ConnectionFallback replaces a reply whose stream failed.
	ConnectionFallback = "I'm having trouble connecting right now. Try again in a moment."
	// FlashbackDisplay is the user turn shown for a flashback request.
	FlashbackDisplay = "Show me an AI Flashback from business history."
	// FlashbackPrompt is what is actually sent for a flashback request.
	FlashbackPrompt = "Share a short, compelling 'Flashback' story from startup history " +
		"(e.g., Apple, Airbnb, Slack, Nintendo) that teaches a valuable lesson for a founder today. " +
		"Keep it under 100 words and make it impactful."
)

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one transcript entry.
type Message struct {
	ID        string
	Role      Role
	Text      string
	Timestamp time.Time
}

// Snapshot is a render copy of the transcript.
type Snapshot struct {
	Messages []Message
	Typing   bool
}

// Chat is a streaming conversation. *content.Conversation satisfies it.
type Chat interface {
	SendStreaming(ctx context.Context, msg string) iter.Seq2[string, error]
}

// ChatFactory creates the controller's conversation on first use.
type ChatFactory func() Chat

// Controller owns the mentor transcript. At most one reply streams at a
// time.
type Controller struct {
	newChat ChatFactory
	pics    PictureStore
	log     *logger.Logger

	mu       sync.Mutex
	chat     Chat
	messages []Message
	typing   bool

	updates chan struct{}
	wg      sync.WaitGroup
	now     func() time.Time
}

// NewController creates a controller whose transcript starts with the
// greeting. pics may be nil when uploads are not offered.
func NewController(newChat ChatFactory, pics PictureStore, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	c := &Controller{
		newChat: newChat,
		pics:    pics,
		log:     log.With("component", "mentor"),
		updates: make(chan struct{}, 1),
		now:     time.Now,
	}
	c.messages = []Message{{ID: "welcome", Role: RoleModel, Text: Greeting, Timestamp: c.now()}}
	return c
}

// Updates signals after every transcript change. Signals coalesce, so a
// receiver should read a fresh Snapshot on each one.
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

// Snapshot returns a copy of the transcript and the typing flag.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Messages: slices.Clone(c.messages), Typing: c.typing}
}

// Typing reports whether a reply is streaming.
func (c *Controller) Typing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typing
}

// Wait blocks until the current reply, if any, has finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// SendUserMessage starts a reply to text. It returns false without
// changing anything when text is blank or a reply is already streaming.
func (c *Controller) SendUserMessage(ctx context.Context, text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	return c.send(ctx, text, text, false)
}

// TriggerFlashback asks for a short story from business history. Unlike
// SendUserMessage, a failed stream leaves the partial reply in place.
func (c *Controller) TriggerFlashback(ctx context.Context) bool {
	return c.send(ctx, FlashbackDisplay, FlashbackPrompt, true)
}

func (c *Controller) send(ctx context.Context, display, prompt string, silent bool) bool {
	c.mu.Lock()
	if c.typing {
		c.mu.Unlock()
		return false
	}
	if c.chat == nil {
		c.chat = c.newChat()
	}
	chat := c.chat
	now := c.now()
	replyID := uuid.NewString()
	c.messages = append(c.messages,
		Message{ID: uuid.NewString(), Role: RoleUser, Text: display, Timestamp: now},
		Message{ID: replyID, Role: RoleModel, Timestamp: now},
	)
	c.typing = true
	c.mu.Unlock()
	c.notify()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.stream(ctx, chat, replyID, prompt, silent)
	}()
	return true
}

func (c *Controller) stream(ctx context.Context, chat Chat, replyID, prompt string, silent bool) {
	var reply strings.Builder
	for chunk, err := range chat.SendStreaming(ctx, prompt) {
		if err != nil {
			if silent {
				c.log.Warn("flashback failed", "err", err)
			} else {
				c.log.Warn("mentor reply failed", "err", err)
				c.setReply(replyID, ConnectionFallback)
			}
			break
		}
		reply.WriteString(chunk)
		c.setReply(replyID, reply.String())
	}

	c.mu.Lock()
	c.typing = false
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) setReply(id, text string) {
	c.mu.Lock()
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].ID == id {
			c.messages[i].Text = text
			break
		}
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) notify() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}
