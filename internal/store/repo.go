package store

import (
	"context"
	"encoding/json"
	"time"
)

// ProfileKey is the fixed record key for the single local user.
const ProfileKey = "founderPathUser"

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // LLM events only; empty matches all
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// ProfileRepo persists opaque profile documents by key.
type ProfileRepo interface {
	// Load returns the stored document, or nil if the key has never been saved.
	Load(ctx context.Context, key string) (json.RawMessage, error)

	// Save overwrites the document stored under key.
	Save(ctx context.Context, key string, data json.RawMessage) error

	// Delete removes the document. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM requests that share a purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// ModelUsage aggregates LLM requests that share a model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// LessonCompletionData captures a finished lesson quiz.
type LessonCompletionData struct {
	LessonID       string
	Title          string
	Topic          string
	Difficulty     string
	CorrectAnswers int
	TotalQuestions int
	XPAwarded      int
}

// LessonCompletion is a stored lesson completion.
type LessonCompletion struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LessonCompletionData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AppendLessonCompletion records a finished lesson.
	AppendLessonCompletion(ctx context.Context, data LessonCompletionData) error

	// QueryLessonCompletions returns completions, newest first.
	QueryLessonCompletions(ctx context.Context, opts QueryOpts) ([]LessonCompletion, error)
}
