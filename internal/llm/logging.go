package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/founderpath/founderpath/internal/logger"
	"github.com/founderpath/founderpath/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner     Provider
	name      string
	eventRepo store.EventRepo
	log       *logger.Logger
}

// WithLogging wraps a Provider with event logging. A nil repo only logs.
func WithLogging(p Provider, name string, repo store.EventRepo, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, name: name, eventRepo: repo, log: log.With("component", "llm")}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := l.eventData(ctx, req, start, err)
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}
	l.record(ctx, data)

	return resp, err
}

// GenerateStream records one event when the stream finishes, whether it
// ran to completion, failed, or the consumer stopped early.
func (l *LoggingProvider) GenerateStream(ctx context.Context, req Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		start := time.Now()
		var (
			reply  strings.Builder
			outErr error
		)
		defer func() {
			data := l.eventData(ctx, req, start, outErr)
			data.ResponseBody = reply.String()
			l.record(ctx, data)
		}()

		for chunk, err := range l.inner.GenerateStream(ctx, req) {
			if err != nil {
				outErr = err
				yield("", err)
				return
			}
			reply.WriteString(chunk)
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) eventData(ctx context.Context, req Request, start time.Time, err error) store.LLMRequestEventData {
	data := store.LLMRequestEventData{
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}
	return data
}

// record logs the event but never fails the request.
func (l *LoggingProvider) record(ctx context.Context, data store.LLMRequestEventData) {
	kv := []any{
		"provider", data.Provider,
		"model", data.Model,
		"purpose", data.Purpose,
		"latency_ms", data.LatencyMs,
		"input_tokens", data.InputTokens,
		"output_tokens", data.OutputTokens,
	}
	if data.Success {
		l.log.Debug("llm request", kv...)
	} else {
		l.log.Warn("llm request failed", append(kv, "err", data.ErrorMessage)...)
	}

	if l.eventRepo == nil {
		return
	}
	if err := l.eventRepo.AppendLLMRequest(context.WithoutCancel(ctx), data); err != nil {
		l.log.Error("failed to record llm request event", "err", err)
	}
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.WriteString(string(schemaDef))
			b.WriteString("\n")
		}
	}

	return b.String()
}
