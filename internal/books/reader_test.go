package books

import (
	"context"
	"testing"
	"time"

	"github.com/founderpath/founderpath/internal/catalog"
)

type fakeSummarizer struct {
	out   string
	block chan struct{}
	calls int
}

func (f *fakeSummarizer) GenerateBookSummary(ctx context.Context, title, author string) string {
	f.calls++
	if f.block != nil {
		<-f.block
	}
	return f.out
}

var zeroToOne = catalog.Book{ID: "1", Title: "Zero to One", Author: "Peter Thiel"}

func TestOpenLoadsSummary(t *testing.T) {
	r := NewReader(&fakeSummarizer{out: "## Key Takeaways\n- Monopolies win"}, nil)
	got, ok := r.Open(t.Context(), zeroToOne)
	if !ok || got != "## Key Takeaways\n- Monopolies win" {
		t.Fatalf("Open = %q, %v", got, ok)
	}
	s := r.Snapshot()
	if s.Loading || s.Book == nil || s.Book.Title != "Zero to One" || s.Summary != got {
		t.Errorf("state = %+v", s)
	}

	r.Close()
	if s := r.Snapshot(); s.Book != nil || s.Summary != "" {
		t.Errorf("closed state = %+v", s)
	}
}

func TestOpenBlankUsesApology(t *testing.T) {
	r := NewReader(&fakeSummarizer{out: "  "}, nil)
	if got, _ := r.Open(t.Context(), zeroToOne); got != Apology {
		t.Errorf("summary = %q, want apology", got)
	}
}

func TestOpenCanceledUsesApology(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	r := NewReader(&fakeSummarizer{out: "partial"}, nil)
	if got, _ := r.Open(ctx, zeroToOne); got != Apology {
		t.Errorf("summary = %q, want apology", got)
	}
}

func TestOpenWhileLoading(t *testing.T) {
	f := &fakeSummarizer{out: "done", block: make(chan struct{})}
	r := NewReader(f, nil)

	result := make(chan string)
	go func() {
		out, _ := r.Open(context.Background(), zeroToOne)
		result <- out
	}()
	for !r.Snapshot().Loading {
		time.Sleep(time.Millisecond)
	}
	if _, ok := r.Open(t.Context(), catalog.Book{ID: "2", Title: "The Lean Startup", Author: "Eric Ries"}); ok {
		t.Error("second open should be rejected while loading")
	}
	close(f.block)
	<-result
	if s := r.Snapshot(); s.Summary != "done" || s.Book.ID != "1" {
		t.Errorf("state = %+v", s)
	}
}

func TestCloseDropsLateSummary(t *testing.T) {
	f := &fakeSummarizer{out: "late", block: make(chan struct{})}
	r := NewReader(f, nil)

	result := make(chan struct{})
	go func() {
		r.Open(context.Background(), zeroToOne)
		close(result)
	}()
	for !r.Snapshot().Loading {
		time.Sleep(time.Millisecond)
	}
	r.Close()
	close(f.block)
	<-result
	if s := r.Snapshot(); s.Summary != "" || s.Book != nil {
		t.Errorf("late summary should be dropped, state = %+v", s)
	}
}
