// Package books loads AI summaries for the library catalog.
package books

import (
	"context"
	"strings"
	"sync"

	"github.com/founderpath/founderpath/internal/catalog"
	"github.com/founderpath/founderpath/internal/logger"
)

// Apology replaces a summary that could not be produced.
const Apology = "Sorry, we couldn't retrieve this book summary right now."

// Summarizer produces a Markdown book summary. *content.Client satisfies
// it.
type Summarizer interface {
	GenerateBookSummary(ctx context.Context, title, author string) string
}

// State is a render snapshot of the reader.
type State struct {
	Book    *catalog.Book
	Loading bool
	Summary string
}

// Reader shows one book summary at a time.
type Reader struct {
	gen Summarizer
	log *logger.Logger

	mu         sync.Mutex
	book       *catalog.Book
	loading    bool
	summary    string
	generation uint64
}

// NewReader creates a closed reader.
func NewReader(gen Summarizer, log *logger.Logger) *Reader {
	if log == nil {
		log = logger.Nop()
	}
	return &Reader{gen: gen, log: log.With("component", "books")}
}

// Open shows book and loads its summary, blocking until it arrives. It
// returns false when a summary is already loading.
func (r *Reader) Open(ctx context.Context, book catalog.Book) (string, bool) {
	r.mu.Lock()
	if r.loading {
		r.mu.Unlock()
		return "", false
	}
	r.book = &book
	r.loading = true
	r.summary = ""
	r.generation++
	gen := r.generation
	r.mu.Unlock()

	summary := strings.TrimSpace(r.gen.GenerateBookSummary(ctx, book.Title, book.Author))
	if summary == "" || ctx.Err() != nil {
		r.log.Warn("book summary unavailable", "book", book.Title, "err", ctx.Err())
		summary = Apology
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.generation {
		return summary, true
	}
	r.loading = false
	r.summary = summary
	return summary, true
}

// Close returns to the library. A summary still loading is dropped.
func (r *Reader) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.book = nil
	r.loading = false
	r.summary = ""
}

// Snapshot returns the reader state.
func (r *Reader) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := State{Loading: r.loading, Summary: r.summary}
	if r.book != nil {
		b := *r.book
		s.Book = &b
	}
	return s
}
