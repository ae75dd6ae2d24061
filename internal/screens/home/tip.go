package home

import (
	"context"
	"sync"
)

// TipLoading is shown while the daily tip is generated.
const TipLoading = "Gathering insights for your journey..."

// TipSource generates the daily tip. *content.Client satisfies it.
type TipSource interface {
	GenerateDailyTip(ctx context.Context) string
}

// Tip fetches the daily tip at most once per process.
type Tip struct {
	src TipSource

	once sync.Once
	mu   sync.Mutex
	text string
	done bool
}

// NewTip creates a Tip backed by src.
func NewTip(src TipSource) *Tip {
	return &Tip{src: src}
}

// Fetch generates the tip on first call and returns the cached text on
// later calls. GenerateDailyTip never fails outward, so neither does Fetch.
func (t *Tip) Fetch(ctx context.Context) string {
	t.once.Do(func() {
		text := t.src.GenerateDailyTip(ctx)
		t.mu.Lock()
		t.text = text
		t.done = true
		t.mu.Unlock()
	})
	return t.Text()
}

// Text returns the tip, or TipLoading until Fetch has finished.
func (t *Tip) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.done {
		return TipLoading
	}
	return t.text
}

// Loaded reports whether the tip is available.
func (t *Tip) Loaded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}
