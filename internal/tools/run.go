// Package tools fills business-document templates and generates the
// documents.
package tools

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/founderpath/founderpath/internal/catalog"
	"github.com/founderpath/founderpath/internal/content"
	"github.com/founderpath/founderpath/internal/logger"
)

var ErrUnknownInput = errors.New("unknown tool input")

// Generator produces a document from a template and its values. It never
// fails outward. *content.Client satisfies it.
type Generator interface {
	GenerateToolDocument(ctx context.Context, promptTemplate string, values map[string]string) string
}

// Interpolate replaces each {{key}} in template with values[key]. Keys
// without a value stay as literal {{key}} text.
func Interpolate(template string, values map[string]string) string {
	return content.Interpolate(template, values)
}

// Run is one use of a tool template: the form values and the latest
// output.
type Run struct {
	gen  Generator
	tmpl catalog.ToolTemplate
	log  *logger.Logger

	mu     sync.Mutex
	values map[string]string
	busy   bool
	output string
}

// NewRun creates an empty form for tmpl.
func NewRun(gen Generator, tmpl catalog.ToolTemplate, log *logger.Logger) *Run {
	if log == nil {
		log = logger.Nop()
	}
	return &Run{
		gen:    gen,
		tmpl:   tmpl,
		log:    log.With("component", "tools", "tool", tmpl.ID),
		values: make(map[string]string, len(tmpl.Inputs)),
	}
}

// Template returns the tool being run.
func (r *Run) Template() catalog.ToolTemplate {
	return r.tmpl
}

// Set stores the value of a declared input.
func (r *Run) Set(key, value string) error {
	if !r.declared(key) {
		return fmt.Errorf("%w %q for %s", ErrUnknownInput, key, r.tmpl.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

func (r *Run) declared(key string) bool {
	for _, in := range r.tmpl.Inputs {
		if in.Key == key {
			return true
		}
	}
	return false
}

// Value returns the current value of key.
func (r *Run) Value(key string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.values[key]
}

// Present records that every declared input has been shown. Inputs never
// set take the empty string; values already set are kept.
func (r *Run) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, in := range r.tmpl.Inputs {
		if _, ok := r.values[in.Key]; !ok {
			r.values[in.Key] = ""
		}
	}
}

// Prompt returns the template filled with the current values.
func (r *Run) Prompt() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Interpolate(r.tmpl.PromptTemplate, r.values)
}

// Generate produces the document and stores it as the output. Empty
// values are substituted as-is and inputs never set keep their {{key}}
// placeholder. It returns false without calling the generator while a
// generation is already running.
func (r *Run) Generate(ctx context.Context) (string, bool) {
	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return "", false
	}
	r.busy = true
	values := maps.Clone(r.values)
	r.mu.Unlock()

	out := r.gen.GenerateToolDocument(ctx, r.tmpl.PromptTemplate, values)

	r.mu.Lock()
	r.busy = false
	r.output = out
	r.mu.Unlock()
	r.log.Debug("tool document generated", "chars", len(out))
	return out, true
}

// Busy reports whether a generation is running.
func (r *Run) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy
}

// Output returns the latest generated document.
func (r *Run) Output() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.output
}

// Reset clears the output so the form can be edited again. Values are
// kept.
func (r *Run) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.output = ""
}
