// Package catalog holds the static lesson topics, books and tool templates.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/founderpath/founderpath/internal/content"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Topic is a lesson catalog entry.
type Topic struct {
	Title      string             `yaml:"title"`
	Difficulty content.Difficulty `yaml:"difficulty"`
}

// Book is a book catalog entry.
type Book struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
}

// ToolInput is one form field of a tool template.
type ToolInput struct {
	Label       string `yaml:"label"`
	Key         string `yaml:"key"`
	Placeholder string `yaml:"placeholder"`
}

// ToolTemplate is a business-document generator.
type ToolTemplate struct {
	ID             string      `yaml:"id"`
	Name           string      `yaml:"name"`
	Description    string      `yaml:"description"`
	PromptTemplate string      `yaml:"prompt"`
	Inputs         []ToolInput `yaml:"inputs"`
}

// Catalog is the full static catalog.
type Catalog struct {
	Version int            `yaml:"version"`
	Topics  []Topic        `yaml:"topics"`
	Books   []Book         `yaml:"books"`
	Tools   []ToolTemplate `yaml:"tools"`
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Default returns the embedded catalog. It panics if the embedded file is
// invalid, which the package tests rule out.
func Default() *Catalog {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(catalogYAML)
	})
	if loadErr != nil {
		panic(fmt.Sprintf("catalog: embedded catalog.yaml: %v", loadErr))
	}
	return loaded
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool)
	for _, t := range c.Topics {
		if t.Title == "" {
			return fmt.Errorf("topic with empty title")
		}
		if !t.Difficulty.Valid() {
			return fmt.Errorf("topic %q: unknown difficulty %q", t.Title, t.Difficulty)
		}
	}
	for _, b := range c.Books {
		if b.Title == "" || b.Author == "" {
			return fmt.Errorf("book %q: title and author are required", b.ID)
		}
	}
	for _, tool := range c.Tools {
		if tool.ID == "" || seen[tool.ID] {
			return fmt.Errorf("tool %q: missing or duplicate id", tool.ID)
		}
		seen[tool.ID] = true
		if len(tool.Inputs) == 0 {
			return fmt.Errorf("tool %q: no inputs", tool.ID)
		}
		keys := make(map[string]bool, len(tool.Inputs))
		for _, in := range tool.Inputs {
			if in.Key == "" || keys[in.Key] {
				return fmt.Errorf("tool %q: missing or duplicate input key %q", tool.ID, in.Key)
			}
			keys[in.Key] = true
		}
	}
	return nil
}

// Tool returns the template with the given id.
func (c *Catalog) Tool(id string) (ToolTemplate, bool) {
	for _, t := range c.Tools {
		if t.ID == id {
			return t, true
		}
	}
	return ToolTemplate{}, false
}

// Book returns the book with the given id.
func (c *Catalog) Book(id string) (Book, bool) {
	for _, b := range c.Books {
		if b.ID == id {
			return b, true
		}
	}
	return Book{}, false
}

// Keys returns the declared input keys of the template in form order.
func (t ToolTemplate) Keys() []string {
	keys := make([]string, len(t.Inputs))
	for i, in := range t.Inputs {
		keys[i] = in.Key
	}
	return keys
}
