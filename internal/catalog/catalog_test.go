package catalog

import (
	"regexp"
	"slices"
	"testing"

	"github.com/founderpath/founderpath/internal/content"
)

func TestDefaultCatalogSizes(t *testing.T) {
	c := Default()
	if len(c.Topics) != 10 {
		t.Errorf("topics = %d, want 10", len(c.Topics))
	}
	if len(c.Books) != 8 {
		t.Errorf("books = %d, want 8", len(c.Books))
	}
	if len(c.Tools) != 7 {
		t.Errorf("tools = %d, want 7", len(c.Tools))
	}
}

func TestToolIDs(t *testing.T) {
	want := []string{"elevator-pitch", "lean-canvas", "okr-generator", "swot", "job-desc", "tweet-thread", "cold-email"}
	var got []string
	for _, tool := range Default().Tools {
		got = append(got, tool.ID)
	}
	if !slices.Equal(got, want) {
		t.Fatalf("tool ids = %v, want %v", got, want)
	}
}

var placeholder = regexp.MustCompile(`\{\{(\w+)\}\}`)

func TestEveryPlaceholderIsDeclared(t *testing.T) {
	for _, tool := range Default().Tools {
		keys := tool.Keys()
		for _, m := range placeholder.FindAllStringSubmatch(tool.PromptTemplate, -1) {
			if !slices.Contains(keys, m[1]) {
				t.Errorf("tool %s: placeholder %s has no input", tool.ID, m[0])
			}
		}
		for _, k := range keys {
			if !regexp.MustCompile(`\{\{` + k + `\}\}`).MatchString(tool.PromptTemplate) {
				t.Errorf("tool %s: input %s is never used", tool.ID, k)
			}
		}
	}
}

func TestTopicDifficultiesCovered(t *testing.T) {
	counts := make(map[content.Difficulty]int)
	for _, topic := range Default().Topics {
		counts[topic.Difficulty]++
	}
	for _, d := range content.Difficulties {
		if counts[d] == 0 {
			t.Errorf("no topics for %s", d)
		}
	}
}

func TestLookups(t *testing.T) {
	c := Default()
	if tool, ok := c.Tool("swot"); !ok || tool.Name != "SWOT Analysis" {
		t.Errorf("Tool(swot) = %+v, %v", tool, ok)
	}
	if _, ok := c.Tool("nope"); ok {
		t.Error("unknown tool found")
	}
	if book, ok := c.Book("1"); !ok || book.Author != "Peter Thiel" {
		t.Errorf("Book(1) = %+v, %v", book, ok)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad difficulty", "topics:\n  - title: X\n    difficulty: Expert\n"},
		{"duplicate tool", "tools:\n  - id: a\n    inputs: [{key: k}]\n  - id: a\n    inputs: [{key: k}]\n"},
		{"duplicate key", "tools:\n  - id: a\n    inputs: [{key: k}, {key: k}]\n"},
		{"book without author", "books:\n  - id: '1'\n    title: T\n"},
		{"not yaml", "topics: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
