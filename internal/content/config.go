package content

import "time"

// Fallback strings substituted when a fire-and-forget generation fails.
const (
	ToolEmptyFallback = "Failed to generate tool output."
	ToolErrorFallback = "Error generating content. Please try again."
	BookEmptyFallback = "Summary not available."
	BookErrorFallback = "Unable to retrieve book summary at this time."
	TipEmptyFallback  = "Focus on your users."
	TipErrorFallback  = "Keep building."
)

// Config holds generation settings.
type Config struct {
	LessonMaxTokens int `yaml:"lesson_max_tokens"`
	ChatMaxTokens   int `yaml:"chat_max_tokens"`
	ToolMaxTokens   int `yaml:"tool_max_tokens"`
	BookMaxTokens   int `yaml:"book_max_tokens"`
	TipMaxTokens    int `yaml:"tip_max_tokens"`
	Temperature     float64 `yaml:"temperature"`

	// Timeout bounds each one-shot request. Streams are not bounded.
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns sensible defaults for content generation.
func DefaultConfig() Config {
	return Config{
		LessonMaxTokens: 4096,
		ChatMaxTokens:   1024,
		ToolMaxTokens:   2048,
		BookMaxTokens:   4096,
		TipMaxTokens:    256,
		Temperature:     0.7,
		Timeout:         60 * time.Second,
	}
}
