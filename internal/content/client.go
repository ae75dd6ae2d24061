package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/founderpath/founderpath/internal/llm"
	"github.com/founderpath/founderpath/internal/logger"
)

// Client issues content requests to the provider.
type Client struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

// NewClient creates a content client.
func NewClient(provider llm.Provider, cfg Config, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{provider: provider, cfg: cfg, log: log.With("component", "content")}
}

type lessonOutput struct {
	Title      string         `json:"title"`
	Duration   string         `json:"duration"`
	Difficulty Difficulty     `json:"difficulty"`
	Sections   []Section      `json:"sections"`
	Quiz       []QuizQuestion `json:"quiz"`
}

// GenerateLesson requests a lesson about topic. Every failure is a
// *GenerationError.
func (c *Client) GenerateLesson(ctx context.Context, topic string) (*Lesson, error) {
	ctx, cancel := c.withTimeout(llm.WithPurpose(ctx, llm.PurposeLesson))
	defer cancel()

	req := llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonUserMessage(topic)},
		},
		Schema:      LessonSchema,
		MaxTokens:   c.cfg.LessonMaxTokens,
		Temperature: c.cfg.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, &GenerationError{Op: "generate lesson", Err: err}
	}
	if len(resp.Content) == 0 {
		return nil, &GenerationError{Op: "generate lesson", Err: ErrNoContent}
	}

	var out lessonOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &GenerationError{Op: "parse lesson", Err: err}
	}
	if err := out.validate(); err != nil {
		return nil, &GenerationError{Op: "validate lesson", Err: err}
	}

	return &Lesson{
		ID:         uuid.NewString(),
		Topic:      topic,
		Title:      out.Title,
		Duration:   out.Duration,
		Difficulty: out.Difficulty,
		Sections:   out.Sections,
		Quiz:       out.Quiz,
	}, nil
}

func (o lessonOutput) validate() error {
	if strings.TrimSpace(o.Title) == "" {
		return errors.New("lesson has no title")
	}
	if !o.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", o.Difficulty)
	}
	if len(o.Sections) == 0 {
		return errors.New("lesson has no sections")
	}
	if len(o.Quiz) == 0 {
		return errors.New("lesson has no quiz")
	}
	for i, q := range o.Quiz {
		if len(q.Options) < 2 {
			return fmt.Errorf("quiz question %d has %d options", i+1, len(q.Options))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("quiz question %d: correctIndex %d out of range", i+1, q.CorrectIndex)
		}
	}
	return nil
}

// GenerateToolDocument fills promptTemplate with values and generates the
// document. It never fails outward: failures yield a fallback string.
func (c *Client) GenerateToolDocument(ctx context.Context, promptTemplate string, values map[string]string) string {
	prompt := Interpolate(promptTemplate, values)
	return c.generateText(llm.WithPurpose(ctx, llm.PurposeTool), toolSystemPrompt, prompt,
		c.cfg.ToolMaxTokens, ToolEmptyFallback, ToolErrorFallback)
}

// GenerateBookSummary returns a Markdown summary of the book, or a
// fallback string.
func (c *Client) GenerateBookSummary(ctx context.Context, title, author string) string {
	return c.generateText(llm.WithPurpose(ctx, llm.PurposeBook), bookSystemPrompt,
		buildBookUserMessage(title, author), c.cfg.BookMaxTokens, BookEmptyFallback, BookErrorFallback)
}

// GenerateDailyTip returns a one- or two-sentence tip, or a fallback string.
func (c *Client) GenerateDailyTip(ctx context.Context) string {
	return c.generateText(llm.WithPurpose(ctx, llm.PurposeDailyTip), "", dailyTipPrompt,
		c.cfg.TipMaxTokens, TipEmptyFallback, TipErrorFallback)
}

func (c *Client) generateText(ctx context.Context, system, prompt string, maxTokens int, emptyFallback, errFallback string) string {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		if errors.Is(err, llm.ErrEmptyResponse) {
			return emptyFallback
		}
		c.log.Warn("generation failed, using fallback", "purpose", llm.PurposeFrom(ctx), "err", err)
		return errFallback
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return emptyFallback
	}
	return text
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.Timeout)
}

// Interpolate replaces every {{key}} in template with values[key].
// Placeholders without a value are left verbatim.
func Interpolate(template string, values map[string]string) string {
	if len(values) == 0 {
		return template
	}
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
