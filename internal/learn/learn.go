// Package learn drives one lesson at a time: section-by-section reading,
// then a quiz scored into an XP award.
package learn

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/founderpath/founderpath/internal/content"
	"github.com/founderpath/founderpath/internal/logger"
)

const (
	// BaseXP is awarded for finishing any quiz.
	BaseXP = 50
	// XPPerCorrect is added for each correct answer.
	XPPerCorrect = 25
	// SettleDelay is how long the final answer stays on screen before the
	// completion is published.
	SettleDelay = 500 * time.Millisecond
)

var (
	ErrBusy          = errors.New("a lesson is already being generated")
	ErrNoLesson      = errors.New("no active lesson")
	ErrNotInQuiz     = errors.New("lesson is not in quiz mode")
	ErrQuizComplete  = errors.New("every quiz question is already answered")
	ErrInvalidOption = errors.New("option index out of range")
	ErrNotSettling   = errors.New("quiz is not awaiting completion")
	ErrClosed        = errors.New("lesson was closed before generation finished")
)

// LessonGenerator produces lessons. *content.Client satisfies it.
type LessonGenerator interface {
	GenerateLesson(ctx context.Context, topic string) (*content.Lesson, error)
}

// CompletionRecorder persists a finished lesson.
type CompletionRecorder interface {
	RecordCompletion(ctx context.Context, c Completion) error
}

// Completion is the published result of a finished quiz.
type Completion struct {
	LessonID       string
	Title          string
	Topic          string
	Difficulty     content.Difficulty
	CorrectAnswers int
	TotalQuestions int
	XPAwarded      int
}

// State is a render snapshot of the controller.
type State struct {
	// Loading is the topic being generated, or "".
	Loading      string
	Lesson       *content.Lesson
	SectionIndex int
	QuizMode     bool
	Answers      []int
	// Settling is true between the last answer and FinishQuiz.
	Settling bool
	// Result is the last published completion until dismissed.
	Result  *Completion
	Filters []content.Difficulty
}

// ActiveQuestion returns the index of the question awaiting an answer, or
// -1 outside quiz mode or once every question is answered.
func (s State) ActiveQuestion() int {
	if s.Lesson == nil || !s.QuizMode || len(s.Answers) >= len(s.Lesson.Quiz) {
		return -1
	}
	return len(s.Answers)
}

// Controller owns the lesson session.
type Controller struct {
	gen LessonGenerator
	rec CompletionRecorder
	log *logger.Logger

	mu         sync.Mutex
	loading    string
	lesson     *content.Lesson
	section    int
	quizMode   bool
	answers    []int
	pending    *Completion
	result     *Completion
	filters    map[content.Difficulty]bool
	generation uint64
}

// NewController creates a lesson controller.
func NewController(gen LessonGenerator, rec CompletionRecorder, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		gen:     gen,
		rec:     rec,
		log:     log.With("component", "learn"),
		filters: make(map[content.Difficulty]bool),
	}
}

// StartLesson generates a lesson for topic and makes it the active
// session. It blocks until generation finishes. On failure no session
// is left active.
func (c *Controller) StartLesson(ctx context.Context, topic string) (*content.Lesson, error) {
	c.mu.Lock()
	if c.loading != "" {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	if c.pending != nil {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	c.loading = topic
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	lesson, err := c.gen.GenerateLesson(ctx, topic)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		c.log.Debug("dropping lesson for closed request", "topic", topic)
		return nil, ErrClosed
	}
	c.loading = ""
	if err != nil {
		c.log.Warn("lesson generation failed", "topic", topic, "err", err)
		return nil, fmt.Errorf("start lesson %q: %w", topic, err)
	}

	c.lesson = lesson
	c.section = 0
	c.quizMode = false
	c.answers = nil
	c.log.Info("lesson started", "topic", topic, "title", lesson.Title, "sections", len(lesson.Sections))
	return lesson, nil
}

// Loading returns the topic whose lesson is being generated, or "".
func (c *Controller) Loading() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Advance moves to the next section, or into quiz mode from the last
// section. It is a no-op without a lesson or once in quiz mode.
func (c *Controller) Advance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lesson == nil || c.quizMode {
		return
	}
	if c.section < len(c.lesson.Sections)-1 {
		c.section++
		return
	}
	c.quizMode = true
}

// AnswerQuiz records the answer to the active question. When it completes
// the quiz, the attempt is scored and the controller starts settling; the
// caller then invokes FinishQuiz after SettleDelay. The returned bool
// reports whether settling started.
func (c *Controller) AnswerQuiz(optionIndex int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lesson == nil {
		return false, ErrNoLesson
	}
	if !c.quizMode {
		return false, ErrNotInQuiz
	}
	quiz := c.lesson.Quiz
	if len(c.answers) >= len(quiz) {
		return false, ErrQuizComplete
	}
	if q := quiz[len(c.answers)]; optionIndex < 0 || optionIndex >= len(q.Options) {
		return false, ErrInvalidOption
	}

	c.answers = append(c.answers, optionIndex)
	if len(c.answers) < len(quiz) {
		return false, nil
	}

	correct, xp := Score(quiz, c.answers)
	c.pending = &Completion{
		LessonID:       c.lesson.ID,
		Title:          c.lesson.Title,
		Topic:          c.lesson.Topic,
		Difficulty:     c.lesson.Difficulty,
		CorrectAnswers: correct,
		TotalQuestions: len(quiz),
		XPAwarded:      xp,
	}
	return true, nil
}

// FinishQuiz publishes the scored completion, records it, and clears the
// active lesson. The completion is published even if recording fails.
func (c *Controller) FinishQuiz(ctx context.Context) (*Completion, error) {
	c.mu.Lock()
	done := c.pending
	if done == nil {
		c.mu.Unlock()
		return nil, ErrNotSettling
	}
	c.pending = nil
	c.result = done
	c.clearLocked()
	c.mu.Unlock()

	c.log.Info("lesson completed", "title", done.Title, "correct", done.CorrectAnswers, "xp", done.XPAwarded)
	result := *done
	if c.rec == nil {
		return &result, nil
	}
	if err := c.rec.RecordCompletion(ctx, result); err != nil {
		c.log.Error("record completion failed", "title", done.Title, "err", err)
		return &result, fmt.Errorf("record completion: %w", err)
	}
	return &result, nil
}

// Close discards the session without awarding XP. A pending generation
// is abandoned and its result dropped. Close is ignored while settling
// and reports whether anything was discarded.
func (c *Controller) Close() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		return false
	}
	if c.lesson == nil && c.loading == "" {
		return false
	}
	c.generation++
	c.loading = ""
	c.clearLocked()
	return true
}

// DismissResult clears the published completion.
func (c *Controller) DismissResult() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = nil
}

func (c *Controller) clearLocked() {
	c.lesson = nil
	c.section = 0
	c.quizMode = false
	c.answers = nil
}

// ToggleFilter adds d to the selected difficulties, or removes it if
// already selected.
func (c *Controller) ToggleFilter(d content.Difficulty) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.filters[d] {
		delete(c.filters, d)
		return
	}
	c.filters[d] = true
}

// Filters returns the selected difficulties in catalog order.
func (c *Controller) Filters() []content.Difficulty {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filtersLocked()
}

func (c *Controller) filtersLocked() []content.Difficulty {
	var out []content.Difficulty
	for _, d := range content.Difficulties {
		if c.filters[d] {
			out = append(out, d)
		}
	}
	return out
}

// Snapshot returns a copy of the session state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		Loading:      c.loading,
		Lesson:       c.lesson,
		SectionIndex: c.section,
		QuizMode:     c.quizMode,
		Answers:      slices.Clone(c.answers),
		Settling:     c.pending != nil,
		Filters:      c.filtersLocked(),
	}
	if c.result != nil {
		r := *c.result
		s.Result = &r
	}
	return s
}

// Score counts the answers matching each question's correctIndex and
// returns the XP award: BaseXP plus XPPerCorrect per correct answer.
func Score(quiz []content.QuizQuestion, answers []int) (correct, xp int) {
	for i, q := range quiz {
		if i < len(answers) && answers[i] == q.CorrectIndex {
			correct++
		}
	}
	return correct, BaseXP + XPPerCorrect*correct
}

// ShareText is the achievement message copied to the clipboard.
func ShareText(c Completion) string {
	return fmt.Sprintf("I just completed %q on FounderPath and earned %d XP!", c.Title, c.XPAwarded)
}
