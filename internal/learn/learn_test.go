package learn

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/founderpath/founderpath/internal/catalog"
	"github.com/founderpath/founderpath/internal/content"
	"github.com/founderpath/founderpath/internal/llm"
	"github.com/founderpath/founderpath/internal/profile"
	"github.com/founderpath/founderpath/internal/store"
)

const lessonJSON = `{
	"title": "Mastering Product-Market Fit",
	"duration": "5 min read",
	"difficulty": "Advanced",
	"sections": [
		{"title": "Definition", "content": "The market pulls the product."},
		{"title": "Signals", "content": "Retention flattens."},
		{"title": "Next", "content": "Talk to users."}
	],
	"quiz": [
		{"question": "Q1", "options": ["a", "b", "c"], "correctIndex": 1},
		{"question": "Q2", "options": ["a", "b"], "correctIndex": 0},
		{"question": "Q3", "options": ["a", "b", "c", "d"], "correctIndex": 3}
	]
}`

type fakeRecorder struct {
	mu   sync.Mutex
	got  []Completion
	fail error
}

func (r *fakeRecorder) RecordCompletion(_ context.Context, c Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, c)
	return r.fail
}

func newController(t *testing.T, responses ...llm.MockResponse) (*Controller, *fakeRecorder, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	rec := &fakeRecorder{}
	client := content.NewClient(mock, content.DefaultConfig(), nil)
	return NewController(client, rec, nil), rec, mock
}

func lessonResponse() llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(lessonJSON)}
}

func startQuiz(t *testing.T, c *Controller) {
	t.Helper()
	if _, err := c.StartLesson(t.Context(), "Product-Market Fit"); err != nil {
		t.Fatalf("StartLesson: %v", err)
	}
	for range 3 {
		c.Advance()
	}
	if !c.Snapshot().QuizMode {
		t.Fatal("expected quiz mode after the last section")
	}
}

func TestAdvanceWalksSectionsIntoQuiz(t *testing.T) {
	c, _, _ := newController(t, lessonResponse())
	if _, err := c.StartLesson(t.Context(), "Product-Market Fit"); err != nil {
		t.Fatal(err)
	}

	for want := 1; want <= 2; want++ {
		c.Advance()
		s := c.Snapshot()
		if s.SectionIndex != want || s.QuizMode {
			t.Fatalf("after advance: section=%d quiz=%v, want section=%d", s.SectionIndex, s.QuizMode, want)
		}
	}
	c.Advance()
	s := c.Snapshot()
	if !s.QuizMode || s.SectionIndex != 2 {
		t.Fatalf("expected quiz mode on last section, got %+v", s)
	}
	if s.ActiveQuestion() != 0 {
		t.Errorf("active question = %d, want 0", s.ActiveQuestion())
	}

	c.Advance()
	if got := c.Snapshot(); !got.QuizMode || got.SectionIndex != 2 {
		t.Error("advance in quiz mode should be a no-op")
	}
}

func TestAdvanceWithoutLesson(t *testing.T) {
	c, _, _ := newController(t)
	c.Advance()
	if s := c.Snapshot(); s.QuizMode || s.SectionIndex != 0 {
		t.Errorf("unexpected state %+v", s)
	}
}

func TestScoring(t *testing.T) {
	tests := []struct {
		name    string
		answers []int
		correct int
		xp      int
	}{
		{"all correct", []int{1, 0, 3}, 3, 125},
		{"one correct", []int{0, 0, 0}, 1, 75},
		{"none correct", []int{0, 1, 0}, 0, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec, _ := newController(t, lessonResponse())
			startQuiz(t, c)

			for i, a := range tt.answers {
				settling, err := c.AnswerQuiz(a)
				if err != nil {
					t.Fatalf("answer %d: %v", i, err)
				}
				if settling != (i == len(tt.answers)-1) {
					t.Fatalf("answer %d: settling = %v", i, settling)
				}
			}
			if !c.Snapshot().Settling {
				t.Fatal("expected settling after the final answer")
			}

			done, err := c.FinishQuiz(t.Context())
			if err != nil {
				t.Fatalf("FinishQuiz: %v", err)
			}
			if done.CorrectAnswers != tt.correct || done.XPAwarded != tt.xp {
				t.Errorf("got correct=%d xp=%d, want %d/%d", done.CorrectAnswers, done.XPAwarded, tt.correct, tt.xp)
			}
			if done.Title != "Mastering Product-Market Fit" || done.TotalQuestions != 3 {
				t.Errorf("unexpected completion %+v", done)
			}
			if len(rec.got) != 1 || rec.got[0] != *done {
				t.Errorf("recorder got %+v", rec.got)
			}

			s := c.Snapshot()
			if s.Lesson != nil || s.QuizMode || s.Settling {
				t.Errorf("session should be cleared, got %+v", s)
			}
			if s.Result == nil || s.Result.XPAwarded != tt.xp {
				t.Errorf("result = %+v", s.Result)
			}
			c.DismissResult()
			if c.Snapshot().Result != nil {
				t.Error("result should be dismissed")
			}
		})
	}
}

func TestAnswerQuizErrors(t *testing.T) {
	c, _, _ := newController(t, lessonResponse())
	if _, err := c.AnswerQuiz(0); !errors.Is(err, ErrNoLesson) {
		t.Errorf("no lesson: err = %v", err)
	}

	if _, err := c.StartLesson(t.Context(), "Product-Market Fit"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AnswerQuiz(0); !errors.Is(err, ErrNotInQuiz) {
		t.Errorf("reading mode: err = %v", err)
	}

	for range 3 {
		c.Advance()
	}
	if _, err := c.AnswerQuiz(7); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("out of range: err = %v", err)
	}
	for _, a := range []int{1, 0, 3} {
		if _, err := c.AnswerQuiz(a); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := c.AnswerQuiz(0); !errors.Is(err, ErrQuizComplete) {
		t.Errorf("extra answer: err = %v", err)
	}
	if got := len(c.Snapshot().Answers); got != 3 {
		t.Errorf("answers = %d, want 3", got)
	}
}

func TestCloseIgnoredWhileSettling(t *testing.T) {
	c, rec, _ := newController(t, lessonResponse())
	startQuiz(t, c)
	for _, a := range []int{1, 0, 3} {
		if _, err := c.AnswerQuiz(a); err != nil {
			t.Fatal(err)
		}
	}

	if c.Close() {
		t.Fatal("close should be ignored while settling")
	}
	if _, err := c.FinishQuiz(t.Context()); err != nil {
		t.Fatal(err)
	}
	if len(rec.got) != 1 {
		t.Errorf("completion should still be recorded, got %d", len(rec.got))
	}
}

func TestCloseDiscardsWithoutXP(t *testing.T) {
	c, rec, _ := newController(t, lessonResponse())
	startQuiz(t, c)
	if _, err := c.AnswerQuiz(1); err != nil {
		t.Fatal(err)
	}

	if !c.Close() {
		t.Fatal("close should discard the session")
	}
	if s := c.Snapshot(); s.Lesson != nil || len(s.Answers) != 0 {
		t.Errorf("session not cleared: %+v", s)
	}
	if _, err := c.FinishQuiz(t.Context()); !errors.Is(err, ErrNotSettling) {
		t.Errorf("FinishQuiz after close: err = %v", err)
	}
	if len(rec.got) != 0 {
		t.Error("closed session must not award XP")
	}
}

func TestStartLessonBusy(t *testing.T) {
	block := make(chan struct{})
	c, _, mock := newController(t, llm.MockResponse{Content: json.RawMessage(lessonJSON), Block: block})

	errc := make(chan error, 1)
	go func() {
		_, err := c.StartLesson(context.Background(), "Product-Market Fit")
		errc <- err
	}()
	waitFor(t, func() bool { return c.Loading() == "Product-Market Fit" })

	if _, err := c.StartLesson(t.Context(), "Pitch Deck Essentials"); !errors.Is(err, ErrBusy) {
		t.Errorf("second start: err = %v, want ErrBusy", err)
	}
	close(block)
	if err := <-errc; err != nil {
		t.Fatalf("first start: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider calls = %d, want 1", mock.CallCount())
	}
	if s := c.Snapshot(); s.Loading != "" || s.Lesson == nil {
		t.Errorf("unexpected state %+v", s)
	}
}

func TestCloseDropsPendingGeneration(t *testing.T) {
	block := make(chan struct{})
	c, _, _ := newController(t, llm.MockResponse{Content: json.RawMessage(lessonJSON), Block: block})

	errc := make(chan error, 1)
	go func() {
		_, err := c.StartLesson(context.Background(), "Product-Market Fit")
		errc <- err
	}()
	waitFor(t, func() bool { return c.Snapshot().Loading != "" })

	if !c.Close() {
		t.Fatal("close should abandon the pending request")
	}
	close(block)
	if err := <-errc; !errors.Is(err, ErrClosed) {
		t.Fatalf("err = %v, want ErrClosed", err)
	}
	if c.Snapshot().Lesson != nil {
		t.Error("late lesson must not become active")
	}
}

func TestStartLessonFailureLeavesNoSession(t *testing.T) {
	c, _, _ := newController(t, llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	_, err := c.StartLesson(t.Context(), "Product-Market Fit")
	var genErr *content.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if s := c.Snapshot(); s.Lesson != nil || s.Loading != "" {
		t.Errorf("unexpected state %+v", s)
	}
}

func TestRecorderFailureStillPublishes(t *testing.T) {
	c, rec, _ := newController(t, lessonResponse())
	rec.fail = errors.New("disk full")
	startQuiz(t, c)
	for _, a := range []int{1, 0, 3} {
		if _, err := c.AnswerQuiz(a); err != nil {
			t.Fatal(err)
		}
	}
	done, err := c.FinishQuiz(t.Context())
	if err == nil {
		t.Fatal("expected record error")
	}
	if done == nil || done.XPAwarded != 125 {
		t.Errorf("completion = %+v", done)
	}
	if c.Snapshot().Result == nil {
		t.Error("result should be published")
	}
}

func TestFilterTopics(t *testing.T) {
	topics := catalog.Default().Topics
	tests := []struct {
		name     string
		selected []content.Difficulty
		want     int
	}{
		{"none selected", nil, 10},
		{"beginner", []content.Difficulty{content.Beginner}, 3},
		{"intermediate and advanced", []content.Difficulty{content.Intermediate, content.Advanced}, 7},
		{"all", content.Difficulties, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTopics(topics, tt.selected)
			if len(got) != tt.want {
				t.Errorf("got %d topics, want %d", len(got), tt.want)
			}
		})
	}
}

func TestToggleFilter(t *testing.T) {
	c, _, _ := newController(t)
	c.ToggleFilter(content.Advanced)
	c.ToggleFilter(content.Beginner)
	got := c.Filters()
	if len(got) != 2 || got[0] != content.Beginner || got[1] != content.Advanced {
		t.Fatalf("filters = %v", got)
	}
	if n := len(c.Topics(catalog.Default().Topics)); n != 6 {
		t.Errorf("filtered topics = %d, want 6", n)
	}
	c.ToggleFilter(content.Beginner)
	c.ToggleFilter(content.Advanced)
	if len(c.Filters()) != 0 {
		t.Error("toggling twice should deselect")
	}
}

func TestIsDone(t *testing.T) {
	completed := []string{"Mastering Product-Market Fit", "Pitch Deck Essentials 101"}
	tests := []struct {
		topic string
		want  bool
	}{
		{"Product-Market Fit", true},
		{"Pitch Deck Essentials", true},
		{"Finding a Co-Founder", false},
		{"product-market fit", false},
	}
	for _, tt := range tests {
		if got := IsDone(tt.topic, completed); got != tt.want {
			t.Errorf("IsDone(%q) = %v, want %v", tt.topic, got, tt.want)
		}
	}
}

func TestShareText(t *testing.T) {
	got := ShareText(Completion{Title: "Pitch Deck Essentials", XPAwarded: 100})
	want := `I just completed "Pitch Deck Essentials" on FounderPath and earned 100 XP!`
	if got != want {
		t.Errorf("ShareText = %q, want %q", got, want)
	}
}

func TestProfileRecorder(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	prof := profile.NewService(s.ProfileRepo(), nil)
	if _, err := prof.Load(t.Context()); err != nil {
		t.Fatal(err)
	}
	rec := ProfileRecorder{Profile: prof, Events: s.EventRepo()}
	err = rec.RecordCompletion(t.Context(), Completion{
		LessonID: "l-1", Title: "Mastering Product-Market Fit", Topic: "Product-Market Fit",
		Difficulty: content.Advanced, CorrectAnswers: 2, TotalQuestions: 3, XPAwarded: 100,
	})
	if err != nil {
		t.Fatalf("RecordCompletion: %v", err)
	}

	p := prof.Current()
	if p.XP != 100 || len(p.CompletedLessons) != 1 {
		t.Errorf("profile = %+v", p)
	}
	events, err := s.EventRepo().QueryLessonCompletions(t.Context(), store.QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].LessonID != "l-1" || events[0].XPAwarded != 100 {
		t.Errorf("events = %+v", events)
	}
}
