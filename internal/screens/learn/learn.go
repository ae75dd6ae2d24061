package learn

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/founderpath/founderpath/internal/catalog"
	"github.com/founderpath/founderpath/internal/content"
	"github.com/founderpath/founderpath/internal/learn"
	"github.com/founderpath/founderpath/internal/profile"
	"github.com/founderpath/founderpath/internal/screen"
	"github.com/founderpath/founderpath/internal/ui/components"
	"github.com/founderpath/founderpath/internal/ui/layout"
	"github.com/founderpath/founderpath/internal/ui/theme"
)

// Profile exposes the completed lessons for the Done markers.
type Profile interface {
	Current() profile.UserProfile
}

type lessonMsg struct {
	err error
}

type settleMsg struct{}

type finishedMsg struct {
	err error
}

var filterKeys = map[string]content.Difficulty{
	"b": content.Beginner,
	"i": content.Intermediate,
	"a": content.Advanced,
}

// LearnScreen lists topics and runs one lesson at a time.
type LearnScreen struct {
	ctrl    *learn.Controller
	topics  []catalog.Topic
	profile Profile

	menu     components.Menu
	visible  []catalog.Topic
	quiz     components.MultiChoice
	quizFor  int
	reader   viewport.Model
	readerAt int
	spinner  spinner.Model
	errMsg   string
	copied   string
}

var _ screen.Screen = (*LearnScreen)(nil)

// New creates a LearnScreen over the given topics.
func New(ctrl *learn.Controller, topics []catalog.Topic, p Profile) *LearnScreen {
	l := &LearnScreen{
		ctrl:     ctrl,
		topics:   topics,
		profile:  p,
		quizFor:  -1,
		readerAt: -1,
		reader:   viewport.New(viewport.WithWidth(60), viewport.WithHeight(10)),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
	l.rebuildMenu()
	return l
}

func (l *LearnScreen) rebuildMenu() {
	var completed []string
	if l.profile != nil {
		completed = l.profile.Current().CompletedLessons
	}
	l.visible = l.ctrl.Topics(l.topics)

	items := make([]components.MenuItem, 0, len(l.visible))
	for _, t := range l.visible {
		badge := theme.DifficultyStyle(string(t.Difficulty)).Render(string(t.Difficulty))
		if learn.IsDone(t.Title, completed) {
			badge += " " + theme.Correct.Render("✓ Done")
		}
		items = append(items, components.MenuItem{
			Label:  t.Title,
			Badge:  badge,
			Action: l.start(t.Title),
		})
	}
	selected := l.menu.Selected
	l.menu = components.NewMenu(items)
	if selected < len(items) {
		l.menu.Selected = selected
	}
}

func (l *LearnScreen) start(topic string) func() tea.Cmd {
	return func() tea.Cmd {
		l.errMsg = ""
		ctrl := l.ctrl
		return tea.Batch(l.spinner.Tick, func() tea.Msg {
			_, err := ctrl.StartLesson(context.Background(), topic)
			return lessonMsg{err: err}
		})
	}
}

func (l *LearnScreen) Init() tea.Cmd {
	l.rebuildMenu()
	if l.ctrl.Loading() != "" {
		return l.spinner.Tick
	}
	return nil
}

func (l *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lessonMsg:
		switch {
		case errors.Is(msg.err, learn.ErrClosed):
		case errors.Is(msg.err, learn.ErrBusy):
			l.errMsg = "A lesson is already loading."
		case msg.err != nil:
			l.errMsg = "Could not generate this lesson. Please try again."
		}
		return l, nil

	case settleMsg:
		ctrl := l.ctrl
		return l, func() tea.Msg {
			_, err := ctrl.FinishQuiz(context.Background())
			return finishedMsg{err: err}
		}

	case finishedMsg:
		l.quizFor = -1
		l.rebuildMenu()
		return l, nil

	case components.CopiedMsg:
		if msg.Err != nil {
			l.copied = "Clipboard unavailable."
		} else {
			l.copied = "Copied to clipboard!"
		}
		return l, nil

	case spinner.TickMsg:
		if l.ctrl.Loading() == "" {
			return l, nil
		}
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return l, cmd

	case tea.KeyPressMsg:
		return l.handleKey(msg)
	}
	return l, nil
}

func (l *LearnScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	s := l.ctrl.Snapshot()
	key := msg.String()

	switch {
	case s.Result != nil:
		switch key {
		case "c":
			return l, components.CopyToClipboard(learn.ShareText(*s.Result))
		case "enter", "esc":
			l.ctrl.DismissResult()
			l.copied = ""
		}
		return l, nil

	case s.Settling:
		return l, nil

	case s.Loading != "":
		if key == "esc" {
			l.ctrl.Close()
		}
		return l, nil

	case s.Lesson != nil && s.QuizMode:
		if key == "esc" {
			l.ctrl.Close()
			l.quizFor = -1
			return l, nil
		}
		return l.updateQuiz(s, msg)

	case s.Lesson != nil:
		switch key {
		case "esc":
			l.ctrl.Close()
			l.readerAt = -1
		case "enter", "right", "l", "space":
			l.ctrl.Advance()
		default:
			var cmd tea.Cmd
			l.reader, cmd = l.reader.Update(msg)
			return l, cmd
		}
		return l, nil
	}

	if d, ok := filterKeys[key]; ok {
		l.ctrl.ToggleFilter(d)
		l.menu.Selected = 0
		l.rebuildMenu()
		return l, nil
	}
	var cmd tea.Cmd
	l.menu, cmd = l.menu.Update(msg)
	return l, cmd
}

func (l *LearnScreen) updateQuiz(s learn.State, msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	q := s.ActiveQuestion()
	if q < 0 {
		return l, nil
	}
	l.syncQuiz(s)

	l.quiz, _ = l.quiz.Update(msg)
	if !l.quiz.Submitted {
		return l, nil
	}

	settling, err := l.ctrl.AnswerQuiz(l.quiz.ChosenIndex)
	if err != nil {
		l.errMsg = err.Error()
		return l, nil
	}
	if settling {
		return l, tea.Tick(learn.SettleDelay, func(time.Time) tea.Msg { return settleMsg{} })
	}
	l.syncQuiz(l.ctrl.Snapshot())
	return l, nil
}

// syncQuiz rebuilds the choice widget when the active question changes.
func (l *LearnScreen) syncQuiz(s learn.State) {
	q := s.ActiveQuestion()
	if q < 0 || q == l.quizFor {
		return
	}
	question := s.Lesson.Quiz[q]
	l.quiz = components.NewMultiChoice(question.Question, question.Options)
	l.quizFor = q
}

// CapturingInput keeps tab keys from leaving an active lesson.
func (l *LearnScreen) CapturingInput() bool {
	s := l.ctrl.Snapshot()
	return s.Lesson != nil || s.Result != nil
}

// Close abandons an unfinished lesson when the screen is left.
func (l *LearnScreen) Close() {
	l.ctrl.Close()
}

func (l *LearnScreen) View(width, height int) string {
	s := l.ctrl.Snapshot()
	cw := components.ContentWidth(width)

	var body string
	switch {
	case s.Result != nil:
		return components.Modal(l.renderResult(*s.Result), width, height)
	case s.Loading != "":
		body = l.spinner.View() + " " + theme.Subtitle.Render(fmt.Sprintf("Crafting your lesson on %s...", s.Loading))
		body = lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
		return body
	case s.Lesson != nil && (s.QuizMode || s.Settling):
		body = l.renderQuiz(s, cw)
	case s.Lesson != nil:
		body = l.renderSection(s, cw, height)
	default:
		body = l.renderTopics(s)
	}
	if l.errMsg != "" {
		body += "\n\n" + theme.Incorrect.Render(l.errMsg)
	}
	return lipgloss.NewStyle().Width(width).Padding(0, 2).Render(body)
}

func (l *LearnScreen) renderTopics(s learn.State) string {
	var chips []string
	for _, d := range content.Difficulties {
		key := strings.ToLower(string(d)[:1])
		label := fmt.Sprintf("[%s] %s", key, d)
		if containsDifficulty(s.Filters, d) {
			chips = append(chips, theme.DifficultyStyle(string(d)).Bold(true).Render("● "+label))
		} else {
			chips = append(chips, theme.Hint.Render("○ "+label))
		}
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Learning Paths"))
	b.WriteString("\n")
	b.WriteString(strings.Join(chips, "   "))
	b.WriteString("\n\n")
	if len(l.visible) == 0 {
		b.WriteString(theme.Hint.Render("No topics match these filters."))
	} else {
		b.WriteString(l.menu.View())
	}
	return b.String()
}

func containsDifficulty(ds []content.Difficulty, d content.Difficulty) bool {
	for _, x := range ds {
		if x == d {
			return true
		}
	}
	return false
}

func (l *LearnScreen) renderSection(s learn.State, cw, height int) string {
	lesson := s.Lesson
	sec := lesson.Sections[s.SectionIndex]

	header := theme.Title.Render(lesson.Title) + "  " +
		theme.DifficultyStyle(string(lesson.Difficulty)).Render(string(lesson.Difficulty)) + "  " +
		theme.Hint.Render(lesson.Duration)
	bar := components.NewProgressBar(
		fmt.Sprintf("Section %d of %d", s.SectionIndex+1, len(lesson.Sections)),
		components.Fraction(s.SectionIndex+1, len(lesson.Sections)), false, cw).View()

	l.reader.SetWidth(cw)
	l.reader.SetHeight(max(3, height-10))
	if l.readerAt != s.SectionIndex {
		l.reader.SetContent(components.Wrap(sec.Content, cw))
		l.reader.GotoTop()
		l.readerAt = s.SectionIndex
	}

	next := "Next"
	if s.SectionIndex == len(lesson.Sections)-1 {
		next = "Take Quiz"
	}
	return strings.Join([]string{
		header,
		bar,
		"",
		theme.Heading.Render(sec.Title),
		l.reader.View(),
		"",
		components.Button(next, true),
	}, "\n")
}

func (l *LearnScreen) renderQuiz(s learn.State, cw int) string {
	lesson := s.Lesson
	var b strings.Builder
	b.WriteString(theme.Title.Render("Quiz: " + lesson.Title))
	b.WriteString("\n")
	answered := len(s.Answers)
	b.WriteString(components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", min(answered+1, len(lesson.Quiz)), len(lesson.Quiz)),
		components.Fraction(answered, len(lesson.Quiz)), false, cw).View())
	b.WriteString("\n\n")

	if s.Settling {
		b.WriteString(l.quiz.View())
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Scoring your answers..."))
		return b.String()
	}
	l.syncQuiz(s)
	b.WriteString(l.quiz.View())
	return b.String()
}

func (l *LearnScreen) renderResult(c learn.Completion) string {
	lines := []string{
		theme.Title.Render("Lesson Complete!"),
		"",
		theme.Body.Render(c.Title),
		"",
		theme.Body.Render(fmt.Sprintf("You got %d out of %d correct", c.CorrectAnswers, c.TotalQuestions)),
		theme.XP.Render(fmt.Sprintf("+%d XP", c.XPAwarded)),
		"",
		components.Button("Share Achievement (c)", false) + "  " + components.Button("Continue", true),
	}
	if l.copied != "" {
		lines = append(lines, "", theme.Hint.Render(l.copied))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (l *LearnScreen) Title() string {
	return "Learn"
}

func (l *LearnScreen) KeyHints() []layout.KeyHint {
	s := l.ctrl.Snapshot()
	switch {
	case s.Result != nil:
		return []layout.KeyHint{
			{Key: "c", Description: "Copy share text"},
			{Key: "Enter", Description: "Continue"},
		}
	case s.Lesson != nil && s.QuizMode:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter/A-D", Description: "Answer"},
			{Key: "Esc", Description: "Quit lesson"},
		}
	case s.Lesson != nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "↑↓", Description: "Scroll"},
			{Key: "Esc", Description: "Quit lesson"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start lesson"},
		{Key: "b/i/a", Description: "Filter"},
	}
}
