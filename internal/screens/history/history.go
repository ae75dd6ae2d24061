package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/founderpath/founderpath/internal/router"
	"github.com/founderpath/founderpath/internal/screen"
	"github.com/founderpath/founderpath/internal/store"
	"github.com/founderpath/founderpath/internal/ui/layout"
	"github.com/founderpath/founderpath/internal/ui/theme"
)

// Source reads recorded lesson completions.
type Source interface {
	QueryLessonCompletions(ctx context.Context, opts store.QueryOpts) ([]store.LessonCompletion, error)
}

type historyLoadedMsg struct {
	Completions []store.LessonCompletion
	Err         error
}

// HistoryScreen displays past lesson completions.
type HistoryScreen struct {
	source      Source
	completions []store.LessonCompletion
	selected    int
	expanded    map[int]bool
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(source Source) *HistoryScreen {
	return &HistoryScreen{
		source:   source,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		completions, err := s.source.QueryLessonCompletions(context.Background(), store.QueryOpts{Limit: 50})
		return historyLoadedMsg{Completions: completions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.completions = msg.Completions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.completions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.completions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No lessons finished yet. Start learning!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, c := range s.completions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-36s  %d/%d correct  +%d XP",
			prefix, c.Timestamp.Format("Jan 02, 2006"), clip(c.Title, 36),
			c.CorrectAnswers, c.TotalQuestions, c.XPAwarded)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    Topic: %s  ·  %s  ·  %.0f%% accuracy",
				c.Topic, c.Difficulty, accuracy(c))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(accuracyColor(c)).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func accuracy(c store.LessonCompletion) float64 {
	if c.TotalQuestions == 0 {
		return 0
	}
	return float64(c.CorrectAnswers) / float64(c.TotalQuestions) * 100
}

func accuracyColor(c store.LessonCompletion) color.Color {
	switch a := accuracy(c); {
	case a >= 100:
		return theme.Accent
	case a >= 50:
		return theme.Success
	default:
		return theme.TextDim
	}
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
