package books

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/founderpath/founderpath/internal/books"
	"github.com/founderpath/founderpath/internal/catalog"
	"github.com/founderpath/founderpath/internal/screen"
	"github.com/founderpath/founderpath/internal/ui/components"
	"github.com/founderpath/founderpath/internal/ui/layout"
	"github.com/founderpath/founderpath/internal/ui/theme"
)

type summaryMsg struct{}

// ReaderScreen shows one book summary.
type ReaderScreen struct {
	reader  *books.Reader
	book    catalog.Book
	view    viewport.Model
	spinner spinner.Model
	shown   string
	status  string
}

var _ screen.Screen = (*ReaderScreen)(nil)

// NewReader creates a ReaderScreen for book.
func NewReader(r *books.Reader, book catalog.Book) *ReaderScreen {
	return &ReaderScreen{
		reader: r,
		book:   book,
		view:   viewport.New(viewport.WithWidth(60), viewport.WithHeight(10)),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

func (r *ReaderScreen) Init() tea.Cmd {
	reader, book := r.reader, r.book
	return tea.Batch(r.spinner.Tick, func() tea.Msg {
		reader.Open(context.Background(), book)
		return summaryMsg{}
	})
}

// Close drops a summary still loading.
func (r *ReaderScreen) Close() {
	r.reader.Close()
}

func (r *ReaderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryMsg:
		return r, nil

	case components.CopiedMsg:
		if msg.Err != nil {
			r.status = "Clipboard unavailable."
		} else {
			r.status = "Copied to clipboard!"
		}
		return r, nil

	case spinner.TickMsg:
		if !r.reader.Snapshot().Loading {
			return r, nil
		}
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd

	case tea.KeyPressMsg:
		s := r.reader.Snapshot()
		if msg.String() == "c" && s.Summary != "" {
			return r, components.CopyToClipboard(s.Summary)
		}
		var cmd tea.Cmd
		r.view, cmd = r.view.Update(msg)
		return r, cmd
	}
	return r, nil
}

func (r *ReaderScreen) View(width, height int) string {
	s := r.reader.Snapshot()
	cw := components.ContentWidth(width)

	parts := []string{
		theme.Title.Render(r.book.Title),
		theme.Subtitle.Render("by " + r.book.Author),
		"",
	}
	switch {
	case s.Loading || s.Summary == "":
		parts = append(parts, r.spinner.View()+" "+theme.Subtitle.Render("Summarizing key insights..."))
	default:
		r.view.SetWidth(cw)
		r.view.SetHeight(max(3, height-7))
		if r.shown != s.Summary {
			r.view.SetContent(components.Wrap(s.Summary, cw))
			r.view.GotoTop()
			r.shown = s.Summary
		}
		parts = append(parts, r.view.View())
	}
	if r.status != "" {
		parts = append(parts, "", theme.Hint.Render(r.status))
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(parts, "\n"))
}

func (r *ReaderScreen) Title() string {
	return r.book.Title
}

func (r *ReaderScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "c", Description: "Copy"},
		{Key: "Esc", Description: "Back to library"},
	}
}
