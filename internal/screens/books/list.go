package books

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/founderpath/founderpath/internal/books"
	"github.com/founderpath/founderpath/internal/catalog"
	"github.com/founderpath/founderpath/internal/router"
	"github.com/founderpath/founderpath/internal/screen"
	"github.com/founderpath/founderpath/internal/ui/components"
	"github.com/founderpath/founderpath/internal/ui/layout"
	"github.com/founderpath/founderpath/internal/ui/theme"
)

// LibraryScreen lists the books.
type LibraryScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*LibraryScreen)(nil)

// New creates a LibraryScreen. Choosing a book pushes the reader.
func New(list []catalog.Book, reader *books.Reader) *LibraryScreen {
	items := make([]components.MenuItem, 0, len(list))
	for i, b := range list {
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%d. %s", i+1, b.Title),
			Detail: b.Author,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: NewReader(reader, b)}
				}
			},
		})
	}
	return &LibraryScreen{menu: components.NewMenu(items)}
}

func (s *LibraryScreen) Init() tea.Cmd {
	return nil
}

func (s *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LibraryScreen) View(width, height int) string {
	body := theme.Title.Render("Founder's Library") + "\n" +
		theme.Subtitle.Render("Key takeaways from the books that shaped great founders.") + "\n\n" +
		s.menu.View()
	return lipgloss.NewStyle().Padding(0, 2).Render(body)
}

func (s *LibraryScreen) Title() string {
	return "Library"
}

func (s *LibraryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Read summary"},
	}
}
