package tools

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/founderpath/founderpath/internal/catalog"
	"github.com/founderpath/founderpath/internal/logger"
	"github.com/founderpath/founderpath/internal/router"
	"github.com/founderpath/founderpath/internal/screen"
	"github.com/founderpath/founderpath/internal/tools"
	"github.com/founderpath/founderpath/internal/ui/components"
	"github.com/founderpath/founderpath/internal/ui/layout"
	"github.com/founderpath/founderpath/internal/ui/theme"
)

// ToolsScreen lists the document generators.
type ToolsScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*ToolsScreen)(nil)

// New creates a ToolsScreen. Choosing a tool pushes its form.
func New(templates []catalog.ToolTemplate, gen tools.Generator, log *logger.Logger) *ToolsScreen {
	items := make([]components.MenuItem, 0, len(templates))
	for _, tmpl := range templates {
		items = append(items, components.MenuItem{
			Label:  tmpl.Name,
			Detail: tmpl.Description,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: NewForm(tools.NewRun(gen, tmpl, log))}
				}
			},
		})
	}
	return &ToolsScreen{menu: components.NewMenu(items)}
}

func (s *ToolsScreen) Init() tea.Cmd {
	return nil
}

func (s *ToolsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ToolsScreen) View(width, height int) string {
	body := theme.Title.Render("Founder Tools") + "\n" +
		theme.Subtitle.Render("AI-powered generators for your daily grind.") + "\n\n" +
		s.menu.View()
	return lipgloss.NewStyle().Padding(0, 2).Render(body)
}

func (s *ToolsScreen) Title() string {
	return "Tools"
}

func (s *ToolsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open tool"},
	}
}
