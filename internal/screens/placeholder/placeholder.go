package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/founderpath/founderpath/internal/screen"
	"github.com/founderpath/founderpath/internal/ui/theme"
)

// PlaceholderScreen stands in for a feature that needs an AI provider
// when none is configured.
type PlaceholderScreen struct {
	title  string
	reason string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a PlaceholderScreen with the given title. reason explains
// what is missing.
func New(title, reason string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, reason: reason}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	body := theme.Heading.Render("╌╌ "+p.title+" is offline ╌╌") + "\n\n" +
		theme.Body.Render(p.reason) + "\n\n" +
		theme.Hint.Render("Set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY\nor OPENROUTER_API_KEY and restart FounderPath.")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
