package landing

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/founderpath/founderpath/internal/nav"
	"github.com/founderpath/founderpath/internal/screen"
	"github.com/founderpath/founderpath/internal/ui/components"
	"github.com/founderpath/founderpath/internal/ui/layout"
	"github.com/founderpath/founderpath/internal/ui/theme"
)

type feature struct {
	title, detail string
}

var features = []feature{
	{"Actionable Lessons", "From idea to IPO"},
	{"24/7 AI Mentor", "Expert advice on demand"},
	{"Founder Tools", "Pitches, canvases and OKRs in seconds"},
}

// LandingScreen is the first view after the splash.
type LandingScreen struct{}

var _ screen.Screen = (*LandingScreen)(nil)

// New creates a LandingScreen.
func New() *LandingScreen {
	return &LandingScreen{}
}

func (l *LandingScreen) Init() tea.Cmd {
	return nil
}

func (l *LandingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "enter" {
		return l, screen.Navigate(nav.Auth)
	}
	return l, nil
}

func (l *LandingScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw > 60 {
		cw = 60
	}

	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Build the company you imagine.")
	sub := theme.Subtitle.Render("Bite-sized founder lessons, an AI mentor and\nready-to-use startup tools.")

	var rows []string
	for _, f := range features {
		rows = append(rows, theme.Heading.Render("◆ "+f.title)+"\n  "+theme.Subtitle.Render(f.detail))
	}
	card := components.Card(strings.Join(rows, "\n\n"), cw)

	content := lipgloss.JoinVertical(lipgloss.Center,
		title, "", sub, "", card, "", components.Button("Start Your Journey", true))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (l *LandingScreen) Title() string {
	return "Welcome"
}

func (l *LandingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
	}
}
