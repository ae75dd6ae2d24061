package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/founderpath/founderpath/internal/nav"
	"github.com/founderpath/founderpath/internal/profile"
	"github.com/founderpath/founderpath/internal/router"
	"github.com/founderpath/founderpath/internal/screen"
	"github.com/founderpath/founderpath/internal/screens/history"
	"github.com/founderpath/founderpath/internal/ui/components"
	"github.com/founderpath/founderpath/internal/ui/layout"
	"github.com/founderpath/founderpath/internal/ui/theme"
)

// RecentCount is how many completed lessons the journey list shows.
const RecentCount = 3

// Profile is the read side of the profile service.
type Profile interface {
	Current() profile.UserProfile
	Recent(n int) []string
}

type tipMsg struct{}

// HomeScreen is the dashboard shown after sign-in.
type HomeScreen struct {
	profile Profile
	tip     *Tip
	menu    components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen. hist may be nil, which hides the history
// entry.
func New(p Profile, tip *Tip, hist history.Source) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Continue Learning", Detail: "Pick a topic and earn XP", Action: goTo(nav.Learn)},
		{Label: "Ask the Mentor", Detail: "FounderBot is online", Action: goTo(nav.Mentor)},
		{Label: "Founder Tools", Detail: "Pitches, canvases, OKRs", Action: goTo(nav.Tools)},
		{Label: "Library", Detail: "Key takeaways from founder classics", Action: goTo(nav.Books)},
	}
	if hist != nil {
		items = append(items, components.MenuItem{
			Label:  "Lesson History",
			Detail: "Scores and XP from past quizzes",
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.PushScreenMsg{Screen: history.New(hist)} }
			},
		})
	}
	return &HomeScreen{
		profile: p,
		tip:     tip,
		menu:    components.NewMenu(items),
	}
}

func goTo(v nav.View) func() tea.Cmd {
	return func() tea.Cmd { return screen.Navigate(v) }
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.tip == nil || h.tip.Loaded() {
		return nil
	}
	t := h.tip
	return func() tea.Msg {
		t.Fetch(context.Background())
		return tipMsg{}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tipMsg); ok {
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	p := h.profile.Current()
	compact := layout.IsCompactHeight(height + 8)

	var sections []string

	greeting := theme.Subtitle.Render("Welcome back,") + "\n" + theme.Title.Render(p.Name)
	if compact {
		sections = append(sections, greeting)
	} else {
		avatar := RenderAvatar(p.Name, VariantFor(p.ProfilePicture != "", len(p.CompletedLessons)))
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Center, avatar, "  ", greeting))
	}

	sections = append(sections, h.renderTip(cw))
	sections = append(sections, renderStats(p, cw))
	sections = append(sections, h.renderJourney(cw))
	sections = append(sections, h.menu.View())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, strings.Join(sections, "\n\n"))
}

func (h *HomeScreen) renderTip(cw int) string {
	text := TipLoading
	if h.tip != nil {
		text = h.tip.Text()
	}
	body := theme.Heading.Render("Daily Founder Tip") + "\n" + components.Wrap(text, cw-4)
	return components.Card(body, cw)
}

func renderStats(p profile.UserProfile, cw int) string {
	xp := theme.XP.Render(fmt.Sprintf("%d", p.XP))
	done := theme.Heading.Render(fmt.Sprintf("%d", len(p.CompletedLessons)))
	half := (cw - 2) / 2
	left := components.Card(theme.Subtitle.Render("Total XP")+"\n"+xp, half)
	right := components.Card(theme.Subtitle.Render("Lessons Done")+"\n"+done, half)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (h *HomeScreen) renderJourney(cw int) string {
	recent := h.profile.Recent(RecentCount)
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Your Journey"))
	b.WriteString("\n")
	if len(recent) == 0 {
		b.WriteString(theme.Hint.Render("Start your first lesson today."))
		return b.String()
	}
	for _, title := range recent {
		b.WriteString(theme.Correct.Render("✓ ") + theme.Body.Render(components.Wrap(title, cw-2)) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "1-5", Description: "Tabs"},
	}
}
