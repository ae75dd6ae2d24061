package auth

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/founderpath/founderpath/internal/nav"
	"github.com/founderpath/founderpath/internal/profile"
	"github.com/founderpath/founderpath/internal/screen"
	"github.com/founderpath/founderpath/internal/ui/components"
	"github.com/founderpath/founderpath/internal/ui/layout"
	"github.com/founderpath/founderpath/internal/ui/theme"
)

type authDoneMsg struct {
	name string
}

type loginResultMsg struct {
	err error
}

// AuthScreen simulates signing in with a social provider, phone or email.
type AuthScreen struct {
	nav   *nav.Controller
	delay time.Duration

	menu      components.Menu
	input     components.TextInput
	method    nav.AuthMethod
	inputMode bool
	signingIn bool
	err       string
	spinner   spinner.Model
}

var _ screen.Screen = (*AuthScreen)(nil)

// New creates an AuthScreen that signs in through n.
func New(n *nav.Controller) *AuthScreen {
	a := &AuthScreen{
		nav:     n,
		delay:   nav.AuthDelay,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary))),
	}
	items := make([]components.MenuItem, 0, len(nav.AuthMethods))
	for _, m := range nav.AuthMethods {
		items = append(items, components.MenuItem{
			Label:  methodLabel(m),
			Action: a.choose(m),
		})
	}
	a.menu = components.NewMenu(items)
	return a
}

func methodLabel(m nav.AuthMethod) string {
	switch m {
	case nav.Phone:
		return "Continue with Phone"
	case nav.Email:
		return "Continue with Email"
	default:
		return "Continue with " + string(m)
	}
}

func (a *AuthScreen) choose(m nav.AuthMethod) func() tea.Cmd {
	return func() tea.Cmd {
		a.method = m
		a.err = ""
		if m.NeedsInput() {
			placeholder := "founder@startup.com"
			label := "Email Address"
			if m == nav.Phone {
				placeholder = "+1 (555) 000-0000"
				label = "Phone Number"
			}
			a.input = components.NewTextInput(label, string(m), placeholder, 40)
			a.inputMode = true
			return a.input.Focus()
		}
		return a.signIn("")
	}
}

func (a *AuthScreen) signIn(input string) tea.Cmd {
	name, err := nav.AuthDisplayName(a.method, input)
	if err != nil {
		a.err = err.Error()
		return nil
	}
	a.signingIn = true
	return tea.Batch(a.spinner.Tick, tea.Tick(a.delay, func(time.Time) tea.Msg {
		return authDoneMsg{name: name}
	}))
}

func (a *AuthScreen) login(name string) tea.Cmd {
	n := a.nav
	return func() tea.Msg {
		err := n.Login(context.Background(), profile.Updates{Name: &name})
		return loginResultMsg{err: err}
	}
}

func (a *AuthScreen) Init() tea.Cmd {
	return nil
}

func (a *AuthScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		return a, a.login(msg.name)

	case loginResultMsg:
		// Login always lands on Home, even when the save failed.
		return a, screen.Navigate(nav.Home)

	case spinner.TickMsg:
		if !a.signingIn {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyPressMsg:
		if a.signingIn {
			return a, nil
		}
		if a.inputMode {
			switch msg.String() {
			case "esc":
				a.inputMode = false
				a.err = ""
				return a, nil
			case "enter":
				return a, a.signIn(a.input.Value())
			}
			var cmd tea.Cmd
			a.input, cmd = a.input.Update(msg)
			return a, cmd
		}
		if msg.String() == "esc" {
			return a, screen.Navigate(nav.Landing)
		}
		var cmd tea.Cmd
		a.menu, cmd = a.menu.Update(msg)
		return a, cmd
	}

	if a.inputMode {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

// CapturingInput reports whether the phone or email field is active.
func (a *AuthScreen) CapturingInput() bool {
	return a.inputMode
}

func (a *AuthScreen) View(width, height int) string {
	var sections []string
	sections = append(sections, theme.Title.Render("Get Started"))

	switch {
	case a.signingIn:
		sections = append(sections, "", a.spinner.View()+" "+theme.Subtitle.Render("Signing in with "+string(a.method)+"..."))
	case a.inputMode:
		sections = append(sections,
			theme.Subtitle.Render(inputPrompt(a.method)), "",
			a.input.View())
	default:
		sections = append(sections,
			theme.Subtitle.Render("Join thousands of founders building the future."), "",
			a.menu.View())
	}

	if a.err != "" {
		sections = append(sections, "", theme.Incorrect.Render(a.err))
	}
	sections = append(sections, "",
		theme.Hint.Render("By continuing, you agree to FounderPath's Terms of Service and Privacy Policy."))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

func inputPrompt(m nav.AuthMethod) string {
	if m == nav.Phone {
		return "We'll send you a verification code."
	}
	return "Sign in with your email address."
}

func (a *AuthScreen) Title() string {
	return "Sign in"
}

func (a *AuthScreen) KeyHints() []layout.KeyHint {
	if a.inputMode {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Other options"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}
