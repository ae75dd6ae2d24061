package app

import (
	"context"
	"fmt"
	"os"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/founderpath/founderpath/internal/books"
	"github.com/founderpath/founderpath/internal/catalog"
	"github.com/founderpath/founderpath/internal/learn"
	"github.com/founderpath/founderpath/internal/logger"
	"github.com/founderpath/founderpath/internal/mentor"
	"github.com/founderpath/founderpath/internal/nav"
	"github.com/founderpath/founderpath/internal/profile"
	"github.com/founderpath/founderpath/internal/router"
	"github.com/founderpath/founderpath/internal/screen"
	"github.com/founderpath/founderpath/internal/screens/auth"
	booksscreen "github.com/founderpath/founderpath/internal/screens/books"
	"github.com/founderpath/founderpath/internal/screens/history"
	"github.com/founderpath/founderpath/internal/screens/home"
	"github.com/founderpath/founderpath/internal/screens/landing"
	learnscreen "github.com/founderpath/founderpath/internal/screens/learn"
	mentorscreen "github.com/founderpath/founderpath/internal/screens/mentor"
	"github.com/founderpath/founderpath/internal/screens/placeholder"
	"github.com/founderpath/founderpath/internal/screens/splash"
	toolsscreen "github.com/founderpath/founderpath/internal/screens/tools"
	"github.com/founderpath/founderpath/internal/tools"
	"github.com/founderpath/founderpath/internal/ui/layout"
)

// Options holds the controllers the screens are built on. When
// Unavailable is non-empty the AI-backed views show a placeholder
// and the AI fields may be nil.
type Options struct {
	Nav     *nav.Controller
	Profile *profile.Service
	History history.Source
	Catalog *catalog.Catalog
	Log     *logger.Logger

	Learn   *learn.Controller
	Mentor  *mentor.Controller
	Reader  *books.Reader
	Tools   tools.Generator
	Tip     *home.Tip

	Unavailable string
}

// offlineTip stands in for the tip generator without a provider.
type offlineTip struct{}

func (offlineTip) GenerateDailyTip(context.Context) string { return "Keep building." }

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts       Options
	router     *router.Router
	splashDone chan struct{}
	width      int
	height     int
}

// newAppModel creates a new AppModel showing the splash.
func newAppModel(opts Options) AppModel {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Tip == nil {
		opts.Tip = home.NewTip(offlineTip{})
	}
	done := make(chan struct{})
	return AppModel{
		opts:       opts,
		router:     router.New(splash.New(opts.Nav, done)),
		splashDone: done,
	}
}

func (m AppModel) Init() tea.Cmd {
	done := m.splashDone
	m.opts.Nav.StartSplash(nav.SplashDuration, func() { close(done) })
	return m.router.Active().Init()
}

// screenFor builds the root screen of a top-level view.
func (m AppModel) screenFor(v nav.View) screen.Screen {
	o := m.opts
	switch v {
	case nav.Landing:
		return landing.New()
	case nav.Auth:
		return auth.New(o.Nav)
	case nav.Home:
		return home.New(o.Profile, o.Tip, o.History)
	}

	if o.Unavailable != "" {
		return placeholder.New(v.Label(), o.Unavailable)
	}
	switch v {
	case nav.Learn:
		return learnscreen.New(o.Learn, o.Catalog.Topics, o.Profile)
	case nav.Mentor:
		return mentorscreen.New(o.Mentor)
	case nav.Tools:
		return toolsscreen.New(o.Catalog.Tools, o.Tools, o.Log)
	case nav.Books:
		return booksscreen.New(o.Catalog.Books, o.Reader)
	}
	return home.New(o.Profile, o.Tip, o.History)
}

func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.NavigateMsg:
		m.opts.Nav.Navigate(msg.View)
		return m, m.router.Reset(m.screenFor(msg.View))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.Close()
			m.opts.Nav.Close()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		case "1", "2", "3", "4", "5":
			if m.opts.Nav.ShowNavigation() && !m.capturing() {
				i, _ := strconv.Atoi(msg.String())
				return m, screen.Navigate(nav.MainViews[i-1])
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	if _, ok := active.(*splash.SplashScreen); ok || !m.opts.Nav.ShowNavigation() {
		footer := layout.RenderFooter(m.hints(active), m.width)
		content := m.router.View(m.width, m.height-lipgloss.Height(footer))
		v.SetContent(lipgloss.JoinVertical(lipgloss.Left, content, footer))
		return v
	}

	p := m.opts.Profile.Current()
	header := layout.RenderHeader(active.Title(), p.Name, p.XP, m.width)
	footer := m.renderNavBar() + "\n" + layout.RenderFooter(m.hints(active), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) renderNavBar() string {
	current := m.opts.Nav.Current()
	tabs := make([]layout.Tab, len(nav.MainViews))
	for i, view := range nav.MainViews {
		tabs[i] = layout.Tab{
			Key:    strconv.Itoa(i + 1),
			Label:  view.Label(),
			Active: view == current,
		}
	}
	return layout.RenderNavBar(tabs, m.width)
}

func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
