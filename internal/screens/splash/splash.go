package splash

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/founderpath/founderpath/internal/nav"
	"github.com/founderpath/founderpath/internal/screen"
	"github.com/founderpath/founderpath/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	taglineAfter = 800 * time.Millisecond
)

var loadingFrames = []string{"●○○", "○●○", "○○●"}

type tickMsg time.Time

type doneMsg struct{}

// SplashScreen shows the brand while the splash timer runs, then hands
// over to the current view.
type SplashScreen struct {
	nav          *nav.Controller
	done         <-chan struct{}
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*SplashScreen)(nil)

// New creates a SplashScreen. done is closed when the splash completes;
// see nav.Controller.StartSplash.
func New(n *nav.Controller, done <-chan struct{}) *SplashScreen {
	return &SplashScreen{nav: n, done: done}
}

func (s *SplashScreen) Title() string {
	return ""
}

func (s *SplashScreen) Init() tea.Cmd {
	return tea.Batch(tick(), s.waitDone())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *SplashScreen) waitDone() tea.Cmd {
	done := s.done
	return func() tea.Msg {
		<-done
		return doneMsg{}
	}
}

func (s *SplashScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if s.transitioned {
			return s, nil
		}
		s.elapsed += tickInterval
		s.tickCount++
		return s, tick()

	case doneMsg:
		return s, s.transition()

	case tea.KeyPressMsg:
		// Skipping completes the splash, which closes done.
		s.nav.CompleteSplash()
		return s, nil
	}

	return s, nil
}

func (s *SplashScreen) transition() tea.Cmd {
	if s.transitioned {
		return nil
	}
	s.transitioned = true
	return screen.Navigate(s.nav.Current())
}

func (s *SplashScreen) View(width, height int) string {
	sections := []string{RenderBanner(width)}

	if s.elapsed >= taglineAfter {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("From idea to founder, one lesson at a time."))
	}

	frame := loadingFrames[s.tickCount%len(loadingFrames)]
	sections = append(sections, "", lipgloss.NewStyle().Foreground(theme.Secondary).Render(frame))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
