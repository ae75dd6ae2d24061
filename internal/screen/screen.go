package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/founderpath/founderpath/internal/nav"
	"github.com/founderpath/founderpath/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer is implemented by screens that hold a controller session which
// must be discarded when the screen leaves the stack.
type Closer interface {
	Close()
}

// InputCapturer is implemented by screens that are editing text, so
// global shortcuts are left to the screen.
type InputCapturer interface {
	CapturingInput() bool
}

// NavigateMsg asks the app to switch to a top-level view.
type NavigateMsg struct {
	View nav.View
}

// Navigate returns a command emitting NavigateMsg.
func Navigate(v nav.View) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{View: v} }
}
