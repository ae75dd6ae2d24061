package components

import (
	"github.com/atotto/clipboard"

	tea "charm.land/bubbletea/v2"
)

// CopiedMsg reports the result of a clipboard write.
type CopiedMsg struct {
	Err error
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Err: clipboard.WriteAll(text)}
	}
}
