package components

import (
	"charm.land/lipgloss/v2"

	"github.com/founderpath/founderpath/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for page sections.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 90 {
		w = 90
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return theme.Card.Width(cw).Render(content)
}

// Modal renders content in a centered double-border box over the whole
// area.
func Modal(content string, width, height int) string {
	box := theme.Modal.Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// Wrap renders text wrapped to width.
func Wrap(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(text)
}
