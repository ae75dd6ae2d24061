package components

import (
	"github.com/founderpath/founderpath/internal/ui/theme"
)

// Button renders a call-to-action label.
func Button(label string, active bool) string {
	if active {
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}
