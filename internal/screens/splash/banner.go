package splash

import (
	"charm.land/lipgloss/v2"

	"github.com/founderpath/founderpath/internal/ui/theme"
)

const bannerArt = `
 ███████╗ ██████╗ ██╗   ██╗███╗   ██╗██████╗ ███████╗██████╗
 ██╔════╝██╔═══██╗██║   ██║████╗  ██║██╔══██╗██╔════╝██╔══██╗
 █████╗  ██║   ██║██║   ██║██╔██╗ ██║██║  ██║█████╗  ██████╔╝
 ██╔══╝  ██║   ██║██║   ██║██║╚██╗██║██║  ██║██╔══╝  ██╔══██╗
 ██║     ╚██████╔╝╚██████╔╝██║ ╚████║██████╔╝███████╗██║  ██║
 ╚═╝      ╚═════╝  ╚═════╝ ╚═╝  ╚═══╝╚═════╝ ╚══════╝╚═╝  ╚═╝
                        P  A  T  H`

const bannerCompact = "F O U N D E R P A T H"

// RenderBanner returns the FounderPath banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 64 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 64 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
