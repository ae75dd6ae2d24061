package home

import (
	"strings"
	"unicode"

	"charm.land/lipgloss/v2"

	"github.com/founderpath/founderpath/internal/ui/theme"
)

// AvatarVariant selects which avatar art to display.
type AvatarVariant int

const (
	AvatarInitial  AvatarVariant = iota // No picture, shows the first letter
	AvatarPicture                       // A profile picture is set
	AvatarVeteran                       // Five or more lessons done
)

const avatarPicture = `┌─────┐
│ ◕ ◕ │
│  ‿  │
└─────┘`

const avatarVeteran = `┌─────┐
│ ★ ★ │
│  ‿  │
└─╥═╥─┘
  ╚═╝`

// VariantFor picks the avatar for a profile.
func VariantFor(hasPicture bool, lessonsDone int) AvatarVariant {
	switch {
	case lessonsDone >= 5:
		return AvatarVeteran
	case hasPicture:
		return AvatarPicture
	default:
		return AvatarInitial
	}
}

// RenderAvatar returns the avatar art for the given variant.
func RenderAvatar(name string, v AvatarVariant) string {
	var art string
	fg := theme.Primary

	switch v {
	case AvatarVeteran:
		art = avatarVeteran
		fg = theme.Accent
	case AvatarPicture:
		art = avatarPicture
		fg = theme.Secondary
	default:
		art = initialBox(name)
	}

	return lipgloss.NewStyle().Foreground(fg).Bold(true).Render(art)
}

func initialBox(name string) string {
	initial := "?"
	for _, r := range strings.TrimSpace(name) {
		initial = string(unicode.ToUpper(r))
		break
	}
	return "┌─────┐\n│     │\n│  " + initial + "  │\n│     │\n└─────┘"
}
