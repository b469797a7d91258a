package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kylemclaren/reel-tasks/internal/board"
)

var (
	// Palette
	reelPink    = lipgloss.Color("#e1306c") // Primary accent
	reelBlue    = lipgloss.Color("#6a9bcc") // Secondary accent
	reelGreen   = lipgloss.Color("#788c5d")
	reelMidGray = lipgloss.Color("#b0aea5")

	// Mapped colors for TUI
	primaryColor = reelPink
	accentColor  = reelBlue
	successColor = reelGreen
	errorColor   = lipgloss.Color("#c45c4a")
	warningColor = lipgloss.Color("#d9a557")
	dimTextColor = reelMidGray

	// App frame
	appStyle = lipgloss.NewStyle().
			Padding(1, 2)

	// Logo
	logoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	sectionStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	// Form styles
	inputLabelStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	focusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor).
				Padding(0, 1)

	blurredInputStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(dimTextColor).
				Padding(0, 1)

	// Badges
	badgeSuccess = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	badgeFailure = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	badgeWarning = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	// Log levels
	logTimestampStyle = lipgloss.NewStyle().
				Foreground(dimTextColor)

	logMessageStyle = lipgloss.NewStyle()

	// Help
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(dimTextColor)

	// Misc
	subtitleStyle = lipgloss.NewStyle().
			Foreground(dimTextColor).
			Italic(true)

	errorMsgStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	successMsgStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	emptyBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimTextColor).
			Foreground(dimTextColor).
			Padding(1, 4).
			Align(lipgloss.Center)

	dividerStyle = lipgloss.NewStyle().
			Foreground(dimTextColor)
)

// badgeGlyph is the icon shown in front of a status
func badgeGlyph(b board.Badge) string {
	switch b {
	case board.BadgeSuccess:
		return "✓"
	case board.BadgeFailure:
		return "✗"
	default:
		return "●"
	}
}

func badgeStyle(b board.Badge) lipgloss.Style {
	switch b {
	case board.BadgeSuccess:
		return badgeSuccess
	case board.BadgeFailure:
		return badgeFailure
	default:
		return badgeWarning
	}
}

// badgeText is the plain badge used inside table cells
func badgeText(s board.Status) string {
	return badgeGlyph(board.BadgeFor(s)) + " " + string(s)
}

// renderBadge is the styled badge
func renderBadge(s board.Status) string {
	return badgeStyle(board.BadgeFor(s)).Render(badgeText(s))
}

func levelStyle(class string) lipgloss.Style {
	switch class {
	case "error", "critical", "fatal":
		return badgeFailure
	case "warning", "warn":
		return badgeWarning
	case "info":
		return lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	case "debug":
		return lipgloss.NewStyle().Foreground(dimTextColor)
	default:
		return lipgloss.NewStyle().Bold(true)
	}
}
