package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Cyan     = lipgloss.Color("#00F3FF")
	Orange   = lipgloss.Color("#FFAA00")
	Red      = lipgloss.Color("#FF3333")
	Purple   = lipgloss.Color("#BC13FE")
	Phosphor = lipgloss.Color("#39FF14")
	Night    = lipgloss.Color("#050510")
	Panel    = lipgloss.Color("#0D0D24")
	DimGray  = lipgloss.Color("#4B5563")
	Gray     = lipgloss.Color("#9CA3AF")
	White    = lipgloss.Color("#E5E7EB")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Cyan)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	BusyStyle = lipgloss.NewStyle().
			Foreground(Orange)

	CodeStyle = lipgloss.NewStyle().
			Foreground(Phosphor)
)

// Nav bar styles
var (
	NavItemStyle = lipgloss.NewStyle().
			Foreground(Gray).
			Padding(0, 1)

	NavVisitedStyle = lipgloss.NewStyle().
			Foreground(Cyan).
			Padding(0, 1)

	NavActiveStyle = lipgloss.NewStyle().
			Foreground(Night).
			Background(Cyan).
			Bold(true).
			Padding(0, 1)

	NavHoverStyle = lipgloss.NewStyle().
			Foreground(Cyan).
			Underline(true).
			Padding(0, 1)

	RebootStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true).
			Padding(0, 1)
)

// Document styles
var (
	SectionRuleStyle = lipgloss.NewStyle().
				Foreground(DimGray)

	RawBlockStyle = lipgloss.NewStyle().
			Foreground(DimGray).
			Italic(true)

	HeadingStyle = lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true)

	SubheadingStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	BodyStyle = lipgloss.NewStyle().
			Foreground(White)

	QuoteStyle = lipgloss.NewStyle().
			Foreground(Gray).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(Purple).
			PaddingLeft(1)

	LinkStyle = lipgloss.NewStyle().
			Foreground(Night).
			Background(Cyan).
			Padding(0, 1)

	LinkFocusStyle = lipgloss.NewStyle().
			Foreground(Night).
			Background(Orange).
			Bold(true).
			Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Cyan).
			Background(Panel).
			Padding(0, 1)

	ModalErrorStyle = ModalStyle.
			BorderForeground(Red)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(Gray)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(White).
			Border(lipgloss.NormalBorder()).
			BorderForeground(DimGray).
			Padding(0, 2)

	ButtonFocusStyle = ButtonStyle.
				BorderForeground(Cyan).
				Foreground(Cyan).
				Bold(true)

	DangerFocusStyle = ButtonStyle.
				BorderForeground(Red).
				Foreground(Red).
				Bold(true)
)

// Palette styles
var (
	PaletteStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Purple).
			Background(Panel).
			Padding(0, 1)

	PaletteMatchStyle = lipgloss.NewStyle().
				Foreground(Orange).
				Bold(true)

	PaletteSelectedStyle = lipgloss.NewStyle().
				Foreground(Night).
				Background(Purple)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Cyan)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// StatusColor picks the indicator color: red on failure, orange while busy
func StatusColor(busy, failed bool) lipgloss.Color {
	switch {
	case failed:
		return Red
	case busy:
		return Orange
	default:
		return Cyan
	}
}
