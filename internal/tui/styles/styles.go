package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Color palette
var (
	Amber      = lipgloss.Color("#E5A00D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Blue)
)

// Card styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	SelectedCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Amber).
				Padding(0, 1)

	PosterStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	PlayerStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateLight).
			Padding(0, 1)
)

// Message styles for the gallery region
var (
	MessageErrorStyle = lipgloss.NewStyle().
				Foreground(Red).
				Bold(true).
				Padding(1, 2)

	MessageInfoStyle = lipgloss.NewStyle().
				Foreground(Amber).
				Padding(1, 2)
)

// Splash styles
var (
	SplashTitleStyle = lipgloss.NewStyle().
				Foreground(Amber).
				Bold(true)

	SplashHintStyle = lipgloss.NewStyle().
			Foreground(DimGray).
			Italic(true)
)

// Backdrop star styles, faint to bright
var (
	StarSmallStyle  = lipgloss.NewStyle().Foreground(SlateLight)
	StarMediumStyle = lipgloss.NewStyle().Foreground(DimGray)
	StarBigStyle    = lipgloss.NewStyle().Foreground(LightGray)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
		Foreground(Amber)
)

// Status bar styles
var (
	StatusStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(Red)
)

// Truncate truncates a string to the given display width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
