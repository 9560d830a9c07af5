package tui

import "github.com/charmbracelet/lipgloss"

// Palette colors. The accent trio is swapped by SetTheme; the grays
// stay fixed across themes.
var (
	Accent       = lipgloss.Color("#00FF41")
	AccentBright = lipgloss.Color("#39FF14")
	AccentDim    = lipgloss.Color("#008F11")

	ErrorRed  = lipgloss.Color("#FF4136")
	WarnGold  = lipgloss.Color("#FFD700")
	Black     = lipgloss.Color("#0D0208")
	MidGray   = lipgloss.Color("#3a3a4e")
	LightGray = lipgloss.Color("#aaaaaa")
	White     = lipgloss.Color("#e0e0e0")
)

var (
	BannerStyle     lipgloss.Style
	TitleStyle      lipgloss.Style
	LabelStyle      lipgloss.Style
	ValueStyle      lipgloss.Style
	SuccessStyle    lipgloss.Style
	ErrorStyle      lipgloss.Style
	WarnStyle       lipgloss.Style
	HelpStyle       lipgloss.Style
	SeparatorStyle  lipgloss.Style
	StatusBarStyle  lipgloss.Style
	StatusFileStyle lipgloss.Style
	PageStyle       lipgloss.Style
	InputBoxStyle   lipgloss.Style
	ConfirmStyle    lipgloss.Style
)

func init() {
	rebuildStyles()
}

// SetTheme switches the accent palette. Unknown names keep the
// current palette, so a bad config value degrades to the default.
func SetTheme(name string) {
	switch name {
	case "green":
		Accent = lipgloss.Color("#00FF41")
		AccentBright = lipgloss.Color("#39FF14")
		AccentDim = lipgloss.Color("#008F11")
	case "amber":
		Accent = lipgloss.Color("#FFB000")
		AccentBright = lipgloss.Color("#FFD24D")
		AccentDim = lipgloss.Color("#8F6400")
	case "blue":
		Accent = lipgloss.Color("#00AAFF")
		AccentBright = lipgloss.Color("#4DC6FF")
		AccentDim = lipgloss.Color("#005F8F")
	default:
		return
	}
	rebuildStyles()
}

func rebuildStyles() {
	BannerStyle = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	TitleStyle = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true).
		MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
		Foreground(AccentDim)

	ValueStyle = lipgloss.NewStyle().
		Foreground(White)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(AccentBright).
		Bold(true)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorRed).
		Bold(true)

	WarnStyle = lipgloss.NewStyle().
		Foreground(WarnGold).
		Bold(true)

	HelpStyle = lipgloss.NewStyle().
		Foreground(AccentDim)

	SeparatorStyle = lipgloss.NewStyle().
		Foreground(AccentDim)

	StatusBarStyle = lipgloss.NewStyle().
		Background(AccentDim).
		Foreground(Black).
		Bold(true).
		Padding(0, 1)

	StatusFileStyle = lipgloss.NewStyle().
		Background(Accent).
		Foreground(Black).
		Bold(true).
		Padding(0, 1)

	PageStyle = lipgloss.NewStyle().
		Padding(1, 2)

	InputBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(0, 1)

	ConfirmStyle = lipgloss.NewStyle().
		Foreground(WarnGold).
		Bold(true)
}

const Banner = `
   ██████╗ ██████╗  █████╗ ██████╗ ███████╗██████╗  ██████╗  ██████╗ ██╗  ██╗
  ██╔════╝ ██╔══██╗██╔══██╗██╔══██╗██╔════╝██╔══██╗██╔═══██╗██╔═══██╗██║ ██╔╝
  ██║  ███╗██████╔╝███████║██║  ██║█████╗  ██████╔╝██║   ██║██║   ██║█████╔╝
  ██║   ██║██╔══██╗██╔══██║██║  ██║██╔══╝  ██╔══██╗██║   ██║██║   ██║██╔═██╗
  ╚██████╔╝██║  ██║██║  ██║██████╔╝███████╗██████╔╝╚██████╔╝╚██████╔╝██║  ██╗
   ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝ ╚══════╝╚═════╝  ╚═════╝  ╚═════╝ ╚═╝  ╚═╝
`
