package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	Primary    = lipgloss.Color("#00ff00") // Bright green
	Secondary  = lipgloss.Color("#00aa00") // Darker green
	Accent     = lipgloss.Color("#00ffaa") // Cyan-green
	ErrorColor = lipgloss.Color("#ff0000") // Red
	Warning    = lipgloss.Color("#ffaa00") // Amber
)

// Common Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	LoginBoxStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(1, 4).
			Width(BoxWidth)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Faint(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)

// BoxWidth is the width of the login box
const BoxWidth = 48

// Banner returns the title shown above the login box
func Banner(version string) string {
	title := lipgloss.NewStyle().Foreground(Primary).Render(`
 _             _                   _
| | ___   __ _(_)_ __   __ _  __ _| |_ ___
| |/ _ \ / _' | | '_ \ / _' |/ _' | __/ _ \
| | (_) | (_| | | | | | (_| | (_| | ||  __/
|_|\___/ \__, |_|_| |_|\__, |\__,_|\__\___|
         |___/         |___/`)
	if version == "" {
		return title
	}
	return title + "\n" + HelpStyle.Render("version "+version)
}
