package footer

import (
	"strings"

	"logingate/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Component represents a footer with help text
type Component struct {
	style lipgloss.Style
}

// New creates a new footer component
func New() *Component {
	return &Component{
		style: lipgloss.NewStyle().
			Foreground(styles.Secondary).
			Faint(true),
	}
}

// KeyBinding represents a single key binding
type KeyBinding struct {
	Key         string
	Description string
}

// View renders the footer with the provided key bindings. Incomplete
// bindings are skipped.
func (c *Component) View(bindings ...KeyBinding) string {
	var parts []string
	for _, binding := range bindings {
		if part := binding.Format(); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return ""
	}

	return c.style.Render(strings.Join(parts, "  "))
}

// Format renders a key binding in the standard format
func (kb KeyBinding) Format() string {
	if kb.Key == "" || kb.Description == "" {
		return ""
	}
	return "[" + kb.Key + "] " + kb.Description
}

// Common key bindings for reuse
var (
	QuitBinding     = KeyBinding{Key: "esc", Description: "quit"}
	SubmitBinding   = KeyBinding{Key: "enter", Description: "submit"}
	HistoryBinding  = KeyBinding{Key: "tab", Description: "history"}
	NavigateBinding = KeyBinding{Key: "↑/↓", Description: "scroll"}
)
