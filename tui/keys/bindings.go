package keys

import (
	"logingate/tui/components/footer"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the key bindings of the login screen
type KeyMap struct {
	Submit  key.Binding
	Quit    key.Binding
	History key.Binding
	Up      key.Binding
	Down    key.Binding
}

// DefaultKeys returns the default key bindings
func DefaultKeys() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		History: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "history"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
	}
}

// Handler provides a centralized way to handle common key patterns
type Handler struct {
	keys KeyMap
}

// NewHandler creates a new key handler with default bindings
func NewHandler() *Handler {
	return &Handler{
		keys: DefaultKeys(),
	}
}

// IsQuit returns true if the key message is a quit command
func (h *Handler) IsQuit(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.Quit)
}

// IsSubmit returns true if the key message submits the form
func (h *Handler) IsSubmit(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.Submit)
}

// IsHistory returns true if the key message toggles the history table
func (h *Handler) IsHistory(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.History)
}

// IsScroll returns true for keys that move within the history table
func (h *Handler) IsScroll(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.Up) || key.Matches(msg, h.keys.Down)
}

// Login returns the footer bindings of the login screen
func Login(historyFocused bool) []footer.KeyBinding {
	if historyFocused {
		return []footer.KeyBinding{
			footer.NavigateBinding,
			footer.HistoryBinding,
			footer.QuitBinding,
		}
	}
	return []footer.KeyBinding{
		footer.SubmitBinding,
		footer.HistoryBinding,
		footer.QuitBinding,
	}
}
