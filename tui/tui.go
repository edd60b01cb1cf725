package tui

import (
	"strings"

	"logingate/submission"
	"logingate/tracing"
	"logingate/tui/components/footer"
	"logingate/tui/components/history"
	"logingate/tui/keys"
	"logingate/tui/login"
	"logingate/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
)

// HistorySource returns the most recent attempts, newest first
type HistorySource func() ([]tracing.AttemptRecord, error)

type historyLoadedMsg struct {
	records []tracing.AttemptRecord
	err     error
}

// Model is the root Bubble Tea model: the login form with the attempt
// history below it.
type Model struct {
	login   *login.Component
	history *history.Component
	source  HistorySource
	footer  *footer.Component
	keys    *keys.Handler
	version string

	historyErr error
	quitting   bool
}

// New creates the root model. source may be nil, in which case no history
// is shown.
func New(form *login.Component, source HistorySource, version string) Model {
	return Model{
		login:   form,
		history: history.New(),
		source:  source,
		footer:  footer.New(),
		keys:    keys.NewHandler(),
		version: version,
	}
}

// Init starts the cursor blink and loads the history
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.login.Init(), m.loadHistory())
}

// Update routes messages to the form and the history table
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case m.keys.IsQuit(msg):
			m.login.Dispose()
			m.quitting = true
			return m, tea.Quit
		case m.keys.IsHistory(msg):
			m.history.SetFocused(!m.history.Focused())
			return m, nil
		case m.history.Focused():
			if m.keys.IsScroll(msg) {
				m.history, cmd = m.history.Update(msg)
				return m, cmd
			}
			return m, nil
		}
		m.login, cmd = m.login.Update(msg)
		return m, cmd

	case historyLoadedMsg:
		m.historyErr = msg.err
		if msg.err == nil {
			m.history.SetRecords(msg.records)
		}
		return m, nil

	case submission.AttemptResultMsg:
		m.login, cmd = m.login.Update(msg)
		return m, tea.Batch(cmd, m.loadHistory())
	}

	m.login, cmd = m.login.Update(msg)
	return m, cmd
}

// View renders the screen
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		styles.Banner(m.version),
		"",
		m.login.View(),
	}

	if m.source != nil {
		sections = append(sections, "", styles.HeaderStyle.Render("Recent attempts"))
		if m.historyErr != nil {
			sections = append(sections, styles.ErrorStyle.Render("History unavailable: "+m.historyErr.Error()))
		} else {
			sections = append(sections, m.history.View())
		}
	}

	sections = append(sections, "", m.footer.View(keys.Login(m.history.Focused())...))
	return strings.Join(sections, "\n")
}

// loadHistory reads the history off the event loop
func (m Model) loadHistory() tea.Cmd {
	if m.source == nil {
		return nil
	}
	source := m.source
	return func() tea.Msg {
		records, err := source()
		return historyLoadedMsg{records: records, err: err}
	}
}
