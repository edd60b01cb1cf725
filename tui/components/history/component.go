package history

import (
	"fmt"
	"time"

	"logingate/tracing"

	tea "github.com/charmbracelet/bubbletea"
	btable "github.com/evertras/bubble-table/table"
)

const pageSize = 8

// Column keys
const (
	colWhen     = "when"
	colLogin    = "login"
	colAttempt  = "attempt"
	colResult   = "result"
	colDuration = "duration"
)

// Component shows past login attempts
type Component struct {
	table   btable.Model
	records []tracing.AttemptRecord
	focused bool
}

// New creates an empty history table
func New() *Component {
	columns := []btable.Column{
		btable.NewColumn(colWhen, "When", 19),
		btable.NewColumn(colLogin, "Login", 16),
		btable.NewColumn(colAttempt, "#", 4),
		btable.NewColumn(colResult, "Result", 24),
		btable.NewColumn(colDuration, "Took", 8),
	}

	return &Component{
		table: btable.New(columns).WithPageSize(pageSize),
	}
}

// SetRecords replaces the rows
func (c *Component) SetRecords(records []tracing.AttemptRecord) {
	c.records = records
	c.refreshTable()
}

// Records returns the rows currently shown
func (c *Component) Records() []tracing.AttemptRecord {
	return c.records
}

// SetFocused sets whether the table receives key presses
func (c *Component) SetFocused(focused bool) {
	c.focused = focused
	c.table = c.table.Focused(focused)
}

// Focused reports whether the table has focus
func (c *Component) Focused() bool {
	return c.focused
}

// Update handles Bubble Tea messages
func (c *Component) Update(msg tea.Msg) (*Component, tea.Cmd) {
	var cmd tea.Cmd
	c.table, cmd = c.table.Update(msg)
	return c, cmd
}

// View renders the table
func (c *Component) View() string {
	if len(c.records) == 0 {
		return "No attempts recorded yet."
	}
	return c.table.View()
}

func (c *Component) refreshTable() {
	rows := make([]btable.Row, 0, len(c.records))
	for _, r := range c.records {
		rows = append(rows, btable.NewRow(btable.RowData{
			colWhen:     r.At.Format("2006-01-02 15:04:05"),
			colLogin:    r.Login,
			colAttempt:  fmt.Sprintf("%d", r.Attempt),
			colResult:   Result(r),
			colDuration: r.Duration.Round(time.Millisecond).String(),
		}))
	}

	c.table = c.table.WithRows(rows).Focused(c.focused)
}

// Result summarizes the outcome of an attempt in one cell
func Result(r tracing.AttemptRecord) string {
	if r.Success {
		if r.Payload == "" {
			return "ok"
		}
		return "ok: " + r.Payload
	}
	return "failed: " + r.Error
}
