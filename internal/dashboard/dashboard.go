// internal/dashboard/dashboard.go
//
// Turns a level's strategies into the read-only table shown in the main
// area of the TUI. Build is pure data so it can be checked without a
// terminal; Render does the lipgloss work.

package dashboard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kingrea/win-strategy/internal/strategy"
)

// Placeholder is shown instead of a table when a level has no strategies.
const Placeholder = "No strategies created yet."

// ProgressColumn is the heading of the last column.
const ProgressColumn = "Progress"

var (
	headingStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).MarginBottom(1)
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true)
	headerCellStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")).Padding(0, 1)
	cellStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC")).Padding(0, 1)
	borderStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))

	progressStyles = map[strategy.Progress]lipgloss.Style{
		strategy.ProgressNotStarted: lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")).Padding(0, 1),
		strategy.ProgressInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true).Padding(0, 1),
		strategy.ProgressCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true).Padding(0, 1),
	}
)

// View is the render-ready description of one level's dashboard.
type View struct {
	Level    strategy.Level
	Heading  string
	Headers  []string
	Rows     [][]string
	Progress []strategy.Progress
	Empty    bool
}

// Columns returns the dashboard headings in their fixed order.
func Columns() []string {
	cols := make([]string, 0, len(strategy.Fields)+1)
	for _, f := range strategy.Fields {
		cols = append(cols, f.Title())
	}
	return append(cols, ProgressColumn)
}

// Heading returns the dashboard title for level.
func Heading(level strategy.Level) string {
	return fmt.Sprintf("%s Strategy Dashboard", level)
}

// Build lays out records for level in insertion order.
func Build(level strategy.Level, records []strategy.Strategy) View {
	view := View{
		Level:   level,
		Heading: Heading(level),
		Headers: Columns(),
		Empty:   len(records) == 0,
	}
	if view.Empty {
		return view
	}
	view.Rows = make([][]string, 0, len(records))
	view.Progress = make([]strategy.Progress, 0, len(records))
	for _, rec := range records {
		row := make([]string, 0, len(view.Headers))
		for _, f := range strategy.Fields {
			row = append(row, rec.Value(f))
		}
		row = append(row, rec.Progress.String())
		view.Rows = append(view.Rows, row)
		view.Progress = append(view.Progress, rec.Progress)
	}
	return view
}

// Render draws the heading followed by either the table or the placeholder.
// A width of zero lets the table size itself to its content.
func Render(view View, width int) string {
	heading := headingStyle.Render(view.Heading)
	if view.Empty {
		return lipgloss.JoinVertical(lipgloss.Left, heading, placeholderStyle.Render(Placeholder))
	}
	return lipgloss.JoinVertical(lipgloss.Left, heading, renderTable(view, width))
}

func renderTable(view View, width int) string {
	progressCol := len(view.Headers) - 1
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(view.Headers...).
		Rows(view.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			// data rows follow the header row
			idx := row - (table.HeaderRow + 1)
			if col == progressCol && idx >= 0 && idx < len(view.Progress) {
				if style, ok := progressStyles[view.Progress[idx]]; ok {
					return style
				}
			}
			return cellStyle
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.Render()
}
