package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/win-strategy/internal/strategy"
)

// progressTracker holds the position and status selections for one level.
// The selectable range is recomputed from the live collection length on
// every render and before every commit.
type progressTracker struct {
	level    strategy.Level
	position int
	status   int
}

func newProgressTracker(level strategy.Level) *progressTracker {
	return &progressTracker{level: level}
}

func (t *progressTracker) title() string {
	return fmt.Sprintf("Track %s Strategy Progress", t.level)
}

// clamp keeps the position inside [0, n).
func (t *progressTracker) clamp(n int) {
	if n <= 0 {
		t.position = 0
		return
	}
	if t.position >= n {
		t.position = n - 1
	}
	if t.position < 0 {
		t.position = 0
	}
}

func (t *progressTracker) shiftPosition(delta, n int) {
	if n <= 0 {
		t.position = 0
		return
	}
	t.position = wrap(t.position+delta, n)
}

func (t *progressTracker) shiftStatus(delta int) {
	t.status = wrap(t.status+delta, len(strategy.ProgressValues))
}

func (t *progressTracker) selectedProgress() strategy.Progress {
	return strategy.ProgressValues[wrap(t.status, len(strategy.ProgressValues))]
}

// positionLabels lists the selectable positions for a collection of n.
func positionLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	return labels
}

func (t *progressTracker) view(records []strategy.Strategy, focus int) string {
	n := len(records)
	if n == 0 {
		return ""
	}
	t.clamp(n)
	labels := positionLabels(n)
	hint := ""
	if t.position < n {
		hint = hintStyle.Render(truncate(records[t.position].Aspiration, 28))
	}
	lines := []string{
		sectionTitleStyle.Render(t.title()),
		labelStyle.Render("Select a strategy"),
		renderSelector(labels[t.position], focus == focusPosition) + " " + hint,
		labelStyle.Render("Progress Status"),
		renderSelector(t.selectedProgress().String(), focus == focusStatus),
		"",
		renderButton("Update Progress", focus == focusCommit),
	}
	return strings.Join(lines, "\n")
}

func renderSelector(value string, focused bool) string {
	if focused {
		return focusedSelectorStyle.Render(fmt.Sprintf("‹ %s ›", value))
	}
	return selectorStyle.Render(fmt.Sprintf("  %s  ", value))
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

var (
	selectorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	focusedSelectorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	hintStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777")).Italic(true)
)
