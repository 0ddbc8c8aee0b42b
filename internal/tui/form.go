package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/win-strategy/internal/strategy"
)

// strategyForm collects the six text fields for one level. Each level keeps
// its own form so a half-written draft survives switching levels.
type strategyForm struct {
	level  strategy.Level
	inputs []textinput.Model
}

func newStrategyForm(level strategy.Level) *strategyForm {
	inputs := make([]textinput.Model, len(strategy.Fields))
	for i := range strategy.Fields {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.Placeholder = "required"
		ti.Width = 40
		inputs[i] = ti
	}
	return &strategyForm{level: level, inputs: inputs}
}

func (f *strategyForm) title() string {
	return fmt.Sprintf("%s Level Strategy", f.level)
}

func (f *strategyForm) submitLabel() string {
	return fmt.Sprintf("Add %s Strategy", f.level)
}

// focus focuses field idx and blurs the others. A negative idx blurs all.
func (f *strategyForm) focus(idx int) tea.Cmd {
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == idx {
			cmd = f.inputs[i].Focus()
			continue
		}
		f.inputs[i].Blur()
	}
	return cmd
}

// update forwards msg to field idx.
func (f *strategyForm) update(idx int, msg tea.Msg) tea.Cmd {
	if idx < 0 || idx >= len(f.inputs) {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[idx], cmd = f.inputs[idx].Update(msg)
	return cmd
}

func (f *strategyForm) draft() strategy.Draft {
	var d strategy.Draft
	for i, field := range strategy.Fields {
		d.Set(field, f.inputs[i].Value())
	}
	return d
}

func (f *strategyForm) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
}

func (f *strategyForm) setWidth(width int) {
	inputWidth := max(10, width-4)
	for i := range f.inputs {
		f.inputs[i].Width = inputWidth
	}
}

// view renders the labelled inputs and the submit control. focusedField is
// the index of the field with focus, or -1.
func (f *strategyForm) view(focusedField int, submitFocused bool) string {
	lines := []string{sectionTitleStyle.Render(f.title())}
	for i, field := range strategy.Fields {
		label := labelStyle
		if i == focusedField {
			label = focusedLabelStyle
		}
		lines = append(lines, label.Render(field.Prompt()), f.inputs[i].View())
	}
	lines = append(lines, "", renderButton(f.submitLabel(), submitFocused))
	return strings.Join(lines, "\n")
}

func renderButton(label string, focused bool) string {
	style := buttonStyle
	if focused {
		style = focusedButtonStyle
	}
	return style.Render(label)
}

var (
	sectionTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6BCB77")).MarginTop(1)
	labelStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	focusedLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	buttonStyle        = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
	focusedButtonStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#5B8DEF")).Foreground(lipgloss.Color("#5B8DEF")).Bold(true).Padding(0, 1)
)
