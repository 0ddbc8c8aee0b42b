// internal/tui/app.go
//
// This is the terminal UI for the strategy tracker. It uses bubbletea,
// which follows The Elm Architecture:
//
// 1. Model: the App, owning the session's strategy.Store
// 2. Update: each key press is turned into at most one Store call
// 3. View: the whole screen is recomputed from Store state
//
// Layout: a sidebar with the level selector, the input form and (once the
// level has records) the progress tracker; a main area with the notice and
// the dashboard; then the journal tail and the footer.

package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/win-strategy/internal/config"
	"github.com/kingrea/win-strategy/internal/dashboard"
	"github.com/kingrea/win-strategy/internal/logbook"
	"github.com/kingrea/win-strategy/internal/strategy"
)

// Focus positions, in tab order. The tracker entries only exist while the
// selected level has at least one strategy.
const (
	focusLevel      = 0
	focusFirstField = 1
	focusSubmit     = focusFirstField + 6
	focusPosition   = focusSubmit + 1
	focusStatus     = focusPosition + 1
	focusCommit     = focusStatus + 1
)

const (
	defaultWidth   = 120
	sidebarWidth   = 50
	minMainWidth   = 40
	defaultLogTail = 6
)

type noticeKind int

const (
	noticeNone noticeKind = iota
	noticeSuccess
	noticeError
)

type notice struct {
	kind noticeKind
	text string
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithStore makes the App operate on an existing store.
func WithStore(store *strategy.Store) AppOption {
	return func(a *App) {
		if store != nil {
			a.store = store
		}
	}
}

// WithLogbook attaches the session journal.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = lb
	}
}

// WithKeyMap overrides the default key bindings.
func WithKeyMap(keys KeyMap) AppOption {
	return func(a *App) {
		a.keys = keys
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	config  *config.Config
	store   *strategy.Store
	logbook *logbook.Logbook
	keys    KeyMap
	help    help.Model

	levelIdx int
	focus    int
	forms    map[strategy.Level]*strategyForm
	trackers map[strategy.Level]*progressTracker
	notice   notice

	// Journal tail, refreshed whenever the App writes an entry
	logLines []string
	logTotal int

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// NewApp creates the model for one session. A nil cfg falls back to
// config.Default().
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	app := &App{
		config:   cfg,
		store:    strategy.NewStore(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		focus:    focusLevel,
		forms:    make(map[strategy.Level]*strategyForm, len(strategy.Levels)),
		trackers: make(map[strategy.Level]*progressTracker, len(strategy.Levels)),
	}
	for _, level := range strategy.Levels {
		app.forms[level] = newStrategyForm(level)
		app.trackers[level] = newProgressTracker(level)
	}
	for i, level := range strategy.Levels {
		if level == cfg.DefaultLevel() {
			app.levelIdx = i
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	app.logInfo("Session opened · level: %s", app.level())
	return app
}

// Store exposes the session store.
func (a *App) Store() *strategy.Store {
	return a.store
}

func (a *App) level() strategy.Level {
	return strategy.Levels[a.levelIdx]
}

func (a *App) currentForm() *strategyForm {
	return a.forms[a.level()]
}

func (a *App) currentTracker() *progressTracker {
	return a.trackers[a.level()]
}

func (a *App) trackerVisible() bool {
	return a.store.Len(a.level()) > 0
}

func (a *App) focusCount() int {
	if a.trackerVisible() {
		return focusCommit + 1
	}
	return focusSubmit + 1
}

// focusedField returns the form field index that has focus, or -1.
func (a *App) focusedField() int {
	if a.focus >= focusFirstField && a.focus < focusSubmit {
		return a.focus - focusFirstField
	}
	return -1
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
	a.refreshLog()
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
	a.refreshLog()
}

// refreshLog re-reads the journal tail so View never touches the file.
func (a *App) refreshLog() {
	if !a.config.LogPanelEnabled() {
		return
	}
	limit := a.config.LogPanelLines()
	if limit <= 0 {
		limit = defaultLogTail
	}
	a.logLines, a.logTotal = a.logbook.Tail(limit)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		for _, form := range a.forms {
			form.setWidth(sidebarWidth - 4)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Cursor blink and similar messages belong to the focused input.
	return a, a.currentForm().update(a.focusedField(), msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.ForceQuit):
		a.logInfo("Session closed")
		return a, tea.Quit
	case key.Matches(msg, a.keys.Next):
		return a, a.moveFocus(1)
	case key.Matches(msg, a.keys.Prev):
		return a, a.moveFocus(-1)
	}

	if field := a.focusedField(); field >= 0 {
		if key.Matches(msg, a.keys.Activate) {
			return a, a.submitForm()
		}
		return a, a.currentForm().update(field, msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.logInfo("Session closed")
		return a, tea.Quit
	case key.Matches(msg, a.keys.Left):
		return a, a.shiftSelection(-1)
	case key.Matches(msg, a.keys.Right):
		return a, a.shiftSelection(1)
	case key.Matches(msg, a.keys.Activate):
		switch a.focus {
		case focusLevel:
			return a, a.setFocus(focusFirstField)
		case focusSubmit:
			return a, a.submitForm()
		case focusCommit:
			return a, a.commitProgress()
		}
	}
	return a, nil
}

func (a *App) moveFocus(delta int) tea.Cmd {
	return a.setFocus(wrap(a.focus+delta, a.focusCount()))
}

func (a *App) setFocus(target int) tea.Cmd {
	if target < 0 || target >= a.focusCount() {
		target = focusLevel
	}
	a.focus = target
	return a.currentForm().focus(a.focusedField())
}

func (a *App) shiftSelection(delta int) tea.Cmd {
	switch a.focus {
	case focusLevel:
		a.selectLevel(wrap(a.levelIdx+delta, len(strategy.Levels)))
	case focusPosition:
		a.currentTracker().shiftPosition(delta, a.store.Len(a.level()))
	case focusStatus:
		a.currentTracker().shiftStatus(delta)
	}
	return nil
}

// selectLevel switches the active collection. Like any other action it
// clears the previous notice.
func (a *App) selectLevel(idx int) {
	if idx == a.levelIdx {
		return
	}
	a.currentForm().focus(-1)
	a.levelIdx = idx
	a.notice = notice{}
	a.currentTracker().clamp(a.store.Len(a.level()))
	if a.focus >= a.focusCount() {
		a.focus = focusLevel
	}
	a.logInfo("Level · %s selected", a.level())
}

// submitForm adds the current draft when all six fields are filled. An
// incomplete draft is dropped silently.
func (a *App) submitForm() tea.Cmd {
	a.notice = notice{}
	level := a.level()
	form := a.currentForm()
	draft := form.draft()
	if !draft.Complete() {
		return nil
	}
	record, err := a.store.Add(level, draft)
	if err != nil {
		a.notice = notice{kind: noticeError, text: err.Error()}
		a.logError("Add %s strategy failed: %v", level, err)
		return nil
	}
	a.notice = notice{kind: noticeSuccess, text: fmt.Sprintf("%s Strategy added!", level)}
	a.logInfo("Strategy added · #%d · %s", a.store.Len(level)-1, record.Summary())
	if a.config.ClearOnSubmit() {
		form.reset()
	}
	return nil
}

// commitProgress applies the tracker selection to the store.
func (a *App) commitProgress() tea.Cmd {
	a.notice = notice{}
	level := a.level()
	tracker := a.currentTracker()
	n := a.store.Len(level)
	if n == 0 {
		return nil
	}
	tracker.clamp(n)
	progress := tracker.selectedProgress()
	if err := a.store.UpdateProgress(level, tracker.position, progress); err != nil {
		a.notice = notice{kind: noticeError, text: err.Error()}
		a.logError("Progress update failed: %v", err)
		return nil
	}
	a.notice = notice{kind: noticeSuccess, text: fmt.Sprintf("%s strategy progress updated!", level)}
	a.logInfo("Progress · %s #%d → %s", level, tracker.position, progress)
	return nil
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = defaultWidth
	}
	mainWidth := width - sidebarWidth - 4
	var body string
	if mainWidth < minMainWidth {
		body = lipgloss.JoinVertical(lipgloss.Left,
			panelStyle.Width(max(20, width-2)).Render(a.renderSidebar()),
			panelStyle.Width(max(20, width-2)).Render(a.renderMain(width-6)),
		)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			panelStyle.Width(sidebarWidth).Render(a.renderSidebar()),
			panelStyle.Width(mainWidth).Render(a.renderMain(mainWidth-4)),
		)
	}
	sections := []string{a.renderHeader(), body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, a.renderFooter(width), a.help.View(a.keys))
	return strings.Join(sections, "\n")
}

func (a *App) renderHeader() string {
	title := titleStyle.Render(a.config.Title())
	if tagline := a.config.Tagline(); tagline != "" {
		return lipgloss.JoinVertical(lipgloss.Left, title, taglineStyle.Render(tagline))
	}
	return title
}

func (a *App) renderSidebar() string {
	parts := []string{a.renderLevelSelector()}
	submitFocused := a.focus == focusSubmit
	parts = append(parts, a.currentForm().view(a.focusedField(), submitFocused))
	if a.trackerVisible() {
		parts = append(parts, a.currentTracker().view(a.store.List(a.level()), a.focus))
	}
	return strings.Join(parts, "\n")
}

func (a *App) renderLevelSelector() string {
	label := labelStyle.Render("Choose Level")
	if a.focus == focusLevel {
		label = focusedLabelStyle.Render("Choose Level  ← →")
	}
	tabs := make([]string, 0, len(strategy.Levels))
	for i, level := range strategy.Levels {
		style := levelTabStyle
		if i == a.levelIdx {
			style = activeLevelTabStyle
		}
		tabs = append(tabs, style.Render(level.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (a *App) renderMain(width int) string {
	view := dashboard.Build(a.level(), a.store.List(a.level()))
	board := dashboard.Render(view, max(0, width))
	switch a.notice.kind {
	case noticeSuccess:
		return lipgloss.JoinVertical(lipgloss.Left, successStyle.Render("✓ "+a.notice.text), "", board)
	case noticeError:
		return lipgloss.JoinVertical(lipgloss.Left, errorStyle.Render("⚠ "+a.notice.text), "", board)
	}
	return board
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil || !a.config.LogPanelEnabled() {
		return ""
	}
	lines, total := a.logLines, a.logTotal
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s (%d/%d)", fileName, len(lines), total))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return panelStyle.Render(fmt.Sprintf("%s\n%s", head, body))
}

func (a *App) renderFooter(width int) string {
	rule := footerStyle.Render(strings.Repeat("─", max(3, min(width, 60))))
	lines := a.config.Footer()
	if len(lines) == 0 {
		return rule
	}
	rendered := make([]string, 0, len(lines))
	for i, line := range lines {
		if i == 0 {
			rendered = append(rendered, footerBrandStyle.Render(line))
			continue
		}
		rendered = append(rendered, footerStyle.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{rule}, rendered...)...)
}

var (
	titleStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	taglineStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).MarginBottom(1)
	panelStyle          = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
	levelTabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Padding(0, 1)
	activeLevelTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#5B8DEF")).Bold(true).Padding(0, 1)
	successStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	errorStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	footerStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	footerBrandStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC")).Bold(true)
)
