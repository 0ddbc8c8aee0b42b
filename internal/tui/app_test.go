package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/win-strategy/internal/config"
	"github.com/kingrea/win-strategy/internal/dashboard"
	"github.com/kingrea/win-strategy/internal/logbook"
	"github.com/kingrea/win-strategy/internal/strategy"
)

var reliabilityFields = []string{
	"Be #1 in reliability",
	"Industrial plants",
	"Predictive maintenance",
	"Data science team",
	"Monthly ops review",
	"Zero unplanned downtime",
}

func TestSubmitAddsStrategyToSelectedLevel(t *testing.T) {
	for idx, level := range strategy.Levels {
		t.Run(level.String(), func(t *testing.T) {
			app := newTestApp(t)
			for i := 0; i < idx; i++ {
				press(t, app, tea.KeyRight)
			}
			require.Equal(t, level, app.level())
			fillForm(t, app, reliabilityFields)
			press(t, app, tea.KeyEnter)

			for _, other := range strategy.Levels {
				want := 0
				if other == level {
					want = 1
				}
				assert.Equal(t, want, app.Store().Len(other), other.String())
			}
			assert.Equal(t, noticeSuccess, app.notice.kind)
			assert.Equal(t, level.String()+" Strategy added!", app.notice.text)
		})
	}
}

func TestSubmitWithEmptyFieldIsSilentNoOp(t *testing.T) {
	for missing := range strategy.Fields {
		app := newTestApp(t)
		values := append([]string(nil), reliabilityFields...)
		values[missing] = ""
		fillForm(t, app, values)
		press(t, app, tea.KeyEnter)
		for _, level := range strategy.Levels {
			assert.Zero(t, app.Store().Len(level), "field %d empty: %s", missing, level)
		}
		assert.Equal(t, noticeNone, app.notice.kind, "field %d empty", missing)
	}
}

func TestSubmitButtonActivates(t *testing.T) {
	app := newTestApp(t)
	fillForm(t, app, reliabilityFields)
	press(t, app, tea.KeyTab) // from last field onto the submit button
	require.Equal(t, focusSubmit, app.focus)
	press(t, app, tea.KeyEnter)
	assert.Equal(t, 1, app.Store().Len(strategy.LevelCorporate))
}

func TestWhitespaceFieldCountsAsFilled(t *testing.T) {
	app := newTestApp(t)
	values := append([]string(nil), reliabilityFields...)
	values[2] = " "
	fillForm(t, app, values)
	press(t, app, tea.KeyEnter)
	assert.Equal(t, 1, app.Store().Len(strategy.LevelCorporate))
}

func TestFormKeepsValuesAfterSubmitUnlessClearing(t *testing.T) {
	app := newTestApp(t)
	fillForm(t, app, reliabilityFields)
	press(t, app, tea.KeyEnter)
	assert.Equal(t, reliabilityFields[0], app.currentForm().draft().Aspiration)

	// a second Enter re-submits the same values
	press(t, app, tea.KeyEnter)
	assert.Equal(t, 2, app.Store().Len(strategy.LevelCorporate))

	cfg := config.Default()
	on := true
	cfg.Project.Form.ClearOnSubmit = &on
	cleared := NewApp(cfg)
	fillForm(t, cleared, reliabilityFields)
	press(t, cleared, tea.KeyEnter)
	assert.Equal(t, strategy.Draft{}, cleared.currentForm().draft())
}

func TestDraftsAreScopedPerLevel(t *testing.T) {
	app := newTestApp(t)
	fillForm(t, app, reliabilityFields[:2])
	setFocus(t, app, focusLevel)
	press(t, app, tea.KeyRight)
	assert.Equal(t, strategy.Draft{}, app.currentForm().draft(), "business unit form should start empty")
	press(t, app, tea.KeyLeft)
	assert.Equal(t, reliabilityFields[1], app.currentForm().draft().PlayingField)
}

func TestTrackerHiddenUntilLevelHasRecords(t *testing.T) {
	app := newTestApp(t)
	assert.False(t, app.trackerVisible())
	assert.NotContains(t, app.View(), "Update Progress")
	assert.Equal(t, focusSubmit+1, app.focusCount())

	addStrategy(t, app, reliabilityFields)
	assert.True(t, app.trackerVisible())
	assert.Contains(t, app.View(), "Track Corporate Strategy Progress")
}

func TestReliabilityScenarioThroughUI(t *testing.T) {
	app := newTestApp(t)
	addStrategy(t, app, reliabilityFields)

	records := app.Store().List(strategy.LevelCorporate)
	require.Len(t, records, 1)
	require.Equal(t, strategy.ProgressNotStarted, records[0].Progress)

	setFocus(t, app, focusStatus)
	press(t, app, tea.KeyRight) // Not Started -> In Progress
	press(t, app, tea.KeyTab)
	require.Equal(t, focusCommit, app.focus)
	press(t, app, tea.KeyEnter)

	records = app.Store().List(strategy.LevelCorporate)
	assert.Equal(t, strategy.ProgressInProgress, records[0].Progress)
	for i, field := range strategy.Fields {
		assert.Equal(t, reliabilityFields[i], records[0].Value(field), field.Title())
	}
	assert.Equal(t, "Corporate strategy progress updated!", app.notice.text)
}

func TestProgressCanMoveBackwards(t *testing.T) {
	app := newTestApp(t)
	addStrategy(t, app, reliabilityFields)
	require.NoError(t, app.Store().UpdateProgress(strategy.LevelCorporate, 0, strategy.ProgressCompleted))
	setFocus(t, app, focusCommit)
	press(t, app, tea.KeyEnter) // tracker status still at Not Started
	assert.Equal(t, strategy.ProgressNotStarted, app.Store().List(strategy.LevelCorporate)[0].Progress)
}

func TestPositionSelectorFollowsCollectionLength(t *testing.T) {
	app := newTestApp(t)
	addStrategy(t, app, reliabilityFields)
	addStrategy(t, app, []string{"b", "b", "b", "b", "b", "b"})

	setFocus(t, app, focusPosition)
	press(t, app, tea.KeyRight)
	require.Equal(t, 1, app.currentTracker().position)
	press(t, app, tea.KeyRight)
	require.Equal(t, 0, app.currentTracker().position, "position should wrap")
	press(t, app, tea.KeyLeft)
	setFocus(t, app, focusStatus)
	press(t, app, tea.KeyLeft) // Not Started -> Completed
	setFocus(t, app, focusCommit)
	press(t, app, tea.KeyEnter)

	records := app.Store().List(strategy.LevelCorporate)
	assert.Equal(t, strategy.ProgressNotStarted, records[0].Progress)
	assert.Equal(t, strategy.ProgressCompleted, records[1].Progress)
	assert.Equal(t, []string{"0", "1"}, positionLabels(2))
}

func TestStaleTrackerSelectionIsClamped(t *testing.T) {
	app := newTestApp(t)
	addStrategy(t, app, reliabilityFields)
	app.currentTracker().position = 5
	setFocus(t, app, focusCommit)
	press(t, app, tea.KeyEnter)
	assert.Equal(t, noticeSuccess, app.notice.kind)
	assert.Equal(t, 0, app.currentTracker().position)
}

func TestLevelSwitchClearsNoticeAndShowsLevelDashboard(t *testing.T) {
	app := newTestApp(t)
	addStrategy(t, app, reliabilityFields)
	require.Equal(t, noticeSuccess, app.notice.kind)
	setFocus(t, app, focusLevel)
	press(t, app, tea.KeyRight)
	assert.Equal(t, noticeNone, app.notice.kind)

	view := app.View()
	assert.Contains(t, view, "Business Unit Strategy Dashboard")
	assert.Contains(t, view, dashboard.Placeholder)
	assert.NotContains(t, view, reliabilityFields[0], "corporate record leaked into business unit dashboard")
}

func TestViewShowsBrandingAndFooter(t *testing.T) {
	view := newTestApp(t).View()
	for _, want := range []string{
		"Win Strategy Prototype - AreteDom",
		"Choose Level",
		"Corporate Level Strategy",
		"Step 1: Winning Aspiration and Purpose",
		"Add Corporate Strategy",
		"Corporate Strategy Dashboard",
		"Adept Transformation Partners, LLC - AreteDom",
		"Strategy alignment tool prototype.",
	} {
		assert.Contains(t, view, want)
	}
}

func TestStartsOnConfiguredLevelWithExistingStore(t *testing.T) {
	store := strategy.NewStore()
	_, err := store.Add(strategy.LevelPlant, strategy.Draft{
		Aspiration:        "Zero defects",
		PlayingField:      "Line 3",
		Tactics:           "Poka-yoke",
		Capabilities:      "Quality engineers",
		ManagementSystems: "Daily huddle",
		SuccessMeasures:   "PPM under 10",
	})
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Project.Form.DefaultLevel = "plant"
	app := newTestAppWithConfig(t, cfg, WithStore(store))

	assert.Equal(t, strategy.LevelPlant, app.level())
	assert.Same(t, store, app.Store())
	assert.True(t, app.trackerVisible())
	view := app.View()
	assert.Contains(t, view, "Plant Strategy Dashboard")
	assert.Contains(t, view, "Zero defects")
}

func TestJournalRecordsActions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "journey.log")
	lb, err := logbook.New(path)
	require.NoError(t, err)
	app := newTestApp(t, WithLogbook(lb))
	addStrategy(t, app, reliabilityFields)
	setFocus(t, app, focusCommit)
	press(t, app, tea.KeyEnter)

	lines, total := lb.Tail(10)
	require.Equal(t, 3, total, "%v", lines)
	assert.Contains(t, lines[1], "Strategy added · #0 · Corporate · Be #1 in reliability")
	assert.Contains(t, lines[2], "Progress · Corporate #0 → Not Started")
	assert.Contains(t, app.View(), "LOG · journey.log (3/3)")
}

func TestLogPanelIsRefreshedOnWritesOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journey.log")
	lb, err := logbook.New(path)
	require.NoError(t, err)
	app := newTestApp(t, WithLogbook(lb))
	addStrategy(t, app, reliabilityFields)
	require.Contains(t, app.View(), "LOG · journey.log (2/2)")

	// rendering keeps the cached tail even when the file goes away
	require.NoError(t, os.Remove(path))
	assert.Contains(t, app.View(), "LOG · journey.log (2/2)")

	setFocus(t, app, focusLevel)
	press(t, app, tea.KeyRight)
	assert.Contains(t, app.View(), "LOG · journey.log (1/1)")
}

func TestOversizedFieldKeepsJournalReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journey.log")
	lb, err := logbook.New(path)
	require.NoError(t, err)
	app := newTestApp(t, WithLogbook(lb))

	values := append([]string(nil), reliabilityFields...)
	values[0] = strings.Repeat("a", 70*1024)
	fillForm(t, app, values)
	press(t, app, tea.KeyEnter)
	require.Equal(t, 1, app.Store().Len(strategy.LevelCorporate))
	assert.Len(t, app.Store().List(strategy.LevelCorporate)[0].Aspiration, 70*1024)

	setFocus(t, app, focusLevel)
	press(t, app, tea.KeyRight)

	lines, total := lb.Tail(10)
	require.Equal(t, 3, total, "%v", lines)
	assert.Contains(t, lines[2], "Level · Business Unit selected")
	assert.Equal(t, 3, app.logTotal)
}

func TestQuitKeys(t *testing.T) {
	app := newTestApp(t)
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd, "q on the level selector should quit")
	assert.IsType(t, tea.QuitMsg{}, cmd())

	setFocus(t, app, focusFirstField)
	typeText(t, app, "q")
	assert.Equal(t, "q", app.currentForm().draft().Aspiration, "q should be typed into the field")

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd, "ctrl+c should quit")
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestCustomKeyMap(t *testing.T) {
	keys := DefaultKeyMap()
	keys.Quit = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "quit"))
	app := newTestApp(t, WithKeyMap(keys))

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd, "q is no longer bound")

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func newTestApp(t *testing.T, opts ...AppOption) *App {
	t.Helper()
	return newTestAppWithConfig(t, config.Default(), opts...)
}

func newTestAppWithConfig(t *testing.T, cfg *config.Config, opts ...AppOption) *App {
	t.Helper()
	app := NewApp(cfg, opts...)
	app.Update(tea.WindowSizeMsg{Width: 160, Height: 60})
	return app
}

func press(t *testing.T, app *App, keyType tea.KeyType) {
	t.Helper()
	model, _ := app.Update(tea.KeyMsg{Type: keyType})
	require.IsType(t, &App{}, model)
}

func typeText(t *testing.T, app *App, text string) {
	t.Helper()
	if text == "" {
		return
	}
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func setFocus(t *testing.T, app *App, target int) {
	t.Helper()
	app.setFocus(target)
	require.Equal(t, target, app.focus)
}

// fillForm types values into the form fields starting at the first one and
// leaves focus on the last field it touched.
func fillForm(t *testing.T, app *App, values []string) {
	t.Helper()
	setFocus(t, app, focusFirstField)
	for i, value := range values {
		if i > 0 {
			press(t, app, tea.KeyTab)
		}
		typeText(t, app, value)
	}
}

func addStrategy(t *testing.T, app *App, values []string) {
	t.Helper()
	level := app.level()
	before := app.Store().Len(level)
	fillForm(t, app, values)
	press(t, app, tea.KeyEnter)
	require.Equal(t, before+1, app.Store().Len(level), "add strategy on %s", level)
}
