package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amanthanvi/bloom/internal/records"
	"github.com/amanthanvi/bloom/internal/recovery"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.April, 10, 12, 0, 0, 0, time.UTC)

func TestModelLoadsJourneyAndCelebratesMilestone(t *testing.T) {
	t.Parallel()

	client := &fakeClient{start: testNow.Add(-25 * time.Hour), hasStart: true}
	checker := &fakeChecker{}
	model := NewModel(Options{Client: client, Milestones: checker, Now: fixedNow})

	loaded := model.loadCmd()()
	require.IsType(t, loadedMsg{}, loaded)

	next, checkCmd := model.Update(loaded)
	state := next.(Model)
	require.Equal(t, recovery.Duration{Days: 1, Hours: 1}, state.elapsed)
	require.Equal(t, recovery.StageSeed, state.stage)
	require.NotNil(t, checkCmd)

	msg := checkCmd()
	require.IsType(t, milestoneMsg{}, msg)
	require.Equal(t, []int{1}, checker.days)

	next, _ = state.Update(msg)
	state = next.(Model)
	require.NotNil(t, state.celebrate)
	view := state.View()
	require.Contains(t, view, "First Day!")
	require.Contains(t, view, "Next milestone: Three Days Strong! in 2 days")

	next, _ = state.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, next.(Model).celebrate)
	require.NotContains(t, next.(Model).View(), "First Day!")
}

func TestModelChecksEachDayCountOnce(t *testing.T) {
	t.Parallel()

	client := &fakeClient{start: testNow.Add(-3 * 24 * time.Hour), hasStart: true}
	checker := &fakeChecker{}
	model := NewModel(Options{Client: client, Milestones: checker, Now: fixedNow})

	next, cmd := model.Update(model.loadCmd()())
	require.NotNil(t, cmd)
	cmd()
	state := next.(Model)

	// Same day on the next tick.
	next, _ = state.Update(tickMsg{id: state.tickID, at: testNow.Add(time.Minute)})
	state = next.(Model)
	require.Equal(t, []int{3}, checker.days)
	require.Equal(t, 3, state.checked)

	require.Nil(t, state.milestoneCmd())
}

func TestModelShowsEmptyStateBeforeJourneyBegins(t *testing.T) {
	t.Parallel()

	checker := &fakeChecker{}
	model := NewModel(Options{Client: &fakeClient{}, Milestones: checker, Now: fixedNow})

	next, cmd := model.Update(model.loadCmd()())
	require.Nil(t, cmd)
	view := next.(Model).View()
	require.Contains(t, view, "Your journey hasn't started.")
	require.Empty(t, checker.days)
}

func TestModelTickStopsOffJourneyScreenAndResumesOnReturn(t *testing.T) {
	t.Parallel()

	client := &fakeClient{start: testNow.Add(-time.Hour), hasStart: true}
	model := NewModel(Options{Client: client, Now: fixedNow})
	next, _ := model.Update(model.loadCmd()())
	state := next.(Model)
	firstID := state.tickID

	next, cmd := state.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	state = next.(Model)
	require.Equal(t, ScreenJournal, state.screen)
	require.Nil(t, cmd)

	next, cmd = state.Update(tickMsg{id: firstID, at: testNow.Add(2 * time.Hour)})
	state = next.(Model)
	require.Nil(t, cmd)
	require.Equal(t, 1, state.elapsed.Hours)

	next, cmd = state.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	state = next.(Model)
	require.Equal(t, ScreenJourney, state.screen)
	require.NotNil(t, cmd)
	require.Equal(t, firstID+1, state.tickID)

	// A tick from the abandoned chain is dropped.
	next, cmd = state.Update(tickMsg{id: firstID, at: testNow.Add(5 * time.Hour)})
	require.Nil(t, cmd)
	require.Equal(t, 1, next.(Model).elapsed.Hours)

	next, cmd = state.Update(tickMsg{id: state.tickID, at: testNow.Add(5 * time.Hour)})
	require.NotNil(t, cmd)
	require.Equal(t, 6, next.(Model).elapsed.Hours)
}

func TestModelListsJournalAndUrges(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		entries: []records.JournalEntry{
			{ID: "b", Entry: "Quiet evening\nwalked the dog", Timestamp: testNow.Add(-time.Hour)},
			{ID: "a", Entry: "First entry", Timestamp: testNow.Add(-30 * time.Hour)},
		},
		urges: []records.UrgeLog{
			{ID: "u1", Intensity: 7, Note: "after work", Timestamp: testNow.Add(-2 * time.Hour)},
		},
	}
	model := NewModel(Options{Client: client, Now: fixedNow})
	next, _ := model.Update(model.loadCmd()())
	state := next.(Model)

	require.Len(t, state.journalList.Items(), 2)
	first := state.journalList.Items()[0].(journalItem)
	require.Equal(t, "Today at 11:00 AM", first.Title())
	require.Equal(t, "Quiet evening", first.Description())
	require.Equal(t, "Yesterday at 6:00 AM", state.journalList.Items()[1].(journalItem).Title())

	next, _ = state.Update(tea.KeyMsg{Type: tea.KeyTab})
	state = next.(Model)
	require.Equal(t, ScreenJournal, state.screen)

	next, _ = state.Update(tea.KeyMsg{Type: tea.KeyTab})
	state = next.(Model)
	require.Equal(t, ScreenUrges, state.screen)
	urge := state.urgeList.Items()[0].(urgeItem)
	require.Equal(t, "Intensity 7/10", urge.Title())
	require.Equal(t, "Today at 10:00 AM - after work", urge.Description())
	require.Contains(t, state.View(), "Intensity 7/10")
}

func TestModelSurfacesLoadAndMilestoneErrors(t *testing.T) {
	t.Parallel()

	model := NewModel(Options{Client: &fakeClient{err: errors.New("storage unavailable")}, Now: fixedNow})
	next, _ := model.Update(model.loadCmd()())
	require.Contains(t, next.(Model).View(), "Error: storage unavailable")

	next, _ = model.Update(milestoneMsg{err: errors.New("write failed")})
	require.Contains(t, next.(Model).View(), "Error: write failed")
	require.Nil(t, next.(Model).celebrate)
}

func TestRunRequiresTTY(t *testing.T) {
	t.Parallel()

	err := Run(Options{IsTTY: func() bool { return false }})
	require.EqualError(t, err, "tui: requires a tty")
}

func TestNewStylesPicksPaletteForScheme(t *testing.T) {
	t.Parallel()

	light := newStyles(records.ThemeLight)
	dark := newStyles(records.ThemeDark)
	require.Equal(t, lightPalette.primary, light.counter.GetForeground())
	require.Equal(t, darkPalette.primary, dark.counter.GetForeground())
}

func fixedNow() time.Time { return testNow }

type fakeClient struct {
	start    time.Time
	hasStart bool
	entries  []records.JournalEntry
	urges    []records.UrgeLog
	err      error
}

func (f *fakeClient) GetSobrietyDate(context.Context) (time.Time, bool, error) {
	return f.start, f.hasStart, f.err
}

func (f *fakeClient) GetJournalEntries(context.Context) ([]records.JournalEntry, error) {
	return f.entries, f.err
}

func (f *fakeClient) GetUrgeLogs(context.Context) ([]records.UrgeLog, error) {
	return f.urges, f.err
}

type fakeChecker struct {
	days []int
}

func (f *fakeChecker) Check(_ context.Context, days int) (recovery.Milestone, bool, error) {
	f.days = append(f.days, days)
	m, ok := recovery.MilestoneFor(days)
	return m, ok, nil
}
