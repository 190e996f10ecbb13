package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amanthanvi/bloom/internal/records"
	"github.com/amanthanvi/bloom/internal/recovery"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Screen string

const (
	ScreenJourney Screen = "journey"
	ScreenJournal Screen = "journal"
	ScreenUrges   Screen = "urges"
)

type Client interface {
	GetSobrietyDate(ctx context.Context) (time.Time, bool, error)
	GetJournalEntries(ctx context.Context) ([]records.JournalEntry, error)
	GetUrgeLogs(ctx context.Context) ([]records.UrgeLog, error)
}

type MilestoneChecker interface {
	Check(ctx context.Context, days int) (recovery.Milestone, bool, error)
}

type Options struct {
	Client     Client
	Milestones MilestoneChecker
	// Now defaults to time.Now. It should return local time.
	Now             func() time.Time
	RefreshInterval time.Duration
	ColorScheme     records.ThemePreference
	IsTTY           func() bool
}

// Model renders the journey counter and the journal and urge lists. The
// counter is recomputed on every tick while the journey screen is shown.
type Model struct {
	client     Client
	milestones MilestoneChecker
	now        func() time.Time
	refresh    time.Duration
	styles     styles

	screen Screen
	err    string

	start     time.Time
	hasStart  bool
	elapsed   recovery.Duration
	stage     recovery.Stage
	quote     recovery.Quote
	checked   int
	celebrate *recovery.Milestone

	tickID      int
	journalList list.Model
	urgeList    list.Model
}

type loadedMsg struct {
	start    time.Time
	hasStart bool
	entries  []records.JournalEntry
	urges    []records.UrgeLog
	err      error
}

type tickMsg struct {
	id int
	at time.Time
}

type milestoneMsg struct {
	milestone recovery.Milestone
	ok        bool
	err       error
}

func Run(opts Options) error {
	if opts.IsTTY != nil && !opts.IsTTY() {
		return fmt.Errorf("tui: requires a tty")
	}
	_, err := tea.NewProgram(NewModel(opts), tea.WithAltScreen()).Run()
	return err
}

func NewModel(opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	refresh := opts.RefreshInterval
	if refresh <= 0 {
		refresh = time.Second
	}

	delegate := list.NewDefaultDelegate()

	journalList := list.New([]list.Item{}, delegate, 0, 0)
	journalList.Title = "Journal"
	journalList.SetShowStatusBar(false)
	journalList.SetFilteringEnabled(true)
	journalList.SetShowHelp(false)
	journalList.SetSize(80, 20)

	urgeList := list.New([]list.Item{}, delegate, 0, 0)
	urgeList.Title = "Urges"
	urgeList.SetShowStatusBar(false)
	urgeList.SetFilteringEnabled(false)
	urgeList.SetShowHelp(false)
	urgeList.SetSize(80, 20)

	m := Model{
		client:      opts.Client,
		milestones:  opts.Milestones,
		now:         now,
		refresh:     refresh,
		styles:      newStyles(opts.ColorScheme),
		screen:      ScreenJourney,
		checked:     -1,
		journalList: journalList,
		urgeList:    urgeList,
	}
	m.recompute(now())
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.journalList.FilterState() == list.Filtering && m.screen == ScreenJournal {
			break
		}
		switch typed.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			return m.show(ScreenJourney)
		case "2":
			return m.show(ScreenJournal)
		case "3":
			return m.show(ScreenUrges)
		case "tab":
			return m.show(nextScreen(m.screen))
		case "r":
			return m, m.loadCmd()
		case "enter", "esc":
			if m.celebrate != nil {
				m.celebrate = nil
				return m, nil
			}
		}
	case tea.WindowSizeMsg:
		height := typed.Height - 6
		if height < 1 {
			height = 1
		}
		m.journalList.SetSize(typed.Width, height)
		m.urgeList.SetSize(typed.Width, height)
		return m, nil
	case loadedMsg:
		if typed.err != nil {
			m.err = typed.err.Error()
			return m, nil
		}
		m.err = ""
		m.start, m.hasStart = typed.start, typed.hasStart
		m.checked = -1
		m.populateLists(typed.entries, typed.urges)
		m.recompute(m.now())
		return m, m.milestoneCmd()
	case tickMsg:
		if typed.id != m.tickID || m.screen != ScreenJourney {
			return m, nil
		}
		m.recompute(typed.at)
		return m, tea.Batch(m.milestoneCmd(), m.tickCmd())
	case milestoneMsg:
		if typed.err != nil {
			m.err = typed.err.Error()
			return m, nil
		}
		if typed.ok {
			milestone := typed.milestone
			m.celebrate = &milestone
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.screen {
	case ScreenJournal:
		m.journalList, cmd = m.journalList.Update(msg)
	case ScreenUrges:
		m.urgeList, cmd = m.urgeList.Update(msg)
	}
	return m, cmd
}

// show switches screens. Returning to the journey screen arms a fresh tick
// chain; ticks from an earlier chain are dropped.
func (m Model) show(screen Screen) (tea.Model, tea.Cmd) {
	if m.screen == screen {
		return m, nil
	}
	m.screen = screen
	if screen != ScreenJourney {
		return m, nil
	}
	m.tickID++
	m.recompute(m.now())
	return m, m.tickCmd()
}

func nextScreen(current Screen) Screen {
	switch current {
	case ScreenJourney:
		return ScreenJournal
	case ScreenJournal:
		return ScreenUrges
	default:
		return ScreenJourney
	}
}

func (m *Model) recompute(now time.Time) {
	m.quote = recovery.QuoteOfDay(now)
	if !m.hasStart {
		m.elapsed = recovery.Duration{}
		m.stage = recovery.StageSeed
		return
	}
	m.elapsed = recovery.Elapsed(m.start, now)
	m.stage = recovery.StageFor(m.elapsed.Days)
}

func (m Model) tickCmd() tea.Cmd {
	id := m.tickID
	return tea.Tick(m.refresh, func(at time.Time) tea.Msg {
		return tickMsg{id: id, at: at}
	})
}

func (m Model) loadCmd() tea.Cmd {
	client := m.client
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		start, ok, err := client.GetSobrietyDate(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		entries, err := client.GetJournalEntries(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		urges, err := client.GetUrgeLogs(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{start: start, hasStart: ok, entries: entries, urges: urges}
	}
}

// milestoneCmd checks the current day count once per distinct value.
func (m *Model) milestoneCmd() tea.Cmd {
	if m.milestones == nil || !m.hasStart || m.elapsed.Days == m.checked {
		return nil
	}
	m.checked = m.elapsed.Days
	checker, days := m.milestones, m.elapsed.Days
	return func() tea.Msg {
		milestone, ok, err := checker.Check(context.Background(), days)
		return milestoneMsg{milestone: milestone, ok: ok, err: err}
	}
}

func (m *Model) populateLists(entries []records.JournalEntry, urges []records.UrgeLog) {
	now := m.now()

	entryItems := make([]list.Item, 0, len(entries))
	for _, entry := range entries {
		entryItems = append(entryItems, journalItem{
			when:  recovery.FormatEntryTime(entry.Timestamp, now),
			entry: entry.Entry,
		})
	}
	m.journalList.SetItems(entryItems)

	urgeItems := make([]list.Item, 0, len(urges))
	for _, urge := range urges {
		urgeItems = append(urgeItems, urgeItem{
			when:      recovery.FormatEntryTime(urge.Timestamp, now),
			intensity: urge.Intensity,
			note:      urge.Note,
		})
	}
	m.urgeList.SetItems(urgeItems)
}

func (m Model) View() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.header.Render("bloom") + "\n")
	b.WriteString(m.renderTabs() + "\n\n")

	switch m.screen {
	case ScreenJournal:
		if len(m.journalList.Items()) == 0 {
			b.WriteString(renderEmptyState("No journal entries yet.", "Write one with `bloom journal add ...`"))
		} else {
			b.WriteString(m.journalList.View())
		}
	case ScreenUrges:
		if len(m.urgeList.Items()) == 0 {
			b.WriteString(renderEmptyState("No urges logged.", "Log one with `bloom urge log --intensity N`"))
		} else {
			b.WriteString(m.urgeList.View())
		}
	default:
		b.WriteString(m.renderJourney())
	}

	if m.err != "" {
		b.WriteString("\n" + s.errorMsg.Render("Error: "+m.err))
	}
	b.WriteString("\n" + s.help.Render("[1-3/tab] Switch  [r] Reload  [q] Quit"))
	return s.app.Render(b.String())
}

func (m Model) renderTabs() string {
	tabs := []struct {
		screen Screen
		label  string
	}{
		{ScreenJourney, "Journey"},
		{ScreenJournal, "Journal"},
		{ScreenUrges, "Urges"},
	}
	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		style := m.styles.tab
		if tab.screen == m.screen {
			style = m.styles.tabActive
		}
		parts = append(parts, style.Render(tab.label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderJourney() string {
	s := m.styles
	if !m.hasStart {
		return renderEmptyState("Your journey hasn't started.", "Begin it with `bloom begin`.")
	}

	var b strings.Builder
	counter := lipgloss.JoinHorizontal(lipgloss.Bottom,
		s.counter.Render(fmt.Sprintf("%d", m.elapsed.Days)), s.label.Render(" days  "),
		s.counter.Render(fmt.Sprintf("%d", m.elapsed.Hours)), s.label.Render(" hours  "),
		s.counter.Render(fmt.Sprintf("%d", m.elapsed.Minutes)), s.label.Render(" minutes"),
	)
	b.WriteString(counter + "\n")
	b.WriteString(s.stage.Render("Stage: "+m.stage.Label()) + "\n")
	if next, ok := recovery.NextMilestone(m.elapsed.Days); ok {
		b.WriteString(s.label.Render(fmt.Sprintf("Next milestone: %s in %d days", next.Title, next.Days-m.elapsed.Days)) + "\n")
	}

	b.WriteString(s.quote.Render(m.quote.Text))
	if m.quote.Author != "" {
		b.WriteString("\n" + s.author.Render("- "+m.quote.Author))
	}

	if m.celebrate != nil {
		b.WriteString("\n" + s.celebrate.Render(m.celebrate.Title+"\n"+m.celebrate.Message+"\n\n[enter] Continue"))
	}
	return b.String()
}

func renderEmptyState(title, guidance string) string {
	return title + "\n" + guidance
}

type journalItem struct {
	when  string
	entry string
}

func (i journalItem) Title() string { return i.when }
func (i journalItem) Description() string {
	line, _, _ := strings.Cut(i.entry, "\n")
	return line
}
func (i journalItem) FilterValue() string { return i.entry }

type urgeItem struct {
	when      string
	intensity int
	note      string
}

func (i urgeItem) Title() string { return fmt.Sprintf("Intensity %d/10", i.intensity) }
func (i urgeItem) Description() string {
	if i.note == "" {
		return i.when
	}
	return i.when + " - " + i.note
}
func (i urgeItem) FilterValue() string { return i.note }
