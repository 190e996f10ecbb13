package recovery

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

type Milestone struct {
	Days    int    `json:"days"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

var milestones = []Milestone{
	{Days: 1, Title: "First Day!", Message: "You took the first step. Every journey begins here."},
	{Days: 3, Title: "Three Days Strong!", Message: "You're building momentum. Keep going!"},
	{Days: 7, Title: "One Week!", Message: "A full week of growth. You're amazing!"},
	{Days: 14, Title: "Two Weeks!", Message: "You're proving your strength every day."},
	{Days: 30, Title: "One Month!", Message: "A whole month of dedication. You're incredible!"},
	{Days: 60, Title: "Two Months!", Message: "Look how far you've come. Keep flourishing!"},
	{Days: 90, Title: "Three Months!", Message: "You've built something truly special here."},
	{Days: 180, Title: "Six Months!", Message: "Half a year of growth and strength. Extraordinary!"},
	{Days: 365, Title: "One Year!", Message: "A full year of transformation. You're a champion!"},
}

// Milestones returns the thresholds in ascending order.
func Milestones() []Milestone {
	out := make([]Milestone, len(milestones))
	copy(out, milestones)
	return out
}

// MilestoneFor returns the milestone whose threshold is exactly days.
func MilestoneFor(days int) (Milestone, bool) {
	for _, m := range milestones {
		if m.Days == days {
			return m, true
		}
	}
	return Milestone{}, false
}

// NextMilestone returns the first threshold strictly after days.
func NextMilestone(days int) (Milestone, bool) {
	for _, m := range milestones {
		if m.Days > days {
			return m, true
		}
	}
	return Milestone{}, false
}

// ShownStore persists the set of already celebrated thresholds.
type ShownStore interface {
	GetShownMilestones(ctx context.Context) ([]int, error)
	MarkMilestoneAsShown(ctx context.Context, day int) error
}

type TrackerOptions struct {
	// OnCelebrate runs after a newly reached milestone has been persisted.
	OnCelebrate func(Milestone)
}

// Tracker celebrates each threshold at most once per store, until the shown
// set is reset.
type Tracker struct {
	store ShownStore
	opts  TrackerOptions
	mu    sync.Mutex
}

func NewTracker(store ShownStore, opts TrackerOptions) *Tracker {
	return &Tracker{store: store, opts: opts}
}

// Check reports the milestone to celebrate for days, if any. Only an exact
// threshold match counts; a day skipped while the app was closed is never
// celebrated later. The day is recorded as shown before Check returns.
func (t *Tracker) Check(ctx context.Context, days int) (Milestone, bool, error) {
	m, ok := MilestoneFor(days)
	if !ok {
		return Milestone{}, false, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	shown, err := t.store.GetShownMilestones(ctx)
	if err != nil {
		return Milestone{}, false, fmt.Errorf("check milestone %d: %w", days, err)
	}
	if slices.Contains(shown, m.Days) {
		return Milestone{}, false, nil
	}
	if err := t.store.MarkMilestoneAsShown(ctx, m.Days); err != nil {
		return Milestone{}, false, fmt.Errorf("check milestone %d: %w", days, err)
	}
	if t.opts.OnCelebrate != nil {
		t.opts.OnCelebrate(m)
	}
	return m, true, nil
}
