// Package recovery holds the derived journey state: elapsed time, growth
// stage, milestone detection and the quote of the day. Everything except
// Tracker is a pure function of its inputs.
package recovery

import (
	"fmt"
	"time"
)

const (
	msPerMinute = int64(60_000)
	msPerHour   = int64(3_600_000)
	msPerDay    = int64(86_400_000)
)

// Duration is elapsed time broken into whole days, hours and minutes.
type Duration struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Elapsed returns the time from start to now. A start in the future counts as
// zero elapsed.
func Elapsed(start, now time.Time) Duration {
	diff := now.Sub(start).Milliseconds()
	if diff < 0 {
		diff = 0
	}
	return Duration{
		Days:    int(diff / msPerDay),
		Hours:   int((diff % msPerDay) / msPerHour),
		Minutes: int((diff % msPerHour) / msPerMinute),
	}
}

func (d Duration) IsZero() bool {
	return d == Duration{}
}

func (d Duration) String() string {
	return fmt.Sprintf("%s %s %s",
		plural(d.Days, "day"), plural(d.Hours, "hour"), plural(d.Minutes, "minute"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
