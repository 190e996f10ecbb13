package recovery

import "time"

// FormatEntryTime renders ts relative to now's calendar day in now's
// location: "Today at 3:04 PM", "Yesterday at 3:04 PM", otherwise the date
// with the year shown only when it differs from now.
func FormatEntryTime(ts, now time.Time) string {
	local := ts.In(now.Location())
	switch {
	case sameDay(local, now):
		return "Today at " + local.Format("3:04 PM")
	case sameDay(local, now.AddDate(0, 0, -1)):
		return "Yesterday at " + local.Format("3:04 PM")
	case local.Year() == now.Year():
		return local.Format("Jan 2, 3:04 PM")
	default:
		return local.Format("Jan 2, 2006, 3:04 PM")
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
