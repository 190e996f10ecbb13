package recovery

import (
	"fmt"
	"time"
)

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
}

func (q Quote) String() string {
	if q.Author == "" {
		return q.Text
	}
	return fmt.Sprintf("%s (%s)", q.Text, q.Author)
}

// Quotes returns a copy of the quote list in selection order.
func Quotes() []Quote {
	out := make([]Quote, len(quotes))
	copy(out, quotes)
	return out
}

// QuoteOfDay picks the quote for t's calendar date in t's own location.
// Callers pass local time so the quote turns over at local midnight.
func QuoteOfDay(t time.Time) Quote {
	return quotes[QuoteIndex(t)]
}

func QuoteIndex(t time.Time) int {
	h := int64(dayHash(dayKey(t)))
	if h < 0 {
		h = -h
	}
	return int(h % int64(len(quotes)))
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// dayHash is the multiplier-31 string hash wrapped to a signed 32-bit value.
func dayHash(s string) int32 {
	var h int32
	for _, c := range s {
		h = h*31 + int32(c)
	}
	return h
}
