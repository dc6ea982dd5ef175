package domain

import "time"

// DateLayout is the wire format of rental dates.
const DateLayout = "2006-01-02"

// Interval is a closed date range [Start, End].
type Interval struct {
	Start time.Time `json:"rent_start_date"`
	End   time.Time `json:"rent_end_date"`
}

func within(t, lo, hi time.Time) bool {
	return !t.Before(lo) && !t.After(hi)
}

// Overlaps reports whether the existing interval c and the requested interval r
// share at least one instant. Each clause covers one topology: c starts inside r,
// c ends inside r, r starts inside c, r ends inside c.
func Overlaps(c, r Interval) bool {
	return within(c.Start, r.Start, r.End) ||
		within(c.End, r.Start, r.End) ||
		within(r.Start, c.Start, c.End) ||
		within(r.End, c.Start, c.End)
}
