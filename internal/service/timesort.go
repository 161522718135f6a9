package service

import (
	"strings"
	"time"
)

// Display times arrive in whatever form the input control produced:
// zero-padded 24-hour ("09:00"), bare 24-hour ("9:00"), or 12-hour with a
// period ("02:00 PM"). Sorting those lexically is wrong across periods
// ("2:00 PM" would land before "9:00 AM"), so ordering normalizes to
// minutes since midnight first and only falls back to string comparison
// for values no layout matches.
var timeLayouts = []string{"15:04", "3:04 PM", "3:04PM", "3:04"}

// timeSortValue parses a display time into minutes since midnight.
func timeSortValue(raw string) (int, bool) {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}
	return 0, false
}

// lessTime orders two display times. With normalize disabled it keeps the
// plain lexical comparison the original client performed. Parseable times
// sort before unparseable ones; equal keys report false so stable sorts
// keep encounter order.
func lessTime(a, b string, normalize bool) bool {
	if !normalize {
		return a < b
	}
	av, aok := timeSortValue(a)
	bv, bok := timeSortValue(b)
	switch {
	case aok && bok:
		return av < bv
	case aok != bok:
		return aok
	default:
		return a < b
	}
}
