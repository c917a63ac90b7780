package session

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

var intervalUnits = []struct {
	factor           int64
	singular, plural string
}{
	{1000, "second", "seconds"},
	{60, "minute", "minutes"},
	{60, "hour", "hours"},
	{24, "day", "days"},
}

// FormatInterval renders d using at most its two largest non-zero units,
// e.g. "1 minute 5 seconds" or "2 hours". Sub-second parts are dropped;
// anything under a second is "0 seconds".
func FormatInterval(d time.Duration) string {
	t := d.Milliseconds()
	if t < 0 {
		t = 0
	}

	// split[i] holds the amount of intervalUnits[i-1]; split[0] is millis.
	var split []int64
	for _, u := range intervalUnits {
		mod := t % u.factor
		split = append(split, mod)
		t = (t - mod) / u.factor
		if t == 0 {
			break
		}
	}
	if t != 0 {
		split = append(split, t)
	}
	split = split[1:]
	if len(split) == 0 {
		split = append(split, 0)
	}

	var parts []string
	for i, n := range split {
		if len(split) != 1 && n == 0 {
			continue
		}
		unit := intervalUnits[i].plural
		if n == 1 {
			unit = intervalUnits[i].singular
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, unit))
	}
	slices.Reverse(parts)
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, " ")
}
