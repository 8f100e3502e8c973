package utils

import (
	"fmt"
	"time"
)

// Layouts seen across careers APIs. Tried in order.
var postingLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
}

// ParsePostingTime parses a source-reported posting timestamp. It returns
// the zero time when the value is empty or matches no known layout, so a
// malformed timestamp never aborts a run.
func ParsePostingTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range postingLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// TimeSince renders a human-readable age relative to now, e.g. "45m ago",
// "2h ago", "3d ago".
func TimeSince(t, now time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// TimeNowUTC returns the current time in UTC.
func TimeNowUTC() time.Time {
	return time.Now().UTC()
}
