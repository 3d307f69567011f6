package api

import (
	"fmt"
	"time"
)

// timeAgo renders a coarse relative-time string: minutes under an hour,
// whole hours after that.
func timeAgo(t, now time.Time) string {
	diff := now.Sub(t)
	minutes := int(diff.Minutes())

	if minutes < 60 {
		return fmt.Sprintf("%d minute%s ago", minutes, pluralSuffix(minutes))
	}
	hours := int(diff.Hours())
	return fmt.Sprintf("%d hour%s ago", hours, pluralSuffix(hours))
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
