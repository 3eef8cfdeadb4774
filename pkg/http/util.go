package http

import (
	"time"

	xutil "MacroPulse/pkg/util"
)

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time { return xutil.ParseTimeDefault(s, def) }

// ParseTimeRange reads from/to query values. A missing to is now; a missing from is window before to.
func ParseTimeRange(from, to string, now time.Time, window time.Duration) TimeRange {
	end := ParseTimeDefault(to, now)
	return TimeRange{
		From: ParseTimeDefault(from, end.Add(-window)),
		To:   end,
	}
}
