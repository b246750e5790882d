package models

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts lists the accepted day formats; the page's date picker sends
// ISO dates, while the dashboard displays YYYY.MM.DD.
var dateLayouts = []string{"2006-01-02", "2006.01.02", "20060102"}

// ParseFlexibleDate parses an RFC3339 timestamp or a day-only string.
// Day-only values are interpreted in loc; timestamps are truncated to their day in loc.
func ParseFlexibleDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)

	// Try parsing as RFC3339 full timestamp first
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.In(loc)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want YYYY-MM-DD)", s)
}
