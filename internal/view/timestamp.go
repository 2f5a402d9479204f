package view

import (
	"strings"
	"time"
)

// DisplayLayout matches what an en-US browser prints for Date#toLocaleString.
const DisplayLayout = "1/2/2006, 3:04:05 PM"

const invalidDate = "Invalid Date"

// Layouts without an offset are read as wall-clock time in the display zone.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// FormatTimestamp renders an ISO-8601 timestamp for display in loc.
// A bare date is midnight UTC, as browsers read it.
func FormatTimestamp(raw string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return invalidDate
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(loc).Format(DisplayLayout)
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.Format(DisplayLayout)
		}
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.In(loc).Format(DisplayLayout)
	}
	return invalidDate
}
