package models

import "time"

// timestampLayouts are the publishedAt forms the news providers report.
var timestampLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
}

// ParseTimestamp returns s in UTC, or nil when no known layout matches.
// A value without an offset is read as UTC.
func ParseTimestamp(s string) *time.Time {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			ts = ts.UTC()
			return &ts
		}
	}
	return nil
}
