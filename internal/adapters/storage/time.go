package storage

import "time"

// timeLayouts are accepted when decoding stored timestamps. The second
// layout matches rows written by the previous system, which stamped local
// datetimes without a zone.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// FormatTime renders t for storage. Zero times become the empty string.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// ParseTime decodes a stored timestamp, returning the zero time for blank or
// unparseable values. Timestamp damage never fails a read.
func ParseTime(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
