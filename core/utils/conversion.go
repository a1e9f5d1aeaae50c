package utils

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are tried in order by ToDate.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ToDate converts various types to a date at midnight UTC.
// It handles time.Time, *time.Time and strings in ISO-8601 form.
func ToDate(val any) (time.Time, error) {
	switch v := val.(type) {
	case time.Time:
		return midnight(v), nil
	case *time.Time:
		if v == nil {
			return time.Time{}, fmt.Errorf("nil date")
		}
		return midnight(*v), nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return midnight(t), nil
			}
		}
		return time.Time{}, fmt.Errorf("invalid date %q", v)
	case []byte:
		return ToDate(string(v))
	default:
		return time.Time{}, fmt.Errorf("unsupported date type %T", val)
	}
}

// FormatDate formats t as YYYY-MM-DD. A zero time formats as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func midnight(t time.Time) time.Time {
	// Keep the calendar day as written, whatever the zone.
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
