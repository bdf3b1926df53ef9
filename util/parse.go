package util

import (
	"time"
)

const dateOnlyFormat = "2006-01-02"

// ParseTime accepts RFC3339 timestamps and bare dates. Bare dates come
// from the post form's date picker and mean midnight UTC.
func ParseTime(val string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	return time.Parse(dateOnlyFormat, val)
}
