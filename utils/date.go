package utils

import "time"

// DateLayout is the lexically sortable day format used for issue and due dates.
// Overdue checks compare these as plain strings, so the layout must stay
// zero-padded big-endian.
const DateLayout = "2006-01-02"

// Today returns the current UTC day as a YYYY-MM-DD string.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// Timestamp returns the current UTC instant as an RFC3339 string. RFC3339 is
// lexically sortable, which the recent-items views rely on.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
