package utils

import (
	"errors"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Accepted ISO-8601 shapes for trip dates, most specific first.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DateLayout,
}

var errNotISODate = errors.New("not an ISO-8601 date")

// ParseISODate parses a date or date-time and truncates it to the calendar
// day it names, in UTC.
func ParseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errNotISODate
}

func IsISODate(s string) bool {
	_, err := ParseISODate(s)
	return err == nil
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// Today returns the current UTC calendar day.
func Today(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
