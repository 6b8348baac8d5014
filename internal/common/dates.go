package common

import (
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing a date token. Month-first
// numeric forms come before year-first so ambiguous tokens resolve the way
// US bank statements write them.
var dateLayouts = []string{
	"1/2/2006",
	"1-2-2006",
	"1.2.2006",
	"2006/1/2",
	"2006-1-2",
	"2006.1.2",
	"1/2/06",
	"1-2-06",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// ParseDate leniently parses a date token into a calendar date at UTC
// midnight. It returns false for tokens that match no known layout or fall
// outside a plausible statement range.
func ParseDate(token string) (time.Time, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, token)
		if err != nil {
			continue
		}
		if t.Year() < 1970 || t.Year() > 2100 {
			continue
		}
		return Day(t), true
	}

	return time.Time{}, false
}

// Day truncates a time to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
