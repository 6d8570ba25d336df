// Package dates normalizes the timestamp formats the upstream APIs
// emit. Parsing is an ordered list of strategies tried in sequence;
// the first success wins and total failure is a typed error, never a
// panic or a silently zero time.
package dates

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrUnparsable reports that no strategy recognized the input.
var ErrUnparsable = errors.New("unparsable date")

// DayFormat is the canonical day rendering produced by the cleaner.
const DayFormat = "2006-01-02"

// GDELTFormat is the compact seendate format GDELT emits.
const GDELTFormat = "20060102T150405Z"

// layouts are tried in order. RFC3339 covers both "Z" and numeric
// zone suffixes.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DayFormat,
	GDELTFormat,
}

var dayPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Parse tries each strategy in order and returns the first success.
// As a last resort a YYYY-MM-DD substring is extracted from the raw
// input. The returned error wraps ErrUnparsable when nothing matched.
func Parse(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrUnparsable)
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}

	if m := dayPattern.FindString(raw); m != "" {
		if t, err := time.Parse(DayFormat, m); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparsable, raw)
}

// Day renders a time as YYYY-MM-DD.
func Day(t time.Time) string { return t.Format(DayFormat) }

// ParseDay normalizes a raw timestamp to YYYY-MM-DD.
func ParseDay(raw string) (string, error) {
	t, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return Day(t), nil
}
