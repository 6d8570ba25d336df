// Package verifier smoke-checks a cleaned export against the
// invariants the cleaner is supposed to establish. It is a reporting
// pass, not a test framework: each property gets an independent
// pass/fail with a sample of offending values.
package verifier

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/coinpulse/newsharvest/internal/cleaner"
)

var dayFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Check is the outcome of one property check.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Report collects all property checks for one run.
type Report struct {
	Rows   int
	Checks []Check
}

// Passed reports whether every check passed.
func (r Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

// Verify checks three properties over the cleaned rows: date format,
// single language, and lowercase titles without multi-space runs.
func Verify(rows []cleaner.Row) Report {
	return Report{
		Rows: len(rows),
		Checks: []Check{
			checkDates(rows),
			checkLanguage(rows),
			checkTitles(rows),
		},
	}
}

func checkDates(rows []cleaner.Row) Check {
	var bad []string
	for _, r := range rows {
		if !dayFormat.MatchString(r.PublishedAt) {
			bad = append(bad, r.PublishedAt)
		}
	}
	return result("date format YYYY-MM-DD", bad)
}

func checkLanguage(rows []cleaner.Row) Check {
	var bad []string
	for _, r := range rows {
		if !strings.EqualFold(r.Language, cleaner.KeepLanguage) {
			bad = append(bad, r.Language)
		}
	}
	return result("single language (english)", bad)
}

func checkTitles(rows []cleaner.Row) Check {
	var bad []string
	for _, r := range rows {
		if r.TitleCleaned != strings.ToLower(r.TitleCleaned) ||
			strings.Contains(r.TitleCleaned, "  ") ||
			r.TitleCleaned != strings.TrimSpace(r.TitleCleaned) {
			bad = append(bad, r.TitleCleaned)
		}
	}
	return result("titles lowercase, no multi-space runs", bad)
}

func result(name string, bad []string) Check {
	if len(bad) == 0 {
		return Check{Name: name, OK: true}
	}

	sample := bad
	if len(sample) > 3 {
		sample = sample[:3]
	}
	return Check{
		Name:   name,
		Detail: fmt.Sprintf("%d offending values, e.g. %q", len(bad), sample),
	}
}
