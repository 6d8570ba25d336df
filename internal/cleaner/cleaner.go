// Package cleaner normalizes a fetched GDELT export: one language,
// one date format, lowercase collapsed titles, no empty rows. The
// steps are a fixed, order-dependent pipeline; each step reports how
// many rows survived.
package cleaner

import (
	"sort"
	"strings"

	"github.com/coinpulse/newsharvest/internal/logger"
	"github.com/coinpulse/newsharvest/pkg/dates"
)

// Row is one record moving through the cleaning pipeline. JSON tags
// define the cleaned export shape.
type Row struct {
	PublishedAt  string `json:"published_at"`
	TitleCleaned string `json:"title_cleaned"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	Source       string `json:"source"`
	Snippet      string `json:"snippet,omitempty"`
	Language     string `json:"language"`
	SeenDate     string `json:"seendate,omitempty"`
	SeenDateStd  string `json:"seendate_standardized,omitempty"`
}

// KeepLanguage is the only language retained by the pipeline.
const KeepLanguage = "english"

// Cleaner runs the normalization pipeline.
type Cleaner struct {
	log logger.Logger
}

// New builds a Cleaner with the given logger.
func New(log logger.Logger) *Cleaner {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Cleaner{log: log}
}

// Clean applies, in order: language filter, date normalization (rows
// with unparsable dates are dropped), title cleaning, empty-title
// drop, and a stable sort by normalized date.
func (c *Cleaner) Clean(rows []Row) []Row {
	c.log.InfoObj("cleaning started", "clean_start", map[string]any{"rows": len(rows)})

	rows = c.filterLanguage(rows)
	rows = c.normalizeDates(rows)
	rows = c.cleanTitles(rows)
	rows = c.dropEmptyTitles(rows)

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].PublishedAt < rows[j].PublishedAt
	})

	c.log.InfoObj("cleaning finished", "clean_done", map[string]any{"rows": len(rows)})
	return rows
}

func (c *Cleaner) filterLanguage(rows []Row) []Row {
	out := rows[:0:0]
	for _, r := range rows {
		if strings.EqualFold(strings.TrimSpace(r.Language), KeepLanguage) {
			out = append(out, r)
		}
	}
	c.log.InfoObj("language filter applied", "clean_language", map[string]any{"rows": len(out)})
	return out
}

func (c *Cleaner) normalizeDates(rows []Row) []Row {
	out := rows[:0:0]
	for _, r := range rows {
		day, err := dates.ParseDay(r.PublishedAt)
		if err != nil {
			continue
		}
		r.PublishedAt = day

		if r.SeenDate != "" {
			if std, err := dates.ParseDay(r.SeenDate); err == nil {
				r.SeenDateStd = std
			}
		}
		out = append(out, r)
	}
	c.log.InfoObj("dates normalized", "clean_dates", map[string]any{"rows": len(out)})
	return out
}

func (c *Cleaner) cleanTitles(rows []Row) []Row {
	for i := range rows {
		rows[i].TitleCleaned = CleanTitle(rows[i].Title)
	}
	return rows
}

func (c *Cleaner) dropEmptyTitles(rows []Row) []Row {
	out := rows[:0:0]
	for _, r := range rows {
		if r.TitleCleaned != "" {
			out = append(out, r)
		}
	}
	c.log.InfoObj("empty titles dropped", "clean_titles", map[string]any{"rows": len(out)})
	return out
}

// CleanTitle lowercases a title and collapses whitespace runs into
// single spaces, trimming the ends.
func CleanTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
