package cleaner

import (
	"fmt"

	"github.com/coinpulse/newsharvest/internal/domain"
	"github.com/coinpulse/newsharvest/pkg/dates"
	"github.com/coinpulse/newsharvest/pkg/export"
)

// CleanHeader is the column order of the cleaned CSV, normalized
// columns first. Deduplication key is the url column.
var CleanHeader = []string{
	"published_at", "title_cleaned", "title", "url",
	"source", "snippet", "language", "seendate", "seendate_standardized",
}

// LoadCSV reads rows from a fetch-stage CSV export, matching columns
// by header name so column order does not matter.
func LoadCSV(path string) ([]Row, error) {
	header, records, err := export.ReadCSV(path)
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	col := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row{
			PublishedAt:  col(rec, "published_at"),
			TitleCleaned: col(rec, "title_cleaned"),
			Title:        col(rec, "title"),
			URL:          col(rec, "url"),
			Source:       col(rec, "source"),
			Snippet:      col(rec, "snippet"),
			Language:     col(rec, "language"),
			SeenDate:     col(rec, "seendate"),
			SeenDateStd:  col(rec, "seendate_standardized"),
		})
	}
	return rows, nil
}

// LoadJSON reads raw GDELT articles from a JSON export and projects
// them into pipeline rows, the same projection the CSV export uses.
func LoadJSON(path string) ([]Row, error) {
	var articles []domain.Article
	if err := export.ReadJSON(path, &articles); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(articles))
	for _, a := range articles {
		published := a.SeenDate
		if t, err := dates.Parse(a.SeenDate); err == nil {
			published = t.Format("2006-01-02 15:04:05")
		}
		rows = append(rows, Row{
			PublishedAt: published,
			Title:       a.Title,
			URL:         a.URL,
			Source:      a.Domain,
			Snippet:     a.Snippet,
			Language:    a.Language,
			SeenDate:    a.SeenDate,
		})
	}
	return rows, nil
}

// Load reads the fetch-stage export, preferring the CSV projection
// and falling back to the raw JSON.
func Load(csvPath, jsonPath string) ([]Row, error) {
	rows, csvErr := LoadCSV(csvPath)
	if csvErr == nil {
		return rows, nil
	}

	rows, jsonErr := LoadJSON(jsonPath)
	if jsonErr == nil {
		return rows, nil
	}
	return nil, fmt.Errorf("load %s: %w (csv fallback: %s)", jsonPath, jsonErr, csvErr)
}

// TableOf projects cleaned rows for CSV export.
func TableOf(rows []Row) export.Table {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.PublishedAt, r.TitleCleaned, r.Title, r.URL,
			r.Source, r.Snippet, r.Language, r.SeenDate, r.SeenDateStd,
		})
	}
	return export.Table{Header: CleanHeader, KeyCol: 3, Rows: out}
}
