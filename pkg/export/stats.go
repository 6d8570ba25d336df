package export

import (
	"github.com/coinpulse/newsharvest/internal/domain"
	"github.com/coinpulse/newsharvest/pkg/dates"
)

// Stats summarizes one export for the run log.
type Stats struct {
	Records       int
	EarliestDate  string
	LatestDate    string
	UniqueSources int
}

// Fields renders the summary as structured log fields.
func (s Stats) Fields() map[string]any {
	return map[string]any{
		"records":        s.Records,
		"earliest_date":  s.EarliestDate,
		"latest_date":    s.LatestDate,
		"unique_sources": s.UniqueSources,
	}
}

// ArticleStats summarizes GDELT articles by parsed seendate and source
// domain. Articles with unparsable dates count toward Records only.
func ArticleStats(articles []domain.Article) Stats {
	s := Stats{Records: len(articles)}
	sources := make(map[string]struct{})
	for _, a := range articles {
		if a.Domain != "" {
			sources[a.Domain] = struct{}{}
		}
		t, err := dates.Parse(a.SeenDate)
		if err != nil {
			continue
		}
		day := dates.Day(t)
		if s.EarliestDate == "" || day < s.EarliestDate {
			s.EarliestDate = day
		}
		if day > s.LatestDate {
			s.LatestDate = day
		}
	}
	s.UniqueSources = len(sources)
	return s
}

// PostStats summarizes CryptoPanic posts by timestamp and source title.
func PostStats(posts []domain.Post) Stats {
	s := Stats{Records: len(posts)}
	sources := make(map[string]struct{})
	for _, p := range posts {
		if p.Source.Title != "" {
			sources[p.Source.Title] = struct{}{}
		}
		t, err := dates.Parse(p.Timestamp())
		if err != nil {
			continue
		}
		day := dates.Day(t)
		if s.EarliestDate == "" || day < s.EarliestDate {
			s.EarliestDate = day
		}
		if day > s.LatestDate {
			s.LatestDate = day
		}
	}
	s.UniqueSources = len(sources)
	return s
}
