package export

import (
	"strconv"
	"strings"

	"github.com/coinpulse/newsharvest/internal/domain"
	"github.com/coinpulse/newsharvest/pkg/dates"
)

// ArticleHeader is the column order of the GDELT CSV projection.
// Deduplication key is the url column.
var ArticleHeader = []string{
	"title", "url", "published_at", "seendate", "source", "snippet", "language",
}

// PostHeader is the column order of the CryptoPanic CSV projection.
// Deduplication key is the id column.
var PostHeader = []string{
	"id", "title", "url", "published_at", "source",
	"votes", "positive_votes", "negative_votes", "comments_count",
	"currencies", "kind",
}

// ArticleTable projects GDELT articles into tabular form. The
// published_at column carries the parsed seendate rendered as
// "YYYY-MM-DD HH:MM:SS"; when the seendate is unparsable the raw
// string is kept so the row survives for debugging.
func ArticleTable(articles []domain.Article) Table {
	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		published := a.SeenDate
		if t, err := dates.Parse(a.SeenDate); err == nil {
			published = t.Format("2006-01-02 15:04:05")
		}

		language := a.Language
		if language == "" {
			language = "unknown"
		}

		rows = append(rows, []string{
			a.Title, a.URL, published, a.SeenDate, a.Domain, a.Snippet, language,
		})
	}
	return Table{Header: ArticleHeader, KeyCol: 1, Rows: rows}
}

// PostTable projects CryptoPanic posts into tabular form. The votes
// column is positive minus negative.
func PostTable(posts []domain.Post) Table {
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		codes := make([]string, 0, len(p.Currencies))
		for _, c := range p.Currencies {
			codes = append(codes, c.Code)
		}

		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			p.URL,
			p.Timestamp(),
			p.Source.Title,
			strconv.Itoa(p.Votes.Positive - p.Votes.Negative),
			strconv.Itoa(p.Votes.Positive),
			strconv.Itoa(p.Votes.Negative),
			strconv.Itoa(p.CommentsCount),
			strings.Join(codes, ", "),
			p.Kind,
		})
	}
	return Table{Header: PostHeader, KeyCol: 0, Rows: rows}
}
