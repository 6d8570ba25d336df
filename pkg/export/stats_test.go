package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coinpulse/newsharvest/internal/domain"
)

func TestArticleStats(t *testing.T) {
	articles := []domain.Article{
		{URL: "https://a.com/1", SeenDate: "20250103T120000Z", Domain: "a.com"},
		{URL: "https://a.com/2", SeenDate: "20250101T090000Z", Domain: "a.com"},
		{URL: "https://b.com/1", SeenDate: "20250215T000000Z", Domain: "b.com"},
		{URL: "https://c.com/1", SeenDate: "not a date", Domain: "c.com"},
	}

	s := ArticleStats(articles)
	assert.Equal(t, 4, s.Records)
	assert.Equal(t, "2025-01-01", s.EarliestDate)
	assert.Equal(t, "2025-02-15", s.LatestDate)
	assert.Equal(t, 3, s.UniqueSources)
}

func TestPostStats(t *testing.T) {
	posts := []domain.Post{
		{ID: 1, PublishedAt: "2025-03-02T10:00:00Z", Source: domain.PostSource{Title: "Feed A"}},
		{ID: 2, CreatedAt: "2025-03-01T08:00:00Z", Source: domain.PostSource{Title: "Feed B"}},
		{ID: 3, PublishedAt: "2025-03-05T23:00:00Z", Source: domain.PostSource{Title: "Feed A"}},
	}

	s := PostStats(posts)
	assert.Equal(t, 3, s.Records)
	assert.Equal(t, "2025-03-01", s.EarliestDate)
	assert.Equal(t, "2025-03-05", s.LatestDate)
	assert.Equal(t, 2, s.UniqueSources)
}

func TestStatsEmpty(t *testing.T) {
	s := ArticleStats(nil)
	assert.Equal(t, 0, s.Records)
	assert.Empty(t, s.EarliestDate)
	assert.Empty(t, s.LatestDate)
}
