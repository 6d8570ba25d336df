package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinpulse/newsharvest/internal/domain"
)

func TestWriteJSONPrettyNoEscaping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	articles := []domain.Article{
		{Title: "Bitcoin & Ethereum <up>", URL: "https://e.com/a?x=1&y=2"},
	}

	require.NoError(t, WriteJSON(path, articles))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Bitcoin & Ethereum <up>")
	assert.Contains(t, string(raw), "\n  ")

	var back []domain.Article
	require.NoError(t, ReadJSON(path, &back))
	assert.Equal(t, articles, back)
}

func TestWriteCSVDeduplicatesByKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	table := ArticleTable([]domain.Article{
		{Title: "first", URL: "https://e.com/a", SeenDate: "20241109T164500Z", Language: "English"},
		{Title: "dup of first", URL: "https://e.com/a", Language: "English"},
		{Title: "second", URL: "https://e.com/b", Language: "English"},
	})

	n, err := WriteCSV(path, table)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	header, rows, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, ArticleHeader, header)
	require.Len(t, rows, 2)
	assert.Equal(t, "first", rows[0][0])
	assert.Equal(t, "2024-11-09 16:45:00", rows[0][2])
	assert.Equal(t, "second", rows[1][0])
}

func TestArticleTableKeepsRawUnparsableSeendate(t *testing.T) {
	table := ArticleTable([]domain.Article{
		{Title: "odd", URL: "u", SeenDate: "sometime soon"},
	})
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "sometime soon", table.Rows[0][2])
	assert.Equal(t, "unknown", table.Rows[0][6])
}

func TestPostTableProjection(t *testing.T) {
	table := PostTable([]domain.Post{
		{
			ID:          42,
			Kind:        "news",
			Title:       "BTC pops",
			URL:         "https://cp.example/42",
			PublishedAt: "2025-01-10T12:00:00Z",
			Source:      domain.PostSource{Title: "Feed"},
			Votes:       domain.PostVotes{Positive: 7, Negative: 2},
			Currencies:  []domain.Currency{{Code: "BTC"}, {Code: "ETH"}},
		},
	})

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, "42", row[0])
	assert.Equal(t, "2025-01-10T12:00:00Z", row[3])
	assert.Equal(t, "5", row[5])
	assert.Equal(t, "BTC, ETH", row[9])
	assert.Equal(t, 0, table.KeyCol)
}

func TestWriteCSVPostDedupByID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.csv")
	table := PostTable([]domain.Post{
		{ID: 1, Title: "a", URL: "u1"},
		{ID: 1, Title: "a again", URL: "u1b"},
		{ID: 2, Title: "b", URL: "u2"},
	})

	n, err := WriteCSV(path, table)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
