package cleaner

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinpulse/newsharvest/internal/domain"
	"github.com/coinpulse/newsharvest/internal/logger"
	"github.com/coinpulse/newsharvest/pkg/export"
)

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "bitcoin surges past $100k!!", CleanTitle("Bitcoin Surges  Past $100K!!"))
	assert.Equal(t, "eth up", CleanTitle("  ETH\t\tUp \n"))
	assert.Equal(t, "", CleanTitle("   "))
	assert.Equal(t, "", CleanTitle(""))
}

func TestCleanPipelineOrder(t *testing.T) {
	rows := []Row{
		{PublishedAt: "2024-11-03 10:00:00", Title: "Later Bitcoin News", URL: "c", Language: "English"},
		{PublishedAt: "2024-11-01 08:00:00", Title: "Bitcoin Surges  Past $100K!!", URL: "a", Language: "english"},
		{PublishedAt: "2024-11-02 09:00:00", Title: "Deutsche Krypto-Nachrichten", URL: "x", Language: "German"},
		{PublishedAt: "not a date at all", Title: "Undatable", URL: "y", Language: "English"},
		{PublishedAt: "2024-11-02 12:00:00", Title: "   ", URL: "z", Language: "English"},
		{PublishedAt: "20241102T130000Z", Title: "GDELT Format Date", URL: "b", Language: "ENGLISH"},
	}

	got := New(logger.NopLogger{}).Clean(rows)

	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].URL)
	assert.Equal(t, "2024-11-01", got[0].PublishedAt)
	assert.Equal(t, "bitcoin surges past $100k!!", got[0].TitleCleaned)
	assert.Equal(t, "b", got[1].URL)
	assert.Equal(t, "2024-11-02", got[1].PublishedAt)
	assert.Equal(t, "c", got[2].URL)
}

func TestCleanNormalizesSeendate(t *testing.T) {
	rows := []Row{
		{PublishedAt: "2024-11-01", Title: "T", URL: "u", Language: "English", SeenDate: "20241101T120000Z"},
	}

	got := New(nil).Clean(rows)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-11-01", got[0].SeenDateStd)
}

func TestLoadCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "gdelt_data.csv")

	table := export.ArticleTable([]domain.Article{
		{Title: "Bitcoin Up", URL: "https://e.com/a", SeenDate: "20241109T164500Z", Domain: "e.com", Language: "English"},
	})
	_, err := export.WriteCSV(csvPath, table)
	require.NoError(t, err)

	rows, err := LoadCSV(csvPath)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bitcoin Up", rows[0].Title)
	assert.Equal(t, "2024-11-09 16:45:00", rows[0].PublishedAt)
	assert.Equal(t, "e.com", rows[0].Source)
}

func TestLoadFallsBackToJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "gdelt_data.json")

	require.NoError(t, export.WriteJSON(jsonPath, []domain.Article{
		{Title: "Crypto Dips", URL: "https://e.com/b", SeenDate: "20241110T090000Z", Language: "English"},
	}))

	rows, err := Load(filepath.Join(dir, "missing.csv"), jsonPath)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-11-10 09:00:00", rows[0].PublishedAt)
}

func TestLoadBothMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.json"))
	assert.Error(t, err)
}

func TestTableOfUsesURLKey(t *testing.T) {
	table := TableOf([]Row{{PublishedAt: "2024-11-01", TitleCleaned: "t", Title: "T", URL: "u"}})
	assert.Equal(t, CleanHeader, table.Header)
	assert.Equal(t, "u", table.Rows[0][table.KeyCol])
}
