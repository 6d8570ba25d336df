package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinpulse/newsharvest/internal/domain"
)

var testKeywords = []string{
	"bitcoin", "btc", "ethereum", "eth",
	"cryptocurrency", "crypto", "blockchain", "digital currency",
}

func TestRelevanceFilterKeepsKeywordMatches(t *testing.T) {
	f, err := NewRelevanceFilter(testKeywords, DefaultExcludePatterns)
	require.NoError(t, err)

	assert.True(t, f.Matches(domain.Article{Title: "Bitcoin surges past $100K"}))
	assert.True(t, f.Matches(domain.Article{Title: "Markets wrap", Snippet: "Ethereum rallies as well"}))
	assert.True(t, f.Matches(domain.Article{Title: "Markets wrap", URL: "https://example.com/crypto-roundup"}))
	assert.True(t, f.Matches(domain.Article{Title: "The rise of Digital  Currency adoption"}))
}

func TestRelevanceFilterDropsNonMatches(t *testing.T) {
	f, err := NewRelevanceFilter(testKeywords, DefaultExcludePatterns)
	require.NoError(t, err)

	assert.False(t, f.Matches(domain.Article{Title: "Local election results announced"}))
	// Keyword must match on a word boundary.
	assert.False(t, f.Matches(domain.Article{Title: "Methane levels rising"}))
}

func TestRelevanceFilterExclusions(t *testing.T) {
	f, err := NewRelevanceFilter(testKeywords, DefaultExcludePatterns)
	require.NoError(t, err)

	assert.False(t, f.Matches(domain.Article{Title: "Energy bitcoin consumption debated"}))
	assert.False(t, f.Matches(domain.Article{Title: "Bitcoin mining strains Texas grid"}))
	// Mining mention alone is not enough to exclude.
	assert.True(t, f.Matches(domain.Article{Title: "Bitcoin hits new high as mining stocks lag"}))
}

func TestRelevanceFilterApplyPreservesOrder(t *testing.T) {
	f, err := NewRelevanceFilter(testKeywords, DefaultExcludePatterns)
	require.NoError(t, err)

	in := []domain.Article{
		{Title: "Bitcoin up", URL: "a"},
		{Title: "Weather today", URL: "b"},
		{Title: "ETH down", URL: "c"},
	}
	out := f.Apply(in)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].URL)
	assert.Equal(t, "c", out[1].URL)
}

func TestNewRelevanceFilterEmptyKeywords(t *testing.T) {
	_, err := NewRelevanceFilter(nil, nil)
	assert.Error(t, err)

	_, err = NewRelevanceFilter([]string{"  "}, nil)
	assert.Error(t, err)
}

func TestNewRelevanceFilterBadExclusion(t *testing.T) {
	_, err := NewRelevanceFilter(testKeywords, []string{`(`})
	assert.Error(t, err)
}
