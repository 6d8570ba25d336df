package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKnownFormats(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339 zulu", "2025-11-21T04:37:40Z", time.Date(2025, 11, 21, 4, 37, 40, 0, time.UTC)},
		{"rfc3339 offset", "2025-11-21T04:37:40+00:00", time.Date(2025, 11, 21, 4, 37, 40, 0, time.UTC)},
		{"iso no zone", "2024-11-01T08:00:00", time.Date(2024, 11, 1, 8, 0, 0, 0, time.UTC)},
		{"space separated", "2024-11-01 08:00:00", time.Date(2024, 11, 1, 8, 0, 0, 0, time.UTC)},
		{"day only", "2024-11-01", time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)},
		{"gdelt seendate", "20241118T080000Z", time.Date(2024, 11, 18, 8, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.raw)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %v want %v", got, tc.want)
		})
	}
}

func TestParseRegexFallback(t *testing.T) {
	got, err := Parse("published on 2024-12-05 around noon")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-05", Day(got))
}

func TestParseUnparsable(t *testing.T) {
	for _, raw := range []string{"", "   ", "yesterday", "11/21/2025"} {
		_, err := Parse(raw)
		assert.ErrorIs(t, err, ErrUnparsable, "input %q", raw)
	}
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("20241109T164500Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-11-09", day)

	_, err = ParseDay("not a date")
	assert.ErrorIs(t, err, ErrUnparsable)
}
