package sources

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthChunksClipsBothEnds(t *testing.T) {
	chunks := MonthChunks(day(2024, time.November, 1), day(2025, time.January, 15))

	require.Len(t, chunks, 3)
	assert.Equal(t, Chunk{day(2024, time.November, 1), day(2024, time.November, 30)}, chunks[0])
	assert.Equal(t, Chunk{day(2024, time.December, 1), day(2024, time.December, 31)}, chunks[1])
	assert.Equal(t, Chunk{day(2025, time.January, 1), day(2025, time.January, 15)}, chunks[2])
}

func TestMonthChunksMidMonthStart(t *testing.T) {
	chunks := MonthChunks(day(2024, time.November, 20), day(2024, time.December, 10))

	require.Len(t, chunks, 2)
	assert.Equal(t, Chunk{day(2024, time.November, 20), day(2024, time.November, 30)}, chunks[0])
	assert.Equal(t, Chunk{day(2024, time.December, 1), day(2024, time.December, 10)}, chunks[1])
}

func TestMonthChunksSingleDay(t *testing.T) {
	chunks := MonthChunks(day(2025, time.February, 3), day(2025, time.February, 3))

	require.Len(t, chunks, 1)
	assert.Equal(t, Chunk{day(2025, time.February, 3), day(2025, time.February, 3)}, chunks[0])
}

func TestMonthChunksYearBoundary(t *testing.T) {
	chunks := MonthChunks(day(2024, time.December, 15), day(2025, time.January, 5))

	require.Len(t, chunks, 2)
	assert.Equal(t, Chunk{day(2024, time.December, 15), day(2024, time.December, 31)}, chunks[0])
	assert.Equal(t, Chunk{day(2025, time.January, 1), day(2025, time.January, 5)}, chunks[1])
}

func TestMonthChunksInvertedWindow(t *testing.T) {
	assert.Nil(t, MonthChunks(day(2025, time.March, 1), day(2025, time.February, 1)))
}
