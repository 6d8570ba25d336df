package sources

import "time"

// Chunk is one calendar-month slice of the overall query window,
// clipped to the window boundaries at both ends.
type Chunk struct {
	Start time.Time
	End   time.Time
}

// MonthChunks splits [start, end] into whole-calendar-month chunks.
// The first and last chunk are clipped to the window, so
// 2024-11-01..2025-01-15 yields (11-01,11-30), (12-01,12-31),
// (01-01,01-15). Start and end are treated as dates; times of day are
// discarded.
func MonthChunks(start, end time.Time) []Chunk {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return nil
	}

	var chunks []Chunk
	current := start
	for !current.After(end) {
		nextMonth := time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, current.Location()).
			AddDate(0, 1, 0)
		chunkEnd := nextMonth.AddDate(0, 0, -1)
		if chunkEnd.After(end) {
			chunkEnd = end
		}
		chunks = append(chunks, Chunk{Start: current, End: chunkEnd})
		current = nextMonth
	}
	return chunks
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
