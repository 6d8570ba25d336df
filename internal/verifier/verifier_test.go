package verifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinpulse/newsharvest/internal/cleaner"
)

func cleanRow(date, title, lang string) cleaner.Row {
	return cleaner.Row{PublishedAt: date, TitleCleaned: title, Language: lang}
}

func TestVerifyAllPass(t *testing.T) {
	report := Verify([]cleaner.Row{
		cleanRow("2024-11-01", "bitcoin surges past $100k!!", "English"),
		cleanRow("2024-11-02", "eth steady", "english"),
	})

	assert.True(t, report.Passed())
	assert.Equal(t, 2, report.Rows)
	require.Len(t, report.Checks, 3)
	for _, c := range report.Checks {
		assert.True(t, c.OK, c.Name)
	}
}

func TestVerifyBadDateFormat(t *testing.T) {
	report := Verify([]cleaner.Row{
		cleanRow("2024-11-01 08:00:00", "ok title", "english"),
	})

	assert.False(t, report.Passed())
	assert.False(t, report.Checks[0].OK)
	assert.Contains(t, report.Checks[0].Detail, "2024-11-01 08:00:00")
}

func TestVerifyWrongLanguage(t *testing.T) {
	report := Verify([]cleaner.Row{
		cleanRow("2024-11-01", "ok title", "german"),
	})

	assert.False(t, report.Passed())
	assert.False(t, report.Checks[1].OK)
}

func TestVerifyDirtyTitles(t *testing.T) {
	report := Verify([]cleaner.Row{
		cleanRow("2024-11-01", "Has Uppercase", "english"),
		cleanRow("2024-11-02", "double  space", "english"),
		cleanRow("2024-11-03", " leading space", "english"),
	})

	assert.False(t, report.Passed())
	assert.False(t, report.Checks[2].OK)
	assert.Contains(t, report.Checks[2].Detail, "3 offending")
}

func TestVerifyEmptyInputPasses(t *testing.T) {
	report := Verify(nil)
	assert.True(t, report.Passed())
	assert.Equal(t, 0, report.Rows)
}
