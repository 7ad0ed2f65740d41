package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/adikkala/vahanlens/internal/registrations/domain"
)

func TestParse_ValidFile(t *testing.T) {
	input := strings.Join([]string{
		"date,category,manufacturer,count",
		"2024-01-01,2W,Hero MotoCorp,550000",
		"2024-01,4W,Maruti Suzuki,129000",
		"Jan-2024,3W,Bajaj,29000",
	}, "\n")

	result, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Records, 3)
	require.Empty(t, result.Skipped)

	require.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), result.Records[0].Date())
	require.Equal(t, domain.CategoryTwoWheeler, result.Records[0].Category())
	require.Equal(t, "Hero MotoCorp", result.Records[0].Manufacturer())
	require.Equal(t, int64(550000), result.Records[0].Count())

	require.Equal(t, domain.CategoryFourWheeler, result.Records[1].Category())
	require.Equal(t, domain.CategoryThreeWheeler, result.Records[2].Category())
}

func TestParse_SkipAndReport(t *testing.T) {
	input := strings.Join([]string{
		"date,category,manufacturer,count",
		"2024-01-01,2W,HeroX,100",
		"not-a-date,2W,HeroX,100",
		"2024-01-01,bus,HeroX,100",
		"2024-01-01,2W,,100",
		"2024-01-01,2W,HeroX,-5",
		"2024-01-01,2W,HeroX,lots",
		"2024-02-01,2W,HeroX,200",
	}, "\n")

	result, err := Parse(strings.NewReader(input))
	require.NoError(t, err, "malformed rows must not fail the run")
	require.Len(t, result.Records, 2, "only the two well-formed rows import")
	require.Len(t, result.Skipped, 5)

	// Line numbers are 1-based including the header.
	require.Equal(t, 3, result.Skipped[0].Line)
	require.Contains(t, result.Skipped[0].Reason, "date")
	require.Contains(t, result.Skipped[1].Reason, "category")
	require.Contains(t, result.Skipped[3].Reason, "negative")
	require.Contains(t, result.Skipped[4].Reason, "count")
}

func TestParse_BadHeaderFails(t *testing.T) {
	input := "month,type,maker,total\n2024-01-01,2W,HeroX,100\n"

	_, err := Parse(strings.NewReader(input))
	require.Error(t, err, "a wrong header means the file shape is unknown")
}

func TestParse_CategoryLabelsAccepted(t *testing.T) {
	input := "date,category,manufacturer,count\n2024-01-01,Two-Wheeler,HeroX,10\n"

	result, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	require.Equal(t, domain.CategoryTwoWheeler, result.Records[0].Category())
}

func TestParse_EmptyBody(t *testing.T) {
	result, err := Parse(strings.NewReader("date,category,manufacturer,count\n"))
	require.NoError(t, err, "a header-only file is empty input, not an error")
	require.Empty(t, result.Records)
	require.Empty(t, result.Skipped)
}
