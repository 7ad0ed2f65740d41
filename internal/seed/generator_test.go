package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/adikkala/vahanlens/internal/registrations/domain"
)

func TestGenerate_Deterministic(t *testing.T) {
	cfg := DefaultConfig()

	first, err := Generate(cfg)
	require.NoError(t, err)
	second, err := Generate(cfg)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, first[i].Date(), second[i].Date())
		require.Equal(t, first[i].Manufacturer(), second[i].Manufacturer())
		require.Equal(t, first[i].Count(), second[i].Count(), "same seed must reproduce the same counts")
	}
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.To = cfg.From.AddDate(0, 2, 0)

	first, err := Generate(cfg)
	require.NoError(t, err)

	cfg.RNGSeed = 7
	second, err := Generate(cfg)
	require.NoError(t, err)

	differs := false
	for i := range first {
		if first[i].Count() != second[i].Count() {
			differs = true
			break
		}
	}
	require.True(t, differs, "different seeds should produce different noise")
}

func TestGenerate_CoversEveryMonthCategoryManufacturer(t *testing.T) {
	cfg := Config{
		From:    time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:      time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC),
		RNGSeed: 1,
	}

	records, err := Generate(cfg)
	require.NoError(t, err)

	// 3 months x (6 + 5 + 6) manufacturers across the categories.
	require.Len(t, records, 3*17)

	months := make(map[time.Time]int)
	for _, rec := range records {
		require.True(t, rec.Category().IsValid())
		require.NotEmpty(t, rec.Manufacturer())
		require.GreaterOrEqual(t, rec.Count(), int64(0))
		months[rec.Date()]++
	}
	require.Len(t, months, 3)
}

func TestGenerate_FestiveSeasonOutpacesBaseline(t *testing.T) {
	cfg := Config{
		From:    time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:      time.Date(2022, time.December, 1, 0, 0, 0, 0, time.UTC),
		RNGSeed: 42,
	}

	records, err := Generate(cfg)
	require.NoError(t, err)

	monthly := make(map[time.Month]int64)
	for _, rec := range records {
		if rec.Category() == domain.CategoryTwoWheeler {
			monthly[rec.Date().Month()] += rec.Count()
		}
	}

	// The Diwali window carries a 30% uplift, which the 10% noise cannot
	// plausibly erase against a flat-factor month.
	require.Greater(t, monthly[time.October], monthly[time.February],
		"festive season should clearly exceed a baseline month")
}

func TestGenerate_RangeValidation(t *testing.T) {
	_, err := Generate(Config{})
	require.Error(t, err)

	_, err = Generate(Config{
		From: time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2022, time.May, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err, "inverted range should be rejected")
}
