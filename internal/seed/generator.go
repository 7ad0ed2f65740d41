// Package seed generates an illustrative registration dataset modeled on
// published SIAM monthly sales patterns: real-world market shares, monthly
// base volumes, and seasonal industry factors, with deterministic noise on
// top. It stands in for sources that require government authorization to
// access directly.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/adikkala/vahanlens/internal/log"
	"github.com/adikkala/vahanlens/internal/registrations/domain"
)

// manufacturerShare pairs a manufacturer with its approximate market share
// within a category. Shares are based on published industry reports.
type manufacturerShare struct {
	name  string
	share float64
}

// marketShares holds approximate market shares per category.
var marketShares = map[domain.Category][]manufacturerShare{
	domain.CategoryTwoWheeler: {
		{name: "Hero MotoCorp", share: 0.36},
		{name: "Honda", share: 0.27},
		{name: "TVS", share: 0.14},
		{name: "Bajaj", share: 0.13},
		{name: "Royal Enfield", share: 0.05},
		{name: "Yamaha", share: 0.05},
	},
	domain.CategoryThreeWheeler: {
		{name: "Bajaj", share: 0.58},
		{name: "Mahindra", share: 0.22},
		{name: "Piaggio", share: 0.12},
		{name: "TVS", share: 0.05},
		{name: "Atul Auto", share: 0.03},
	},
	domain.CategoryFourWheeler: {
		{name: "Maruti Suzuki", share: 0.43},
		{name: "Hyundai", share: 0.17},
		{name: "Tata Motors", share: 0.13},
		{name: "Mahindra", share: 0.09},
		{name: "Kia", share: 0.06},
		{name: "Others", share: 0.12},
	},
}

// baseMonthlyVolumes holds approximate total monthly registrations per
// category across all manufacturers.
var baseMonthlyVolumes = map[domain.Category]float64{
	domain.CategoryTwoWheeler:   1_500_000,
	domain.CategoryThreeWheeler: 50_000,
	domain.CategoryFourWheeler:  300_000,
}

// Config controls the generated date range and noise.
type Config struct {
	// From is the first generated month (inclusive).
	From time.Time

	// To is the last generated month (inclusive).
	To time.Time

	// RNGSeed seeds the noise source. The same seed over the same range
	// produces the same dataset.
	RNGSeed int64
}

// DefaultConfig covers January 2021 through December 2023, the window the
// industry factors below are calibrated for.
func DefaultConfig() Config {
	return Config{
		From:    time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:      time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
		RNGSeed: 42,
	}
}

// Generate produces one record per (month, category, manufacturer) across
// the configured range.
func Generate(cfg Config) ([]*domain.Record, error) {
	if cfg.From.IsZero() || cfg.To.IsZero() {
		return nil, fmt.Errorf("seed range must have both ends set")
	}
	from := time.Date(cfg.From.Year(), cfg.From.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(cfg.To.Year(), cfg.To.Month(), 1, 0, 0, 0, 0, time.UTC)
	if to.Before(from) {
		return nil, fmt.Errorf("seed range ends (%s) before it starts (%s)", to.Format("2006-01"), from.Format("2006-01"))
	}

	rng := rand.New(rand.NewSource(cfg.RNGSeed)) //nolint:gosec // G404: deterministic illustrative data, not crypto

	var records []*domain.Record
	for month := from; !month.After(to); month = month.AddDate(0, 1, 0) {
		factor := industryFactor(month)
		for _, category := range domain.AllCategories() {
			base := baseMonthlyVolumes[category]
			for _, ms := range marketShares[category] {
				expected := base * ms.share * factor
				// Noise: ~10% relative standard deviation, floored at zero.
				noisy := expected * (1 + rng.NormFloat64()*0.1)
				count := int64(noisy)
				if count < 0 {
					count = 0
				}

				rec, err := domain.NewRecord(month, category, ms.name, count)
				if err != nil {
					return nil, fmt.Errorf("generating %s/%s for %s: %w", category, ms.name, month.Format("2006-01"), err)
				}
				records = append(records, rec)
			}
		}
	}

	log.Info(log.CatSeed, "dataset generated",
		"from", from.Format("2006-01"), "to", to.Format("2006-01"), "records", len(records))
	return records, nil
}

// industryFactor combines the seasonal and macro effects observed in the
// calibration window: the COVID slump in early 2021, the semiconductor
// shortage from mid-2021, the festive-season surge around Diwali, and the
// monsoon-driven rural push.
func industryFactor(month time.Time) float64 {
	factor := 1.0
	if month.Year() == 2021 && month.Month() <= time.June {
		factor *= 0.7
	}
	if month.Year() == 2021 && month.Month() >= time.June {
		factor *= 0.85
	}
	switch month.Month() {
	case time.October, time.November:
		factor *= 1.3
	case time.June, time.July, time.August:
		factor *= 1.1
	}
	return factor
}
