package metrics

import (
	"fmt"

	"github.com/adikkala/vahanlens/internal/registrations/domain"
)

// ComputeMarketShare sums counts per manufacturer within the (period,
// category) slice and returns each manufacturer's share of the category
// total as a percentage. Shares are returned at full precision so they sum
// to 100.0; rounding for display is the presentation layer's concern.
//
// Records outside the period or category are ignored. When nothing matches
// (category total is zero), an empty map is returned, not an error.
func ComputeMarketShare(records []*domain.Record, period Period, category domain.Category) (map[string]float64, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: category %q", ErrInvalidInput, category)
	}
	if period.Quarter < 0 || period.Quarter > 4 {
		return nil, fmt.Errorf("%w: period %q", ErrInvalidInput, period)
	}

	unit := UnitYear
	if period.Quarter != 0 {
		unit = UnitQuarter
	}

	totals := make(map[string]int64)
	var categoryTotal int64
	for _, rec := range records {
		if rec == nil || rec.Category() != category || PeriodOf(rec.Date(), unit) != period {
			continue
		}
		totals[rec.Manufacturer()] += rec.Count()
		categoryTotal += rec.Count()
	}

	shares := make(map[string]float64, len(totals))
	if categoryTotal == 0 {
		return shares, nil
	}
	for manufacturer, total := range totals {
		shares[manufacturer] = float64(total) / float64(categoryTotal) * 100
	}
	return shares, nil
}
