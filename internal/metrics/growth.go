package metrics

import (
	"fmt"
	"math"
	"sort"

	"github.com/adikkala/vahanlens/internal/registrations/domain"
)

// TotalKey is the group key used when results are not broken down by any
// dimension.
const TotalKey = "all"

// GrowthResult holds one period-over-period comparison for a group. Pct is
// meaningful only when PctDefined is true; a bucket growing from a zero
// base has no finite growth rate and is reported as undefined rather than
// as infinity or NaN.
type GrowthResult struct {
	Period     Period
	Key        string
	Current    int64
	Prior      int64
	Change     int64
	Pct        float64
	PctDefined bool
}

// bucketKey identifies an aggregation bucket.
type bucketKey struct {
	period Period
	group  string
}

// ComputeGrowth partitions records into (period, group) buckets, sums
// counts per bucket, and emits one GrowthResult for every bucket whose
// predecessor period is also present in the data. Results are ordered by
// period ascending, then by group key in the order the key was first
// encountered in the input.
//
// Empty input yields an empty result, not an error. Growth from a zero
// prior total is undefined (PctDefined=false) unless the current total is
// also zero, in which case the growth is 0.0.
func ComputeGrowth(records []*domain.Record, groupBy GroupBy, unit PeriodUnit) ([]GrowthResult, error) {
	if !groupBy.IsValid() {
		return nil, fmt.Errorf("%w: group_by %q", ErrInvalidInput, groupBy)
	}
	if !unit.IsValid() {
		return nil, fmt.Errorf("%w: period_unit %q", ErrInvalidInput, unit)
	}

	totals := make(map[bucketKey]int64)
	keyOrder := make(map[string]int)

	for _, rec := range records {
		if rec == nil {
			continue
		}
		group := groupKeyOf(rec, groupBy)
		if _, seen := keyOrder[group]; !seen {
			keyOrder[group] = len(keyOrder)
		}
		totals[bucketKey{period: PeriodOf(rec.Date(), unit), group: group}] += rec.Count()
	}

	results := make([]GrowthResult, 0, len(totals))
	for bucket, current := range totals {
		prior, ok := totals[bucketKey{period: bucket.period.Prev(), group: bucket.group}]
		if !ok {
			continue
		}
		results = append(results, newGrowthResult(bucket, current, prior))
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Period != results[j].Period {
			return results[i].Period.Before(results[j].Period)
		}
		return keyOrder[results[i].Key] < keyOrder[results[j].Key]
	})

	return results, nil
}

func newGrowthResult(bucket bucketKey, current, prior int64) GrowthResult {
	result := GrowthResult{
		Period:  bucket.period,
		Key:     bucket.group,
		Current: current,
		Prior:   prior,
		Change:  current - prior,
	}
	switch {
	case prior != 0:
		result.Pct = round1(float64(current-prior) / float64(prior) * 100)
		result.PctDefined = true
	case current == 0:
		// Flat at zero: no growth rather than undefined.
		result.Pct = 0.0
		result.PctDefined = true
	}
	return result
}

func groupKeyOf(rec *domain.Record, groupBy GroupBy) string {
	switch groupBy {
	case GroupCategory:
		return rec.Category().String()
	case GroupManufacturer:
		return rec.Manufacturer()
	default:
		return TotalKey
	}
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
