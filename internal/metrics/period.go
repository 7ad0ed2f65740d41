// Package metrics computes period-over-period growth and market-share
// aggregates from registration records. All functions are pure: they take
// an immutable snapshot of records and return freshly constructed results,
// with no I/O and no shared state.
package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidInput indicates an unrecognized period unit, grouping, or
// category was passed to a computation.
var ErrInvalidInput = errors.New("invalid input")

// PeriodUnit selects the bucket granularity for growth computations.
type PeriodUnit string

const (
	// UnitYear buckets records by calendar year (YoY growth).
	UnitYear PeriodUnit = "year"

	// UnitQuarter buckets records by calendar quarter (QoQ growth).
	UnitQuarter PeriodUnit = "quarter"
)

// IsValid returns true if the unit is recognized.
func (u PeriodUnit) IsValid() bool {
	return u == UnitYear || u == UnitQuarter
}

func (u PeriodUnit) String() string {
	return string(u)
}

// GroupBy selects the dimension growth results are broken down by.
type GroupBy string

const (
	// GroupNone aggregates all records into a single series.
	GroupNone GroupBy = "none"

	// GroupCategory breaks results down by vehicle class.
	GroupCategory GroupBy = "category"

	// GroupManufacturer breaks results down by manufacturer.
	GroupManufacturer GroupBy = "manufacturer"
)

// IsValid returns true if the grouping is recognized.
func (g GroupBy) IsValid() bool {
	return g == GroupNone || g == GroupCategory || g == GroupManufacturer
}

func (g GroupBy) String() string {
	return string(g)
}

// Period identifies a calendar bucket. Quarter is 1-4 for quarterly
// buckets and 0 for whole-year buckets.
type Period struct {
	Year    int
	Quarter int
}

// PeriodOf normalizes a date into the bucket it belongs to under the
// given unit.
func PeriodOf(t time.Time, unit PeriodUnit) Period {
	if unit == UnitQuarter {
		return Period{Year: t.Year(), Quarter: (int(t.Month())-1)/3 + 1}
	}
	return Period{Year: t.Year()}
}

// Prev returns the predecessor period. Quarters wrap across year
// boundaries: the predecessor of Q1 of year N is Q4 of year N-1.
func (p Period) Prev() Period {
	if p.Quarter == 0 {
		return Period{Year: p.Year - 1}
	}
	if p.Quarter == 1 {
		return Period{Year: p.Year - 1, Quarter: 4}
	}
	return Period{Year: p.Year, Quarter: p.Quarter - 1}
}

// Before reports whether p is chronologically earlier than other.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Quarter < other.Quarter
}

// IsZero reports whether the period is the zero value.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Quarter == 0
}

// String renders the period as "2024" or "2024-Q1".
func (p Period) String() string {
	if p.Quarter == 0 {
		return strconv.Itoa(p.Year)
	}
	return fmt.Sprintf("%d-Q%d", p.Year, p.Quarter)
}

// ParsePeriod parses "2024" or "2024-Q1" back into a Period.
func ParsePeriod(s string) (Period, error) {
	year, quarter, found := strings.Cut(s, "-Q")
	y, err := strconv.Atoi(year)
	if err != nil {
		return Period{}, fmt.Errorf("%w: period %q", ErrInvalidInput, s)
	}
	if !found {
		return Period{Year: y}, nil
	}
	q, err := strconv.Atoi(quarter)
	if err != nil || q < 1 || q > 4 {
		return Period{}, fmt.Errorf("%w: period %q", ErrInvalidInput, s)
	}
	return Period{Year: y, Quarter: q}, nil
}
