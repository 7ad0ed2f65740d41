// Package domain provides the pure domain layer for vehicle registration
// records with no infrastructure dependencies.
//
// The domain layer has no knowledge of infrastructure concerns (databases,
// file I/O, etc.). It defines the Record entity with encapsulated state,
// the RecordRepository interface for persistence abstraction, and
// domain-specific error types.
package domain

import "time"

// Category represents a vehicle class as reported by registration data.
type Category string

const (
	// CategoryTwoWheeler covers motorcycles, scooters and mopeds.
	CategoryTwoWheeler Category = "2W"

	// CategoryThreeWheeler covers autorickshaws and cargo three-wheelers.
	CategoryThreeWheeler Category = "3W"

	// CategoryFourWheeler covers passenger cars and utility vehicles.
	CategoryFourWheeler Category = "4W"
)

// String returns the short code for the category.
func (c Category) String() string {
	return string(c)
}

// Label returns a human-readable name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryTwoWheeler:
		return "Two-Wheeler"
	case CategoryThreeWheeler:
		return "Three-Wheeler"
	case CategoryFourWheeler:
		return "Four-Wheeler"
	default:
		return string(c)
	}
}

// IsValid returns true if the category is a recognized vehicle class.
func (c Category) IsValid() bool {
	switch c {
	case CategoryTwoWheeler, CategoryThreeWheeler, CategoryFourWheeler:
		return true
	default:
		return false
	}
}

// AllCategories returns the recognized categories in display order.
func AllCategories() []Category {
	return []Category{CategoryTwoWheeler, CategoryThreeWheeler, CategoryFourWheeler}
}

// ParseCategory resolves a category from its short code ("2W") or label
// ("Two-Wheeler", case-insensitive superset handled by the caller).
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	if c.IsValid() {
		return c, true
	}
	for _, known := range AllCategories() {
		if known.Label() == s {
			return known, true
		}
	}
	return "", false
}

// Record represents one registration observation: how many vehicles of a
// category a manufacturer registered in a given month. Records are
// immutable once constructed; all fields are unexported and reachable only
// through accessors.
type Record struct {
	date         time.Time
	category     Category
	manufacturer string
	count        int64
}

// NewRecord creates a validated Record. The date is truncated to the first
// day of its month, which is the granularity registration sources publish
// at. Returns InvalidRecordError when the date is zero, the category is
// unrecognized, the manufacturer is empty, or the count is negative.
func NewRecord(date time.Time, category Category, manufacturer string, count int64) (*Record, error) {
	switch {
	case date.IsZero():
		return nil, &InvalidRecordError{Field: "date", Reason: "must not be zero"}
	case !category.IsValid():
		return nil, &InvalidRecordError{Field: "category", Reason: "unrecognized category " + string(category)}
	case manufacturer == "":
		return nil, &InvalidRecordError{Field: "manufacturer", Reason: "must not be empty"}
	case count < 0:
		return nil, &InvalidRecordError{Field: "count", Reason: "must not be negative"}
	}

	return &Record{
		date:         time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC),
		category:     category,
		manufacturer: manufacturer,
		count:        count,
	}, nil
}

// Date returns the month the registrations were recorded in, normalized to
// the first day of the month in UTC.
func (r *Record) Date() time.Time { return r.date }

// Category returns the vehicle class.
func (r *Record) Category() Category { return r.category }

// Manufacturer returns the manufacturer name.
func (r *Record) Manufacturer() string { return r.manufacturer }

// Count returns the number of registrations.
func (r *Record) Count() int64 { return r.count }
