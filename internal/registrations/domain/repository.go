package domain

import "time"

// Filter provides filtering options for listing records.
type Filter struct {
	// From restricts results to records dated at or after this month.
	// Zero means no lower bound.
	From time.Time

	// To restricts results to records dated at or before this month.
	// Zero means no upper bound.
	To time.Time

	// Category filters records by vehicle class. Empty means all classes.
	Category Category

	// Manufacturer filters records by manufacturer name. Empty means all.
	Manufacturer string

	// Limit restricts the number of records returned. 0 means no limit.
	Limit int
}

// Span describes the date range covered by the store.
type Span struct {
	Earliest time.Time
	Latest   time.Time
}

// RecordRepository defines the persistence interface for registration
// records. Implementations may use SQLite, in-memory storage, or other
// backends.
type RecordRepository interface {
	// SaveBatch persists a batch of records atomically under a single
	// batch id. Returns EmptyBatchError when the batch is empty; the
	// whole batch is rejected if any record is nil.
	SaveBatch(records []*Record) error

	// ReplaceAll atomically replaces the store contents with the given
	// batch. An empty batch clears the store.
	ReplaceAll(records []*Record) error

	// List retrieves records matching the filter, ordered by date
	// ascending then category then manufacturer. An empty result is a
	// valid outcome, not an error.
	List(filter Filter) ([]*Record, error)

	// Manufacturers returns the distinct manufacturer names for a
	// category in alphabetical order. The zero-value category returns
	// manufacturers across all categories.
	Manufacturers(category Category) ([]string, error)

	// Span returns the earliest and latest record dates in the store.
	// Returns RecordNotFoundError when the store is empty.
	Span() (Span, error)

	// Count returns the total number of rows in the store.
	Count() (int64, error)

	// Close releases any resources held by the repository.
	Close() error
}
