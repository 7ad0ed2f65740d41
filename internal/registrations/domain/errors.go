package domain

import "fmt"

// InvalidRecordError indicates a registration row that violates the record
// schema (zero date, unknown category, empty manufacturer, negative count).
type InvalidRecordError struct {
	Field  string
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid record: %s %s", e.Field, e.Reason)
}

// EmptyBatchError indicates a save was attempted with no records.
type EmptyBatchError struct{}

func (e *EmptyBatchError) Error() string {
	return "empty batch: no records to save"
}

// RecordNotFoundError indicates no records matched a lookup.
type RecordNotFoundError struct{}

func (e *RecordNotFoundError) Error() string {
	return "no matching records found"
}
