package sqlite

import (
	"fmt"
	"time"

	"github.com/adikkala/vahanlens/internal/registrations/domain"
)

// dateLayout is how record months are stored: the first day of the month
// in ISO form, which sorts chronologically as text.
const dateLayout = "2006-01-02"

// RecordModel represents a database row in the registrations table.
type RecordModel struct {
	ID           int64
	BatchID      string
	Date         string
	Category     string
	Manufacturer string
	Count        int64
	CreatedAt    int64
}

// toRecordModel converts a domain Record to a database row. The batch id
// and created_at are supplied by the repository at insert time.
func toRecordModel(rec *domain.Record, batchID string, createdAt time.Time) RecordModel {
	return RecordModel{
		BatchID:      batchID,
		Date:         rec.Date().Format(dateLayout),
		Category:     rec.Category().String(),
		Manufacturer: rec.Manufacturer(),
		Count:        rec.Count(),
		CreatedAt:    createdAt.Unix(),
	}
}

// toDomainRecord converts a database row back into a validated domain
// Record. The schema's CHECK constraints mean failures here indicate a
// corrupted row, which is surfaced rather than silently skipped.
func (m RecordModel) toDomainRecord() (*domain.Record, error) {
	date, err := time.Parse(dateLayout, m.Date)
	if err != nil {
		return nil, fmt.Errorf("row %d has malformed date %q: %w", m.ID, m.Date, err)
	}
	rec, err := domain.NewRecord(date, domain.Category(m.Category), m.Manufacturer, m.Count)
	if err != nil {
		return nil, fmt.Errorf("row %d violates record schema: %w", m.ID, err)
	}
	return rec, nil
}
