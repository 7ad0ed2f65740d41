package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adikkala/vahanlens/internal/log"
	"github.com/adikkala/vahanlens/internal/registrations/domain"
)

// recordColumns is the list of columns selected for record queries.
const recordColumns = `id, batch_id, date, category, manufacturer, count, created_at`

// recordRepository implements domain.RecordRepository using SQLite.
type recordRepository struct {
	db *sql.DB
}

// newRecordRepository creates a new recordRepository instance.
func newRecordRepository(db *sql.DB) *recordRepository {
	return &recordRepository{db: db}
}

// Ensure recordRepository implements domain.RecordRepository.
var _ domain.RecordRepository = (*recordRepository)(nil)

// SaveBatch inserts all records in a single transaction tagged with a
// fresh batch id. The domain constructor makes invalid records
// unrepresentable, so the only row-level rejection left is a nil record,
// which fails the whole batch.
func (r *recordRepository) SaveBatch(records []*domain.Record) error {
	if len(records) == 0 {
		return &domain.EmptyBatchError{}
	}
	for _, rec := range records {
		if rec == nil {
			return &domain.InvalidRecordError{Field: "record", Reason: "must not be nil"}
		}
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning batch transaction: %w", err)
	}
	batchID := uuid.NewString()
	if err := insertRecords(tx, records, batchID); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}

	log.Info(log.CatDB, "batch saved", "batch_id", batchID, "records", len(records))
	return nil
}

// ReplaceAll clears the store and inserts the batch atomically. An empty
// batch just clears the store.
func (r *recordRepository) ReplaceAll(records []*domain.Record) error {
	for _, rec := range records {
		if rec == nil {
			return &domain.InvalidRecordError{Field: "record", Reason: "must not be nil"}
		}
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning replace transaction: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM registrations`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clearing registrations: %w", err)
	}
	batchID := uuid.NewString()
	if len(records) > 0 {
		if err := insertRecords(tx, records, batchID); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing replace: %w", err)
	}

	log.Info(log.CatDB, "store replaced", "batch_id", batchID, "records", len(records))
	return nil
}

func insertRecords(tx *sql.Tx, records []*domain.Record, batchID string) error {
	stmt, err := tx.Prepare(
		`INSERT INTO registrations (batch_id, date, category, manufacturer, count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, rec := range records {
		model := toRecordModel(rec, batchID, now)
		if _, err := stmt.Exec(model.BatchID, model.Date, model.Category, model.Manufacturer, model.Count, model.CreatedAt); err != nil {
			return fmt.Errorf("inserting record: %w", err)
		}
	}
	return nil
}

// List retrieves records matching the filter, ordered by date then
// category then manufacturer.
func (r *recordRepository) List(filter domain.Filter) ([]*domain.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM registrations`
	var (
		clauses []string
		args    []any
	)
	if !filter.From.IsZero() {
		clauses = append(clauses, `date >= ?`)
		args = append(args, filter.From.Format(dateLayout))
	}
	if !filter.To.IsZero() {
		clauses = append(clauses, `date <= ?`)
		args = append(args, filter.To.Format(dateLayout))
	}
	if filter.Category != "" {
		clauses = append(clauses, `category = ?`)
		args = append(args, filter.Category.String())
	}
	if filter.Manufacturer != "" {
		clauses = append(clauses, `manufacturer = ?`)
		args = append(args, filter.Manufacturer)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += ` WHERE ` + clause
		} else {
			query += ` AND ` + clause
		}
	}
	query += ` ORDER BY date ASC, category ASC, manufacturer ASC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []*domain.Record
	for rows.Next() {
		var model RecordModel
		if err := rows.Scan(&model.ID, &model.BatchID, &model.Date, &model.Category, &model.Manufacturer, &model.Count, &model.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		rec, err := model.toDomainRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}

// Manufacturers returns distinct manufacturer names, optionally scoped to
// a category, in alphabetical order.
func (r *recordRepository) Manufacturers(category domain.Category) ([]string, error) {
	query := `SELECT DISTINCT manufacturer FROM registrations`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category.String())
	}
	query += ` ORDER BY manufacturer ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying manufacturers: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning manufacturer: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating manufacturers: %w", err)
	}
	return names, nil
}

// Span returns the earliest and latest record dates in the store.
func (r *recordRepository) Span() (domain.Span, error) {
	var earliest, latest sql.NullString
	err := r.db.QueryRow(`SELECT MIN(date), MAX(date) FROM registrations`).Scan(&earliest, &latest)
	if err != nil {
		return domain.Span{}, fmt.Errorf("querying span: %w", err)
	}
	if !earliest.Valid || !latest.Valid {
		return domain.Span{}, &domain.RecordNotFoundError{}
	}

	from, err := time.Parse(dateLayout, earliest.String)
	if err != nil {
		return domain.Span{}, fmt.Errorf("parsing earliest date: %w", err)
	}
	to, err := time.Parse(dateLayout, latest.String)
	if err != nil {
		return domain.Span{}, fmt.Errorf("parsing latest date: %w", err)
	}
	return domain.Span{Earliest: from, Latest: to}, nil
}

// Count returns the total number of rows.
func (r *recordRepository) Count() (int64, error) {
	var count int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM registrations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return count, nil
}

// Close is a no-op: the connection is owned by DB.
func (r *recordRepository) Close() error {
	return nil
}
