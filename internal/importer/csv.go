// Package importer loads registration records from CSV exports, the
// format SIAM-style monthly sales reports are typically redistributed in.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/adikkala/vahanlens/internal/log"
	"github.com/adikkala/vahanlens/internal/registrations/domain"
)

// Expected header columns, in order.
var expectedHeader = []string{"date", "category", "manufacturer", "count"}

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = []string{"2006-01-02", "2006-01", "Jan-2006"}

// RowIssue describes one skipped row.
type RowIssue struct {
	Line   int
	Reason string
}

// Result reports what an import run did. Malformed rows are skipped and
// reported here rather than failing the batch; the policy is documented on
// Parse.
type Result struct {
	Records []*domain.Record
	Skipped []RowIssue
}

// Parse reads CSV rows of (date, category, manufacturer, count) into
// validated records.
//
// Row-level policy: skip-and-report. A malformed row (bad date, unknown
// category, empty manufacturer, negative or non-numeric count) is recorded
// in Result.Skipped with its line number and never aborts the run. Only a
// missing or wrong header, or an unreadable stream, fails the whole parse.
func Parse(r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("reading CSV header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return Result{}, err
	}

	var result Result
	line := 1
	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A structurally broken row (e.g. bare quote) is still just
			// one row: skip and report like any other malformed row.
			result.Skipped = append(result.Skipped, RowIssue{Line: line, Reason: err.Error()})
			continue
		}

		rec, reason := parseRow(row)
		if rec == nil {
			result.Skipped = append(result.Skipped, RowIssue{Line: line, Reason: reason})
			continue
		}
		result.Records = append(result.Records, rec)
	}

	if len(result.Skipped) > 0 {
		log.Warn(log.CatImport, "rows skipped during import", "skipped", len(result.Skipped), "imported", len(result.Records))
	}
	return result, nil
}

func checkHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("unexpected CSV header %v, want %v", header, expectedHeader)
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), expectedHeader[i]) {
			return fmt.Errorf("unexpected CSV header %v, want %v", header, expectedHeader)
		}
	}
	return nil
}

// parseRow converts one CSV row into a record, or returns a reason it
// cannot be.
func parseRow(row []string) (*domain.Record, string) {
	if len(row) != 4 {
		return nil, fmt.Sprintf("want 4 columns, got %d", len(row))
	}

	date, ok := parseDate(strings.TrimSpace(row[0]))
	if !ok {
		return nil, fmt.Sprintf("unparseable date %q", row[0])
	}

	category, ok := domain.ParseCategory(strings.TrimSpace(row[1]))
	if !ok {
		return nil, fmt.Sprintf("unknown category %q", row[1])
	}

	count, err := strconv.ParseInt(strings.TrimSpace(row[3]), 10, 64)
	if err != nil {
		return nil, fmt.Sprintf("unparseable count %q", row[3])
	}

	rec, err := domain.NewRecord(date, category, strings.TrimSpace(row[2]), count)
	if err != nil {
		return nil, err.Error()
	}
	return rec, ""
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
