package presentation

import (
	"encoding/json"
	"io"
)

// Formatter handles report output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatGrowth formats a growth report as indented JSON
func (f *Formatter) FormatGrowth(results []GrowthDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

// FormatShares formats a market share report as indented JSON
func (f *Formatter) FormatShares(report ShareReportDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// FormatSummary formats the headline indicators as indented JSON
func (f *Formatter) FormatSummary(summary SummaryDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}
