package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

const (
	numFields   = 2
	colCategory = 0
	colAmount   = 1
)

// CSVExporter writes the report as comma-separated values.
type CSVExporter struct{}

// Format returns the file extension this exporter handles.
func (e *CSVExporter) Format() string { return "csv" }

// Export writes the header and one line per row.
func (e *CSVExporter) Export(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(MarshalRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRow converts a Row to a CSV record.
func MarshalRow(row Row) []string {
	rec := make([]string, numFields)
	rec[colCategory] = row.Category
	rec[colAmount] = row.Amount.StringFixed(2)
	return rec
}
