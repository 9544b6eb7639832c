// Package report exports category totals as a two-column table.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/spendtrack/spendtrack/internal/model"
)

// DefaultPath is the report file written to the working directory.
const DefaultPath = "expense_report.xlsx"

// Header is the column header shared by every format.
var Header = []string{"Category", "Amount"}

// Row is one line of the report.
type Row struct {
	Category string
	Amount   decimal.Decimal
}

// Rows converts totals into report rows, preserving order.
func Rows(totals []model.Total) []Row {
	return lo.Map(totals, func(t model.Total, _ int) Row {
		return Row{Category: string(t.Category), Amount: t.Amount}
	})
}

// Exporter writes report rows in one file format.
type Exporter interface {
	Export(w io.Writer, rows []Row) error
	Format() string
}

// Registry holds exporters keyed by format name.
type Registry struct {
	exporters map[string]Exporter
}

// NewRegistry creates an empty exporter registry.
func NewRegistry() *Registry {
	return &Registry{exporters: make(map[string]Exporter)}
}

// Register adds an exporter. Panics on duplicate format.
func (r *Registry) Register(e Exporter) {
	key := strings.ToLower(e.Format())
	if _, ok := r.exporters[key]; ok {
		panic("duplicate report format: " + key)
	}
	r.exporters[key] = e
}

// Get returns the exporter for format, or nil.
func (r *Registry) Get(format string) Exporter {
	return r.exporters[strings.ToLower(format)]
}

// ForPath picks an exporter from the file extension.
func (r *Registry) ForPath(path string) (Exporter, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("report path %q has no extension", path)
	}
	e := r.Get(ext)
	if e == nil {
		return nil, fmt.Errorf("unsupported report format %q", ext)
	}
	return e, nil
}

// DefaultRegistry returns a registry with the built-in formats.
func DefaultRegistry(opts XLSXOptions) *Registry {
	r := NewRegistry()
	r.Register(&XLSXExporter{Options: opts})
	r.Register(&CSVExporter{})
	return r
}

// Save writes rows to path, replacing any existing file. The report is
// written to a temporary file in the same directory and renamed over path,
// so a failed export leaves the previous report intact.
func Save(path string, rows []Row, registry *Registry) error {
	exp, err := registry.ForPath(path)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	tmp := f.Name()

	if err := exp.Export(f, rows); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing %s report: %w", exp.Format(), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing report file: %w", err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("setting report permissions: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing report file: %w", err)
	}
	return nil
}
