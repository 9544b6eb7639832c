package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spendtrack/spendtrack/internal/categories"
	"github.com/spendtrack/spendtrack/internal/ledger"
	"github.com/spendtrack/spendtrack/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func foodAndUtilities(t *testing.T) []Row {
	t.Helper()
	store := ledger.NewStore(categories.NewService(categories.DefaultCategories()), ledger.Options{})
	_, _, err := store.Record("Food", "100")
	require.NoError(t, err)
	_, _, err = store.Record("Utilities", "25")
	require.NoError(t, err)
	return Rows(store.Totals())
}

func readXLSX(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return rows
}

func TestRows(t *testing.T) {
	rows := Rows([]model.Total{
		{Category: model.CategoryFood, Amount: dec("1.5")},
		{Category: model.CategoryOthers, Amount: decimal.Zero},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "Food", rows[0].Category)
	assert.True(t, rows[1].Amount.IsZero())
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry(XLSXOptions{})

	assert.NotNil(t, r.Get("xlsx"))
	assert.NotNil(t, r.Get("CSV"))
	assert.Nil(t, r.Get("pdf"))

	e, err := r.ForPath("out/expense_report.XLSX")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", e.Format())

	_, err = r.ForPath("report")
	assert.Error(t, err)
	_, err = r.ForPath("report.ods")
	assert.ErrorContains(t, err, "unsupported report format")
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVExporter{})
	assert.Panics(t, func() { r.Register(&CSVExporter{}) })
}

func TestSave_XLSXCompleteness(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, Save(path, foodAndUtilities(t), DefaultRegistry(XLSXOptions{})))

	rows := readXLSX(t, path)
	require.Len(t, rows, 8, "header + one row per category")
	assert.Equal(t, Header, rows[0])

	want := map[string]string{
		"Food":           "100",
		"Transportation": "0",
		"Housing":        "0",
		"Utilities":      "25",
		"Entertainment":  "0",
		"Healthcare":     "0",
		"Others":         "0",
	}
	for _, row := range rows[1:] {
		require.Len(t, row, 2)
		assert.Equal(t, want[row[0]], row[1], "amount for %s", row[0])
	}
	assert.Equal(t, "Food", rows[1][0])
	assert.Equal(t, "Others", rows[7][0])
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	reg := DefaultRegistry(XLSXOptions{})
	rows := foodAndUtilities(t)

	require.NoError(t, Save(path, rows, reg))
	first := readXLSX(t, path)

	require.NoError(t, Save(path, rows, reg))
	second := readXLSX(t, path)

	assert.Equal(t, first, second)
	assert.Len(t, second, 8, "second save replaces rather than appends")
}

func TestSave_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expense_report.csv")
	require.NoError(t, Save(path, foodAndUtilities(t), DefaultRegistry(XLSXOptions{})))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Category,Amount\n"+
		"Food,100.00\n"+
		"Transportation,0.00\n"+
		"Housing,0.00\n"+
		"Utilities,25.00\n"+
		"Entertainment,0.00\n"+
		"Healthcare,0.00\n"+
		"Others,0.00\n", string(data))
}

func TestSave_UnwritableDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", DefaultPath)
	err := Save(path, foodAndUtilities(t), DefaultRegistry(XLSXOptions{}))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestXLSX_EmbedChart(t *testing.T) {
	e := &XLSXExporter{Options: XLSXOptions{EmbedChart: true, ChartTitle: "Monthly Expenses"}}

	var buf bytes.Buffer
	require.NoError(t, e.Export(&buf, foodAndUtilities(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Len(t, rows, 8)
}

// readCSV parses a report written by CSVExporter.
func readCSV(t *testing.T, r io.Reader) []Row {
	t.Helper()
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, Header, records[0])

	var rows []Row
	for _, rec := range records[1:] {
		row, err := unmarshalRow(rec)
		require.NoError(t, err)
		rows = append(rows, row)
	}
	return rows
}

func unmarshalRow(record []string) (Row, error) {
	if len(record) != numFields {
		return Row{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return Row{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}
	return Row{Category: record[colCategory], Amount: amount}, nil
}

type failingExporter struct{}

func (failingExporter) Format() string { return "xlsx" }

func (failingExporter) Export(w io.Writer, _ []Row) error {
	if _, err := io.WriteString(w, "partial"); err != nil {
		return err
	}
	return errors.New("disk full")
}

func TestSave_FailedExportKeepsPreviousReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultPath)
	require.NoError(t, Save(path, foodAndUtilities(t), DefaultRegistry(XLSXOptions{})))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	broken := NewRegistry()
	broken.Register(failingExporter{})
	err = Save(path, foodAndUtilities(t), broken)
	require.ErrorContains(t, err, "disk full")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, readXLSX(t, path), 8)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file is cleaned up")
}

func TestCSVRoundTrip(t *testing.T) {
	rows := []Row{
		{Category: "Food", Amount: dec("12.30")},
		{Category: "Housing", Amount: dec("0")},
	}

	var buf bytes.Buffer
	require.NoError(t, (&CSVExporter{}).Export(&buf, rows))

	got := readCSV(t, &buf)
	require.Len(t, got, 2)
	assert.Equal(t, "Food", got[0].Category)
	assert.True(t, got[0].Amount.Equal(dec("12.3")))
	assert.True(t, got[1].Amount.IsZero())
}

