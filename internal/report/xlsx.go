package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the report table.
const SheetName = "Sheet1"

// XLSXOptions tunes the workbook output.
type XLSXOptions struct {
	// EmbedChart adds a pie chart of the amounts beside the table.
	EmbedChart bool
	ChartTitle string
}

// XLSXExporter writes the report as an Excel workbook.
type XLSXExporter struct {
	Options XLSXOptions
}

// Format returns the file extension this exporter handles.
func (e *XLSXExporter) Format() string { return "xlsx" }

// Export writes a workbook with a header row and one row per category.
func (e *XLSXExporter) Export(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	header := []interface{}{Header[0], Header[1]}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return fmt.Errorf("creating amount style: %w", err)
	}

	for i, row := range rows {
		line := i + 2
		cat, _ := excelize.CoordinatesToCellName(1, line)
		amt, _ := excelize.CoordinatesToCellName(2, line)
		if err := f.SetCellValue(SheetName, cat, row.Category); err != nil {
			return fmt.Errorf("writing row %d: %w", line, err)
		}
		if err := f.SetCellValue(SheetName, amt, row.Amount.InexactFloat64()); err != nil {
			return fmt.Errorf("writing row %d: %w", line, err)
		}
		if err := f.SetCellStyle(SheetName, amt, amt, amountStyle); err != nil {
			return fmt.Errorf("styling row %d: %w", line, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 18); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if e.Options.EmbedChart && len(rows) > 0 {
		if err := addPieChart(f, len(rows), e.Options.ChartTitle); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func addPieChart(f *excelize.File, n int, title string) error {
	last := n + 1
	chart := &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", SheetName),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", SheetName, last),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", SheetName, last),
		}},
		Legend: excelize.ChartLegend{Position: "right"},
		PlotArea: excelize.ChartPlotArea{
			ShowPercent: true,
		},
	}
	if title != "" {
		chart.Title = []excelize.RichTextRun{{Text: title}}
	}
	if err := f.AddChart(SheetName, "D2", chart); err != nil {
		return fmt.Errorf("adding chart: %w", err)
	}
	return nil
}
