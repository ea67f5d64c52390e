package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/coregx/neurotab/internal/article"
)

// ExcelExporter exports a Table's activations to Excel format (XLSX).
//
// Features:
//   - Full Excel XLSX format support
//   - Header row styling
//   - Auto-fit column widths
//
// Limitations:
//   - Binary format (larger than CSV/JSON)
//   - Requires excelize library
//
// Example usage:
//
//	exporter := export.NewExcelExporter()
//	err := exporter.Export(tbl, file)
type ExcelExporter struct {
	options   *ExportOptions
	sheetName string
}

// excelStyles holds pre-created style IDs for the exporter.
type excelStyles struct {
	header int
}

// NewExcelExporter creates a new Excel exporter with default options.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{
		options:   DefaultExportOptions(),
		sheetName: "Activations",
	}
}

// NewExcelExporterWithOptions creates a new Excel exporter with custom options.
func NewExcelExporterWithOptions(options *ExportOptions) *ExcelExporter {
	if options == nil {
		options = DefaultExportOptions()
	}
	return &ExcelExporter{
		options:   options,
		sheetName: "Activations",
	}
}

// WithSheetName returns a new ExcelExporter with a custom sheet name.
func (e *ExcelExporter) WithSheetName(name string) *ExcelExporter {
	return &ExcelExporter{options: e.options, sheetName: name}
}

// Export writes the table to the writer in Excel format, one worksheet
// with a header row followed by one row per activation.
func (e *ExcelExporter) Export(tbl *article.Table, w io.Writer) error {
	if tbl == nil {
		return fmt.Errorf("table is nil")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := e.setupSheet(f); err != nil {
		return err
	}

	styles, err := e.createStyles(f)
	if err != nil {
		return err
	}

	cols := header(tbl, e.options)
	rawLabels := rawColumnLabels(tbl)

	if err := e.writeRow(f, 0, cols, styles.header); err != nil {
		return err
	}
	for i, a := range tbl.Activations {
		if err := e.writeRow(f, i+1, row(a, rawLabels, e.options), 0); err != nil {
			return err
		}
	}

	e.autoFitColumns(f, cols, tbl, rawLabels)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}

	return nil
}

// setupSheet creates the sheet and removes the default Sheet1.
func (e *ExcelExporter) setupSheet(f *excelize.File) error {
	index, err := f.NewSheet(e.sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if e.sheetName != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}
	return nil
}

// createStyles creates all needed Excel styles.
func (e *ExcelExporter) createStyles(f *excelize.File) (*excelStyles, error) {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0E0E0"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	return &excelStyles{header: headerStyle}, nil
}

// writeRow writes one row of string values starting at column A, applying
// styleID to every cell if non-zero.
func (e *ExcelExporter) writeRow(f *excelize.File, rowIdx int, values []string, styleID int) error {
	for c, v := range values {
		cellName, err := excelize.CoordinatesToCellName(c+1, rowIdx+1)
		if err != nil {
			return fmt.Errorf("invalid cell coordinates (%d,%d): %w", rowIdx, c, err)
		}
		if err := f.SetCellValue(e.sheetName, cellName, v); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cellName, err)
		}
		if styleID > 0 {
			if err := f.SetCellStyle(e.sheetName, cellName, cellName, styleID); err != nil {
				return fmt.Errorf("failed to set cell style %s: %w", cellName, err)
			}
		}
	}
	return nil
}

// autoFitColumns adjusts column widths based on header and row content.
// Best-effort cosmetic pass: errors from SetColWidth are ignored.
func (e *ExcelExporter) autoFitColumns(f *excelize.File, cols []string, tbl *article.Table, rawLabels []string) {
	const minWidth, maxWidth = 8.0, 40.0
	for c, label := range cols {
		width := minWidth
		if w := float64(len(label)) * 1.2; w > width {
			width = w
		}
		for _, a := range tbl.Activations {
			r := row(a, rawLabels, e.options)
			if c >= len(r) {
				continue
			}
			if w := float64(len(r[c])) * 1.2; w > width {
				width = w
			}
		}
		if width > maxWidth {
			width = maxWidth
		}
		colName, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			continue
		}
		_ = f.SetColWidth(e.sheetName, colName, colName, width)
	}
}

// ExportToString is not applicable for Excel (binary format).
func (e *ExcelExporter) ExportToString(tbl *article.Table) (string, error) {
	return "", fmt.Errorf("Excel format is binary; use Export() with a bytes.Buffer instead")
}

// ExportToBytes exports the table to Excel format as bytes.
func (e *ExcelExporter) ExportToBytes(tbl *article.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Export(tbl, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ContentType returns the MIME content type for Excel.
func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileExtension returns the file extension for Excel.
func (e *ExcelExporter) FileExtension() string {
	return ".xlsx"
}
