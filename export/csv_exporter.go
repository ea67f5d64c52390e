package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/coregx/neurotab/internal/article"
)

// CSVExporter exports a Table's activations to CSV format.
//
// CSV (Comma-Separated Values) is a simple text format for tabular data.
//
// Features:
//   - Configurable delimiter (comma, semicolon, tab, etc.)
//   - Proper quoting and escaping
//   - Standard RFC 4180 compliant
//
// Example usage:
//
//	exporter := export.NewCSVExporter()
//	err := exporter.Export(tbl, file)
type CSVExporter struct {
	options *ExportOptions
}

// NewCSVExporter creates a new CSV exporter with default options.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{options: DefaultExportOptions()}
}

// NewCSVExporterWithOptions creates a new CSV exporter with custom options.
func NewCSVExporterWithOptions(options *ExportOptions) *CSVExporter {
	if options == nil {
		options = DefaultExportOptions()
	}
	return &CSVExporter{options: options}
}

// WithDelimiter returns a new CSVExporter with a custom delimiter.
//
// Common delimiters:
//   - "," - Comma (default)
//   - ";" - Semicolon (European standard)
//   - "\t" - Tab (TSV format)
func (e *CSVExporter) WithDelimiter(delimiter string) *CSVExporter {
	opts := *e.options
	opts.Delimiter = delimiter
	return &CSVExporter{options: &opts}
}

// Export writes tbl's activations to w in CSV format, one row per
// activation, header row first.
func (e *CSVExporter) Export(tbl *article.Table, w io.Writer) error {
	if tbl == nil {
		return fmt.Errorf("table is nil")
	}

	csvWriter := csv.NewWriter(w)
	if len(e.options.Delimiter) > 0 {
		csvWriter.Comma = rune(e.options.Delimiter[0])
	}

	rawLabels := rawColumnLabels(tbl)
	if err := csvWriter.Write(header(tbl, e.options)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, a := range tbl.Activations {
		if err := csvWriter.Write(row(a, rawLabels, e.options)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}

	return nil
}

// ExportToString exports the table to a CSV string.
func (e *CSVExporter) ExportToString(tbl *article.Table) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(tbl, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ContentType returns the MIME content type for CSV.
func (e *CSVExporter) ContentType() string {
	return "text/csv"
}

// FileExtension returns the file extension for CSV.
func (e *CSVExporter) FileExtension() string {
	if e.options.Delimiter == "\t" {
		return ".tsv"
	}
	return ".csv"
}
