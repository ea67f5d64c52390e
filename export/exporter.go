// Package export renders an extracted article.Table — its activation rows,
// not a pixel-grid of PDF cells — to a handful of tabular output formats.
//
// Supported formats:
//   - CSV (Comma-Separated Values)
//   - JSON (JavaScript Object Notation)
//   - Excel (.xlsx)
//
// Example:
//
//	exporter := export.NewCSVExporter()
//	err := exporter.Export(tbl, w)
package export

import (
	"io"

	"github.com/coregx/neurotab/internal/article"
)

// TableExporter is the interface for exporting a Table to different formats.
//
// This interface enables:
//   - Multiple export formats (CSV, JSON, Excel, etc.)
//   - Custom exporter implementations
//   - Easy testing with mocks
//   - Dependency injection
type TableExporter interface {
	// Export writes tbl to w in the format implemented by the exporter.
	Export(tbl *article.Table, w io.Writer) error

	// ExportToString exports tbl to a string. Binary formats (Excel)
	// return an error; use Export with a buffer instead.
	ExportToString(tbl *article.Table) (string, error)

	// ContentType returns the MIME content type of the exported format.
	ContentType() string

	// FileExtension returns the recommended file extension for the format.
	FileExtension() string
}

// ExportOptions contains options for table export.
type ExportOptions struct {
	// Delimiter is the field delimiter for CSV export (e.g., ",", ";", "\t").
	// Default: ","
	Delimiter string

	// IncludeMetadata indicates whether to include table metadata (number,
	// label, caption, notes) in export. Applicable to JSON.
	// Default: false
	IncludeMetadata bool

	// IncludeColumns indicates whether to append the activation's raw
	// source columns (Activation.Columns) after the standard fields.
	// Default: true
	IncludeColumns bool

	// PrettyPrint indicates whether to format output for readability.
	// Applicable to JSON export.
	// Default: false
	PrettyPrint bool
}

// DefaultExportOptions returns default export options.
func DefaultExportOptions() *ExportOptions {
	return &ExportOptions{
		Delimiter:       ",",
		IncludeMetadata: false,
		IncludeColumns:  true,
		PrettyPrint:     false,
	}
}
