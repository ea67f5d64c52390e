package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/coregx/neurotab/internal/article"
)

// JSONExporter exports a Table's activations to JSON format.
//
// Output format:
//
//	{
//	  "n_activations": 12,
//	  "activations": [
//	    {"x": -45, "y": 12, "z": -12, "region": "...", "groups": [...], "columns": {...}},
//	    ...
//	  ],
//	  "metadata": {"number": "3", "label": "...", "caption": "...", "notes": "..."}
//	}
//
// Example usage:
//
//	exporter := export.NewJSONExporter().WithPrettyPrint(true)
//	err := exporter.Export(tbl, file)
type JSONExporter struct {
	options *ExportOptions
}

// NewJSONExporter creates a new JSON exporter with default options.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{options: DefaultExportOptions()}
}

// NewJSONExporterWithOptions creates a new JSON exporter with custom options.
func NewJSONExporterWithOptions(options *ExportOptions) *JSONExporter {
	if options == nil {
		options = DefaultExportOptions()
	}
	return &JSONExporter{options: options}
}

// WithPrettyPrint returns a new JSONExporter with pretty printing enabled/disabled.
func (e *JSONExporter) WithPrettyPrint(pretty bool) *JSONExporter {
	opts := *e.options
	opts.PrettyPrint = pretty
	return &JSONExporter{options: &opts}
}

// WithMetadata returns a new JSONExporter with metadata inclusion enabled/disabled.
func (e *JSONExporter) WithMetadata(include bool) *JSONExporter {
	opts := *e.options
	opts.IncludeMetadata = include
	return &JSONExporter{options: &opts}
}

// activationJSON is the JSON structure for one activation.
type activationJSON struct {
	X          *float64          `json:"x"`
	Y          *float64          `json:"y"`
	Z          *float64          `json:"z"`
	Region     string            `json:"region,omitempty"`
	Hemisphere string            `json:"hemisphere,omitempty"`
	BA         string            `json:"ba,omitempty"`
	Size       string            `json:"size,omitempty"`
	Statistic  string            `json:"statistic,omitempty"`
	PValue     string            `json:"p_value,omitempty"`
	Groups     []string          `json:"groups,omitempty"`
	Columns    map[string]string `json:"columns,omitempty"`
	Problems   []string          `json:"problems,omitempty"`
}

// tableJSON is the JSON structure for table export.
type tableJSON struct {
	NActivations int              `json:"n_activations"`
	Activations  []activationJSON `json:"activations"`
	Metadata     *metadataJSON    `json:"metadata,omitempty"`
}

// metadataJSON is the JSON structure for table metadata.
type metadataJSON struct {
	Position int    `json:"position"`
	Number   string `json:"number,omitempty"`
	Label    string `json:"label,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Export writes the table to the writer in JSON format.
func (e *JSONExporter) Export(tbl *article.Table, w io.Writer) error {
	if tbl == nil {
		return fmt.Errorf("table is nil")
	}

	jsonData := e.buildJSON(tbl)

	encoder := json.NewEncoder(w)
	if e.options.PrettyPrint {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(jsonData); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// buildJSON builds the JSON structure from the table.
func (e *JSONExporter) buildJSON(tbl *article.Table) *tableJSON {
	jsonData := &tableJSON{
		NActivations: len(tbl.Activations),
		Activations:  make([]activationJSON, len(tbl.Activations)),
	}

	for i, a := range tbl.Activations {
		aj := activationJSON{
			X: a.X, Y: a.Y, Z: a.Z,
			Region:     a.Region,
			Hemisphere: a.Hemisphere,
			BA:         a.BA,
			Size:       a.Size,
			Statistic:  a.Statistic,
			PValue:     a.PValue,
			Groups:     a.Groups,
			Problems:   a.Problems,
		}
		if e.options.IncludeColumns && a.Columns != nil {
			aj.Columns = a.Columns.ToMap()
		}
		jsonData.Activations[i] = aj
	}

	if e.options.IncludeMetadata {
		jsonData.Metadata = &metadataJSON{
			Position: tbl.Position,
			Number:   tbl.Number,
			Label:    tbl.Label,
			Caption:  tbl.Caption,
			Notes:    tbl.Notes,
		}
	}

	return jsonData
}

// ExportToString exports the table to a JSON string.
func (e *JSONExporter) ExportToString(tbl *article.Table) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(tbl, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ContentType returns the MIME content type for JSON.
func (e *JSONExporter) ContentType() string {
	return "application/json"
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
