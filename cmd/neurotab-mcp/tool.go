package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/coregx/neurotab"
)

var validate = validator.New()

// ExtractCoordinatesInput is the validated request schema for the
// extract_coordinates tool.
type ExtractCoordinatesInput struct {
	Path               string `json:"path" jsonschema_description:"Path to a saved article HTML file" validate:"required"`
	ForceDefaultSource bool   `json:"force_default_source,omitempty" jsonschema_description:"Fall back to heuristic discovery when no publisher dialect matches"`
	PMIDFromFilename   bool   `json:"pmid_from_filename,omitempty" jsonschema_description:"Treat the file's basename as its PMID"`
}

// ActivationOutput is one extracted stereotactic coordinate triple.
type ActivationOutput struct {
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
}

// TableOutput is one activation table's worth of extracted rows.
type TableOutput struct {
	Position     int                `json:"position"`
	Number       string             `json:"number,omitempty"`
	Label        string             `json:"label,omitempty"`
	Caption      string             `json:"caption,omitempty"`
	NActivations int                `json:"n_activations"`
	Activations  []ActivationOutput `json:"activations"`
}

// ExtractCoordinatesOutput is the structured result of one extraction.
type ExtractCoordinatesOutput struct {
	PMID       int           `json:"pmid"`
	DOI        string        `json:"doi,omitempty"`
	CoordSpace string        `json:"coord_space"`
	Tables     []TableOutput `json:"tables"`
	Skipped    bool          `json:"skipped"`
	Reason     string        `json:"reason,omitempty"`
}

func registerExtractCoordinatesTool(s *server.MCPServer, logger zerolog.Logger) {
	tool := mcp.NewTool(
		"extract_coordinates",
		mcp.WithDescription("Extract stereotactic brain-activation coordinates from a saved neuroimaging article HTML file"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to a saved article HTML file")),
		mcp.WithBoolean("force_default_source", mcp.DefaultBool(false),
			mcp.Description("Fall back to heuristic discovery when no publisher dialect matches")),
		mcp.WithBoolean("pmid_from_filename", mcp.DefaultBool(false),
			mcp.Description("Treat the file's basename as its PMID")),
		mcp.WithOutputSchema[ExtractCoordinatesOutput](),
	)

	s.AddTool(tool, mcp.NewTypedToolHandler(func(ctx context.Context, _ mcp.CallToolRequest, in ExtractCoordinatesInput) (*mcp.CallToolResult, error) {
		reqID := uuid.New().String()
		log := logger.With().Str("request_id", reqID).Str("path", in.Path).Logger()

		if err := validate.Struct(in); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("VALIDATION: %v", err)), nil
		}
		if _, err := os.Stat(in.Path); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("NOT_FOUND: %v", err)), nil
		}

		opts := neurotab.DefaultIngestOptions()
		opts.ForceDefaultSource = in.ForceDefaultSource
		opts.PMIDFromFilename = in.PMIDFromFilename

		ing := neurotab.NewIngestor(opts)
		results, err := ing.Run(ctx, []string{in.Path})
		if err != nil {
			log.Error().Err(err).Msg("extraction failed")
			return mcp.NewToolResultError(fmt.Sprintf("EXTRACT_FAILED: %v", err)), nil
		}

		r := results[0]
		if r.Err != nil {
			log.Error().Err(r.Err).Msg("extraction error")
			return mcp.NewToolResultError(fmt.Sprintf("EXTRACT_FAILED: %v", r.Err)), nil
		}
		if r.Skipped {
			log.Info().Str("reason", r.Reason).Msg("extraction skipped")
			out := ExtractCoordinatesOutput{Skipped: true, Reason: r.Reason}
			return mcp.NewToolResultStructured(out, fmt.Sprintf("skipped: %s", r.Reason)), nil
		}

		out := toOutput(r.Article)
		summary := fmt.Sprintf("pmid=%d tables=%d", out.PMID, len(out.Tables))
		log.Info().Int("pmid", out.PMID).Int("tables", len(out.Tables)).Msg("extraction succeeded")
		return mcp.NewToolResultStructured(out, summary), nil
	}))
}

func toOutput(art *neurotab.Article) ExtractCoordinatesOutput {
	out := ExtractCoordinatesOutput{
		PMID:       art.PMID,
		DOI:        art.DOI,
		CoordSpace: string(art.CoordSpace),
		Tables:     make([]TableOutput, len(art.Tables)),
	}

	for i, tbl := range art.Tables {
		to := TableOutput{
			Position:     tbl.Position,
			Number:       tbl.Number,
			Label:        tbl.Label,
			Caption:      tbl.Caption,
			NActivations: len(tbl.Activations),
			Activations:  make([]ActivationOutput, len(tbl.Activations)),
		}
		for j, a := range tbl.Activations {
			ao := ActivationOutput{
				X: a.X, Y: a.Y, Z: a.Z,
				Region:     a.Region,
				Hemisphere: a.Hemisphere,
				BA:         a.BA,
				Size:       a.Size,
				Statistic:  a.Statistic,
				PValue:     a.PValue,
				Groups:     a.Groups,
			}
			if a.Columns != nil {
				ao.Columns = a.Columns.ToMap()
			}
			to.Activations[j] = ao
		}
		out.Tables[i] = to
	}
	return out
}
