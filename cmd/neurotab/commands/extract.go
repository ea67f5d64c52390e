package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/coregx/neurotab"
	"github.com/coregx/neurotab/export"
	"github.com/coregx/neurotab/internal/fetch"
)

var (
	extractFormat      string
	extractOutput      string
	extractForceSource bool
	extractPMIDFromFn  bool
	extractFetch       bool
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE...",
	Short: "Extract activation tables from article HTML files",
	Long: `Extract stereotactic activation tables from one or more saved article
HTML files.

Each file is validated, matched against the known publisher dialects
(PLoS, Frontiers, Wiley, PMC, HighWire, Springer, and others), and parsed
into activation tables. Surviving tables are rendered to the requested
format, one output file per extracted table.

Output formats:
  - csv:  Comma-separated values (default)
  - json: one JSON object per table with its activations
  - xlsx: Excel workbook

Examples:
  neurotab extract article.html
  neurotab extract *.html --format json --output out/
  neurotab extract unknown_publisher.html --force-default-source`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "csv", "Output format: csv, json, xlsx")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output directory (default: current directory)")
	extractCmd.Flags().BoolVar(&extractForceSource, "force-default-source", false,
		"Fall back to heuristic discovery when no publisher dialect matches")
	extractCmd.Flags().BoolVar(&extractPMIDFromFn, "pmid-from-filename", false,
		"Treat each file's basename as its PMID instead of resolving one from the page")
	extractCmd.Flags().BoolVar(&extractFetch, "fetch", false,
		"Allow dialects to fetch auxiliary per-table pages over HTTP")
}

func runExtract(_ *cobra.Command, args []string) error {
	exporter, err := exporterFor(extractFormat)
	if err != nil {
		return err
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if !verbose {
		logger = logger.Level(zerolog.WarnLevel)
	}

	opts := neurotab.DefaultIngestOptions()
	opts.ForceDefaultSource = extractForceSource
	opts.PMIDFromFilename = extractPMIDFromFn
	if extractFetch {
		opts.Fetcher = fetch.NewHTTPFetcher(logger)
	}

	ing := neurotab.NewIngestor(opts)
	results, err := ing.Run(context.Background(), args)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	var failures int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failures++
			fmt.Fprintf(os.Stderr, "neurotab: %s: %v\n", r.Path, r.Err)
		case r.Skipped:
			printVerbosef("skipped %s: %s", r.Path, r.Reason)
		default:
			if err := writeArticle(r.Article, exporter); err != nil {
				failures++
				fmt.Fprintf(os.Stderr, "neurotab: %s: %v\n", r.Path, err)
				continue
			}
			printVerbosef("extracted %s: %d table(s)", r.Path, len(r.Article.Tables))
		}
	}

	if failures > 0 {
		return fmt.Errorf("extract: %d of %d file(s) failed", failures, len(results))
	}
	return nil
}

func exporterFor(format string) (export.TableExporter, error) {
	switch strings.ToLower(format) {
	case "csv", "":
		return export.NewCSVExporter(), nil
	case "json":
		return export.NewJSONExporter(), nil
	case "xlsx", "excel":
		return export.NewExcelExporter(), nil
	default:
		return nil, fmt.Errorf("unknown format %q: want csv, json, or xlsx", format)
	}
}

// writeArticle renders every table of art to one file per table under
// extractOutput, named after the article's PMID, the table's position,
// and the exporter's file extension.
func writeArticle(art *neurotab.Article, exporter export.TableExporter) error {
	dir := extractOutput
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	for _, tbl := range art.Tables {
		name := fmt.Sprintf("%d_table%d%s", art.PMID, tbl.Position, exporter.FileExtension())
		path := filepath.Join(dir, name)

		f, err := os.Create(path) //nolint:gosec // G304: path built from validated output dir + derived name
		if err != nil {
			return err
		}
		err = exporter.Export(tbl, f)
		closeErr := f.Close()
		if err != nil {
			return err
		}
		if closeErr != nil {
			return closeErr
		}
		printVerbosef("wrote %s", path)
	}
	return nil
}

func printVerbosef(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
