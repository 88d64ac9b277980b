// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/heritage-reporter/internal/europeana"
	"github.com/pdiddy/heritage-reporter/internal/extract"
	"github.com/pdiddy/heritage-reporter/internal/report"
	"github.com/pdiddy/heritage-reporter/internal/secrets"
	"github.com/pdiddy/heritage-reporter/internal/store"
	"github.com/pdiddy/heritage-reporter/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report [topic...]",
	Short: "Run the full pipeline and assemble a report for a topic",
	Long: `Report searches the archive for a topic, admits a diverse set of sources,
extracts text from linked documents, formats citations, and writes the
finalized document. The report may hold fewer sources than requested when
the archive runs out of matching records; degradations are listed in its
notes section.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().Int("count", 10, "desired number of sources")
	reportCmd.Flags().String("types", "", "restrict record types (comma-separated: TEXT, IMAGE, VIDEO, SOUND, 3D)")
	reportCmd.Flags().String("format", "markdown", "output format: table, markdown, json, or yaml")
	reportCmd.Flags().String("output", "", "write the report to a file instead of stdout")
	reportCmd.Flags().Bool("save", false, "archive the report in the local reports database")
	reportCmd.Flags().Bool("no-extract", false, "skip document text extraction")
	reportCmd.Flags().String("api-key", "", "Europeana API key (overrides .secrets/ and environment)")
	reportCmd.Flags().Int("rows", 0, "search page size (default 20)")
	reportCmd.Flags().Int("max-pages", 0, "maximum search pages per run (default 10)")
	reportCmd.Flags().Int("max-pdf-pages", 0, "maximum pages extracted per document (default 3)")
	reportCmd.Flags().String("reports-dir", "", "directory for the reports archive (default reports/)")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a report topic")
	}
	topic := strings.Join(args, " ")

	count, _ := cmd.Flags().GetInt("count")
	typeNames, _ := cmd.Flags().GetString("types")
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")
	noExtract, _ := cmd.Flags().GetBool("no-extract")
	flagKey, _ := cmd.Flags().GetString("api-key")

	cfg := types.DefaultPipelineConfig()
	if rows, _ := cmd.Flags().GetInt("rows"); rows > 0 {
		cfg.Search.Rows = rows
	}
	if pages, _ := cmd.Flags().GetInt("max-pages"); pages > 0 {
		cfg.Search.MaxPages = pages
	}
	if pdfPages, _ := cmd.Flags().GetInt("max-pdf-pages"); pdfPages > 0 {
		cfg.Extraction.MaxPDFPages = pdfPages
	}
	if dir, _ := cmd.Flags().GetString("reports-dir"); dir != "" {
		cfg.Store.ReportsDir = dir
	}

	client := &europeana.Client{
		HTTP:   &http.Client{Timeout: cfg.Search.Timeout},
		APIKey: secrets.EuropeanaKey(flagKey, loadedSecrets),
	}

	assembler := &report.Assembler{
		Searcher: client,
		Cfg:      cfg,
		Progress: os.Stderr,
	}
	if !noExtract {
		// Per-document deadlines come from the extraction config.
		assembler.Extractor = &extract.Extractor{HTTP: &http.Client{}, Cfg: cfg.Extraction}
	}

	filters := europeana.TypeFilters(splitList(typeNames))
	doc, err := assembler.Generate(context.Background(), topic, count, filters)
	if err != nil {
		return err
	}

	if save {
		s, err := store.NewStore(cfg.Store)
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := s.Save(context.Background(), doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Archived report %s\n", id)
	}

	w := io.Writer(os.Stdout)
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return writeDocument(doc, format, w)
}

func writeDocument(doc *types.ReportDocument, format string, w io.Writer) error {
	switch format {
	case "table":
		report.FormatTable(doc, w)
	case "markdown", "":
		report.FormatMarkdown(doc, w)
	case "json":
		return report.FormatJSON(doc, w)
	case "yaml":
		return report.FormatYAML(doc, w)
	default:
		return fmt.Errorf("unsupported format %q: use table, markdown, json, or yaml", format)
	}
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
