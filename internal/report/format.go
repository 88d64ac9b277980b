// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	yaml "go.yaml.in/yaml/v3"

	"github.com/pdiddy/heritage-reporter/pkg/types"
)

// FormatTable writes a human-readable source table and run summary to w.
func FormatTable(doc *types.ReportDocument, w io.Writer) {
	if len(doc.Sources) == 0 {
		fmt.Fprintln(w, "No sources found.")
		printNotes(doc.Notes, w)
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-7s  %-30s  %s\n",
		"Rank", "Title", "Type", "Provider", "Country")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, src := range doc.Sources {
		rec := src.Record
		fmt.Fprintf(w, "%-4d  %-50s  %-7s  %-30s  %s\n",
			i+1, truncate(rec.Title, 50), rec.Type, truncate(rec.Provider, 30), rec.Country)
	}

	fmt.Fprintf(w, "\n%d sources", len(doc.Sources))
	if doc.Diversity.Duplicates > 0 {
		fmt.Fprintf(w, " (%d duplicates rejected)", doc.Diversity.Duplicates)
	}
	fmt.Fprintln(w)
	printNotes(doc.Notes, w)
}

func printNotes(notes []string, w io.Writer) {
	for _, n := range notes {
		fmt.Fprintf(w, "note: %s\n", n)
	}
}

// FormatMarkdown writes the full report document as Markdown to w.
func FormatMarkdown(doc *types.ReportDocument, w io.Writer) {
	fmt.Fprintf(w, "# Cultural Heritage Report: %s\n\n", doc.Topic)
	fmt.Fprintf(w, "Generated: %s\n\n", doc.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"))

	fmt.Fprintln(w, "## Sources")
	if len(doc.Sources) == 0 {
		fmt.Fprintln(w, "\nNo sources found.")
	}
	for i, src := range doc.Sources {
		writeSourceSection(w, i+1, src)
	}

	fmt.Fprintln(w, "\n## Bibliography")
	fmt.Fprintln(w)
	for i, c := range doc.Bibliography {
		fmt.Fprintf(w, "%d. %s\n", i+1, c.Text)
		fmt.Fprintf(w, "   Rights: %s\n", c.Rights)
	}

	fmt.Fprintln(w, "\n## Source Diversity")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Accepted sources: %d\n\n", doc.Diversity.Accepted)
	writeBreakdown(w, "Providers", doc.Diversity.Providers)
	writeBreakdown(w, "Types", doc.Diversity.Types)
	writeBreakdown(w, "Countries", doc.Diversity.Countries)

	if len(doc.Notes) > 0 {
		fmt.Fprintln(w, "\n## Notes")
		fmt.Fprintln(w)
		for _, n := range doc.Notes {
			fmt.Fprintf(w, "- %s\n", n)
		}
	}

	fmt.Fprintln(w, "\n## Disclaimer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, doc.Disclaimer)
}

func writeSourceSection(w io.Writer, rank int, src types.SourceBlock) {
	rec := src.Record

	fmt.Fprintf(w, "\n### %d. %s\n\n", rank, orText(rec.Title, "Untitled"))
	fmt.Fprintf(w, "%s\n\n", src.Citation.Text)

	fmt.Fprintf(w, "- Type: %s\n", rec.Type)
	if rec.Provider != "" {
		fmt.Fprintf(w, "- Provider: %s\n", rec.Provider)
	}
	if rec.DataProvider != "" {
		fmt.Fprintf(w, "- Data provider: %s\n", rec.DataProvider)
	}
	if rec.Country != "" {
		fmt.Fprintf(w, "- Country: %s\n", rec.Country)
	}
	if rec.Date != "" {
		fmt.Fprintf(w, "- Date: %s\n", rec.Date)
	}
	if rec.Language != "" {
		fmt.Fprintf(w, "- Language: %s\n", rec.Language)
	}
	fmt.Fprintf(w, "- Rights: %s\n", src.Citation.Rights)
	fmt.Fprintf(w, "- Link: %s\n", src.Citation.URL)

	if rec.Description != "" {
		fmt.Fprintf(w, "\n%s\n", rec.Description)
	}

	if ext := rec.Extracted; ext != nil {
		fmt.Fprintf(w, "\n#### Extracted text (%d of %d pages)\n", ext.PagesScanned, ext.TotalPages)
		if ext.Partial {
			fmt.Fprintln(w, "\n*Extraction is partial; the full document is available at the source link.*")
		}
		for _, p := range ext.Pages {
			fmt.Fprintf(w, "\n**Page %d**\n\n%s\n", p.Number, strings.TrimSpace(p.Content))
		}
	}

	if src.ExtractionNote != "" {
		fmt.Fprintf(w, "\n*%s*\n", src.ExtractionNote)
	}
}

// writeBreakdown renders one diversity dimension with stable key order.
func writeBreakdown(w io.Writer, label string, pct map[string]float64) {
	if len(pct) == 0 {
		return
	}
	keys := make([]string, 0, len(pct))
	for k := range pct {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %.1f%%", k, pct[k]))
	}
	fmt.Fprintf(w, "- %s: %s\n", label, strings.Join(parts, ", "))
}

// FormatJSON writes the document as indented JSON to w.
func FormatJSON(doc *types.ReportDocument, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// FormatYAML writes the document as YAML to w.
func FormatYAML(doc *types.ReportDocument, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(doc)
}

func orText(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
