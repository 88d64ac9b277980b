// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/heritage-reporter/internal/europeana"
	"github.com/pdiddy/heritage-reporter/internal/normalize"
	"github.com/pdiddy/heritage-reporter/internal/secrets"
	"github.com/pdiddy/heritage-reporter/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Preview archive search results without assembling a report",
	Long: `Search fetches one page of archive results for a query and prints the
normalized records. Useful for checking what a report run would find before
committing to the full pipeline.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("rows", 0, "page size (default 20)")
	searchCmd.Flags().String("types", "", "restrict record types (comma-separated: TEXT, IMAGE, VIDEO, SOUND, 3D)")
	searchCmd.Flags().String("api-key", "", "Europeana API key (overrides .secrets/ and environment)")
	searchCmd.Flags().Bool("json", false, "output records as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}
	query := strings.Join(args, " ")

	typeNames, _ := cmd.Flags().GetString("types")
	flagKey, _ := cmd.Flags().GetString("api-key")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg := types.DefaultPipelineConfig().Search
	if rows, _ := cmd.Flags().GetInt("rows"); rows > 0 {
		cfg.Rows = rows
	}

	client := &europeana.Client{
		HTTP:   &http.Client{Timeout: cfg.Timeout},
		APIKey: secrets.EuropeanaKey(flagKey, loadedSecrets),
	}

	filters := europeana.TypeFilters(splitList(typeNames))
	page, err := client.Search(context.Background(), query, filters, europeana.CursorStart, cfg)
	if err != nil {
		return err
	}

	var records []types.SourceRecord
	skipped := 0
	for _, raw := range page.Records {
		rec, err := normalize.Record(raw)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-50s  %-7s  %-30s  %s\n",
		"Rank", "Title", "Type", "Provider", "Country")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for i, rec := range records {
		title := rec.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		provider := rec.Provider
		if len(provider) > 30 {
			provider = provider[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-50s  %-7s  %-30s  %s\n",
			i+1, title, rec.Type, provider, rec.Country)
	}

	fmt.Fprintf(os.Stdout, "\n%d of %d total results", len(records), page.TotalResults)
	if skipped > 0 {
		fmt.Fprintf(os.Stdout, " (%d malformed records skipped)", skipped)
	}
	fmt.Println()
	return nil
}
