// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/heritage-reporter/internal/store"
	"github.com/pdiddy/heritage-reporter/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List and re-read archived reports",
	Long: `History lists reports archived with report --save, newest first. Use
history show to print one archived report in any output format.`,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print one archived report",
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.PersistentFlags().String("reports-dir", "", "directory for the reports archive (default reports/)")
	historyShowCmd.Flags().String("format", "markdown", "output format: table, markdown, json, or yaml")

	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func historyStore(cmd *cobra.Command) (*store.Store, error) {
	cfg := types.DefaultPipelineConfig().Store
	if dir, _ := cmd.Flags().GetString("reports-dir"); dir != "" {
		cfg.ReportsDir = dir
	}
	return store.NewStore(cfg)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	s, err := historyStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.List(context.Background())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No archived reports.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-16s  %-7s  %s\n", "ID", "Generated", "Sources", "Topic")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%-36s  %-16s  %-7d  %s\n",
			e.ID, e.GeneratedAt.Format("2006-01-02 15:04"), e.Sources, e.Topic)
	}
	fmt.Fprintf(os.Stdout, "\n%d reports\n", len(entries))
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide one report ID (see history)")
	}
	format, _ := cmd.Flags().GetString("format")

	s, err := historyStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	return writeDocument(doc, format, os.Stdout)
}
