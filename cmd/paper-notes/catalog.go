// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-notes/internal/catalog"
	"github.com/pdiddy/paper-notes/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the note catalog (store, search, export)",
	Long: `Catalog manages a local SQLite index built from analyzed text records.
Use subcommands to index notes, query them, or export.`,
}

// --- store subcommand ---

var catalogStoreCmd = &cobra.Command{
	Use:   "store <text_folder>",
	Short: "Ingest analyzed text records into the catalog",
	Long: `Store reads analyzed *.txt records, parses their fields and analysis
sections, and ingests them into a SQLite database with FTS5 indexing
over title, summary, and abstract. Unchanged files are skipped on
subsequent runs.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogStore,
}

func runCatalogStore(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), args[0], os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d note(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- search subcommand ---

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Query the catalog with full-text search and filters",
	Long: `Search queries the catalog using FTS5 full-text search over title,
summary, and abstract, structured filters (tag, year), or a combination
of both. Full-text results are ranked by relevance.`,
	RunE: runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --tag, or --year")
	}

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(results, jsonOutput)
}

func formatSearchOutput(results []catalog.Note, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-6s  %-50s  %-30s  %s\n",
		"Rank", "Year", "Title", "Authors", "Tags")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for i, n := range results {
		title := n.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		authors := n.Authors
		if len(authors) > 30 {
			authors = authors[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-6s  %-50s  %-30s  %s\n",
			i+1, n.Year, title, authors, strings.Join(n.Tags, ", "))
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the full catalog (or a filtered subset) to
catalog/export.yaml or export.json. Supports the same filter flags as
search for partial exports.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	catalogDir, _ := cmd.Flags().GetString("catalog-dir")

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/export.yaml\n", catalogDir)
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/export.json\n", catalogDir)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func catalogConfig(cmd *cobra.Command) types.CatalogConfig {
	catalogDir, _ := cmd.Flags().GetString("catalog-dir")
	if catalogDir == "" {
		catalogDir = "catalog"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.CatalogConfig{
		CatalogDir: catalogDir,
		MaxResults: maxResults,
	}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	tag, _ := cmd.Flags().GetString("tag")
	year, _ := cmd.Flags().GetString("year")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Query:      queryText,
		Tag:        tag,
		Year:       year,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog-dir", "catalog", "directory for the catalog database and exports")
	catalogCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Search flags.
	catalogSearchCmd.Flags().String("query", "", "full-text search query")
	catalogSearchCmd.Flags().String("tag", "", "filter by keyword tag")
	catalogSearchCmd.Flags().String("year", "", "filter by publication year")
	catalogSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogSearchCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	catalogExportCmd.Flags().String("tag", "", "filter by tag for partial export")
	catalogExportCmd.Flags().String("year", "", "filter by year for partial export")
	catalogExportCmd.Flags().Int("limit", 0, "maximum notes to export (0 = all)")

	// Wire subcommands.
	catalogCmd.AddCommand(catalogStoreCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
