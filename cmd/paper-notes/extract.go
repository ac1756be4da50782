package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-notes/internal/extract"
	"github.com/pdiddy/paper-notes/internal/secrets"
	"github.com/pdiddy/paper-notes/internal/zotero"
	"github.com/pdiddy/paper-notes/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "paper-notes/0.1"
)

var extractCmd = &cobra.Command{
	Use:   "extract <pdf_file_or_folder> <output_folder>",
	Short: "Extract paper fields from PDFs into text records",
	Long: `Extract reads PDF papers and writes one flat text record per paper with
title, authors, year, abstract, and introduction. Fields that cannot be
derived degrade to Unknown placeholders instead of failing the file.

When Zotero credentials are available (ZOTERO_LIBRARY_ID and ZOTERO_API_KEY
environment variables, or zotero-library-id and zotero-api-key files under
.secrets/), the abstract is looked up in the Zotero library by title and
year. Without credentials the lookup is skipped with a warning.`,
	Args: cobra.ExactArgs(2),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Int("intro-pages", 0, "pages scanned for the introduction section (default 6)")
	extractCmd.Flags().Duration("timeout", 0, "Zotero HTTP request timeout (default 30s)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	input, outputDir := args[0], args[1]

	introPages, _ := cmd.Flags().GetInt("intro-pages")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	cfg := types.ExtractConfig{
		Zotero: types.ZoteroConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: defaultUserAgent,
			},
			LibraryID:   secrets.Default(loadedSecrets, secrets.ZoteroLibraryID, os.Getenv("ZOTERO_LIBRARY_ID")),
			LibraryType: os.Getenv("ZOTERO_LIBRARY_TYPE"),
			APIKey:      secrets.Default(loadedSecrets, secrets.ZoteroAPIKey, os.Getenv("ZOTERO_API_KEY")),
		},
		MaxIntroPages: introPages,
		OutputDir:     outputDir,
	}

	var lookup extract.Lookup
	if client := zotero.New(cfg.Zotero); client != nil {
		lookup = client
	} else {
		fmt.Fprintln(os.Stderr, "warning: Zotero credentials not set, abstract lookup disabled")
	}

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("input does not exist: %s", input)
	}

	ctx := context.Background()
	if info.IsDir() {
		result, err := extract.ExtractAll(ctx, lookup, input, cfg, os.Stdout)
		if err != nil {
			return err
		}
		if result.HasFailures() {
			return fmt.Errorf("%d file(s) failed extraction", result.Failed)
		}
		return nil
	}

	_, err = extract.ExtractOne(ctx, lookup, input, cfg, os.Stdout)
	return err
}
