package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-notes/internal/analyze"
	"github.com/pdiddy/paper-notes/internal/secrets"
	"github.com/pdiddy/paper-notes/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <text_file_or_folder>",
	Short: "Append a Claude analysis to extracted text records",
	Long: `Analyze sends each text record's abstract and introduction to the Claude
API and appends a CLAUDE ANALYSIS section with a summary, research gap,
objectives, and keywords. Records that already carry an analysis are
skipped unless --overwrite is set; records with no abstract and no
introduction are skipped with a warning.

The API key comes from the ANTHROPIC_API_KEY environment variable or an
anthropic-api-key file under .secrets/.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Bool("overwrite", false, "replace an existing analysis section")
	analyzeCmd.Flags().String("model", "", "Claude model identifier (default "+analyze.DefaultModel+")")
	analyzeCmd.Flags().Duration("delay", time.Second, "delay between consecutive API calls")
	analyzeCmd.Flags().Int("max-tokens", 0, "response token cap (default 1024)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input := args[0]

	overwrite, _ := cmd.Flags().GetBool("overwrite")
	model, _ := cmd.Flags().GetString("model")
	delay, _ := cmd.Flags().GetDuration("delay")
	maxTokens, _ := cmd.Flags().GetInt("max-tokens")

	cfg := types.AnalyzeConfig{
		AIConfig: types.AIConfig{
			Model:     model,
			APIKey:    secrets.Default(loadedSecrets, secrets.AnthropicAPIKey, os.Getenv("ANTHROPIC_API_KEY")),
			MaxTokens: maxTokens,
		},
		CallDelay: delay,
		Overwrite: overwrite,
	}

	analyzer, err := analyze.NewClaudeAnalyzer(cfg)
	if err != nil {
		return err
	}

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("input does not exist: %s", input)
	}

	ctx := context.Background()
	if info.IsDir() {
		result, err := analyze.AnalyzeAll(ctx, analyzer, input, cfg, os.Stdout)
		if err != nil {
			return err
		}
		if result.HasFailures() {
			return fmt.Errorf("%d file(s) failed analysis", result.Failed)
		}
		return nil
	}

	return analyze.AnalyzeOne(ctx, analyzer, input, cfg, os.Stdout)
}
