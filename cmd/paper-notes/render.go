package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-notes/internal/render"
	"github.com/pdiddy/paper-notes/pkg/types"
)

var renderCmd = &cobra.Command{
	Use:   "render <text_file_or_folder> <markdown_folder>",
	Short: "Render analyzed text records as markdown notes",
	Long: `Render converts analyzed text records into markdown notes with YAML
frontmatter (title, author, year, tags) and one section per record field.
Records without a Claude analysis fail; existing markdown files are
skipped unless --overwrite is set.`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().Bool("overwrite", false, "replace existing markdown files")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	input, outputDir := args[0], args[1]

	overwrite, _ := cmd.Flags().GetBool("overwrite")

	cfg := types.RenderConfig{
		OutputDir: outputDir,
		Overwrite: overwrite,
	}

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("input does not exist: %s", input)
	}

	if info.IsDir() {
		result, err := render.RenderAll(input, cfg, os.Stdout)
		if err != nil {
			return err
		}
		if result.HasFailures() {
			return fmt.Errorf("%d file(s) failed rendering", result.Failed)
		}
		return nil
	}

	return render.RenderOne(input, cfg, os.Stdout)
}
