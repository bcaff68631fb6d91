package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeisme/locscope/pkg/project"
)

var fileCmd = &cobra.Command{
	Use:   "file [path]",
	Short: "Analyze a single source file",
	Long: strings.TrimSpace(`
locscope file classifies every line of one source file and prints its
blank, comment, code and variable counts.

When no path is given and the terminal is interactive, a fuzzy finder lists
the supported files under the current directory.

Examples:
  # Analyze one file
  locscope file src/App.java

  # Show how every line was classified
  locscope file main.py --lines

  # Pick a file interactively
  locscope file

  # YAML output
  locscope file web/index.ts --format yaml
`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		countOpts, err := analysisOptions(cmd)
		if err != nil {
			return err
		}
		render, err := renderOptions(cmd)
		if err != nil {
			return err
		}
		countOpts.WithLines, _ = cmd.Flags().GetBool("lines")
		opts := project.FileOptions{Options: countOpts, Render: render, Pick: true}
		return project.ExecuteFileCommand(appCtx, opts, args, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(fileCmd)
	addAnalysisFlags(fileCmd)
	addRenderFlags(fileCmd)
	fileCmd.Flags().BoolP("lines", "l", false, "Include per-line classification details")
}
