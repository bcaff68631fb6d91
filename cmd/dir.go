package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeisme/locscope/pkg/project"
)

var dirCmd = &cobra.Command{
	Use:     "dir [path]",
	Short:   "Analyze every supported file under a directory",
	Aliases: []string{"folder", "d"},
	Long: strings.TrimSpace(`
locscope dir walks a directory, analyzes every supported source file in path
order and prints totals per language.

Files that cannot be analyzed (unsupported extension, too large, binary,
vendored or unreadable) are skipped, reported with a reason, and never count
towards the totals.

Examples:
  # Analyze the current directory
  locscope dir

  # Per-file breakdown as a directory tree
  locscope dir ./src --files --tree

  # Only TypeScript sources, excluding generated code, as JSON
  locscope dir -i "**/*.ts" -e "src/gen/**" --json

  # Include vendored files and ignore .gitignore
  locscope dir --vendor --no-gitignore

  # Markdown report with skipped files listed
  locscope dir --format markdown --skipped
`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := dirOptions(cmd)
		if err != nil {
			return err
		}
		return project.ExecuteDirCommand(appCtx, opts, args, cmd.OutOrStdout())
	},
}

// dirOptions 汇总 dir 与 watch 共用的参数
func dirOptions(cmd *cobra.Command) (project.DirOptions, error) {
	countOpts, err := analysisOptions(cmd)
	if err != nil {
		return project.DirOptions{}, err
	}
	render, err := renderOptions(cmd)
	if err != nil {
		return project.DirOptions{}, err
	}
	render.WithFiles, _ = cmd.Flags().GetBool("files")
	render.Tree, _ = cmd.Flags().GetBool("tree")
	render.ShowSkipped, _ = cmd.Flags().GetBool("skipped")
	if render.Tree {
		render.WithFiles = true
	}
	return project.DirOptions{Options: countOpts, Render: render}, nil
}

func addDirFlags(cmd *cobra.Command) {
	addAnalysisFlags(cmd)
	addRenderFlags(cmd)
	cmd.Flags().BoolP("files", "F", false, "Include per-file details")
	cmd.Flags().BoolP("tree", "t", false, "Show per-file details as a directory tree (implies --files)")
	cmd.Flags().BoolP("skipped", "s", false, "List skipped files with the reason")
}

func init() {
	rootCmd.AddCommand(dirCmd)
	addDirFlags(dirCmd)
}
