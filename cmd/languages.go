package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeisme/locscope/pkg/project"
)

var languagesCmd = &cobra.Command{
	Use:     "languages [query]",
	Short:   "List supported languages",
	Aliases: []string{"langs", "l"},
	Long: strings.TrimSpace(`
locscope languages lists the registered languages in resolution order: when
two languages claim the same extension, the one listed first wins.

The optional query is fuzzy-matched against language names and extensions.

Examples:
  locscope languages
  locscope languages py
  locscope languages --json
`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := appCtx.Config.Analysis.Registry()
		if err != nil {
			return err
		}
		render, err := renderOptions(cmd)
		if err != nil {
			return err
		}
		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		return project.ExecuteLanguagesCommand(reg, query, render, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
	addRenderFlags(languagesCmd)
}
