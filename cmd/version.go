package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/locscope/pkg/style"
	"github.com/yeisme/locscope/pkg/utils/version"
)

var (
	// Version command flags
	versionDetailed bool
	versionJSON     bool
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `
Display version information for locscope.

Examples:
  # Show short version info (default)
  locscope version

  # Show detailed version info
  locscope version --detailed

  # Show version info in JSON format
  locscope version --json

Notes:
  - By default, shows a short version string similar to GitHub CLI.
  - Use --detailed flag to get build commit, date, Go version and platform.
  - Use --json flag to output version information in JSON format.`,
	Annotations: map[string]string{lenientConfig: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		switch {
		case versionJSON:
			return style.Print(out, "json", version.GetVersion(), appCtx.Color() && style.IsTerminal(out))
		case versionDetailed:
			_, err := fmt.Fprintln(out, version.GetVersionString())
			return err
		default:
			_, err := fmt.Fprintln(out, version.GetShortVersionString())
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVarP(&versionDetailed, "detailed", "d", false, "show detailed version information")
	versionCmd.Flags().BoolVarP(&versionJSON, "json", "j", false, "output version information in JSON format")
}
