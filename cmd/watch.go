package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yeisme/locscope/pkg/project"
)

var watchCmd = &cobra.Command{
	Use:     "watch [path]",
	Short:   "Re-analyze a directory whenever its source files change",
	Aliases: []string{"w"},
	Long: strings.TrimSpace(`
locscope watch analyzes a directory once, then watches it and re-runs the
analysis after a debounce window whenever a supported source file is
created, modified, removed or renamed. Rewriting a file with identical
content does not trigger a rerun.

Press Ctrl+C to stop.

Examples:
  locscope watch
  locscope watch ./src --debounce 1s --clear
  locscope watch --ignore "**/generated/**" --json
`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dirOpts, err := dirOptions(cmd)
		if err != nil {
			return err
		}
		cfg := appCtx.Config.Watch
		opts := project.WatchOptions{
			DirOptions:     dirOpts,
			Debounce:       time.Duration(cfg.Debounce) * time.Millisecond,
			IgnorePatterns: cfg.IgnorePatterns,
			ClearScreen:    cfg.ClearScreen,
		}

		flags := cmd.Flags()
		if flags.Changed("debounce") {
			opts.Debounce, _ = flags.GetDuration("debounce")
		}
		if flags.Changed("ignore") {
			extra, _ := flags.GetStringSlice("ignore")
			opts.IgnorePatterns = append(append([]string(nil), opts.IgnorePatterns...), extra...)
		}
		if flags.Changed("clear") {
			opts.ClearScreen, _ = flags.GetBool("clear")
		}
		return project.ExecuteWatchCommand(appCtx, opts, args, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addDirFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", 0, "Debounce window (defaults to watch.debounce)")
	watchCmd.Flags().StringSlice("ignore", nil, "Additional glob patterns whose changes never trigger a rerun")
	watchCmd.Flags().Bool("clear", false, "Clear the screen before every rerun")
}
