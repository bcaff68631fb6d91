// Package cmd provides command-line interface commands for locscope
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"runtime/trace"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	gctx "github.com/yeisme/locscope/pkg/context"
	"github.com/yeisme/locscope/pkg/style"
	log2 "github.com/yeisme/locscope/pkg/utils/log"
	"github.com/yeisme/locscope/pkg/utils/version"
)

// lenientConfig 标记的命令在配置文件无法加载时回退到默认配置
const lenientConfig = "lenient-config"

var (
	appCtx *gctx.AppContext
	log    log2.Logger

	// Global flags
	globalFlags = gctx.GlobalFlags{}

	cpuProfileFile *os.File
	traceFile      *os.File
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "locscope",
	Short: "locscope counts blank, comment and code lines and estimates variable declarations",
	Long: `locscope classifies every line of a source file as blank, comment or code,
estimates how many variables each line declares, and folds the results into
file-level and folder-level statistics.

Supported languages: Java, Python, JavaScript, TypeScript, C#, C++ and C,
plus any languages declared under analysis.languages in the config file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if globalFlags.VersionEnable {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.GetShortVersionString())
			return err
		}
		if len(args) == 0 {
			return cmd.Help()
		}
		return nil
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := startProfiling(); err != nil {
			return err
		}

		ctx, loadErr := gctx.InitAppContext(cmd.Context(), globalFlags)
		if loadErr != nil {
			if cmd.Annotations[lenientConfig] != "true" {
				return loadErr
			}
			var err error
			if ctx, err = gctx.DefaultAppContext(cmd.Context(), globalFlags); err != nil {
				return err
			}
			ctx.Logger.Warn().Err(loadErr).Msg("config could not be loaded, using defaults")
		}

		appCtx = ctx
		log = ctx.Logger
		if !ctx.Color() {
			style.DisableColor()
		}

		log.Info().Msgf("Execute Command: %s %s", "locscope", strings.Join(os.Args[1:], " "))
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		stopProfiling()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// SIGINT/SIGTERM 会取消命令的 context，watch 等长时间运行的命令据此退出
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer stopProfiling()
	return rootCmd.ExecuteContext(ctx)
}

func startProfiling() error {
	if globalFlags.CPUProfile != "" {
		f, err := os.Create(globalFlags.CPUProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		cpuProfileFile = f
	}
	if globalFlags.Trace != "" {
		f, err := os.Create(globalFlags.Trace)
		if err != nil {
			return fmt.Errorf("could not create trace file: %w", err)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start trace: %w", err)
		}
		traceFile = f
	}
	return nil
}

// stopProfiling 可以重复调用
func stopProfiling() {
	if cpuProfileFile != nil {
		pprof.StopCPUProfile()
		_ = cpuProfileFile.Close()
		cpuProfileFile = nil
	}
	if traceFile != nil {
		trace.Stop()
		_ = traceFile.Close()
		traceFile = nil
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "config file (default: .locscope.yaml in ., ./configs, $HOME or $HOME/.config/locscope)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.CPUProfile, "cpu-profile", "", "write cpu profile to `file`")
	rootCmd.PersistentFlags().StringVar(&globalFlags.Trace, "trace", "", "write execution trace to `file`")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Debug, "debug", false, "enable debug mode (prints additional information)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "V", false, "enable verbose output (prints more detailed information)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Quiet, "quiet", "q", false, "suppress all log output")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.NoColor, "no-color", false, "disable colored output")
	rootCmd.Flags().BoolVarP(&globalFlags.VersionEnable, "version", "v", false, "show version information")
}
