package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeisme/locscope/pkg/project"
	"github.com/yeisme/locscope/pkg/style"
	"github.com/yeisme/locscope/pkg/utils/count"
)

// addAnalysisFlags 注册控制统计范围的参数，未显式设置的参数沿用配置文件的 analysis 段
func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("include", "i", nil, "Only include paths matching these glob patterns (comma or repeated)")
	cmd.Flags().StringSliceP("exclude", "e", nil, "Exclude paths matching these glob patterns")
	cmd.Flags().Bool("no-gitignore", false, "Do not respect .gitignore")
	cmd.Flags().BoolP("follow-symlinks", "L", false, "Follow symbolic links to files")
	cmd.Flags().Bool("vendor", false, "Also analyze vendored and third-party files")
	cmd.Flags().Int64P("max-file-size", "m", 0, "Skip files larger than this size in bytes (-1 means no limit)")
	cmd.Flags().Int("max-lines", 0, "Reject files with more lines than this")
	cmd.Flags().IntP("batch-size", "b", 0, "Number of lines classified per batch")
	cmd.Flags().IntP("concurrency", "C", 0, "Number of files read ahead concurrently (0 uses CPU cores)")
}

// addRenderFlags 注册输出相关参数
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", fmt.Sprintf("Output format (%s), defaults to app.format", strings.Join(project.ValidFormats(), ", ")))
	cmd.Flags().BoolP("json", "j", false, "Output result in JSON format (shorthand for --format json)")
	cmd.Flags().Int("width", 0, "Table width (0 detects the terminal width)")
}

// analysisOptions 从配置构建计数选项，再用显式设置的参数覆盖
func analysisOptions(cmd *cobra.Command) (count.Options, error) {
	opts, err := appCtx.Config.Analysis.Options()
	if err != nil {
		return count.Options{}, err
	}
	opts.Logger = appCtx.Logger
	flags := cmd.Flags()
	if flags.Lookup("include") == nil {
		return opts, nil
	}

	if flags.Changed("include") {
		opts.Include, _ = flags.GetStringSlice("include")
	}
	if flags.Changed("exclude") {
		opts.Exclude, _ = flags.GetStringSlice("exclude")
	}
	if noGitignore, _ := flags.GetBool("no-gitignore"); noGitignore {
		opts.RespectGitignore = false
	}
	if flags.Changed("follow-symlinks") {
		opts.FollowSymlinks, _ = flags.GetBool("follow-symlinks")
	}
	if vendor, _ := flags.GetBool("vendor"); vendor {
		opts.SkipVendor = false
	}
	if flags.Changed("max-file-size") {
		opts.MaxFileSizeBytes, _ = flags.GetInt64("max-file-size")
	}
	if flags.Changed("max-lines") {
		opts.MaxLines, _ = flags.GetInt("max-lines")
	}
	if flags.Changed("batch-size") {
		opts.BatchSize, _ = flags.GetInt("batch-size")
	}
	if flags.Changed("concurrency") {
		opts.Concurrency, _ = flags.GetInt("concurrency")
	}
	return opts, nil
}

// renderOptions 解析输出格式，颜色只在 stdout 是终端时启用
func renderOptions(cmd *cobra.Command) (project.RenderOptions, error) {
	flags := cmd.Flags()
	formatStr := appCtx.Config.App.Format
	if flags.Changed("format") {
		formatStr, _ = flags.GetString("format")
	}
	if jsonOut, _ := flags.GetBool("json"); jsonOut {
		formatStr = string(project.FormatJSON)
	}
	format, err := project.ParseFormat(formatStr)
	if err != nil {
		return project.RenderOptions{}, err
	}

	width, _ := flags.GetInt("width")
	out := cmd.OutOrStdout()
	return project.RenderOptions{
		Format:   format,
		Color:    appCtx.Color() && style.IsTerminal(out),
		Width:    width,
		Progress: cmd.ErrOrStderr(),
	}, nil
}
