// Package project 实现 file、dir、languages 与 watch 命令的业务逻辑（统计 + 输出）
package project

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	gctx "github.com/yeisme/locscope/pkg/context"
	"github.com/yeisme/locscope/pkg/utils/count"
)

// Format 是分析结果的输出格式
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTOML     Format = "toml"
	FormatMarkdown Format = "markdown"
)

// ValidFormats 返回所有支持的输出格式
func ValidFormats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatYAML), string(FormatTOML), string(FormatMarkdown)}
}

// ParseFormat 解析输出格式，空串视为 table，md 是 markdown 的别名
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want %s)", s, strings.Join(ValidFormats(), ", "))
	}
}

// structured 报告格式是否由序列化器直接输出
func (f Format) structured() bool {
	return f == FormatJSON || f == FormatYAML || f == FormatTOML
}

// RenderOptions 控制结果的展示方式
type RenderOptions struct {
	Format Format
	Color  bool
	// Width 表格宽度，<=0 时探测终端
	Width int
	// WithFiles 附带逐文件明细
	WithFiles bool
	// Tree 以目录树展示逐文件明细（仅 table）
	Tree bool
	// ShowSkipped 列出被跳过的文件（仅 table/markdown，结构化输出始终包含）
	ShowSkipped bool
	// Progress 进度条输出目标，nil 或非终端时不显示
	Progress io.Writer
}

// resolveRoot 解析根路径参数，为空时默认为当前目录
func resolveRoot(args []string) string {
	root := "."
	if len(args) > 0 && args[0] != "" {
		root = args[0]
	}
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return root
}

// loggerOf 取上下文中的日志记录器，未初始化时使用空记录器
func loggerOf(ctx *gctx.AppContext) *zerolog.Logger {
	if ctx != nil && ctx.Logger != nil {
		return ctx.Logger
	}
	nop := zerolog.Nop()
	return &nop
}

// progressEnabled 报告是否需要显示进度条
func progressEnabled(ctx *gctx.AppContext, ro RenderOptions) bool {
	if ro.Progress == nil || ctx == nil || ctx.Config == nil {
		return false
	}
	return ctx.Config.App.Progress && !ctx.Config.App.Quiet
}

// withLogger 把上下文中的日志记录器注入计数选项
func withLogger(ctx *gctx.AppContext, opts count.Options) count.Options {
	if opts.Logger == nil {
		opts.Logger = loggerOf(ctx)
	}
	return opts
}
