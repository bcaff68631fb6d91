// Package count 把逐行分类结果汇总为文件级与文件夹级统计
package count

import (
	"context"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yeisme/locscope/pkg/lang"
	"github.com/yeisme/locscope/pkg/models"
)

const (
	// DefaultMaxLines 单文件行数上限
	DefaultMaxLines = 100000
	// DefaultMaxFileSizeBytes 单文件字节上限（50 MiB）
	DefaultMaxFileSizeBytes int64 = 50 << 20
)

// Options 用于控制统计行为与范围
// 所有字段均为可选，零值表示采用默认策略
type Options struct {
	// 过滤与遍历
	Include          []string // 仅统计匹配这些 doublestar glob 的路径（优先级高于 Exclude）
	Exclude          []string // 排除匹配这些 glob 的路径
	RespectGitignore bool     // 是否遵循根目录下的 .gitignore
	FollowSymlinks   bool     // 是否统计指向文件的符号链接
	SkipVendor       bool     // 跳过 vendor/node_modules 等第三方目录
	MaxFileSizeBytes int64    // 超过该大小的文件按过大处理（<0 表示不限制，0 取默认值）

	// 单文件处理
	MaxLines  int  // 行数上限（<=0 取默认值），超出即拒绝，不截断
	BatchSize int  // 分批大小（<=0 取默认值）
	WithLines bool // 结果中附带逐行详情

	// 并发读取数量（<=0 表示 CPU 核心数），分类本身始终按顺序进行
	Concurrency int

	// Registry 语言注册表，nil 使用内置表
	Registry *lang.Registry
	// Cache 按内容哈希缓存文件统计，nil 表示不缓存
	Cache *StatsCache
	// Logger nil 使用全局日志
	Logger *zerolog.Logger

	// OnProgress 单文件内的批次进度（0-100）
	OnProgress func(percent float64)
	// OnFile 文件夹分析中每个文件处理完后调用，done 从 1 开始
	OnFile func(done, total int, path string)
}

// File 单文件分析接口
type File interface {
	// AnalyzeSource 分析已读入内存的文本，name 仅用于确定语言
	AnalyzeSource(ctx context.Context, name, text string, opts Options) (*models.FileResult, error)
	// CountSingleFile 读取并分析一个文件
	CountSingleFile(ctx context.Context, filePath string, opts Options) (*models.FileResult, error)
}

// Project 文件夹分析接口
type Project interface {
	// CountAllFiles 遍历根目录，返回按路径排序的候选文件与被过滤掉的文件
	CountAllFiles(ctx context.Context, root string, opts Options) ([]string, []models.SkippedFile, error)
	// CountProjectSummary 遍历并分析整个目录
	CountProjectSummary(ctx context.Context, root string, opts Options) (*models.FolderStats, error)
}

func (o Options) registry() *lang.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return lang.Default()
}

func (o Options) maxLines() int {
	if o.MaxLines > 0 {
		return o.MaxLines
	}
	return DefaultMaxLines
}

func (o Options) maxFileSize() int64 {
	switch {
	case o.MaxFileSizeBytes < 0:
		return 0
	case o.MaxFileSizeBytes == 0:
		return DefaultMaxFileSizeBytes
	default:
		return o.MaxFileSizeBytes
	}
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return &log.Logger
}

// prepareConcurrency 确定并发读取数量，默认使用 CPU 核心数且至少为 1
func prepareConcurrency(c int) int {
	if c > 0 {
		return c
	}
	return max(runtime.NumCPU(), 1)
}
