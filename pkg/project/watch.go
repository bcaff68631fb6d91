package project

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	gctx "github.com/yeisme/locscope/pkg/context"
	"github.com/yeisme/locscope/pkg/style"
	"github.com/yeisme/locscope/pkg/utils/count"
	"github.com/yeisme/locscope/pkg/utils/gitignore"
	"github.com/yeisme/locscope/pkg/utils/hotload"
)

// defaultWatchCacheSize 监听模式下未配置缓存时使用的缓存容量
const defaultWatchCacheSize = 1024

// WatchOptions 是监听模式的选项
type WatchOptions struct {
	DirOptions
	Debounce       time.Duration
	IgnorePatterns []string
	ClearScreen    bool
}

// ExecuteWatchCommand 先分析一次目录，之后每当源码文件变化时重新分析
// 阻塞直到 appCtx 被取消；重新分析失败只记录错误，不会结束监听
func ExecuteWatchCommand(appCtx *gctx.AppContext, opts WatchOptions, args []string, w io.Writer) error {
	root := resolveRoot(args)
	logger := loggerOf(appCtx)

	// 未变化的文件命中缓存，重新分析只需重新分类改动过的文件
	if opts.Cache == nil {
		cache, err := count.NewStatsCache(defaultWatchCacheSize)
		if err != nil {
			return err
		}
		opts.Cache = cache
	}
	// 进度条与重复输出的结果交错，监听模式下关闭
	opts.Render.Progress = nil

	run := func(changed []string) {
		res, err := analyzeDir(appCtx, root, opts.DirOptions)
		if opts.ClearScreen && style.IsTerminal(w) {
			_, _ = io.WriteString(w, "\033[H\033[2J")
		}
		if len(changed) > 0 {
			_, _ = fmt.Fprintf(w, "changed: %s\n\n", strings.Join(changed, ", "))
		}
		if err != nil {
			logger.Error().Err(err).Msg("reanalysis failed")
			return
		}
		if err := renderFolder(w, res, opts.Render); err != nil {
			logger.Error().Err(err).Msg("render result")
		}
	}

	var gi *gitignore.GitIgnore
	if opts.RespectGitignore {
		var err error
		if gi, err = gitignore.LoadGitIgnoreFromDir(root); err != nil {
			logger.Warn().Err(err).Msg("cannot load .gitignore")
			gi = nil
		} else {
			logger.Debug().Strs("patterns", gi.GetPatterns()).Msg("gitignore loaded")
		}
	}

	hopts := hotload.Options{
		Root:           root,
		Debounce:       opts.Debounce,
		IgnorePatterns: opts.IgnorePatterns,
		GitIgnore:      gi,
		Registry:       opts.Registry,
		Logger:         logger,
		OnReady: func() {
			logger.Info().Str("root", root).Msg("watching for changes")
			run(nil)
		},
	}
	return hotload.Watch(appCtx, hopts, func(_ context.Context, changed []string) {
		logger.Info().Strs("changed", changed).Msg("files changed")
		run(changed)
	})
}
