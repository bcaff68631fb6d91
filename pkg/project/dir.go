package project

import (
	"fmt"
	"io"

	gctx "github.com/yeisme/locscope/pkg/context"
	"github.com/yeisme/locscope/pkg/models"
	"github.com/yeisme/locscope/pkg/style"
	"github.com/yeisme/locscope/pkg/utils/count"
)

// DirOptions 是文件夹分析的选项
type DirOptions struct {
	count.Options
	Render RenderOptions
}

// ExecuteDirCommand 统计目录并输出结果
//
//	args: 可能包含一个 root 路径；为空则默认为当前目录 '.'
//	w: 输出目标（通常为 cmd.OutOrStdout()）
func ExecuteDirCommand(appCtx *gctx.AppContext, opts DirOptions, args []string, w io.Writer) error {
	root := resolveRoot(args)
	res, err := analyzeDir(appCtx, root, opts)
	if err != nil {
		return err
	}
	return renderFolder(w, res, opts.Render)
}

// analyzeDir 调用计数器执行统计，终端上显示逐文件进度
func analyzeDir(appCtx *gctx.AppContext, root string, opts DirOptions) (*models.FolderStats, error) {
	countOpts := withLogger(appCtx, opts.Options)
	if progressEnabled(appCtx, opts.Render) {
		bar := style.NewProgress(opts.Render.Progress, "analyzing")
		defer bar.Done()
		countOpts.OnFile = bar.Step
	}

	pc := &count.ProjectCounter{}
	res, err := pc.CountProjectSummary(appCtx, root, countOpts)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", root, err)
	}

	loggerOf(appCtx).Info().
		Str("root", root).
		Int("files", res.TotalFiles).
		Int("lines", res.TotalLines).
		Int("skipped", len(res.Skipped)).
		Msg("folder analyzed")
	return res, nil
}
