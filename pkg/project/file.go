package project

import (
	"errors"
	"fmt"
	"io"
	"os"

	gctx "github.com/yeisme/locscope/pkg/context"
	"github.com/yeisme/locscope/pkg/style"
	"github.com/yeisme/locscope/pkg/utils/count"
)

// FileOptions 是单文件分析的选项，Options.WithLines 控制是否附带逐行明细
type FileOptions struct {
	count.Options
	Render RenderOptions
	// Pick 未给出路径时交互选择文件
	Pick bool
}

// ErrNoFile 未给出文件且无法交互选择
var ErrNoFile = errors.New("no file given")

// ExecuteFileCommand 分析单个文件并输出结果
func ExecuteFileCommand(appCtx *gctx.AppContext, opts FileOptions, args []string, w io.Writer) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		if !opts.Pick || !style.IsTerminal(os.Stdout) {
			return ErrNoFile
		}
		picked, err := PickFile(appCtx, ".", opts.Options)
		if err != nil {
			return err
		}
		path = picked
	}

	countOpts := withLogger(appCtx, opts.Options)
	if progressEnabled(appCtx, opts.Render) {
		bar := style.NewProgress(opts.Render.Progress, path)
		defer bar.Done()
		countOpts.OnProgress = bar.Set
	}

	fc := &count.SingleFileCounter{}
	res, err := fc.CountSingleFile(appCtx, path, countOpts)
	if err != nil {
		return fmt.Errorf("analyze file: %w", err)
	}
	loggerOf(appCtx).Info().
		Str("file", path).
		Str("language", res.Language).
		Int("lines", res.Stats.Total).
		Msg("file analyzed")
	return renderFile(w, res, opts.Render)
}
