package project

import (
	"errors"
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"

	gctx "github.com/yeisme/locscope/pkg/context"
	"github.com/yeisme/locscope/pkg/utils/count"
)

// ErrPickAborted 用户取消了交互选择
var ErrPickAborted = errors.New("selection aborted")

// PickFile 列出 root 下可分析的文件，使用 fuzzyfinder 交互选择一项
func PickFile(appCtx *gctx.AppContext, root string, opts count.Options) (string, error) {
	pc := &count.ProjectCounter{}
	files, _, err := pc.CountAllFiles(appCtx, root, withLogger(appCtx, opts))
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%s: %w", root, count.ErrNoSupportedFiles)
	}

	reg := opts.Registry
	idx, err := fuzzyfinder.Find(files, func(i int) string {
		if reg != nil {
			if rule, ok := reg.Resolve(files[i]); ok {
				return fmt.Sprintf("%s  [%s]", files[i], rule.Name)
			}
		}
		return files[i]
	}, fuzzyfinder.WithContext(appCtx), fuzzyfinder.WithHeader("select a file to analyze"))
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", ErrPickAborted
		}
		return "", err
	}
	if idx < 0 || idx >= len(files) {
		return "", errors.New("invalid selection")
	}
	return files[idx], nil
}
