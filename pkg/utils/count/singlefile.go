package count

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yeisme/locscope/pkg/lang"
	"github.com/yeisme/locscope/pkg/models"
	"github.com/yeisme/locscope/pkg/utils/chunk"
)

// SingleFileCounter 是 File 的默认实现
// 一次分析只使用一个 lang.State，不同文件之间互不影响
type SingleFileCounter struct{}

// AnalyzeSource 按 name 解析语言，切分文本并逐批分类
// 失败时返回 *FileError，不产出部分统计
func (s *SingleFileCounter) AnalyzeSource(ctx context.Context, name, text string, opts Options) (*models.FileResult, error) {
	rule, ok := opts.registry().Resolve(name)
	if !ok {
		return nil, fileError(name, ErrUnsupportedLanguage, nil)
	}
	return analyzeWithRule(ctx, rule, name, text, opts)
}

func analyzeWithRule(ctx context.Context, rule *lang.Rule, name, text string, opts Options) (*models.FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines := lang.SplitLines(text)
	if limit := opts.maxLines(); len(lines) > limit {
		return nil, fileError(name, ErrInputTooLarge, fmt.Errorf("%d lines (max: %d)", len(lines), limit))
	}

	res := &models.FileResult{Path: name, Language: rule.Name}

	if !opts.WithLines {
		if st, ok := opts.Cache.Get(rule.Name, text); ok {
			opts.logger().Debug().Str("file", name).Msg("stats cache hit")
			res.Stats = st
			if opts.OnProgress != nil {
				opts.OnProgress(100)
			}
			return res, nil
		}
	}

	p := chunk.New(opts.BatchSize)
	var st lang.State

	if opts.WithLines {
		number := 0
		details, err := chunk.Process(ctx, p, lines, func(line string) lang.Detail {
			number++
			d := rule.AnalyzeLine(line, &st)
			d.Number = number
			return d
		}, opts.OnProgress)
		if err != nil {
			return nil, err
		}
		for _, d := range details {
			res.Stats.Observe(lang.LineResult{Kind: d.Kind, Variables: d.Variables})
		}
		res.Lines = details
		return res, nil
	}

	results, err := chunk.Process(ctx, p, lines, func(line string) lang.LineResult {
		return rule.Classify(line, &st)
	}, opts.OnProgress)
	if err != nil {
		return nil, err
	}
	res.Stats = models.Fold(results)
	opts.Cache.Put(rule.Name, text, res.Stats)
	return res, nil
}

// CountSingleFile 检查大小后读取文件并分析
func (s *SingleFileCounter) CountSingleFile(ctx context.Context, filePath string, opts Options) (*models.FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rule, ok := opts.registry().Resolve(filePath)
	if !ok {
		return nil, fileError(filePath, ErrUnsupportedLanguage, nil)
	}

	fi, err := os.Stat(filePath)
	if err != nil {
		return nil, fileError(filePath, ErrSourceUnavailable, err)
	}
	if fi.IsDir() {
		return nil, fileError(filePath, ErrSourceUnavailable, errors.New("is a directory"))
	}
	if limit := opts.maxFileSize(); limit > 0 && fi.Size() > limit {
		return nil, fileError(filePath, ErrInputTooLarge, fmt.Errorf("%d bytes (max: %d)", fi.Size(), limit))
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fileError(filePath, ErrSourceUnavailable, err)
	}
	return analyzeWithRule(ctx, rule, filePath, string(data), opts)
}

var _ File = (*SingleFileCounter)(nil)
