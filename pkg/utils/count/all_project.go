package count

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-enry/go-enry/v2"

	"github.com/yeisme/locscope/pkg/models"
	"github.com/yeisme/locscope/pkg/utils/gitignore"
)

// ProjectCounter 是 Project 的实现
// 文件读取可以并发预读，但分类与汇总严格按文件顺序逐个进行
type ProjectCounter struct {
	FileCounter File // 单文件分析实现，nil 时使用 SingleFileCounter
}

// CountAllFiles 遍历根目录，按 gitignore、include/exclude、vendor、语言与大小过滤文件
// 返回的候选文件按字典序排列，被过滤的文件附带原因
func (p *ProjectCounter) CountAllFiles(ctx context.Context, root string, opts Options) ([]string, []models.SkippedFile, error) {
	gi := loadGitIgnore(root, opts.RespectGitignore)
	return collectFiles(ctx, root, opts, gi)
}

// CountProjectSummary 遍历并分析整个目录
// 单个文件的失败只会记录为跳过，目录中没有可分析文件时返回 ErrNoSupportedFiles
func (p *ProjectCounter) CountProjectSummary(ctx context.Context, root string, opts Options) (*models.FolderStats, error) {
	files, skipped, err := p.CountAllFiles(ctx, root, opts)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", root, ErrNoSupportedFiles)
	}

	stats, err := p.AnalyzeFiles(ctx, root, files, opts)
	if err != nil {
		return nil, err
	}
	stats.Skipped = append(skipped, stats.Skipped...)
	return stats, nil
}

// AnalyzeFiles 按给定顺序分析文件列表，root 用于生成相对路径（可为空）
// 不支持的文件在循环开始前被过滤，读取失败、过大或二进制文件被跳过并记录警告
// 成功分析的文件最后交给 FoldFolder 汇总
func (p *ProjectCounter) AnalyzeFiles(ctx context.Context, root string, files []string, opts Options) (*models.FolderStats, error) {
	p = ensureCounters(p)
	logger := opts.logger()
	reg := opts.registry()

	var skips models.FolderStats
	var entries []models.FileEntry

	queue := make([]string, 0, len(files))
	for _, path := range files {
		if _, ok := reg.Resolve(path); !ok {
			recordSkip(&skips, logger, toRelSlash(root, path), fileError(path, ErrUnsupportedLanguage, nil))
			continue
		}
		queue = append(queue, path)
	}

	rctx, cancel := context.WithCancel(ctx)
	limit := opts.maxFileSize()
	ra := startReadAhead(rctx, len(queue), prepareConcurrency(opts.Concurrency), func(i int) ([]byte, error) {
		return readSource(queue[i], limit)
	})
	defer func() {
		cancel()
		ra.wait()
	}()

	fileOpts := opts
	fileOpts.WithLines = false
	for i, path := range queue {
		rel := toRelSlash(root, path)
		src, err := ra.next(ctx, i)
		if err != nil {
			return nil, err
		}

		switch {
		case src.err != nil:
			recordSkip(&skips, logger, rel, src.err)
		case enry.IsBinary(src.data):
			skips.Skip(models.SkippedFile{Path: rel, Reason: models.SkipBinary})
			logger.Warn().Str("file", rel).Msg("skipping binary file")
		default:
			res, err := p.FileCounter.AnalyzeSource(ctx, rel, string(src.data), fileOpts)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				recordSkip(&skips, logger, rel, err)
				break
			}
			entries = append(entries, models.FileEntry{Path: rel, Language: res.Language, Stats: res.Stats})
			logger.Debug().Str("file", rel).Str("language", res.Language).Int("lines", res.Stats.Total).Msg("analyzed")
		}

		if opts.OnFile != nil {
			opts.OnFile(i+1, len(queue), rel)
		}
	}

	stats := FoldFolder(entries)
	stats.Root = root
	stats.Skipped = skips.Skipped
	return &stats, nil
}

var _ Project = (*ProjectCounter)(nil)

// ensureCounters 为未设置的字段填充默认实现
func ensureCounters(p *ProjectCounter) *ProjectCounter {
	if p == nil {
		p = &ProjectCounter{}
	}
	if p.FileCounter == nil {
		p.FileCounter = &SingleFileCounter{}
	}
	return p
}

// readSource 检查大小后读取文件，失败时返回 *FileError
func readSource(path string, limit int64) ([]byte, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fileError(path, ErrSourceUnavailable, err)
	}
	if limit > 0 && fi.Size() > limit {
		return nil, fileError(path, ErrInputTooLarge, fmt.Errorf("%d bytes (max: %d)", fi.Size(), limit))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fileError(path, ErrSourceUnavailable, err)
	}
	return data, nil
}

// loadGitIgnore 按需加载根目录下的 .gitignore，加载失败时返回空规则集
func loadGitIgnore(root string, respect bool) *gitignore.GitIgnore {
	if !respect {
		return nil
	}
	gi, err := gitignore.LoadGitIgnoreFromDir(root)
	if err != nil {
		return &gitignore.GitIgnore{}
	}
	return gi
}

// collectFiles 使用 filepath.WalkDir 递归遍历目录，收集需要分析的文件
func collectFiles(ctx context.Context, root string, opts Options, gi *gitignore.GitIgnore) ([]string, []models.SkippedFile, error) {
	logger := opts.logger()
	reg := opts.registry()
	limit := opts.maxFileSize()

	files := make([]string, 0, 256)
	var skipped []models.SkippedFile
	unsupported := 0
	skip := func(rel string, reason models.SkipReason, detail string) {
		skipped = append(skipped, models.SkippedFile{Path: rel, Reason: reason, Error: detail})
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			rel := toRelSlash(root, path)
			logger.Warn().Str("path", rel).Err(walkErr).Msg("cannot read path")
			skip(rel, models.SkipUnreadable, walkErr.Error())
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if shouldSkipDir(toRelSlash(root, path), opts, gi) {
				return filepath.SkipDir
			}
			return nil
		}

		rel := toRelSlash(root, path)
		if !shouldIncludeFile(rel, opts, gi) {
			return nil
		}

		if isSymlink(d) {
			if !opts.FollowSymlinks {
				return nil
			}
			st, err := os.Stat(path)
			if err != nil {
				skip(rel, models.SkipUnreadable, err.Error())
				return nil
			}
			if st.IsDir() {
				return nil
			}
		}

		if _, ok := reg.Resolve(rel); !ok {
			skipped = append(skipped, models.SkippedFile{Path: rel, Reason: models.SkipUnsupported, Detected: detectLanguage(path, rel)})
			logger.Debug().Str("file", rel).Msg("unsupported file")
			unsupported++
			return nil
		}

		if opts.SkipVendor && enry.IsVendor(rel) {
			skip(rel, models.SkipVendor, "")
			return nil
		}

		if overSize(path, limit) {
			logger.Warn().Str("file", rel).Int64("limit", limit).Msg("file too large")
			skip(rel, models.SkipTooLarge, "")
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if unsupported > 0 {
		logger.Warn().Str("root", root).Int("count", unsupported).Msg("skipped files with unsupported languages")
	}
	return files, skipped, nil
}

// detectLanguagePrefix 猜测语言时最多读取的字节数
const detectLanguagePrefix = 8 << 10

// detectLanguage 借助 enry 猜测不支持文件的语言，仅用于提示
// 扩展名或文件名有歧义时（.md、.txt 对应多种语言）读取文件开头交给 enry 判别
func detectLanguage(path, rel string) string {
	if l, safe := enry.GetLanguageByExtension(rel); safe {
		return l
	}
	base := filepath.Base(rel)
	if l, safe := enry.GetLanguageByFilename(base); safe {
		return l
	}
	return enry.GetLanguage(base, readPrefix(path, detectLanguagePrefix))
}

// readPrefix 读取文件开头至多 n 字节，失败时返回 nil
func readPrefix(path string, n int64) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, n))
	if err != nil {
		return nil
	}
	return data
}

// toRelSlash 把 path 转换为相对 root 且使用 '/' 分隔的路径
func toRelSlash(root, path string) string {
	if root == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// isSymlink 检查目录条目是否为符号链接
func isSymlink(d fs.DirEntry) bool {
	return d.Type()&fs.ModeSymlink != 0
}

// shouldSkipDir 判断是否跳过整个目录
//  1. 任意层级的 .git
//  2. 被 .gitignore 忽略
//  3. 开启 SkipVendor 时的第三方目录
//  4. 未设置 Include 时匹配 Exclude
func shouldSkipDir(rel string, opts Options, gi *gitignore.GitIgnore) bool {
	if rel == ".git" || strings.HasSuffix(rel, "/.git") {
		return true
	}
	if gi.Match(rel, true) {
		return true
	}
	if opts.SkipVendor && enry.IsVendor(rel+"/") {
		return true
	}
	return len(opts.Include) == 0 && matchesAny(rel, opts.Exclude)
}

// shouldIncludeFile 判断是否包含一个文件
// 优先级：gitignore > Include > Exclude > 默认包含
func shouldIncludeFile(rel string, opts Options, gi *gitignore.GitIgnore) bool {
	if gi.Match(rel, false) {
		return false
	}
	if len(opts.Include) > 0 {
		return matchesAny(rel, opts.Include)
	}
	return !matchesAny(rel, opts.Exclude)
}

// normalizePattern 统一使用 '/' 并去掉前导 "./"
func normalizePattern(raw string) string {
	p := strings.TrimSpace(raw)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	return strings.TrimSuffix(p, "/")
}

// matchesAny 检查相对路径是否匹配任意模式
// 不含 '/' 的模式在任意层级匹配，含 '/' 的模式相对根目录；匹配目录即匹配其下所有路径
func matchesAny(rel string, patterns []string) bool {
	for _, raw := range patterns {
		p := normalizePattern(raw)
		if p == "" {
			continue
		}
		if !strings.Contains(p, "/") {
			p = "**/" + p
		}
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p+"/**", rel); ok {
			return true
		}
	}
	return false
}

// overSize 检查文件大小是否超过 limit，limit <= 0 表示不限制
// 获取状态失败时交由读取阶段报告错误
func overSize(path string, limit int64) bool {
	if limit <= 0 {
		return false
	}
	if st, err := os.Stat(path); err == nil {
		return st.Size() > limit
	}
	return false
}
