package hotload

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yeisme/locscope/pkg/lang"
	"github.com/yeisme/locscope/pkg/utils/gitignore"
)

// filter 决定哪些目录需要监听、哪些文件的变化会触发回调
type filter struct {
	patterns []string
	gi       *gitignore.GitIgnore
	reg      *lang.Registry
}

func newFilter(opts Options) *filter {
	f := &filter{gi: opts.GitIgnore, reg: opts.registry()}
	for _, p := range opts.IgnorePatterns {
		p = strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(p), "\\", "/"), "./")
		if p == "" || !doublestar.ValidatePattern(p) {
			continue
		}
		f.patterns = append(f.patterns, p)
	}
	return f
}

func (f *filter) ignored(rel string) bool {
	for _, p := range f.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// skipDir 报告目录是否不需要监听
func (f *filter) skipDir(rel string) bool {
	if rel == ".git" || strings.HasSuffix(rel, "/.git") {
		return true
	}
	if f.gi.IsIgnored(rel) {
		return true
	}
	// "dir/**" 这样的模式同样排除 dir 本身
	return f.ignored(rel) || f.ignored(rel+"/")
}

// watched 报告文件是否属于被分析的语言且未被忽略
func (f *filter) watched(rel string) bool {
	if _, ok := f.reg.Resolve(rel); !ok {
		return false
	}
	if f.gi.Match(rel, false) {
		return false
	}
	return !f.ignored(rel)
}
