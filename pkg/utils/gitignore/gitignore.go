// Package gitignore 解析 .gitignore 规则并基于 doublestar 进行匹配
package gitignore

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// rule 是编译后的一条规则
type rule struct {
	raw     string
	negate  bool
	dirOnly bool
	// self 匹配路径本身，children 匹配其下的所有路径
	self     string
	children string
}

// GitIgnore 是按出现顺序保存的规则集合，后出现的规则覆盖先出现的
type GitIgnore struct {
	patterns []string
	rules    []rule
}

// LoadGitIgnore 读取并解析指定路径的 .gitignore，文件不存在时返回空规则集
func LoadGitIgnore(gitignorePath string) (*GitIgnore, error) {
	f, err := os.Open(gitignorePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &GitIgnore{}, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ParseGitIgnoreLines(lines), nil
}

// LoadGitIgnoreFromDir 读取目录下的 .gitignore
func LoadGitIgnoreFromDir(dirPath string) (*GitIgnore, error) {
	return LoadGitIgnore(filepath.Join(dirPath, ".gitignore"))
}

// ParseGitIgnoreLines 解析规则行，忽略空行与注释
func ParseGitIgnoreLines(lines []string) *GitIgnore {
	gi := &GitIgnore{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		gi.patterns = append(gi.patterns, line)
		if r, ok := compile(line); ok {
			gi.rules = append(gi.rules, r)
		}
	}
	return gi
}

func compile(line string) (rule, bool) {
	r := rule{raw: line}
	p := line
	if strings.HasPrefix(p, "!") {
		r.negate = true
		p = p[1:]
	}
	if strings.HasSuffix(p, "/") {
		r.dirOnly = true
		p = strings.TrimRight(p, "/")
	}
	// 含有中间斜杠或以斜杠开头的规则相对根目录锚定
	anchored := strings.Contains(p, "/")
	p = strings.TrimPrefix(p, "/")
	if p == "" || !doublestar.ValidatePattern(p) {
		return rule{}, false
	}
	if !anchored {
		p = "**/" + p
	}
	r.self = p
	r.children = p + "/**"
	return r, true
}

// GetPatterns 返回加载的原始规则
func (gi *GitIgnore) GetPatterns() []string {
	return gi.patterns
}

// Match 判断相对路径（'/' 或系统分隔符均可）是否被忽略
// isDir 为 false 时以 '/' 结尾的目录规则只通过父目录命中
func (gi *GitIgnore) Match(path string, isDir bool) bool {
	if gi == nil {
		return false
	}
	p := strings.TrimPrefix(filepath.ToSlash(path), "./")
	ignored := false
	for _, r := range gi.rules {
		if r.matches(p, isDir) {
			ignored = !r.negate
		}
	}
	return ignored
}

// IsIgnored 在不知道路径类型时判断是否忽略，按目录处理
func (gi *GitIgnore) IsIgnored(path string) bool {
	return gi.Match(path, true)
}

func (r rule) matches(p string, isDir bool) bool {
	if ok, _ := doublestar.Match(r.children, p); ok {
		return true
	}
	if r.dirOnly && !isDir {
		return false
	}
	ok, _ := doublestar.Match(r.self, p)
	return ok
}
