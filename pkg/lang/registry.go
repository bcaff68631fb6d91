package lang

import (
	"path/filepath"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Registry 按注册顺序保存语言规则，扩展名冲突时先注册者胜出
type Registry struct {
	rules []*Rule
}

// NewRegistry 使用给定规则创建注册表，规则在注册后不得修改
func NewRegistry(rules ...*Rule) *Registry {
	return &Registry{rules: append([]*Rule(nil), rules...)}
}

var defaultRegistry = NewRegistry(DefaultRules()...)

// Default 返回内置语言表对应的共享注册表
func Default() *Registry {
	return defaultRegistry
}

// Resolve 根据文件名最后一个 '.' 之后的扩展名（大小写不敏感）查找规则
// 没有文件名、没有扩展名或扩展名未知时返回 (nil, false)，调用方应视为不支持的文件
func (r *Registry) Resolve(filename string) (*Rule, bool) {
	ext := Extension(filename)
	if ext == "" {
		return nil, false
	}
	for _, rule := range r.rules {
		if rule.HasExtension(ext) {
			return rule, true
		}
	}
	return nil, false
}

// Extension 返回文件名的小写扩展名（不含点）
func Extension(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(base)), ".")
}

// Rules 按注册顺序返回所有规则
func (r *Registry) Rules() []*Rule {
	return append([]*Rule(nil), r.rules...)
}

// Lookup 按语言名称（大小写不敏感）查找规则
func (r *Registry) Lookup(name string) (*Rule, bool) {
	for _, rule := range r.rules {
		if strings.EqualFold(rule.Name, name) {
			return rule, true
		}
	}
	return nil, false
}

// Search 按名称或扩展名模糊匹配，空查询返回全部规则
func (r *Registry) Search(query string) []*Rule {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return r.Rules()
	}
	var out []*Rule
	for _, rule := range r.rules {
		s := strings.ToLower(rule.Name + " " + strings.Join(rule.Extensions, " "))
		if fuzzy.Match(q, s) || strings.Contains(s, q) {
			out = append(out, rule)
		}
	}
	return out
}
