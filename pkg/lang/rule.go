package lang

import (
	"errors"
	"fmt"
	"strings"
)

// Family 选择变量启发式规则族
type Family int

const (
	// FamilyNone 不估算变量，只统计行
	FamilyNone Family = iota
	// FamilyScript 花括号脚本类语言（JavaScript/TypeScript/C#/C/C++）
	FamilyScript
	// FamilyTyped 静态类型声明类语言（Java）
	FamilyTyped
	// FamilyIndent 缩进类语言（Python）
	FamilyIndent
)

// String 返回规则族名称
func (f Family) String() string {
	switch f {
	case FamilyScript:
		return "script"
	case FamilyTyped:
		return "typed"
	case FamilyIndent:
		return "indent"
	default:
		return "none"
	}
}

// ParseFamily 解析规则族名称，空串视为 none
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return FamilyNone, nil
	case "script":
		return FamilyScript, nil
	case "typed":
		return FamilyTyped, nil
	case "indent":
		return FamilyIndent, nil
	default:
		return FamilyNone, fmt.Errorf("unknown variable family %q (want none, script, typed or indent)", s)
	}
}

// Rule 描述一种语言的注释定界符、扩展名与变量规则族
// 注册后只读，可在多个分析之间共享
type Rule struct {
	Name        string   `json:"name" yaml:"name"`
	LineComment string   `json:"line_comment,omitempty" yaml:"line_comment,omitempty"`
	BlockStart  string   `json:"block_start,omitempty" yaml:"block_start,omitempty"`
	BlockEnd    string   `json:"block_end,omitempty" yaml:"block_end,omitempty"`
	Extensions  []string `json:"extensions" yaml:"extensions"`
	Family      Family   `json:"-" yaml:"-"`
	Policy      Policy   `json:"-" yaml:"-"`
}

// HasExtension 判断扩展名（不含点，大小写不敏感）是否属于该语言
func (r *Rule) HasExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, e := range r.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Validate 检查规则是否可以注册
func (r *Rule) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("language name is empty")
	}
	if len(r.Extensions) == 0 {
		return fmt.Errorf("language %s: no extensions", r.Name)
	}
	for _, e := range r.Extensions {
		if e == "" || strings.ContainsAny(e, "./\\") || e != strings.ToLower(e) {
			return fmt.Errorf("language %s: invalid extension %q", r.Name, e)
		}
	}
	if (r.BlockStart == "") != (r.BlockEnd == "") {
		return fmt.Errorf("language %s: block_start and block_end must be set together", r.Name)
	}
	return nil
}

// DefaultRules 返回内置语言表，顺序固定，扩展名冲突时靠前者优先
func DefaultRules() []*Rule {
	cStyle := func(name string, family Family, exts ...string) *Rule {
		return &Rule{
			Name:        name,
			LineComment: "//",
			BlockStart:  "/*",
			BlockEnd:    "*/",
			Extensions:  exts,
			Family:      family,
			Policy:      PolicyInline,
		}
	}

	return []*Rule{
		cStyle("Java", FamilyTyped, "java"),
		{
			Name:        "Python",
			LineComment: "#",
			BlockStart:  `"""`,
			BlockEnd:    `"""`,
			Extensions:  []string{"py", "pyw"},
			Family:      FamilyIndent,
			Policy:      PolicyInline,
		},
		cStyle("JavaScript", FamilyScript, "js", "jsx", "mjs"),
		cStyle("TypeScript", FamilyScript, "ts", "tsx"),
		cStyle("C#", FamilyScript, "cs"),
		cStyle("C++", FamilyScript, "cpp", "cc", "cxx", "h", "hpp"),
		cStyle("C", FamilyScript, "c"),
	}
}
