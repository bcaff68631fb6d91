// Package lang 提供按行分类（空白/注释/代码）的状态机、按语言的变量声明启发式规则以及扩展名注册表
package lang

import (
	"fmt"
	"strings"
)

// Kind 表示一行源代码的分类
type Kind int

const (
	// Blank 去除空白后为空的行
	Blank Kind = iota
	// Comment 注释行（包含块注释的起止行）
	Comment
	// Code 其余所有行
	Code
)

// String 返回分类名称
func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Comment:
		return "comment"
	case Code:
		return "code"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText 以名称形式序列化，便于 JSON/YAML 输出
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText 解析 blank/comment/code
func (k *Kind) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "blank":
		*k = Blank
	case "comment":
		*k = Comment
	case "code":
		*k = Code
	default:
		return fmt.Errorf("unknown line kind %q", string(b))
	}
	return nil
}

// State 是单个文件分析期间的块注释状态
// 零值即初始状态（Normal），不得跨文件复用，除非先调用 Reset
type State struct {
	InBlockComment bool
}

// Reset 将状态恢复为 Normal
func (s *State) Reset() {
	s.InBlockComment = false
}

// Policy 决定代码与注释同处一行时如何分类
type Policy int

const (
	// PolicyBasic 只看行首：注释标记不在行首时一律视为代码
	PolicyBasic Policy = iota
	// PolicyInline 额外识别行内注释：注释标记前有代码时明确归为代码
	PolicyInline
)

// String 返回策略名称
func (p Policy) String() string {
	if p == PolicyInline {
		return "inline"
	}
	return "basic"
}

// ParsePolicy 解析策略名称，空串视为 inline
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inline":
		return PolicyInline, nil
	case "basic":
		return PolicyBasic, nil
	default:
		return PolicyBasic, fmt.Errorf("unknown comment policy %q (want basic or inline)", s)
	}
}

// ParseLine 按优先级对一行分类，并在需要时修改 st
//
// 顺序：空白 > 块注释延续 > 行首单行注释 > 行首块注释开始 > 代码
// 结束块注释的那一行即使后面跟着代码也记为注释
func (r *Rule) ParseLine(line string, st *State) Kind {
	kind, _ := r.parse(strings.TrimSpace(line), st)
	return kind
}

// parse 对已去除空白的行分类；第二个返回值表示代码后跟有行内注释（仅 PolicyInline）
func (r *Rule) parse(trimmed string, st *State) (Kind, bool) {
	if trimmed == "" {
		return Blank, false
	}

	if st.InBlockComment {
		if r.BlockEnd != "" && strings.Contains(trimmed, r.BlockEnd) {
			st.InBlockComment = false
		}
		return Comment, false
	}

	if r.LineComment != "" && strings.HasPrefix(trimmed, r.LineComment) {
		return Comment, false
	}

	if r.BlockStart != "" && strings.HasPrefix(trimmed, r.BlockStart) {
		if r.BlockEnd != "" && !r.closesOnSameLine(trimmed) {
			st.InBlockComment = true
		}
		return Comment, false
	}

	if r.Policy == PolicyInline {
		return Code, r.hasInlineComment(trimmed)
	}
	return Code, false
}

// closesOnSameLine 判断以块注释开始标记开头的行是否同时包含结束标记
// PolicyBasic 在整行中查找（起止标记相同的语言中开始标记本身即算作结束），
// PolicyInline 只在开始标记之后查找
func (r *Rule) closesOnSameLine(trimmed string) bool {
	if r.Policy == PolicyInline {
		return strings.Contains(trimmed[len(r.BlockStart):], r.BlockEnd)
	}
	return strings.Contains(trimmed, r.BlockEnd)
}

// hasInlineComment 报告注释标记是否出现在非空代码之后
// 这样的行归为代码，且行内的块注释开始标记不会进入块注释状态
func (r *Rule) hasInlineComment(trimmed string) bool {
	for _, tok := range []string{r.LineComment, r.BlockStart} {
		if tok == "" {
			continue
		}
		if i := strings.Index(trimmed, tok); i > 0 && strings.TrimSpace(trimmed[:i]) != "" {
			return true
		}
	}
	return false
}

// LineResult 是单行的分类结果
type LineResult struct {
	Kind      Kind `json:"kind" yaml:"kind" toml:"kind"`
	Variables int  `json:"variables" yaml:"variables" toml:"variables"`
}

// Classify 对一行执行分类与变量估算
// 变量估算与分类结果无关，块注释与文档字符串内部的行同样参与估算
func (r *Rule) Classify(line string, st *State) LineResult {
	return LineResult{
		Kind:      r.ParseLine(line, st),
		Variables: r.CountVariables(line),
	}
}

// Detail 是一行的详细分析视图
type Detail struct {
	Number        int    `json:"number" yaml:"number" toml:"number"`
	Kind          Kind   `json:"kind" yaml:"kind" toml:"kind"`
	Variables     int    `json:"variables" yaml:"variables" toml:"variables"`
	Original      string `json:"original" yaml:"original" toml:"original"`
	Trimmed       string `json:"-" yaml:"-" toml:"-"`
	Length        int    `json:"length" yaml:"length" toml:"length"`
	HasContent    bool   `json:"has_content" yaml:"has_content" toml:"has_content"`
	InlineComment bool   `json:"inline_comment,omitempty" yaml:"inline_comment,omitempty" toml:"inline_comment,omitempty"`
}

// AnalyzeLine 返回带原文与长度信息的分析结果
func (r *Rule) AnalyzeLine(line string, st *State) Detail {
	trimmed := strings.TrimSpace(line)
	kind, inline := r.parse(trimmed, st)
	d := Detail{
		Kind:          kind,
		Original:      line,
		Trimmed:       trimmed,
		Length:        len(line),
		HasContent:    trimmed != "",
		InlineComment: inline,
		Variables:     r.CountVariables(line),
	}
	return d
}

// SplitLines 按 '\n' 切分文本
// 以换行结尾的文本会产生一个末尾空行，与逐行计数的约定一致
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}
