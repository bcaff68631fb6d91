package project

import (
	"fmt"
	"io"
	"strings"

	"github.com/yeisme/locscope/pkg/lang"
	"github.com/yeisme/locscope/pkg/style"
)

// LanguageInfo 是 languages 命令输出的一项
type LanguageInfo struct {
	Name        string   `json:"name" yaml:"name" toml:"name"`
	Extensions  []string `json:"extensions" yaml:"extensions" toml:"extensions"`
	LineComment string   `json:"line_comment,omitempty" yaml:"line_comment,omitempty" toml:"line_comment,omitempty"`
	BlockStart  string   `json:"block_start,omitempty" yaml:"block_start,omitempty" toml:"block_start,omitempty"`
	BlockEnd    string   `json:"block_end,omitempty" yaml:"block_end,omitempty" toml:"block_end,omitempty"`
	Family      string   `json:"family" yaml:"family" toml:"family"`
	Policy      string   `json:"policy" yaml:"policy" toml:"policy"`
}

// languageList 包一层以便 TOML 输出（顶层必须是表）
type languageList struct {
	Languages []LanguageInfo `json:"languages" yaml:"languages" toml:"languages"`
}

// ListLanguages 按注册顺序返回与 query 模糊匹配的语言
func ListLanguages(reg *lang.Registry, query string) []LanguageInfo {
	if reg == nil {
		reg = lang.Default()
	}
	rules := reg.Search(query)
	out := make([]LanguageInfo, 0, len(rules))
	for _, r := range rules {
		exts := make([]string, len(r.Extensions))
		for i, e := range r.Extensions {
			exts[i] = "." + e
		}
		out = append(out, LanguageInfo{
			Name:        r.Name,
			Extensions:  exts,
			LineComment: r.LineComment,
			BlockStart:  r.BlockStart,
			BlockEnd:    r.BlockEnd,
			Family:      r.Family.String(),
			Policy:      r.Policy.String(),
		})
	}
	return out
}

// ExecuteLanguagesCommand 输出支持的语言列表
func ExecuteLanguagesCommand(reg *lang.Registry, query string, ro RenderOptions, w io.Writer) error {
	infos := ListLanguages(reg, query)
	if len(infos) == 0 {
		return fmt.Errorf("no language matches %q", query)
	}

	if ro.Format.structured() {
		return style.Print(w, string(ro.Format), languageList{Languages: infos}, ro.Color)
	}

	headers := []string{"language", "extensions", "line", "block", "variables", "policy"}
	rows := make([][]string, 0, len(infos))
	for _, l := range infos {
		block := ""
		if l.BlockStart != "" {
			block = l.BlockStart + " " + l.BlockEnd
		}
		rows = append(rows, []string{l.Name, strings.Join(l.Extensions, " "), l.LineComment, block, l.Family, l.Policy})
	}

	if ro.Format == FormatMarkdown {
		var b strings.Builder
		b.WriteString("# Languages\n\n")
		for _, r := range rows {
			for i := 2; i <= 3; i++ {
				if r[i] != "" {
					r[i] = "`" + r[i] + "`"
				}
			}
		}
		writeMarkdownTable(&b, headers, rows)
		return style.RenderMarkdown(w, b.String(), ro.Width, "", ro.Color)
	}
	return style.PrintTable(w, headers, rows, ro.Width)
}
