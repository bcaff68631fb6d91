package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encode 把 v 编码为 json、yaml 或 toml 文本，结果以换行结尾
func Encode(format string, v any) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	switch format {
	case "json":
		b, err = json.MarshalIndent(v, "", "  ")
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(v); err == nil {
			err = enc.Close()
		}
		b = buf.Bytes()
	case "toml":
		b, err = toml.Marshal(v)
	default:
		return nil, fmt.Errorf("unsupported encoding %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to %s: %w", strings.ToUpper(format), err)
	}
	if len(b) == 0 || b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}
	return b, nil
}

// Print 编码 v 并写入 w，color 为 true 时附带语法高亮
func Print(w io.Writer, format string, v any, color bool) error {
	b, err := Encode(format, v)
	if err != nil {
		return err
	}
	out := string(b)
	if color {
		out = Highlight(format, out)
	}
	_, err = io.WriteString(w, out)
	return err
}

type palette struct {
	key, str, num, boolean, null, punct lipgloss.Style
}

func newPalette() palette {
	return palette{
		key:     lipgloss.NewStyle().Foreground(ColorKey).Bold(true),
		str:     lipgloss.NewStyle().Foreground(ColorAccentText),
		num:     lipgloss.NewStyle().Foreground(ColorNumber),
		boolean: lipgloss.NewStyle().Foreground(ColorBool),
		null:    lipgloss.NewStyle().Foreground(ColorComment),
		punct:   lipgloss.NewStyle().Foreground(ColorPunct),
	}
}

// Highlight 对已格式化的 json/yaml/toml 文本做逐行的轻量高亮
// 缩进与空白保持原样；其他格式原样返回
func Highlight(format, text string) string {
	if format != "json" && format != "yaml" && format != "toml" {
		return text
	}
	p := newPalette()
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = p.line(format, line)
	}
	return strings.Join(lines, "\n")
}

func (p palette) line(format, line string) string {
	body := strings.TrimLeft(line, " \t")
	if body == "" {
		return line
	}

	var b strings.Builder
	b.WriteString(line[:len(line)-len(body)])

	switch {
	case format != "json" && strings.HasPrefix(body, "#"):
		b.WriteString(p.null.Render(body))
		return b.String()
	case format == "toml" && strings.HasPrefix(body, "["):
		b.WriteString(p.key.Render(body))
		return b.String()
	case format == "yaml" && (body == "-" || strings.HasPrefix(body, "- ")):
		b.WriteString(p.punct.Render("-"))
		body = body[1:]
		if body != "" {
			b.WriteByte(' ')
			body = body[1:]
		}
	}

	sep := byte(':')
	if format == "toml" {
		sep = '='
	}
	if i := indexUnquoted(body, sep); i > 0 && (format != "json" || body[0] == '"') {
		key := strings.TrimRight(body[:i], " ")
		b.WriteString(p.key.Render(key))
		b.WriteString(body[len(key):i])
		b.WriteString(p.punct.Render(string(sep)))
		body = body[i+1:]
	}
	p.values(&b, body)
	return b.String()
}

// values 为值部分的字符串、数字、布尔、null 与标点着色
func (p palette) values(b *strings.Builder, s string) {
	for i := 0; i < len(s); {
		ch := s[i]
		switch {
		case ch == '"' || ch == '\'':
			j := quotedEnd(s, i)
			b.WriteString(p.str.Render(s[i:j]))
			i = j
		case isDigit(ch) || (ch == '-' && i+1 < len(s) && isDigit(s[i+1])):
			j := numberEnd(s, i)
			b.WriteString(p.num.Render(s[i:j]))
			i = j
		case isWordByte(ch):
			j := i
			for j < len(s) && isWordByte(s[j]) {
				j++
			}
			switch w := s[i:j]; w {
			case "true", "false":
				b.WriteString(p.boolean.Render(w))
			case "null":
				b.WriteString(p.null.Render(w))
			default:
				b.WriteString(w)
			}
			i = j
		case strings.IndexByte("{}[],", ch) >= 0:
			b.WriteString(p.punct.Render(string(ch)))
			i++
		case ch == '~':
			b.WriteString(p.null.Render("~"))
			i++
		default:
			b.WriteByte(ch)
			i++
		}
	}
}

// indexUnquoted 返回第一个不在引号内的 target 位置，找不到返回 -1
func indexUnquoted(s string, target byte) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"', '\'':
			i = quotedEnd(s, i) - 1
		case target:
			return i
		}
	}
	return -1
}

// quotedEnd 返回从 i 开始的引号 token 的结束位置（半开区间）
// 双引号支持反斜杠转义，单引号以连续两个单引号转义
func quotedEnd(s string, i int) int {
	q := s[i]
	for j := i + 1; j < len(s); j++ {
		switch {
		case q == '"' && s[j] == '\\':
			j++
		case s[j] == q && q == '\'' && j+1 < len(s) && s[j+1] == '\'':
			j++
		case s[j] == q:
			return j + 1
		}
	}
	return len(s)
}

// numberEnd 返回从 i 开始的数字 token 的结束位置
func numberEnd(s string, i int) int {
	j := i
	if s[j] == '-' {
		j++
	}
	for j < len(s) && (isDigit(s[j]) || strings.IndexByte(".eE+-", s[j]) >= 0) {
		j++
	}
	return j
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isWordByte(c byte) bool {
	return c == '_' || isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'z')
}
