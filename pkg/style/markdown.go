package style

import (
	"io"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown 渲染 Markdown 文本并写入 w
// width<=0 时使用终端宽度，结果限制在 [80, 120]；theme 为空时使用 dracula
// color 为 false 时使用无样式的 notty 主题
func RenderMarkdown(w io.Writer, input string, width int, theme string, color bool) error {
	if theme == "" {
		theme = "dracula"
	}
	if !color {
		theme = "notty"
	}
	termWidth := detectTerminalWidth(w)
	if termWidth <= 0 {
		termWidth = 80
	}
	if width <= 0 {
		width = termWidth
	}
	width = min(max(width, 80), 120)

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return err
	}

	out, err := r.Render(input)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
