// Package style 提供终端上的样式化输出：表格、高亮的结构化文本、Markdown、列表、树与进度条
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// 一套颜色，方便统一修改
const (
	// 主题强调色，用于标题背景与进度条
	ColorAccentPrimary = lipgloss.Color("#33A1FF")
	// 强调背景上的文本
	ColorAccentText = lipgloss.Color("#FFFFFF")
	// 普通文本
	ColorText = lipgloss.Color("#E4E4E4")
	// 边框与次要信息
	ColorBorder = lipgloss.Color("#444444")
	// 跳过/错误
	ColorDanger = lipgloss.Color("#FF5555")
	// 代码行
	ColorSuccess = lipgloss.Color("#22C55E")
	// 注释行
	ColorComment = lipgloss.Color("#6272A4")

	ColorKey    = lipgloss.Color("#55bcf4ff")
	ColorNumber = lipgloss.Color("#d4ec19ff")
	ColorBool   = lipgloss.Color("#dfab49ff")
	ColorPunct  = lipgloss.Color("#6B7280")
)

// DisableColor 让之后所有 lipgloss 渲染都不输出颜色
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
