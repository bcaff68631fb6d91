package style

import (
	"io"
	"os"
	"strconv"

	xterm "github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
)

// detectTerminalWidth 尝试从 writer 获取终端宽度，失败则返回 0
func detectTerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if cols, _, err := xterm.GetSize(f.Fd()); err == nil && cols > 0 {
			return cols
		}
	}
	// 某些环境只设置 COLUMNS
	if v := os.Getenv("COLUMNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// IsTerminal 判断 w 是否为终端
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// TruncateLeft 按显示宽度截断字符串，保留尾部并以 "…" 开头
// 适合路径：文件名比目录前缀更有辨识度
func TruncateLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}

	runes := []rune(s)
	used := 1
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if used+rw > width {
			break
		}
		used += rw
		i--
	}
	return "…" + string(runes[i:])
}

// Truncate 按显示宽度截断字符串尾部
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
