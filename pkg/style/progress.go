package style

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Progress 是一个单行终端进度条，通过 '\r' 原地刷新
// 非终端输出上 NewProgress 返回禁用的进度条，所有方法都不写入任何内容
type Progress struct {
	mu      sync.Mutex
	out     io.Writer
	label   string
	width   int
	enabled bool
	last    string
	drawn   bool
}

const progressBarWidth = 24

// NewProgress 创建进度条，仅当 out 是终端时启用
func NewProgress(out io.Writer, label string) *Progress {
	return newProgress(out, label, IsTerminal(out))
}

func newProgress(out io.Writer, label string, enabled bool) *Progress {
	width := detectTerminalWidth(out)
	if width <= 0 {
		width = 80
	}
	return &Progress{out: out, label: label, width: width, enabled: enabled}
}

// Set 以百分比（0-100）刷新进度
func (p *Progress) Set(percent float64) {
	p.render(percent, "")
}

// Step 以 done/total 刷新进度，并在末尾显示当前条目名
func (p *Progress) Step(done, total int, name string) {
	if total <= 0 {
		return
	}
	p.render(100*float64(done)/float64(total), fmt.Sprintf("%d/%d %s", done, total, name))
}

// Done 清除进度条所在行
func (p *Progress) Done() {
	if p == nil || !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.drawn {
		_, _ = fmt.Fprintf(p.out, "\r%s\r", strings.Repeat(" ", p.width-1))
		p.drawn = false
		p.last = ""
	}
}

func (p *Progress) render(percent float64, suffix string) {
	if p == nil || !p.enabled {
		return
	}
	percent = min(max(percent, 0), 100)
	filled := int(percent / 100 * progressBarWidth)

	bar := lipgloss.NewStyle().Foreground(ColorAccentPrimary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(ColorBorder).Render(strings.Repeat("░", progressBarWidth-filled))
	head := fmt.Sprintf("%s %s %3.0f%%", p.label, bar, percent)

	// 标签、百分比与两侧空格之外的宽度留给 suffix
	room := p.width - 1 - (len(p.label) + progressBarWidth + 7)
	if suffix != "" && room > 4 {
		head += " " + TruncateLeft(suffix, room-1)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if head == p.last {
		return
	}
	pad := ""
	if n := len(p.last) - len(head); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	_, _ = fmt.Fprintf(p.out, "\r%s%s", head, pad)
	p.last = head
	p.drawn = true
}
