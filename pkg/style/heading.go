package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// PrintHeading 打印一个区块标题
func PrintHeading(w io.Writer, title string) error {
	s := lipgloss.NewStyle().
		Foreground(ColorAccentText).
		Background(ColorAccentPrimary).
		Bold(true).
		Padding(0, 1)
	_, err := fmt.Fprintln(w, s.Render(strings.ToUpper(title)))
	return err
}

// KeyValue 是 PrintKeyValues 的一行
type KeyValue struct {
	Key   string
	Value string
}

// PrintKeyValues 以键对齐的方式打印键值列表
func PrintKeyValues(w io.Writer, items []KeyValue) error {
	width := 0
	for _, kv := range items {
		width = max(width, runewidth.StringWidth(kv.Key))
	}

	keyStyle := lipgloss.NewStyle().Foreground(ColorAccentPrimary).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(ColorText)
	for _, kv := range items {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(kv.Key))
		if _, err := fmt.Fprintf(w, "  %s%s  %s\n", keyStyle.Render(kv.Key), pad, valueStyle.Render(kv.Value)); err != nil {
			return err
		}
	}
	return nil
}
