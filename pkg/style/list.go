package style

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/list"
)

// PrintList 渲染一个圆点列表，items 可以嵌套 list.New() 生成的子列表
func PrintList(w io.Writer, items ...any) error {
	enumeratorStyle := lipgloss.NewStyle().
		Foreground(ColorAccentPrimary).
		MarginRight(1)
	itemStyle := lipgloss.NewStyle().Foreground(ColorText)

	l := list.New(items...).
		Enumerator(list.Bullet).
		EnumeratorStyle(enumeratorStyle).
		ItemStyle(itemStyle)

	_, err := fmt.Fprintln(w, l)
	return err
}

// SubList 构造一个可嵌套在 PrintList 中的子列表
func SubList(items ...any) *list.List {
	return list.New(items...).Enumerator(list.Dash)
}
