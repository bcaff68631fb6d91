package style

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table 描述一个待渲染的表格
// 数字列（所有非空单元格都是数字或百分比）自动右对齐，Footer 非空时以粗体追加在末尾
type Table struct {
	Headers []string
	Rows    [][]string
	Footer  []string
	// Width 期望宽度；<=0 时探测终端宽度，失败回退到 80
	Width int
}

// PrintTable 用于标准化表格输出
func PrintTable(w io.Writer, headers []string, rows [][]string, width int) error {
	return Table{Headers: headers, Rows: rows, Width: width}.Print(w)
}

// Print 渲染表格到 w
func (t Table) Print(w io.Writer) error {
	width := t.Width
	if width <= 0 {
		if width = detectTerminalWidth(w); width <= 0 {
			width = 80
		}
	}

	rows := t.Rows
	if len(t.Footer) > 0 {
		rows = append(append([][]string(nil), t.Rows...), t.Footer)
	}
	numeric := numericColumns(len(t.Headers), rows)
	footerRow := -1
	if len(t.Footer) > 0 {
		footerRow = len(rows) - 1
	}

	re := lipgloss.NewRenderer(w)
	baseStyle := re.NewStyle().Padding(0, 1)
	headerStyle := baseStyle.Foreground(lipgloss.Color("252")).Bold(true)

	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = strings.ToUpper(h)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(re.NewStyle().Foreground(lipgloss.Color("238"))).
		Headers(headers...).
		Width(width).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := baseStyle
			if row == table.HeaderRow {
				s = headerStyle
			} else if row == footerRow {
				s = s.Bold(true)
			}
			if col < len(numeric) && numeric[col] {
				s = s.Align(lipgloss.Right)
			}
			return s
		})

	_, err := fmt.Fprintln(w, tbl)
	return err
}

// numericColumns 找出所有非空单元格都是数字的列
func numericColumns(n int, rows [][]string) []bool {
	out := make([]bool, n)
	for col := range out {
		seen := false
		out[col] = true
		for _, row := range rows {
			if col >= len(row) || row[col] == "" {
				continue
			}
			seen = true
			if !isNumeric(row[col]) {
				out[col] = false
				break
			}
		}
		out[col] = out[col] && seen
	}
	return out
}

func isNumeric(s string) bool {
	s = strings.TrimSuffix(s, "%")
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
