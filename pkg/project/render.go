package project

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/yeisme/locscope/pkg/lang"
	"github.com/yeisme/locscope/pkg/models"
	"github.com/yeisme/locscope/pkg/style"
)

// folderReport 是文件夹结果的结构化输出
type folderReport struct {
	models.FolderStats `yaml:",inline"`
	Summary            models.Summary `json:"summary" yaml:"summary" toml:"summary"`
}

// fileReport 是单文件结果的结构化输出
type fileReport struct {
	models.FileResult `yaml:",inline"`
	Summary           models.Summary `json:"summary" yaml:"summary" toml:"summary"`
}

// lineTextWidth 逐行明细中原文列的最大显示宽度
const lineTextWidth = 60

// renderFolder 按格式输出文件夹结果
func renderFolder(w io.Writer, res *models.FolderStats, ro RenderOptions) error {
	switch {
	case ro.Format.structured():
		report := folderReport{FolderStats: *res, Summary: res.Summary()}
		if !ro.WithFiles {
			report.Files = nil
		}
		return style.Print(w, string(ro.Format), report, ro.Color)
	case ro.Format == FormatMarkdown:
		return style.RenderMarkdown(w, folderMarkdown(res, ro), ro.Width, "", ro.Color)
	default:
		return printFolderTable(w, res, ro)
	}
}

// renderFile 按格式输出单文件结果
func renderFile(w io.Writer, res *models.FileResult, ro RenderOptions) error {
	switch {
	case ro.Format.structured():
		return style.Print(w, string(ro.Format), fileReport{FileResult: *res, Summary: res.Stats.Summary()}, ro.Color)
	case ro.Format == FormatMarkdown:
		return style.RenderMarkdown(w, fileMarkdown(res), ro.Width, "", ro.Color)
	default:
		return printFileTable(w, res, ro)
	}
}

func printFolderTable(w io.Writer, res *models.FolderStats, ro RenderOptions) error {
	if err := style.PrintHeading(w, "Summary"); err != nil {
		return err
	}
	if err := style.PrintKeyValues(w, folderSummary(res)); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w)

	headers, rows, footer := languageTable(res)
	if err := (style.Table{Headers: headers, Rows: rows, Footer: footer, Width: ro.Width}).Print(w); err != nil {
		return err
	}

	if ro.WithFiles && len(res.Files) > 0 {
		_, _ = fmt.Fprintln(w)
		if err := style.PrintHeading(w, "Files"); err != nil {
			return err
		}
		if ro.Tree {
			if err := style.PrintTree(w, fileTree(res)); err != nil {
				return err
			}
		} else {
			headers, rows := fileTable(res, ro.Width)
			if err := style.PrintTable(w, headers, rows, ro.Width); err != nil {
				return err
			}
		}
	}

	if ro.ShowSkipped && len(res.Skipped) > 0 {
		_, _ = fmt.Fprintln(w)
		if err := style.PrintHeading(w, "Skipped"); err != nil {
			return err
		}
		return style.PrintList(w, skippedItems(res.Skipped)...)
	}
	return nil
}

func folderSummary(res *models.FolderStats) []style.KeyValue {
	sum := res.Summary()
	items := []style.KeyValue{
		{Key: "Root", Value: res.Root},
		{Key: "Files", Value: strconv.Itoa(res.TotalFiles)},
		{Key: "Lines", Value: strconv.Itoa(res.TotalLines)},
		{Key: "Code", Value: countWithPercent(res.Code, sum.CodePercent)},
		{Key: "Comment", Value: countWithPercent(res.Comment, sum.CommentPercent)},
		{Key: "Blank", Value: countWithPercent(res.Blank, sum.BlankPercent)},
		{Key: "Variables", Value: fmt.Sprintf("%d (%.2f per line)", res.Variables, sum.VariablesPerLine)},
		{Key: "Avg lines/file", Value: fmt.Sprintf("%.1f", sum.AvgLinesPerFile)},
	}
	if len(res.Skipped) > 0 {
		items = append(items, style.KeyValue{Key: "Skipped", Value: strconv.Itoa(len(res.Skipped))})
	}
	return items
}

// sortedLanguages 按代码行数降序、名称升序排列语言
func sortedLanguages(res *models.FolderStats) []string {
	langs := make([]string, 0, len(res.Languages))
	for l := range res.Languages {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool {
		a, b := res.Languages[langs[i]], res.Languages[langs[j]]
		if a.Code != b.Code {
			return a.Code > b.Code
		}
		return langs[i] < langs[j]
	})
	return langs
}

// languageTable 构建语言统计表数据，TOTAL 行作为表尾
func languageTable(res *models.FolderStats) ([]string, [][]string, []string) {
	headers := []string{"language", "files", "code", "comment", "blank", "variables", "lines", "code%"}
	langs := sortedLanguages(res)
	rows := make([][]string, 0, len(langs))
	for _, l := range langs {
		ls := res.Languages[l]
		share := 0.0
		if res.Code > 0 {
			share = float64(ls.Code) * 100 / float64(res.Code)
		}
		rows = append(rows, []string{
			l,
			strconv.Itoa(ls.Files),
			strconv.Itoa(ls.Code),
			strconv.Itoa(ls.Comment),
			strconv.Itoa(ls.Blank),
			strconv.Itoa(ls.Variables),
			strconv.Itoa(ls.Total),
			percent(share),
		})
	}
	if len(rows) == 0 {
		return headers, rows, nil
	}
	footer := []string{
		"TOTAL",
		strconv.Itoa(res.TotalFiles),
		strconv.Itoa(res.Code),
		strconv.Itoa(res.Comment),
		strconv.Itoa(res.Blank),
		strconv.Itoa(res.Variables),
		strconv.Itoa(res.TotalLines),
		percent(100),
	}
	return headers, rows, footer
}

// fileTable 构建文件明细表数据，路径过长时保留尾部
func fileTable(res *models.FolderStats, width int) ([]string, [][]string) {
	headers := []string{"path", "language", "code", "comment", "blank", "variables", "lines"}
	pathWidth := 48
	if width > 0 {
		pathWidth = max(width/2, 16)
	}
	rows := make([][]string, 0, len(res.Files))
	for _, f := range res.Files {
		rows = append(rows, []string{
			style.TruncateLeft(f.Path, pathWidth),
			f.Language,
			strconv.Itoa(f.Stats.Code),
			strconv.Itoa(f.Stats.Comment),
			strconv.Itoa(f.Stats.Blank),
			strconv.Itoa(f.Stats.Variables),
			strconv.Itoa(f.Stats.Total),
		})
	}
	return headers, rows
}

// fileTree 把逐文件明细组织为目录树
func fileTree(res *models.FolderStats) style.TreeNode {
	byPath := make(map[string]models.FileEntry, len(res.Files))
	paths := make([]string, 0, len(res.Files))
	for _, f := range res.Files {
		byPath[f.Path] = f
		paths = append(paths, f.Path)
	}
	rootText := filepath.Base(res.Root)
	if res.Root == "" {
		rootText = "."
	}
	return style.PathTree(rootText, paths, func(p string) string {
		f := byPath[p]
		return fmt.Sprintf("%s  %s · %d code / %d lines", filepath.Base(p), f.Language, f.Stats.Code, f.Stats.Total)
	})
}

func skippedItems(skipped []models.SkippedFile) []any {
	items := make([]any, 0, len(skipped))
	for _, s := range skipped {
		items = append(items, describeSkip(s))
	}
	return items
}

func describeSkip(s models.SkippedFile) string {
	text := fmt.Sprintf("%s (%s", s.Path, s.Reason)
	if s.Detected != "" {
		text += ", looks like " + s.Detected
	}
	if s.Error != "" {
		text += ": " + s.Error
	}
	return text + ")"
}

func printFileTable(w io.Writer, res *models.FileResult, ro RenderOptions) error {
	if err := style.PrintHeading(w, res.Path); err != nil {
		return err
	}
	sum := res.Stats.Summary()
	items := []style.KeyValue{
		{Key: "Language", Value: res.Language},
		{Key: "Lines", Value: strconv.Itoa(res.Stats.Total)},
		{Key: "Code", Value: countWithPercent(res.Stats.Code, sum.CodePercent)},
		{Key: "Comment", Value: countWithPercent(res.Stats.Comment, sum.CommentPercent)},
		{Key: "Blank", Value: countWithPercent(res.Stats.Blank, sum.BlankPercent)},
		{Key: "Variables", Value: fmt.Sprintf("%d (%.2f per line)", res.Stats.Variables, sum.VariablesPerLine)},
	}
	if err := style.PrintKeyValues(w, items); err != nil {
		return err
	}
	if len(res.Lines) == 0 {
		return nil
	}
	_, _ = fmt.Fprintln(w)
	headers, rows := lineTable(res.Lines)
	return style.PrintTable(w, headers, rows, ro.Width)
}

// lineTable 构建逐行明细表数据
func lineTable(lines []lang.Detail) ([]string, [][]string) {
	headers := []string{"#", "kind", "vars", "len", "text"}
	rows := make([][]string, 0, len(lines))
	for _, d := range lines {
		kind := d.Kind.String()
		if d.InlineComment {
			kind += "+"
		}
		rows = append(rows, []string{
			strconv.Itoa(d.Number),
			kind,
			strconv.Itoa(d.Variables),
			strconv.Itoa(d.Length),
			style.Truncate(strings.ReplaceAll(d.Trimmed, "\t", " "), lineTextWidth),
		})
	}
	return headers, rows
}

func folderMarkdown(res *models.FolderStats, ro RenderOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", markdownTitle(res.Root))
	for _, kv := range folderSummary(res) {
		if kv.Key == "Root" {
			continue
		}
		fmt.Fprintf(&b, "- **%s**: %s\n", kv.Key, kv.Value)
	}
	b.WriteString("\n## Languages\n\n")
	headers, rows, footer := languageTable(res)
	if footer != nil {
		footer[0] = "**TOTAL**"
		rows = append(rows, footer)
	}
	writeMarkdownTable(&b, headers, rows)

	if ro.WithFiles && len(res.Files) > 0 {
		b.WriteString("\n## Files\n\n")
		headers, rows := fileTable(res, 0)
		for _, r := range rows {
			r[0] = "`" + r[0] + "`"
		}
		writeMarkdownTable(&b, headers, rows)
	}
	if ro.ShowSkipped && len(res.Skipped) > 0 {
		b.WriteString("\n## Skipped\n\n")
		for _, s := range res.Skipped {
			fmt.Fprintf(&b, "- %s\n", describeSkip(s))
		}
	}
	return b.String()
}

func fileMarkdown(res *models.FileResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", res.Path)
	sum := res.Stats.Summary()
	fmt.Fprintf(&b, "- **Language**: %s\n", res.Language)
	fmt.Fprintf(&b, "- **Lines**: %d\n", res.Stats.Total)
	fmt.Fprintf(&b, "- **Code**: %s\n", countWithPercent(res.Stats.Code, sum.CodePercent))
	fmt.Fprintf(&b, "- **Comment**: %s\n", countWithPercent(res.Stats.Comment, sum.CommentPercent))
	fmt.Fprintf(&b, "- **Blank**: %s\n", countWithPercent(res.Stats.Blank, sum.BlankPercent))
	fmt.Fprintf(&b, "- **Variables**: %d\n", res.Stats.Variables)
	if len(res.Lines) > 0 {
		b.WriteString("\n## Lines\n\n")
		headers, rows := lineTable(res.Lines)
		for _, r := range rows {
			if r[4] != "" {
				r[4] = "`" + strings.ReplaceAll(r[4], "`", "'") + "`"
			}
		}
		writeMarkdownTable(&b, headers, rows)
	}
	return b.String()
}

func markdownTitle(root string) string {
	if root == "" {
		return "Folder analysis"
	}
	return "Folder analysis: " + filepath.Base(root)
}

// writeMarkdownTable 写出 GFM 表格，数字列右对齐
func writeMarkdownTable(b *strings.Builder, headers []string, rows [][]string) {
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	align := make([]string, len(headers))
	for i := range headers {
		align[i] = "---"
		if numericColumn(rows, i) {
			align[i] = "--:"
		}
	}
	b.WriteString("| " + strings.Join(align, " | ") + " |\n")
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
}

// numericColumn 报告第 col 列除表尾外是否全是数字或百分比
func numericColumn(rows [][]string, col int) bool {
	seen := false
	for _, r := range rows {
		if col >= len(r) || strings.HasPrefix(r[0], "**") {
			continue
		}
		if _, err := strconv.ParseFloat(strings.TrimSuffix(r[col], "%"), 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}

func countWithPercent(n int, pct float64) string {
	return fmt.Sprintf("%d (%s)", n, percent(pct))
}

func percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
