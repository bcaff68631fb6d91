package models

import "github.com/yeisme/locscope/pkg/lang"

// FileStats 是单个文件的行分类统计，是可复用的基本单位
// 处理完成后始终满足 Blank + Comment + Code == Total
type FileStats struct {
	Blank     int `json:"blank" yaml:"blank" toml:"blank"`             // 空白行数
	Comment   int `json:"comment" yaml:"comment" toml:"comment"`       // 注释行数
	Code      int `json:"code" yaml:"code" toml:"code"`                // 代码行数
	Variables int `json:"variables" yaml:"variables" toml:"variables"` // 估算的变量声明数
	Total     int `json:"total" yaml:"total" toml:"total"`             // 总行数
}

// Observe 累加一行的分类结果
func (s *FileStats) Observe(r lang.LineResult) {
	switch r.Kind {
	case lang.Blank:
		s.Blank++
	case lang.Comment:
		s.Comment++
	default:
		s.Code++
	}
	s.Variables += r.Variables
	s.Total++
}

// Fold 把逐行结果折叠为文件统计
func Fold(results []lang.LineResult) FileStats {
	var s FileStats
	for _, r := range results {
		s.Observe(r)
	}
	return s
}

// Add 累加另一份统计
func (s *FileStats) Add(o FileStats) {
	s.Blank += o.Blank
	s.Comment += o.Comment
	s.Code += o.Code
	s.Variables += o.Variables
	s.Total += o.Total
}

// Valid 检查三类行数之和是否等于总行数
func (s FileStats) Valid() bool {
	return s.Blank+s.Comment+s.Code == s.Total
}

// Summary 计算百分比等派生指标
func (s FileStats) Summary() Summary {
	return summarize(s, 1)
}

// Summary 是展示用的派生指标，总数为 0 时各项均为 0
type Summary struct {
	BlankPercent     float64 `json:"blank_percent" yaml:"blank_percent" toml:"blank_percent"`
	CommentPercent   float64 `json:"comment_percent" yaml:"comment_percent" toml:"comment_percent"`
	CodePercent      float64 `json:"code_percent" yaml:"code_percent" toml:"code_percent"`
	VariablesPerLine float64 `json:"variables_per_line" yaml:"variables_per_line" toml:"variables_per_line"`
	AvgLinesPerFile  float64 `json:"avg_lines_per_file" yaml:"avg_lines_per_file" toml:"avg_lines_per_file"`
}

func summarize(s FileStats, files int) Summary {
	var sum Summary
	if s.Total > 0 {
		t := float64(s.Total)
		sum.BlankPercent = 100 * float64(s.Blank) / t
		sum.CommentPercent = 100 * float64(s.Comment) / t
		sum.CodePercent = 100 * float64(s.Code) / t
		sum.VariablesPerLine = float64(s.Variables) / t
	}
	if files > 0 {
		sum.AvgLinesPerFile = float64(s.Total) / float64(files)
	}
	return sum
}

// FileEntry 是文件夹结果中的单个文件
type FileEntry struct {
	Path     string    `json:"path" yaml:"path" toml:"path"`             // 相对于分析根目录的路径
	Language string    `json:"language" yaml:"language" toml:"language"` // 语言名称
	Stats    FileStats `json:"stats" yaml:"stats" toml:"stats"`
}

// SkipReason 说明文件为何未计入统计
type SkipReason string

const (
	SkipUnsupported SkipReason = "unsupported"
	SkipTooLarge    SkipReason = "too_large"
	SkipUnreadable  SkipReason = "unreadable"
	SkipVendor      SkipReason = "vendor"
	SkipBinary      SkipReason = "binary"
)

// SkippedFile 记录被跳过的文件，不参与任何汇总
type SkippedFile struct {
	Path   string     `json:"path" yaml:"path" toml:"path"`
	Reason SkipReason `json:"reason" yaml:"reason" toml:"reason"`
	// Detected 是按内容推测出的语言，仅作提示
	Detected string `json:"detected,omitempty" yaml:"detected,omitempty" toml:"detected,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// LanguageStats 存储单一语言的聚合统计信息
type LanguageStats struct {
	Files     int `json:"files" yaml:"files" toml:"files"`
	FileStats `yaml:",inline"`
}

// FolderStats 是文件夹分析的顶层结果
// 各数值字段等于成功分析的文件统计之和
type FolderStats struct {
	Root       string `json:"root,omitempty" yaml:"root,omitempty" toml:"root,omitempty"`
	TotalFiles int    `json:"total_files" yaml:"total_files" toml:"total_files"`
	TotalLines int    `json:"total_lines" yaml:"total_lines" toml:"total_lines"`
	Blank      int    `json:"blank" yaml:"blank" toml:"blank"`
	Comment    int    `json:"comment" yaml:"comment" toml:"comment"`
	Code       int    `json:"code" yaml:"code" toml:"code"`
	Variables  int    `json:"variables" yaml:"variables" toml:"variables"`

	// Languages 键为语言名称，使用指针便于遍历文件时直接修改
	Languages map[string]*LanguageStats `json:"languages" yaml:"languages" toml:"languages"`
	Files     []FileEntry               `json:"files,omitempty" yaml:"files,omitempty" toml:"files,omitempty"`
	Skipped   []SkippedFile             `json:"skipped,omitempty" yaml:"skipped,omitempty" toml:"skipped,omitempty"`
}

// NewFolderStats 返回空的文件夹统计
func NewFolderStats() FolderStats {
	return FolderStats{Languages: make(map[string]*LanguageStats)}
}

// AddFile 把一个成功分析的文件计入汇总
func (f *FolderStats) AddFile(e FileEntry) {
	if f.Languages == nil {
		f.Languages = make(map[string]*LanguageStats)
	}
	f.TotalFiles++
	f.TotalLines += e.Stats.Total
	f.Blank += e.Stats.Blank
	f.Comment += e.Stats.Comment
	f.Code += e.Stats.Code
	f.Variables += e.Stats.Variables

	ls, ok := f.Languages[e.Language]
	if !ok {
		ls = &LanguageStats{}
		f.Languages[e.Language] = ls
	}
	ls.Files++
	ls.Add(e.Stats)
	f.Files = append(f.Files, e)
}

// Skip 记录一个被跳过的文件
func (f *FolderStats) Skip(s SkippedFile) {
	f.Skipped = append(f.Skipped, s)
}

// Totals 以 FileStats 形式返回文件夹总计
func (f FolderStats) Totals() FileStats {
	return FileStats{
		Blank:     f.Blank,
		Comment:   f.Comment,
		Code:      f.Code,
		Variables: f.Variables,
		Total:     f.TotalLines,
	}
}

// Summary 计算文件夹级派生指标
func (f FolderStats) Summary() Summary {
	return summarize(f.Totals(), f.TotalFiles)
}

// FileResult 是单文件分析的结果
type FileResult struct {
	Path     string        `json:"path" yaml:"path" toml:"path"`
	Language string        `json:"language" yaml:"language" toml:"language"`
	Stats    FileStats     `json:"stats" yaml:"stats" toml:"stats"`
	Lines    []lang.Detail `json:"lines,omitempty" yaml:"lines,omitempty" toml:"lines,omitempty"`
}
