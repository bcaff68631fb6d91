package configs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/yeisme/locscope/pkg/lang"
	"github.com/yeisme/locscope/pkg/utils/chunk"
	"github.com/yeisme/locscope/pkg/utils/count"
)

// AnalysisConfig 分析与目录遍历配置
type AnalysisConfig struct {
	BatchSize        int              `mapstructure:"batch_size" jsonschema:"minimum=0,description=Lines per batch (0 means default)"`
	MaxLines         int              `mapstructure:"max_lines" jsonschema:"minimum=0,description=Reject files with more lines than this"`
	MaxFileSize      int64            `mapstructure:"max_file_size" jsonschema:"description=Max file size in bytes (negative disables the check)"`
	Concurrency      int              `mapstructure:"concurrency" jsonschema:"minimum=0,description=Concurrent file reads (0 means number of CPUs)"`
	CacheSize        int              `mapstructure:"cache_size" jsonschema:"minimum=0,description=Entries kept in the content hash cache (0 disables it)"`
	RespectGitignore bool             `mapstructure:"respect_gitignore"`
	FollowSymlinks   bool             `mapstructure:"follow_symlinks"`
	SkipVendor       bool             `mapstructure:"skip_vendor"`
	Include          []string         `mapstructure:"include" jsonschema:"description=Doublestar globs; when set only matching paths are analyzed"`
	Exclude          []string         `mapstructure:"exclude"`
	Languages        []LanguageConfig `mapstructure:"languages" jsonschema:"description=Extra languages registered after the built-in ones"`
}

// LanguageConfig 自定义语言，只统计行，不估算变量（除非指定 family）
type LanguageConfig struct {
	Name        string   `mapstructure:"name" jsonschema:"required"`
	Extensions  []string `mapstructure:"extensions" jsonschema:"required,minItems=1"`
	LineComment string   `mapstructure:"line_comment"`
	BlockStart  string   `mapstructure:"block_start"`
	BlockEnd    string   `mapstructure:"block_end"`
	Policy      string   `mapstructure:"policy" jsonschema:"enum=basic,enum=inline"`
	Family      string   `mapstructure:"family" jsonschema:"enum=none,enum=script,enum=typed,enum=indent"`
}

func setAnalysisConfigDefaults(v *viper.Viper) {
	v.SetDefault("analysis.batch_size", chunk.DefaultBatchSize)
	v.SetDefault("analysis.max_lines", count.DefaultMaxLines)
	v.SetDefault("analysis.max_file_size", count.DefaultMaxFileSizeBytes)
	v.SetDefault("analysis.concurrency", 0)
	v.SetDefault("analysis.cache_size", 1024)
	v.SetDefault("analysis.respect_gitignore", true)
	v.SetDefault("analysis.follow_symlinks", false)
	v.SetDefault("analysis.skip_vendor", true)
	v.SetDefault("analysis.include", []string{})
	v.SetDefault("analysis.exclude", []string{})
	v.SetDefault("analysis.languages", []LanguageConfig{})
}

// Rule 把自定义语言转换为 lang.Rule
func (l LanguageConfig) Rule() (*lang.Rule, error) {
	policy, err := lang.ParsePolicy(l.Policy)
	if err != nil {
		return nil, fmt.Errorf("language %s: %w", l.Name, err)
	}
	family, err := lang.ParseFamily(l.Family)
	if err != nil {
		return nil, fmt.Errorf("language %s: %w", l.Name, err)
	}

	exts := make([]string, 0, len(l.Extensions))
	for _, e := range l.Extensions {
		exts = append(exts, strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), ".")))
	}
	r := &lang.Rule{
		Name:        strings.TrimSpace(l.Name),
		LineComment: l.LineComment,
		BlockStart:  l.BlockStart,
		BlockEnd:    l.BlockEnd,
		Extensions:  exts,
		Family:      family,
		Policy:      policy,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate 检查数值范围与自定义语言
func (a AnalysisConfig) Validate() error {
	var errs []error
	if a.BatchSize < 0 {
		errs = append(errs, fmt.Errorf("analysis.batch_size must be >= 0, got %d", a.BatchSize))
	}
	if a.MaxLines < 0 {
		errs = append(errs, fmt.Errorf("analysis.max_lines must be >= 0, got %d", a.MaxLines))
	}
	if a.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("analysis.concurrency must be >= 0, got %d", a.Concurrency))
	}
	if a.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("analysis.cache_size must be >= 0, got %d", a.CacheSize))
	}
	seen := make(map[string]bool)
	for _, l := range a.Languages {
		if _, err := l.Rule(); err != nil {
			errs = append(errs, err)
			continue
		}
		key := strings.ToLower(strings.TrimSpace(l.Name))
		if seen[key] {
			errs = append(errs, fmt.Errorf("language %s: defined more than once", l.Name))
		}
		seen[key] = true
	}
	return errors.Join(errs...)
}

// Registry 返回内置语言加上自定义语言的注册表
// 自定义语言排在内置语言之后，与内置扩展名冲突时内置语言优先
func (a AnalysisConfig) Registry() (*lang.Registry, error) {
	if len(a.Languages) == 0 {
		return lang.Default(), nil
	}
	rules := lang.DefaultRules()
	for _, l := range a.Languages {
		r, err := l.Rule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return lang.NewRegistry(rules...), nil
}

// Options 把配置转换为 count.Options，缓存大小为 0 时不创建缓存
func (a AnalysisConfig) Options() (count.Options, error) {
	reg, err := a.Registry()
	if err != nil {
		return count.Options{}, err
	}
	opts := count.Options{
		Include:          a.Include,
		Exclude:          a.Exclude,
		RespectGitignore: a.RespectGitignore,
		FollowSymlinks:   a.FollowSymlinks,
		SkipVendor:       a.SkipVendor,
		MaxFileSizeBytes: a.MaxFileSize,
		MaxLines:         a.MaxLines,
		BatchSize:        a.BatchSize,
		Concurrency:      a.Concurrency,
		Registry:         reg,
	}
	if a.CacheSize > 0 {
		if opts.Cache, err = count.NewStatsCache(a.CacheSize); err != nil {
			return count.Options{}, err
		}
	}
	return opts, nil
}
