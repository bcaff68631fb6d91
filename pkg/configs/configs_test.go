package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/locscope/pkg/lang"
	"github.com/yeisme/locscope/pkg/utils/count"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func Test_LoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, "empty.yaml", "version: \"1.0\"\n")
	cfg, v, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, v)

	assert.Equal(t, "locscope", cfg.App.Name)
	assert.Equal(t, count.DefaultMaxLines, cfg.Analysis.MaxLines)
	assert.Equal(t, count.DefaultMaxFileSizeBytes, cfg.Analysis.MaxFileSize)
	assert.True(t, cfg.Analysis.RespectGitignore)
	assert.Equal(t, 300, cfg.Watch.Debounce)
	assert.Equal(t, path, v.ConfigFileUsed())
}

func Test_LoadConfig_FileAndEnv(t *testing.T) {
	path := writeConfig(t, "locscope.yaml", `
analysis:
  max_lines: 10
  exclude: ["build"]
  languages:
    - name: Lua
      extensions: [".LUA"]
      line_comment: "--"
      block_start: "--[["
      block_end: "]]"
`)
	t.Setenv("LOCSCOPE_ANALYSIS_BATCH_SIZE", "7")

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Analysis.MaxLines)
	assert.Equal(t, 7, cfg.Analysis.BatchSize)
	assert.Equal(t, []string{"build"}, cfg.Analysis.Exclude)

	opts, err := cfg.Analysis.Options()
	require.NoError(t, err)
	assert.Equal(t, 10, opts.MaxLines)
	assert.NotNil(t, opts.Cache)

	r, ok := opts.Registry.Resolve("init.lua")
	require.True(t, ok)
	assert.Equal(t, "Lua", r.Name)
	assert.Equal(t, []string{"lua"}, r.Extensions)
	assert.Equal(t, lang.PolicyInline, r.Policy)
	assert.Equal(t, lang.FamilyNone, r.Family)

	// 内置语言仍然可用
	_, ok = opts.Registry.Resolve("Main.java")
	assert.True(t, ok)
}

func Test_LoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"policy.yaml":   "analysis:\n  languages:\n    - {name: X, extensions: [x], policy: smart}\n",
		"noext.yaml":    "analysis:\n  languages:\n    - {name: X}\n",
		"dup.yaml":      "analysis:\n  languages:\n    - {name: X, extensions: [x]}\n    - {name: x, extensions: [y]}\n",
		"negative.yaml": "analysis:\n  batch_size: -1\n",
		"broken.yaml":   "analysis: [\n",
		"block.yaml":    "analysis:\n  languages:\n    - {name: X, extensions: [x], block_start: \"{-\"}\n",
		"conc.yaml":     "analysis:\n  concurrency: -2\n",
	}
	for name, content := range cases {
		path := writeConfig(t, name, content)
		if _, _, err := LoadConfig(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func Test_CreateDefaultConfig_RoundTrip(t *testing.T) {
	for _, format := range []OutputFormat{FormatYAML, FormatJSON, FormatTOML} {
		path := filepath.Join(t.TempDir(), "nested", DefaultConfigPath(format))
		require.NoError(t, CreateDefaultConfig(path, format), format)
		assert.Error(t, CreateDefaultConfig(path, format), "existing file is kept")

		cfg, _, err := LoadConfig(path)
		require.NoError(t, err, format)
		assert.Equal(t, count.DefaultMaxLines, cfg.Analysis.MaxLines, format)
		assert.Equal(t, "table", cfg.App.Format, format)
		assert.Equal(t, []string{"**/*.tmp", "**/*.swp", "**/*.log", "**/.git/**", "**/node_modules/**"}, cfg.Watch.IgnorePatterns, format)
	}

	assert.Error(t, CreateDefaultConfig(filepath.Join(t.TempDir(), "x.txt"), FormatText))
}

func Test_GetConfigSection(t *testing.T) {
	path := writeConfig(t, "c.yaml", "analysis:\n  max_lines: 5\n")
	_, v, err := LoadConfig(path)
	require.NoError(t, err)

	sec, err := GetConfigSection(v, "Analysis", true)
	require.NoError(t, err)
	m, ok := sec.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 5, m["max_lines"])
	assert.Contains(t, m, "respect_gitignore")

	_, err = GetConfigSection(v, "nope", true)
	assert.Error(t, err)

	raw, err := GetConfigSection(v, "analysis", false)
	require.NoError(t, err)
	assert.NotNil(t, raw)
}

func Test_ParseOutputFormat(t *testing.T) {
	f, err := ParseOutputFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = ParseOutputFormat("xml")
	assert.Error(t, err)
}
