package schema

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/locscope/pkg/configs"
)

func Test_GenConfigSchema(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenConfigSchema(&buf))
	out := buf.String()
	for _, key := range []string{`"max_lines"`, `"respect_gitignore"`, `"ignore_patterns"`, `"line_comment"`} {
		assert.Contains(t, out, key)
	}
}

func Test_ValidateConfigFile_Defaults(t *testing.T) {
	dir := t.TempDir()
	for _, format := range []configs.OutputFormat{configs.FormatYAML, configs.FormatJSON, configs.FormatTOML} {
		path := filepath.Join(dir, configs.DefaultConfigPath(format))
		require.NoError(t, configs.CreateDefaultConfig(path, format))
		if err := ValidateConfigFile(path); err != nil {
			t.Fatalf("%s: default config invalid: %v", format, err)
		}
	}
}

func Test_ValidateConfigFile_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown.yaml":  "analysis:\n  max_line: 10\n",
		"enum.yaml":     "app:\n  format: xml\n",
		"minimum.yaml":  "analysis:\n  concurrency: -1\n",
		"required.yaml": "analysis:\n  languages:\n    - name: Lua\n",
		"type.json":     `{"analysis": {"max_lines": "many"}}`,
	}
	dir := t.TempDir()
	for name, content := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		err := ValidateConfigFile(path)
		var verr ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: want ValidationError, got %v", name, err)
		}
		assert.NotEmpty(t, verr.Errors, name)
	}
}

func Test_ValidateConfigFile_Parse(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	assert.NoError(t, ValidateConfigFile(empty))

	ini := filepath.Join(dir, "c.ini")
	require.NoError(t, os.WriteFile(ini, []byte("a=1"), 0o644))
	assert.Error(t, ValidateConfigFile(ini))

	assert.Error(t, ValidateConfigFile(filepath.Join(dir, "missing.yaml")))
}
