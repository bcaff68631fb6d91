package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--quiet"}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func Test_LanguagesJSON(t *testing.T) {
	out, err := execute(t, "languages", "python", "--json")
	require.NoError(t, err)

	var got struct {
		Languages []struct {
			Name string `json:"name"`
		} `json:"languages"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got.Languages)
	assert.Equal(t, "Python", got.Languages[0].Name)
}

func Test_DirJSON(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("x = 1\n# done\n"), 0o644))

	out, err := execute(t, "dir", root, "--format", "json")
	require.NoError(t, err)

	var got struct {
		TotalFiles int `json:"total_files"`
		Variables  int `json:"variables"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.TotalFiles)
	assert.Equal(t, 1, got.Variables)
}

func Test_ConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locscope.toml")

	out, err := execute(t, "config", "init", "--path", path, "--format", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "created")

	out, err = execute(t, "config", "validate", path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "is valid"))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("analysis:\n  batch_size: -1\n  unknown: 1\n"), 0o644))
	_, err = execute(t, "config", "validate", bad)
	require.Error(t, err)
}

func Test_VersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--json")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, got, "version")
	assert.Contains(t, got, "go_version")
}
