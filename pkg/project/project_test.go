package project

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"

	"github.com/yeisme/locscope/pkg/configs"
	gctx "github.com/yeisme/locscope/pkg/context"
	"github.com/yeisme/locscope/pkg/models"
	"github.com/yeisme/locscope/pkg/utils/count"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testContext(t *testing.T, ctx context.Context) *gctx.AppContext {
	t.Helper()
	nop := zerolog.Nop()
	return &gctx.AppContext{Context: ctx, Config: &configs.Config{}, Logger: &nop}
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func sampleTree(t *testing.T) string {
	return writeTree(t, map[string]string{
		"src/App.java": "// c\nint a = 1;\n",
		"tool.py":      "x = 1\n",
		"notes.txt":    "hello\n",
	})
}

func Test_ParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":         FormatTable,
		"TABLE":    FormatTable,
		"json":     FormatJSON,
		"yml":      FormatYAML,
		"toml":     FormatTOML,
		"md":       FormatMarkdown,
		"markdown": FormatMarkdown,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %v, %v want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for xml")
	}
}

func Test_ExecuteDirCommand_JSON(t *testing.T) {
	root := sampleTree(t)
	var buf bytes.Buffer
	opts := DirOptions{Render: RenderOptions{Format: FormatJSON, WithFiles: true}}
	require.NoError(t, ExecuteDirCommand(testContext(t, context.Background()), opts, []string{root}, &buf))

	var got struct {
		TotalFiles int `json:"total_files"`
		TotalLines int `json:"total_lines"`
		Code       int `json:"code"`
		Comment    int `json:"comment"`
		Blank      int `json:"blank"`
		Languages  map[string]struct {
			Files int `json:"files"`
			Total int `json:"total"`
		} `json:"languages"`
		Files   []models.FileEntry   `json:"files"`
		Skipped []models.SkippedFile `json:"skipped"`
		Summary models.Summary       `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, 2, got.TotalFiles)
	assert.Equal(t, 5, got.TotalLines)
	assert.Equal(t, 2, got.Code)
	assert.Equal(t, 1, got.Comment)
	assert.Equal(t, 2, got.Blank)
	assert.Equal(t, 1, got.Languages["Java"].Files)
	assert.Equal(t, 3, got.Languages["Java"].Total)
	assert.Len(t, got.Files, 2)
	assert.InDelta(t, 40.0, got.Summary.CodePercent, 0.001)
	assert.InDelta(t, 2.5, got.Summary.AvgLinesPerFile, 0.001)

	require.Len(t, got.Skipped, 1)
	assert.Equal(t, "notes.txt", got.Skipped[0].Path)
	assert.Equal(t, models.SkipUnsupported, got.Skipped[0].Reason)
}

func Test_ExecuteDirCommand_WithoutFiles(t *testing.T) {
	root := sampleTree(t)
	var buf bytes.Buffer
	opts := DirOptions{Render: RenderOptions{Format: FormatJSON}}
	require.NoError(t, ExecuteDirCommand(testContext(t, context.Background()), opts, []string{root}, &buf))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	if _, ok := got["files"]; ok {
		t.Fatal("per-file details should be omitted without WithFiles")
	}
}

func Test_ExecuteDirCommand_Table(t *testing.T) {
	root := sampleTree(t)
	var buf bytes.Buffer
	opts := DirOptions{Render: RenderOptions{Format: FormatTable, Width: 100, WithFiles: true, ShowSkipped: true}}
	require.NoError(t, ExecuteDirCommand(testContext(t, context.Background()), opts, []string{root}, &buf))

	out := buf.String()
	for _, want := range []string{"SUMMARY", "TOTAL", "Java", "Python", "src/App.java", "notes.txt"} {
		assert.Contains(t, out, want)
	}
}

func Test_ExecuteDirCommand_NoSupportedFiles(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "x\n"})
	err := ExecuteDirCommand(testContext(t, context.Background()), DirOptions{}, []string{root}, &bytes.Buffer{})
	if !errors.Is(err, count.ErrNoSupportedFiles) {
		t.Fatalf("expected ErrNoSupportedFiles, got %v", err)
	}
}

func Test_ExecuteFileCommand_Lines(t *testing.T) {
	root := sampleTree(t)
	var buf bytes.Buffer
	opts := FileOptions{Render: RenderOptions{Format: FormatYAML}}
	opts.WithLines = true
	path := filepath.Join(root, "src", "App.java")
	require.NoError(t, ExecuteFileCommand(testContext(t, context.Background()), opts, []string{path}, &buf))

	var got struct {
		Language string           `yaml:"language"`
		Stats    models.FileStats `yaml:"stats"`
		Lines    []struct {
			Number int    `yaml:"number"`
			Kind   string `yaml:"kind"`
		} `yaml:"lines"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Java", got.Language)
	assert.Equal(t, models.FileStats{Blank: 1, Comment: 1, Code: 1, Variables: 1, Total: 3}, got.Stats)
	require.Len(t, got.Lines, 3)
	assert.Equal(t, 1, got.Lines[0].Number)
	assert.Equal(t, "comment", got.Lines[0].Kind)
	assert.Equal(t, "code", got.Lines[1].Kind)
	assert.Equal(t, "blank", got.Lines[2].Kind)
}

func Test_ExecuteFileCommand_Errors(t *testing.T) {
	appCtx := testContext(t, context.Background())
	if err := ExecuteFileCommand(appCtx, FileOptions{}, nil, &bytes.Buffer{}); !errors.Is(err, ErrNoFile) {
		t.Fatalf("expected ErrNoFile, got %v", err)
	}

	root := sampleTree(t)
	err := ExecuteFileCommand(appCtx, FileOptions{}, []string{filepath.Join(root, "notes.txt")}, &bytes.Buffer{})
	if !errors.Is(err, count.ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
	}
}

func Test_ExecuteLanguagesCommand(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExecuteLanguagesCommand(nil, "python", RenderOptions{Format: FormatJSON}, &buf))
	var got languageList
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.NotEmpty(t, got.Languages)
	assert.Equal(t, "Python", got.Languages[0].Name)
	assert.Equal(t, []string{".py", ".pyw"}, got.Languages[0].Extensions)
	assert.Equal(t, "indent", got.Languages[0].Family)

	buf.Reset()
	require.NoError(t, ExecuteLanguagesCommand(nil, "", RenderOptions{Format: FormatTable, Width: 100}, &buf))
	for _, name := range []string{"Java", "Python", "JavaScript", "TypeScript", "C#", "C++"} {
		assert.Contains(t, buf.String(), name)
	}

	if err := ExecuteLanguagesCommand(nil, "zzzz", RenderOptions{}, &buf); err == nil {
		t.Fatal("expected error when nothing matches")
	}
}

func Test_languageTable(t *testing.T) {
	f := count.FoldFolder([]models.FileEntry{
		{Path: "a.py", Language: "Python", Stats: models.FileStats{Code: 1, Total: 1}},
		{Path: "B.java", Language: "Java", Stats: models.FileStats{Code: 3, Blank: 1, Total: 4}},
	})
	headers, rows, footer := languageTable(&f)
	assert.Equal(t, "language", headers[0])
	require.Len(t, rows, 2)
	assert.Equal(t, "Java", rows[0][0])
	assert.Equal(t, "75.0%", rows[0][7])
	assert.Equal(t, []string{"TOTAL", "2", "4", "0", "1", "0", "5", "100.0%"}, footer)

	empty := models.NewFolderStats()
	if _, rows, footer := languageTable(&empty); len(rows) != 0 || footer != nil {
		t.Fatal("empty folder should have no rows and no footer")
	}
}

func Test_folderMarkdown(t *testing.T) {
	f := count.FoldFolder([]models.FileEntry{
		{Path: "pkg/a.ts", Language: "TypeScript", Stats: models.FileStats{Code: 2, Comment: 1, Total: 3}},
	})
	f.Root = "/tmp/demo"
	f.Skip(models.SkippedFile{Path: "logo.png", Reason: models.SkipBinary})

	md := folderMarkdown(&f, RenderOptions{WithFiles: true, ShowSkipped: true})
	for _, want := range []string{
		"# Folder analysis: demo",
		"| language | files |",
		"| --- | --: |",
		"| **TOTAL** | 1 | 2 |",
		"`pkg/a.ts`",
		"- logo.png (binary)",
	} {
		assert.Contains(t, md, want)
	}
}

func Test_fileTree(t *testing.T) {
	f := count.FoldFolder([]models.FileEntry{
		{Path: "src/a/x.js", Language: "JavaScript", Stats: models.FileStats{Code: 1, Total: 1}},
		{Path: "src/y.js", Language: "JavaScript", Stats: models.FileStats{Code: 2, Total: 2}},
	})
	f.Root = "/work/repo"
	tree := fileTree(&f)
	assert.Equal(t, "repo", tree.Text)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, "src/", tree.Children[0].Text)
	require.Len(t, tree.Children[0].Children, 2)
	assert.True(t, strings.HasPrefix(tree.Children[0].Children[1].Text, "y.js"))
}

// syncBuffer 供监听 goroutine 与测试同时访问
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func Test_ExecuteWatchCommand(t *testing.T) {
	root := sampleTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}

	opts := WatchOptions{
		DirOptions: DirOptions{Render: RenderOptions{Format: FormatJSON}},
		Debounce:   50 * time.Millisecond,
	}
	done := make(chan error, 1)
	go func() {
		done <- ExecuteWatchCommand(testContext(t, ctx), opts, []string{root}, out)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), `"total_files": 2`)
	}, 5*time.Second, 20*time.Millisecond, "initial analysis")

	require.NoError(t, os.WriteFile(filepath.Join(root, "tool.py"), []byte("x = 1\ny = 2\n"), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "changed: tool.py")
	}, 5*time.Second, 20*time.Millisecond, "reanalysis after change")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
