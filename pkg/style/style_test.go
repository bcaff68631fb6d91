package style

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRe.ReplaceAllString(s, "") }

type sample struct {
	Name  string   `json:"name" yaml:"name" toml:"name"`
	Count int      `json:"count" yaml:"count" toml:"count"`
	Ratio float64  `json:"ratio" yaml:"ratio" toml:"ratio"`
	OK    bool     `json:"ok" yaml:"ok" toml:"ok"`
	Tags  []string `json:"tags" yaml:"tags" toml:"tags"`
}

func Test_Highlight_PreservesText(t *testing.T) {
	v := sample{Name: "a: \"b\"", Count: -3, Ratio: 1.5e3, OK: true, Tags: []string{"x", "it's"}}
	for _, format := range []string{"json", "yaml", "toml"} {
		b, err := Encode(format, v)
		require.NoError(t, err, format)
		got := stripANSI(Highlight(format, string(b)))
		if got != string(b) {
			t.Fatalf("%s: highlight changed text\nwant:\n%s\ngot:\n%s", format, b, got)
		}
	}
	assert.Equal(t, "plain", Highlight("table", "plain"))
}

func Test_Encode(t *testing.T) {
	v := sample{Name: "n", Count: 2}
	b, err := Encode("json", v)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"count": 2`)

	b, err = Encode("yaml", v)
	require.NoError(t, err)
	assert.Contains(t, string(b), "count: 2\n")

	b, err = Encode("toml", v)
	require.NoError(t, err)
	assert.Contains(t, string(b), "count = 2")

	_, err = Encode("xml", v)
	assert.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, "json", v, false))
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
}

func Test_TruncateLeft(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"src/main.go", 20, "src/main.go"},
		{"src/pkg/main.go", 8, "…main.go"},
		{"目录/文件.go", 8, "…文件.go"},
		{"abc", 1, "…"},
		{"abc", 0, ""},
	}
	for _, c := range cases {
		if got := TruncateLeft(c.in, c.width); got != c.want {
			t.Fatalf("TruncateLeft(%q, %d) = %q, want %q", c.in, c.width, got, c.want)
		}
	}
}

func Test_NumericColumns(t *testing.T) {
	rows := [][]string{
		{"Java", "10", "50.0%", ""},
		{"Python", "3", "12.5%", ""},
	}
	assert.Equal(t, []bool{false, true, true, false}, numericColumns(4, rows))
}

func Test_PrintTable(t *testing.T) {
	var buf bytes.Buffer
	err := Table{
		Headers: []string{"language", "code"},
		Rows:    [][]string{{"Java", "10"}},
		Footer:  []string{"TOTAL", "10"},
		Width:   40,
	}.Print(&buf)
	require.NoError(t, err)
	out := stripANSI(buf.String())
	for _, want := range []string{"LANGUAGE", "CODE", "Java", "TOTAL"} {
		assert.Contains(t, out, want)
	}
}

func Test_PathTree(t *testing.T) {
	root := PathTree(".", []string{"a/x.go", "b.go", "a/c/y.go"}, func(p string) string { return p })
	require.Len(t, root.Children, 2)
	assert.Equal(t, "a/", root.Children[0].Text)
	assert.Equal(t, "b.go", root.Children[1].Text)
	require.Len(t, root.Children[0].Children, 2)
	assert.Equal(t, "a/x.go", root.Children[0].Children[0].Text)
	assert.Equal(t, "c/", root.Children[0].Children[1].Text)

	var buf bytes.Buffer
	require.NoError(t, PrintTree(&buf, root))
	assert.Contains(t, stripANSI(buf.String()), "a/c/y.go")
}

func Test_Progress(t *testing.T) {
	var off bytes.Buffer
	p := NewProgress(&off, "scan")
	p.Set(50)
	p.Step(1, 2, "a.go")
	p.Done()
	assert.Empty(t, off.String())

	var on bytes.Buffer
	p = newProgress(&on, "scan", true)
	p.Set(50)
	p.Set(50)
	p.Step(2, 2, "dir/b.go")
	out := stripANSI(on.String())
	assert.Equal(t, 2, strings.Count(out, "\r"), "identical frames are not redrawn")
	assert.Contains(t, out, " 50%")
	assert.Contains(t, out, "100% 2/2 dir/b.go")
	p.Done()
	assert.True(t, strings.HasSuffix(on.String(), "\r"))

	var nilBar *Progress
	nilBar.Set(10)
	nilBar.Done()
}

func Test_PrintKeyValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintKeyValues(&buf, []KeyValue{{"a", "1"}, {"long", "2"}}))
	lines := strings.Split(strings.TrimRight(stripANSI(buf.String()), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "  a     1", lines[0])
	assert.Equal(t, "  long  2", lines[1])
}
