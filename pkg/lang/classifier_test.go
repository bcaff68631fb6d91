package lang

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRule(t *testing.T, name string) *Rule {
	t.Helper()
	r, ok := Default().Lookup(name)
	require.True(t, ok, "rule %s not registered", name)
	return r
}

func classifyAll(r *Rule, text string) []Kind {
	var st State
	var kinds []Kind
	for _, line := range SplitLines(text) {
		kinds = append(kinds, r.ParseLine(line, &st))
	}
	return kinds
}

func Test_ParseLine_CommentBlankCode(t *testing.T) {
	js := mustRule(t, "JavaScript")
	got := classifyAll(js, "// hello\n\nlet x = 1;")
	assert.Equal(t, []Kind{Comment, Blank, Code}, got)

	var st State
	res := js.Classify("let x = 1;", &st)
	assert.Equal(t, Code, res.Kind)
	assert.GreaterOrEqual(t, res.Variables, 1)
}

func Test_ParseLine_BlockCommentTransitions(t *testing.T) {
	js := mustRule(t, "JavaScript")
	var st State

	steps := []struct {
		line    string
		want    Kind
		inBlock bool
	}{
		{"/* start", Comment, true},
		{"still in comment", Comment, true},
		{"end */", Comment, false},
		{"code();", Code, false},
	}
	for i, s := range steps {
		got := js.ParseLine(s.line, &st)
		if got != s.want || st.InBlockComment != s.inBlock {
			t.Fatalf("line %d %q => %s inBlock=%v, want %s inBlock=%v", i+1, s.line, got, st.InBlockComment, s.want, s.inBlock)
		}
	}
}

func Test_ParseLine_EdgeCases(t *testing.T) {
	js := mustRule(t, "JavaScript")

	t.Run("one line block", func(t *testing.T) {
		var st State
		assert.Equal(t, Comment, js.ParseLine("  /* done */  ", &st))
		assert.False(t, st.InBlockComment)
	})

	t.Run("blank inside block keeps state", func(t *testing.T) {
		var st State
		assert.Equal(t, Comment, js.ParseLine("/*", &st))
		assert.Equal(t, Blank, js.ParseLine("   ", &st))
		assert.True(t, st.InBlockComment)
		assert.Equal(t, Comment, js.ParseLine("*/", &st))
		assert.False(t, st.InBlockComment)
	})

	t.Run("code after block end is still comment", func(t *testing.T) {
		st := State{InBlockComment: true}
		assert.Equal(t, Comment, js.ParseLine("end */ run();", &st))
		assert.False(t, st.InBlockComment)
	})

	t.Run("inline block start does not open block", func(t *testing.T) {
		var st State
		assert.Equal(t, Code, js.ParseLine("int a = 1; /* trailing", &st))
		assert.False(t, st.InBlockComment)
	})

	t.Run("empty delimiters disable rules", func(t *testing.T) {
		r := &Rule{Name: "Shell", LineComment: "#", Extensions: []string{"sh"}}
		var st State
		assert.Equal(t, Code, r.ParseLine("/* not a comment", &st))
		assert.Equal(t, Comment, r.ParseLine("# comment", &st))
		assert.False(t, st.InBlockComment)
	})
}

func Test_ParseLine_Policies(t *testing.T) {
	inline := mustRule(t, "Python")
	basic := *inline
	basic.Policy = PolicyBasic

	text := "\"\"\"Module doc\nstill doc\n\"\"\"\nx = 1"

	assert.Equal(t, []Kind{Comment, Comment, Comment, Code}, classifyAll(inline, text))
	// 起止标记相同时，基础策略把开始标记本身当作结束
	assert.Equal(t, []Kind{Comment, Code, Comment, Code}, classifyAll(&basic, text))

	var st State
	assert.Equal(t, Comment, inline.ParseLine(`"""one line"""`, &st))
	assert.False(t, st.InBlockComment)
}

func Test_AnalyzeLine_Detail(t *testing.T) {
	js := mustRule(t, "JavaScript")
	var st State

	d := js.AnalyzeLine("  let total = 0; // running sum", &st)
	assert.Equal(t, Code, d.Kind)
	assert.True(t, d.InlineComment)
	assert.True(t, d.HasContent)
	assert.Equal(t, "let total = 0; // running sum", d.Trimmed)
	assert.Equal(t, len("  let total = 0; // running sum"), d.Length)
	assert.Greater(t, d.Variables, 0)

	basic := *js
	basic.Policy = PolicyBasic
	d = basic.AnalyzeLine("x = 1 // note", &st)
	assert.Equal(t, Code, d.Kind)
	assert.False(t, d.InlineComment)

	d = js.AnalyzeLine("", &st)
	assert.Equal(t, Blank, d.Kind)
	assert.False(t, d.HasContent)
	assert.Zero(t, d.Variables)
}

func Test_Classify_Idempotent(t *testing.T) {
	java := mustRule(t, "Java")
	text := "/**\n * doc\n */\npublic class A {\n  int x = 1; // field\n}\n"

	run := func() []LineResult {
		var st State
		var out []LineResult
		for _, l := range SplitLines(text) {
			out = append(out, java.Classify(l, &st))
		}
		return out
	}
	assert.Equal(t, run(), run())
}

func Test_Classify_VariablesInsideComments(t *testing.T) {
	py := mustRule(t, "Python")
	var st State
	var kinds []Kind
	vars := 0
	for _, l := range SplitLines("\"\"\"\nx = 1\n\"\"\"\n") {
		res := py.Classify(l, &st)
		kinds = append(kinds, res.Kind)
		vars += res.Variables
	}
	assert.Equal(t, []Kind{Comment, Comment, Comment, Blank}, kinds)
	assert.Equal(t, 1, vars)

	java := mustRule(t, "Java")
	st.Reset()
	res := java.Classify("/* int x = 5; */", &st)
	assert.Equal(t, Comment, res.Kind)
	assert.Equal(t, 1, res.Variables)

	// 单行注释仍然为 0
	res = java.Classify("// int y = 2;", &st)
	assert.Equal(t, Comment, res.Kind)
	assert.Zero(t, res.Variables)
}

func Test_SplitLines(t *testing.T) {
	assert.Len(t, SplitLines("a\nb"), 2)
	assert.Len(t, SplitLines("a\nb\n"), 3)
	assert.Len(t, SplitLines(""), 1)
}

func Test_Kind_Text(t *testing.T) {
	b, err := json.Marshal([]Kind{Blank, Comment, Code})
	require.NoError(t, err)
	assert.JSONEq(t, `["blank","comment","code"]`, string(b))

	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("Comment")))
	assert.Equal(t, Comment, k)
	assert.Error(t, k.UnmarshalText([]byte("other")))
}
