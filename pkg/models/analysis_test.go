package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeisme/locscope/pkg/lang"
)

func Test_Fold(t *testing.T) {
	s := Fold([]lang.LineResult{
		{Kind: lang.Comment},
		{Kind: lang.Blank},
		{Kind: lang.Code, Variables: 2},
		{Kind: lang.Code},
	})
	assert.Equal(t, FileStats{Blank: 1, Comment: 1, Code: 2, Variables: 2, Total: 4}, s)
	assert.True(t, s.Valid())
	assert.True(t, Fold(nil).Valid())
}

func Test_FolderStats_AddFile(t *testing.T) {
	f := NewFolderStats()
	a := FileStats{Blank: 1, Comment: 2, Code: 3, Variables: 4, Total: 6}
	b := FileStats{Blank: 0, Comment: 1, Code: 9, Variables: 1, Total: 10}
	c := FileStats{Blank: 2, Comment: 0, Code: 1, Variables: 0, Total: 3}

	f.AddFile(FileEntry{Path: "a.java", Language: "Java", Stats: a})
	f.AddFile(FileEntry{Path: "b.py", Language: "Python", Stats: b})
	f.AddFile(FileEntry{Path: "c.java", Language: "Java", Stats: c})
	f.Skip(SkippedFile{Path: "d.txt", Reason: SkipUnsupported})

	assert.Equal(t, 3, f.TotalFiles)
	assert.Equal(t, 19, f.TotalLines)
	assert.Equal(t, FileStats{Blank: 3, Comment: 3, Code: 13, Variables: 5, Total: 19}, f.Totals())
	assert.True(t, f.Totals().Valid())

	java := f.Languages["Java"]
	if java == nil || java.Files != 2 || java.Total != 9 || java.Code != 4 {
		t.Fatalf("java stats %+v", java)
	}
	assert.Equal(t, 1, f.Languages["Python"].Files)
	assert.Len(t, f.Files, 3)
	assert.Len(t, f.Skipped, 1)
}

func Test_Summary(t *testing.T) {
	s := FileStats{Blank: 1, Comment: 1, Code: 2, Variables: 3, Total: 4}.Summary()
	assert.InDelta(t, 25.0, s.BlankPercent, 1e-9)
	assert.InDelta(t, 50.0, s.CodePercent, 1e-9)
	assert.InDelta(t, 0.75, s.VariablesPerLine, 1e-9)

	var zero FolderStats
	z := zero.Summary()
	for _, v := range []float64{z.BlankPercent, z.CommentPercent, z.CodePercent, z.VariablesPerLine, z.AvgLinesPerFile} {
		if math.IsNaN(v) || v != 0 {
			t.Fatalf("zero summary %+v", z)
		}
	}

	f := NewFolderStats()
	f.AddFile(FileEntry{Language: "C", Stats: FileStats{Code: 10, Total: 10}})
	f.AddFile(FileEntry{Language: "C", Stats: FileStats{Code: 20, Total: 20}})
	assert.InDelta(t, 15.0, f.Summary().AvgLinesPerFile, 1e-9)
}
