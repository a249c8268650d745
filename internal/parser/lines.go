package parser

import (
	"sort"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
)

// lineIndex maps byte offsets of one document onto hcl positions.
type lineIndex struct {
	uri    string
	text   string
	starts []int
}

func newLineIndex(uri, text string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{uri: uri, text: text, starts: starts}
}

func (ix *lineIndex) pos(offset int) hcl.Pos {
	if offset < 0 {
		offset = 0
	}
	if offset > len(ix.text) {
		offset = len(ix.text)
	}
	line := sort.Search(len(ix.starts), func(i int) bool { return ix.starts[i] > offset }) - 1
	col := utf8.RuneCountInString(ix.text[ix.starts[line]:offset]) + 1
	return hcl.Pos{Line: line + 1, Column: col, Byte: offset}
}

func (ix *lineIndex) rng(start, end int) hcl.Range {
	return hcl.Range{Filename: ix.uri, Start: ix.pos(start), End: ix.pos(end)}
}
