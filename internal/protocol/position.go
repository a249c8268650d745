package protocol

import "unicode/utf8"

// PositionConverter maps between byte offsets and editor positions for one
// text. Build it once per text and reuse it for every conversion.
type PositionConverter struct {
	text  string
	lines []line
}

type line struct {
	start int // byte offset of the first byte
	len   int // bytes, excluding the newline
}

// NewPositionConverter indexes the lines of text.
func NewPositionConverter(text string) *PositionConverter {
	pc := &PositionConverter{text: text}
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			pc.lines = append(pc.lines, line{start: start, len: i - start})
			start = i + 1
		}
	}
	pc.lines = append(pc.lines, line{start: start, len: len(text) - start})
	return pc
}

// LineCount is the number of lines, counting a trailing empty line.
func (pc *PositionConverter) LineCount() int { return len(pc.lines) }

// ByteOffsetToPosition converts a byte offset. Offsets outside the text are
// clamped to its bounds.
func (pc *PositionConverter) ByteOffsetToPosition(offset int) Position {
	if offset <= 0 {
		return Position{}
	}
	if offset > len(pc.text) {
		offset = len(pc.text)
	}
	// Last line starting at or before offset.
	lo, hi := 0, len(pc.lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if pc.lines[mid].start <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	l := pc.lines[lo]
	col := offset - l.start
	if col > l.len {
		col = l.len
	}
	return Position{Line: lo, Character: utf16Len(pc.text[l.start : l.start+col])}
}

// PositionToByteOffset converts a position. A line past the end maps to the
// end of the text and a column past the end of its line maps to the line end.
func (pc *PositionConverter) PositionToByteOffset(pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(pc.lines) {
		return len(pc.text)
	}
	l := pc.lines[pos.Line]
	content := pc.text[l.start : l.start+l.len]
	units := 0
	for i, r := range content {
		if units >= pos.Character {
			return l.start + i
		}
		units += runeUnits(r)
	}
	return l.start + l.len
}

// ByteOffsetsToRange converts a pair of byte offsets.
func (pc *PositionConverter) ByteOffsetsToRange(start, end int) Range {
	return Range{Start: pc.ByteOffsetToPosition(start), End: pc.ByteOffsetToPosition(end)}
}

// RangeToByteOffsets converts a range back into byte offsets.
func (pc *PositionConverter) RangeToByteOffsets(r Range) (start, end int) {
	return pc.PositionToByteOffset(r.Start), pc.PositionToByteOffset(r.End)
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}

// runeUnits is the number of UTF-16 code units encoding r.
func runeUnits(r rune) int {
	if r >= 0x10000 && r <= utf8.MaxRune {
		return 2
	}
	return 1
}
