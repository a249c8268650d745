package parser

// StripComment blanks a trailing `#` comment out of a single line. The
// comment bytes are replaced by spaces so the line keeps its length. A `#`
// inside a single- or double-quoted span is not a comment.
//
// quote is the quote still open from the previous line, 0 if none; the quote
// left open at the end of this line is returned alongside the text.
func StripComment(line string, quote byte) (string, byte) {
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			b := []byte(line)
			for j := i; j < len(b); j++ {
				if b[j] != '\r' {
					b[j] = ' '
				}
			}
			return string(b), 0
		}
	}
	return line, quote
}
